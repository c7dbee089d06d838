package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/markvilla/selfcheckout-api/internal/application/service"
	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/dto/response"
)

// TransactionHandler exposes status reads and the blocking wait endpoint.
type TransactionHandler struct {
	statusService *service.StatusService
}

// NewTransactionHandler creates a new transaction handler.
func NewTransactionHandler(statusService *service.StatusService) *TransactionHandler {
	return &TransactionHandler{statusService: statusService}
}

// GetStatus performs a single status read against the remote service.
func (h *TransactionHandler) GetStatus(c *gin.Context) {
	result, err := h.statusService.GetStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Transaction status", result)
}

// Wait blocks until the transaction reaches a terminal state or the client
// disconnects. Disconnecting cancels the polling session; no work continues
// for a screen nobody is looking at.
func (h *TransactionHandler) Wait(c *gin.Context) {
	ref := entity.TransactionReference{
		BusinessID:        GetBusinessID(c),
		TransactionNumber: c.Param("id"),
	}

	tn, err := h.statusService.WaitForCompletion(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, c.Request.Context().Err()) && c.Request.Context().Err() != nil {
			// Client went away; nothing left to answer.
			c.Abort()
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction completed", gin.H{
		"transaction_number": tn,
		"status":             "completed",
	})
}
