package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/markvilla/selfcheckout-api/internal/application/service"
	"github.com/markvilla/selfcheckout-api/internal/domain/enum"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/dto/request"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/dto/response"
	"github.com/markvilla/selfcheckout-api/pkg/money"
)

// PaymentHandler handles cash reconciliation HTTP requests.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Tender stages a user-typed cash amount for a transaction.
func (h *PaymentHandler) Tender(c *gin.Context) {
	var req request.TenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	amount, err := h.paymentService.SetAmount(c.Param("tn"), req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Tendered amount staged", gin.H{"amount": amount})
}

// Exact stages the exact-amount flag, bypassing amount entry entirely.
func (h *PaymentHandler) Exact(c *gin.Context) {
	h.paymentService.SetExact(c.Param("tn"))
	response.OK(c, "Exact amount staged", nil)
}

// Confirm settles the transaction with the staged tender input.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var req request.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	record, err := h.paymentService.Confirm(
		c.Param("tn"),
		money.FromFloat(req.Total),
		enum.PaymentMethod(req.Method),
	)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment recorded", record)
}
