package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/markvilla/selfcheckout-api/internal/application/service"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt view HTTP requests.
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// GetReceipt returns the presentation-ready receipt view for a finalized
// transaction.
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	view, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("tn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt", view)
}
