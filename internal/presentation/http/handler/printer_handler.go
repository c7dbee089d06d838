package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/markvilla/selfcheckout-api/internal/application/service"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/dto/response"
	"github.com/markvilla/selfcheckout-api/pkg/apperror"
)

// PrinterHandler handles thermal printer HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns printer configuration and connection state.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status", h.printerService.GetStatus())
}

// PrintReceipt prints the receipt for a finalized transaction. A printer
// transport failure still returns the receipt view so the kiosk can render
// it on screen instead.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	view, err := h.printerService.PrintReceipt(c.Request.Context(), c.Param("tn"))
	if err != nil {
		if errors.Is(err, apperror.ErrPrinterUnavailable) && view != nil {
			response.OK(c, "Printer unavailable, receipt returned for display", view)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed", view)
}

// TestPrint sends a sample receipt to the configured printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	view, err := h.printerService.TestPrint()
	if err != nil {
		if errors.Is(err, apperror.ErrPrinterUnavailable) {
			response.OK(c, "Printer unavailable, sample returned for display", view)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Test receipt printed", view)
}
