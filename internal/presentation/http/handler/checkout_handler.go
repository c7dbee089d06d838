package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/markvilla/selfcheckout-api/internal/application/service"
	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/dto/request"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/dto/response"
	"github.com/markvilla/selfcheckout-api/pkg/money"
)

// CheckoutHandler handles cart and handoff HTTP requests.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// StartCart begins a fresh pending cart for the calling terminal.
func (h *CheckoutHandler) StartCart(c *gin.Context) {
	var req request.StartCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	cart, err := h.checkoutService.StartCart(c.Request.Context(), GetTerminalID(c), req.BusinessID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Cart started", cart)
}

// AddItem appends a line item to the pending cart.
func (h *CheckoutHandler) AddItem(c *gin.Context) {
	var req request.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item := entity.CartItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: money.FromFloat(req.UnitPrice),
	}
	cart, err := h.checkoutService.AddItem(c.Request.Context(), GetTerminalID(c), item)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item added", cart)
}

// RemoveItem drops a product line from the pending cart.
func (h *CheckoutHandler) RemoveItem(c *gin.Context) {
	cart, err := h.checkoutService.RemoveItem(c.Request.Context(), GetTerminalID(c), c.Param("productId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Item removed", cart)
}

// CurrentCart returns the terminal's pending cart.
func (h *CheckoutHandler) CurrentCart(c *gin.Context) {
	cart, err := h.checkoutService.CurrentCart(c.Request.Context(), GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Current cart", cart)
}

// Abandon clears the terminal's pending cart without creating a transaction.
func (h *CheckoutHandler) Abandon(c *gin.Context) {
	if err := h.checkoutService.Abandon(c.Request.Context(), GetTerminalID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Handoff assigns a transaction number and returns the scannable payload.
func (h *CheckoutHandler) Handoff(c *gin.Context) {
	result, err := h.checkoutService.Handoff(c.Request.Context(), GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Cart ready for handoff", result)
}

// Submit creates the transaction on the remote service and clears the stash.
func (h *CheckoutHandler) Submit(c *gin.Context) {
	ref, err := h.checkoutService.Submit(c.Request.Context(), GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Transaction created", ref)
}

// Scan decodes a scanned QR payload into a business reference.
func (h *CheckoutHandler) Scan(c *gin.Context) {
	var req request.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	decoded, err := h.checkoutService.Scan(req.Payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payload decoded", decoded)
}

// StoreEntry returns the store-entry QR payload for a business.
func (h *CheckoutHandler) StoreEntry(c *gin.Context) {
	result, err := h.checkoutService.StoreEntry(c.Param("businessId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Store entry QR", result)
}
