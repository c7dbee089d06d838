package request

// StartCartRequest begins a fresh pending cart on the calling terminal.
type StartCartRequest struct {
	BusinessID string `json:"business_id" binding:"required"`
}

// AddItemRequest appends a line item to the pending cart.
type AddItemRequest struct {
	ProductID string  `json:"product_id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
}

// ScanRequest carries a raw scanned QR payload.
type ScanRequest struct {
	Payload string `json:"payload" binding:"required"`
}
