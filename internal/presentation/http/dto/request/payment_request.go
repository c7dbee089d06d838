package request

// TenderRequest stages a user-typed cash amount for a transaction. The amount
// travels as a string so parsing and rounding happen in one place, on the
// server.
type TenderRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// ConfirmPaymentRequest settles a transaction with the staged tender input.
type ConfirmPaymentRequest struct {
	Method string  `json:"method" binding:"required"`
	Total  float64 `json:"total" binding:"required,gte=0"`
}
