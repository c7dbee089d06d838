package entity

import (
	"github.com/markvilla/selfcheckout-api/internal/domain/enum"
	"github.com/markvilla/selfcheckout-api/pkg/money"
)

// ReceiptHeader holds the store identity printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Contact   string `json:"contact,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptLine is a single line item with its computed subtotal. Each line is
// rounded independently, matching how a physical receipt rounds line-by-line.
type ReceiptLine struct {
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Cents `json:"unit_price"`
	Total     money.Cents `json:"total"`
}

// PaymentSummary is the payment block at the bottom of a receipt.
type PaymentSummary struct {
	Method         enum.PaymentMethod `json:"method"`
	AmountTendered *money.Cents       `json:"amount_tendered,omitempty"`
	Change         *money.Cents       `json:"change,omitempty"`
}

// ReceiptView is a flattened, presentation-ready projection of a finalized
// transaction. It is derived, never persisted: regenerated from the server
// transaction record on each view.
type ReceiptView struct {
	Header            ReceiptHeader  `json:"header"`
	TransactionNumber string         `json:"transaction_number"`
	Date              string         `json:"date"`
	Cashier           string         `json:"cashier"`
	Items             []ReceiptLine  `json:"items"`
	SubTotal          money.Cents    `json:"sub_total"`
	Discount          money.Cents    `json:"discount"`
	Total             money.Cents    `json:"total"`
	Payment           PaymentSummary `json:"payment"`
}
