package entity

import (
	"time"

	"github.com/markvilla/selfcheckout-api/internal/domain/enum"
	"github.com/markvilla/selfcheckout-api/pkg/money"
)

// StatusResult is the response of the public status endpoint of the remote
// transaction service: GET /transactions/public/{transactionId}.
type StatusResult struct {
	Status            enum.TransactionStatus `json:"status"`
	TransactionNumber string                 `json:"tn,omitempty"`
}

// SaleItem is one line of a finalized sale as reported by the remote service.
// Prices arrive as decimals on the wire; they are normalized to cents at the
// projection boundary.
type SaleItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// SaleRecord is the full transaction record from GET /sales/details/{tn}.
// Optional fields may be absent; the receipt formatter substitutes display
// defaults rather than failing.
type SaleRecord struct {
	TransactionNumber string             `json:"tn"`
	BusinessID        string             `json:"business_id"`
	StoreName         string             `json:"store_name"`
	StoreAddress      string             `json:"store_address,omitempty"`
	StoreContact      string             `json:"store_contact,omitempty"`
	StoreTaxID        string             `json:"store_tax_id,omitempty"`
	CashierName       string             `json:"cashier_name,omitempty"`
	Items             []SaleItem         `json:"items"`
	DiscountPercent   *float64           `json:"discount_percent,omitempty"`
	DiscountAmount    *float64           `json:"discount_amount,omitempty"`
	PaymentMethod     enum.PaymentMethod `json:"payment_method"`
	AmountTendered    *float64           `json:"amount_tendered,omitempty"`
	Change            *float64           `json:"change,omitempty"`
	CompletedAt       time.Time          `json:"completed_at"`
}

// PaymentRecord captures how a sale was settled. Created the instant a cashier
// confirms a cash amount or selects a digital method, immutable thereafter.
// For non-cash methods the tendered amount and change are absent.
type PaymentRecord struct {
	TransactionNumber string             `json:"transaction_number"`
	Method            enum.PaymentMethod `json:"method"`
	AmountTendered    *money.Cents       `json:"amount_tendered,omitempty"`
	Change            *money.Cents       `json:"change,omitempty"`
	RecordedAt        time.Time          `json:"recorded_at"`
}
