package service

import (
	"context"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/domain/repository"
	"github.com/markvilla/selfcheckout-api/pkg/money"
)

// Display defaults substituted for optional fields missing from the server
// transaction record.
const (
	defaultStoreName = "Store"
	defaultCashier   = "Self-Checkout"
)

// ReceiptService projects finalized transaction records into presentation-
// ready receipt views. Views are derived on every read and never persisted.
type ReceiptService struct {
	gateway repository.TransactionGateway
}

// NewReceiptService creates a new receipt service
func NewReceiptService(gateway repository.TransactionGateway) *ReceiptService {
	return &ReceiptService{gateway: gateway}
}

// GetReceipt fetches the sale record for a transaction and projects it.
func (s *ReceiptService) GetReceipt(ctx context.Context, transactionNumber string) (*entity.ReceiptView, error) {
	record, err := s.gateway.GetSaleDetails(ctx, transactionNumber)
	if err != nil {
		return nil, err
	}
	return BuildReceipt(record), nil
}

// BuildReceipt is a pure projection of a sale record. Line subtotals are
// rounded independently before summation, the way a physical receipt rounds
// line by line. A percentage discount takes precedence over a flat amount
// when the record carries both; the grand total is rounded once, so the
// printed discount line is derived as subtotal minus total.
func BuildReceipt(record *entity.SaleRecord) *entity.ReceiptView {
	view := &entity.ReceiptView{
		Header: entity.ReceiptHeader{
			StoreName: record.StoreName,
			Address:   record.StoreAddress,
			Contact:   record.StoreContact,
			TaxID:     record.StoreTaxID,
		},
		TransactionNumber: record.TransactionNumber,
		Cashier:           record.CashierName,
	}

	if view.Header.StoreName == "" {
		view.Header.StoreName = defaultStoreName
	}
	if view.Cashier == "" {
		view.Cashier = defaultCashier
	}
	if !record.CompletedAt.IsZero() {
		view.Date = record.CompletedAt.Format("2006-01-02 15:04")
	}

	var subTotal money.Cents
	for _, it := range record.Items {
		unit := money.FromFloat(it.UnitPrice)
		line := entity.ReceiptLine{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			Total:     unit * money.Cents(it.Quantity),
		}
		if line.Name == "" {
			line.Name = "Item"
		}
		subTotal += line.Total
		view.Items = append(view.Items, line)
	}
	view.SubTotal = subTotal

	total := subTotal
	switch {
	case record.DiscountPercent != nil && *record.DiscountPercent > 0:
		total = money.ApplyPercent(subTotal, 100-*record.DiscountPercent)
	case record.DiscountAmount != nil && *record.DiscountAmount > 0:
		total = subTotal - money.FromFloat(*record.DiscountAmount)
	}
	if total < 0 {
		total = 0
	}
	view.Total = total
	view.Discount = subTotal - total

	view.Payment = entity.PaymentSummary{Method: record.PaymentMethod}
	if record.AmountTendered != nil {
		tendered := money.FromFloat(*record.AmountTendered)
		view.Payment.AmountTendered = &tendered
	}
	if record.Change != nil {
		change := money.FromFloat(*record.Change)
		view.Payment.Change = &change
	}

	return view
}
