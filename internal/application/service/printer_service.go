package service

import (
	"context"
	"fmt"
	"log"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/pkg/apperror"
	"github.com/markvilla/selfcheckout-api/pkg/printer"
)

// PrinterService renders receipt views as ESC/POS byte streams and sends
// them to the thermal printer. Printing is a side effect of an already
// finalized sale, never a precondition: a transport failure surfaces as a
// non-fatal alert and the transaction is unaffected.
type PrinterService struct {
	printer     printer.Printer
	receipts    *ReceiptService
	printerType string
	width       int
}

// NewPrinterService creates a new printer service
func NewPrinterService(p printer.Printer, receipts *ReceiptService, printerType string, width int) *PrinterService {
	if width <= 0 {
		width = 32
	}
	return &PrinterService{
		printer:     p,
		receipts:    receipts,
		printerType: printerType,
		width:       width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt fetches the finalized transaction and prints its receipt.
// The view is returned alongside any print error so callers can still show
// the receipt when the printer is unreachable.
func (s *PrinterService) PrintReceipt(ctx context.Context, transactionNumber string) (*entity.ReceiptView, error) {
	view, err := s.receipts.GetReceipt(ctx, transactionNumber)
	if err != nil {
		return nil, err
	}

	data := EncodeReceipt(view, s.width)
	if err := s.printer.Print(data); err != nil {
		log.Printf("Printer error (transaction %s): %v", transactionNumber, err)
		return view, fmt.Errorf("%w: %v", apperror.ErrPrinterUnavailable, err)
	}
	return view, nil
}

// TestPrint sends a fixed sample receipt to the printer. Returns the view so
// the handler can return it as JSON when no printer is configured.
func (s *PrinterService) TestPrint() (*entity.ReceiptView, error) {
	view := &entity.ReceiptView{
		Header: entity.ReceiptHeader{
			StoreName: "PRINTER TEST",
			Address:   "Test Address",
			Contact:   "+63 000 000 0000",
		},
		TransactionNumber: "T-00-00000000000000-0000",
		Date:              "Test Date",
		Cashier:           "System",
		Items: []entity.ReceiptLine{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 1000, Total: 1000},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 500, Total: 1000},
		},
		SubTotal: 2000,
		Total:    2000,
	}

	data := EncodeReceipt(view, s.width)
	if err := s.printer.Print(data); err != nil {
		return view, fmt.Errorf("%w: %v", apperror.ErrPrinterUnavailable, err)
	}
	return view, nil
}

// EncodeReceipt converts a ReceiptView into ESC/POS bytes: initialize,
// centered store header, left-aligned body with per-item quantity/price
// breakdowns, the grand total wrapped in bold, and a trailing full cut.
func EncodeReceipt(view *entity.ReceiptView, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		Text(view.Header.StoreName)

	if view.Header.Address != "" {
		doc.Text(view.Header.Address)
	}
	if view.Header.Contact != "" {
		doc.Text(view.Header.Contact)
	}
	if view.Header.TaxID != "" {
		doc.TextF("TIN: %s", view.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Txn:", view.TransactionNumber)
	if view.Date != "" {
		doc.KeyValue("Date:", view.Date)
	}
	doc.KeyValue("Cashier:", view.Cashier)

	doc.Separator('-')

	// Items
	for _, line := range view.Items {
		doc.ItemLine(line.Name, line.Quantity, line.UnitPrice.String(), line.Total.String())
	}

	doc.Separator('-')

	// Totals
	doc.KeyValue("Subtotal:", view.SubTotal.String())
	if view.Discount > 0 {
		doc.KeyValue("Discount:", "-"+view.Discount.String())
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", view.Total.String()).
		SetBold(false)

	// Payment summary
	if view.Payment.Method != "" {
		doc.KeyValue("Payment:", view.Payment.Method.String())
	}
	if view.Payment.AmountTendered != nil {
		doc.KeyValue("Tendered:", view.Payment.AmountTendered.String())
	}
	if view.Payment.Change != nil {
		doc.KeyValue("Change:", view.Payment.Change.String())
	}

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for shopping!").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		Cut()

	return doc.Bytes()
}
