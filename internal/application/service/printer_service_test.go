package service

import (
	"bytes"
	"testing"

	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	"github.com/markvilla/selfcheckout-api/internal/domain/enum"
	"github.com/markvilla/selfcheckout-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A sale with one line of 2 x 50.00 rendered end to end through the receipt
// projection and the ESC/POS encoder.
func TestEncodeReceiptFromSaleRecord(t *testing.T) {
	record := &entity.SaleRecord{
		TransactionNumber: "T-17-20260829120000-0042",
		StoreName:         "Villa Mart",
		Items: []entity.SaleItem{
			{ProductID: "p1", Name: "Widget", Quantity: 2, UnitPrice: 50.00},
		},
		PaymentMethod: enum.PaymentCash,
	}

	data := EncodeReceipt(BuildReceipt(record), 32)

	// Stream starts with the initialize command.
	require.True(t, bytes.HasPrefix(data, []byte{printer.ESC, '@'}))

	// Item breakdown line carries the quantity and unit price.
	assert.True(t, bytes.Contains(data, []byte("2 x 50.00")))

	// The grand total is wrapped in bold: bold-on precedes the 100.00 total
	// line, bold-off follows it.
	boldOn := bytes.Index(data, []byte{printer.ESC, 'E', 0x01})
	boldOff := bytes.Index(data, []byte{printer.ESC, 'E', 0x00})
	require.GreaterOrEqual(t, boldOn, 0)
	require.Greater(t, boldOff, boldOn)
	total := bytes.Index(data[boldOn:boldOff], []byte("100.00"))
	assert.GreaterOrEqual(t, total, 0, "bold block does not contain the total")

	// Stream ends with the full cut command.
	assert.True(t, bytes.HasSuffix(data, printer.CutSequence))
}

type recordingPrinter struct {
	data []byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	p.data = data
	return p.err
}
func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.err == nil }

func TestTestPrintSendsCutTerminatedStream(t *testing.T) {
	rec := &recordingPrinter{}
	s := NewPrinterService(rec, NewReceiptService(&stubGateway{}), "usb", 32)

	view, err := s.TestPrint()
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.True(t, bytes.HasSuffix(rec.data, printer.CutSequence))
}
