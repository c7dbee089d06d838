package printer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentStartsWithInit(t *testing.T) {
	d := NewDocument(32)
	assert.True(t, bytes.HasPrefix(d.Bytes(), []byte{ESC, '@'}))
}

func TestItemLineLayout(t *testing.T) {
	d := NewDocument(32)
	d.ItemLine("Widget", 2, "50.00", "100.00")

	want := "Widget\n  2 x 50.00\t100.00\n"
	assert.True(t, bytes.HasSuffix(d.Bytes(), []byte(want)), "got %q", d.Bytes())
}

func TestBoldWrapsPayload(t *testing.T) {
	d := NewDocument(32)
	d.SetBold(true).KeyValue("TOTAL", "100.00").SetBold(false)

	out := d.Bytes()
	on := bytes.Index(out, []byte{ESC, 'E', 0x01})
	total := bytes.Index(out, []byte("100.00"))
	off := bytes.Index(out, []byte{ESC, 'E', 0x00})
	assert.True(t, on >= 0 && total > on && off > total, "got %q", out)
}

func TestAlignCommands(t *testing.T) {
	d := NewDocument(32)
	d.SetAlign(AlignCenter).Text("HEADER").SetAlign(AlignLeft)

	out := d.Bytes()
	assert.True(t, bytes.Contains(out, []byte{ESC, 'a', 0x01}))
	assert.True(t, bytes.Contains(out, []byte{ESC, 'a', 0x00}))
}

func TestCutIsFullCut(t *testing.T) {
	d := NewDocument(32)
	d.Text("x").Cut()
	assert.True(t, bytes.HasSuffix(d.Bytes(), []byte{GS, 'V', 'A', 0x00}))
}

func TestKeyValuePadsToWidth(t *testing.T) {
	d := NewDocument(20)
	d.Reset() // drop the init bytes for easier inspection
	d.KeyValue("Subtotal", "36.75")

	line := d.Bytes()[2:] // skip ESC @ from Reset
	assert.Equal(t, "Subtotal       36.75\n", string(line))
}

func TestSeparatorMatchesWidth(t *testing.T) {
	d := NewDocument(8)
	d.Reset()
	d.Separator('-')
	assert.True(t, bytes.HasSuffix(d.Bytes(), []byte("--------\n")))
}

func TestNewPrinterFromConfig(t *testing.T) {
	p, err := NewPrinterFromConfig("none", "", "")
	assert.NoError(t, err)
	assert.NoError(t, p.Print([]byte("anything")))
	assert.False(t, p.IsConnected())

	_, err = NewPrinterFromConfig("usb", "", "")
	assert.Error(t, err)

	_, err = NewPrinterFromConfig("laser", "", "")
	assert.Error(t, err)
}
