package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
	TAB = 0x09
)

// Text alignment
const (
	AlignLeft   = 0x00
	AlignCenter = 0x01
	AlignRight  = 0x02
)

// Document builds an ESC/POS byte stream for thermal receipt printers.
// The protocol is write-only: there is no acknowledgment channel, failure is
// only observable from the transport before bytes are flushed.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (32 for 58mm paper, 48 for 80mm)
}

// NewDocument creates a new ESC/POS document with the given character width
// and sends the ESC @ initialize command.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{width: charWidth}
	d.Init()
	return d
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment (ESC a n): AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align byte) *Document {
	d.buf.Write([]byte{ESC, 'a', align})
	return d
}

// SetBold enables or disables emphasized text (ESC E n).
func (d *Document) SetBold(on bool) *Document {
	b := byte(0x00)
	if on {
		b = 0x01
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// TextF writes a formatted line of text followed by a line feed.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte(LF)
	return d
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// Example: "Subtotal                  100.00"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// ItemLine prints a receipt line item: the product name on its own line, then
// an indented quantity/unit-price breakdown with the line total after a tab.
//
//	Widget
//	  2 x 50.00<TAB>100.00
func (d *Document) ItemLine(name string, qty int, unitPrice, total string) *Document {
	d.buf.WriteString(name)
	d.buf.WriteByte(LF)
	d.buf.WriteString(fmt.Sprintf("  %d x %s", qty, unitPrice))
	d.buf.WriteByte(TAB)
	d.buf.WriteString(total)
	d.buf.WriteByte(LF)
	return d
}

// Cut sends the full paper cut command (GS V A).
func (d *Document) Cut() *Document {
	d.buf.Write(CutSequence)
	return d
}

// CutSequence is the trailing full-cut command emitted by Cut.
var CutSequence = []byte{GS, 'V', 'A', 0x00}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Width returns the configured character width.
func (d *Document) Width() int {
	return d.width
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.Init()
	return d
}
