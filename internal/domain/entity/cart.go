package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/markvilla/selfcheckout-api/pkg/money"
	"gorm.io/gorm"
)

// TransactionReference identifies one sale across customer and cashier
// devices. The transaction number is generated client-side before the server
// confirms anything; immutable once created.
type TransactionReference struct {
	BusinessID        string `json:"business_id"`
	TransactionNumber string `json:"transaction_number"`
}

// CartItem is a single product line in a pending cart.
type CartItem struct {
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Cents `json:"unit_price"`
}

// LineTotal returns quantity times unit price. Both sides are integral cents,
// so the multiplication is exact.
func (i CartItem) LineTotal() money.Cents {
	return i.UnitPrice * money.Cents(i.Quantity)
}

// PendingCart is the terminal-local stash of an in-progress cart. It is owned
// exclusively by the customer's terminal until handed off, then cleared once a
// transaction number is committed or the flow is abandoned.
type PendingCart struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TerminalID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"terminal_id"`
	BusinessID        string    `gorm:"size:50;not null" json:"business_id"`
	TransactionNumber string    `gorm:"size:100;index" json:"transaction_number,omitempty"`
	ItemsJSON         string    `gorm:"type:text" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName returns the table name for the PendingCart model
func (PendingCart) TableName() string {
	return "pending_carts"
}

// BeforeCreate generates a UUID before creating a new pending cart
func (c *PendingCart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Items decodes the stored line items.
func (c *PendingCart) Items() []CartItem {
	if c.ItemsJSON == "" {
		return nil
	}
	var items []CartItem
	if err := json.Unmarshal([]byte(c.ItemsJSON), &items); err != nil {
		return nil
	}
	return items
}

// SetItems encodes the line items for storage.
func (c *PendingCart) SetItems(items []CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	c.ItemsJSON = string(data)
	return nil
}

// Total sums the line totals of the cart.
func (c *PendingCart) Total() money.Cents {
	var total money.Cents
	for _, item := range c.Items() {
		total += item.LineTotal()
	}
	return total
}

// Reference returns the cart's transaction reference.
func (c *PendingCart) Reference() TransactionReference {
	return TransactionReference{
		BusinessID:        c.BusinessID,
		TransactionNumber: c.TransactionNumber,
	}
}

// MarshalJSON includes the decoded items alongside the cart fields.
func (c PendingCart) MarshalJSON() ([]byte, error) {
	type Alias PendingCart
	return json.Marshal(&struct {
		Alias
		Items []CartItem  `json:"items"`
		Total money.Cents `json:"total"`
	}{
		Alias: Alias(c),
		Items: c.Items(),
		Total: c.Total(),
	})
}
