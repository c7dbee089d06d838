package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
)

// CartStashRepository is the injected terminal-local store for pending carts.
// It is an explicit dependency rather than ambient storage so the checkout
// flow is testable without a database.
type CartStashRepository interface {
	// Get retrieves the pending cart for a terminal, nil if none exists
	Get(ctx context.Context, terminalID uuid.UUID) (*entity.PendingCart, error)
	// Save creates or replaces the pending cart for a terminal
	Save(ctx context.Context, cart *entity.PendingCart) error
	// Delete removes the pending cart for a terminal
	Delete(ctx context.Context, terminalID uuid.UUID) error
}
