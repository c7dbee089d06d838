package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	domainRepo "github.com/markvilla/selfcheckout-api/internal/domain/repository"
)

type memoryCartStash struct {
	mu    sync.RWMutex
	carts map[uuid.UUID]entity.PendingCart
}

// NewMemoryCartStash creates an in-memory pending cart stash for kiosks
// running without a local database, and for tests.
func NewMemoryCartStash() domainRepo.CartStashRepository {
	return &memoryCartStash{carts: make(map[uuid.UUID]entity.PendingCart)}
}

func (r *memoryCartStash) Get(ctx context.Context, terminalID uuid.UUID) (*entity.PendingCart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[terminalID]
	if !ok {
		return nil, nil
	}
	copied := cart
	return &copied, nil
}

func (r *memoryCartStash) Save(ctx context.Context, cart *entity.PendingCart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	r.carts[cart.TerminalID] = *cart
	return nil
}

func (r *memoryCartStash) Delete(ctx context.Context, terminalID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, terminalID)
	return nil
}
