package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/markvilla/selfcheckout-api/internal/domain/entity"
	domainRepo "github.com/markvilla/selfcheckout-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartStashRepository struct {
	db *gorm.DB
}

// NewCartStashRepository creates a GORM-backed pending cart stash
func NewCartStashRepository(db *gorm.DB) domainRepo.CartStashRepository {
	return &cartStashRepository{db: db}
}

func (r *cartStashRepository) Get(ctx context.Context, terminalID uuid.UUID) (*entity.PendingCart, error) {
	var cart entity.PendingCart
	err := r.db.WithContext(ctx).
		Where("terminal_id = ?", terminalID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *cartStashRepository) Save(ctx context.Context, cart *entity.PendingCart) error {
	// One pending cart per terminal; a new cart replaces the previous stash.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "terminal_id"}},
			UpdateAll: true,
		}).
		Create(cart).Error
}

func (r *cartStashRepository) Delete(ctx context.Context, terminalID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("terminal_id = ?", terminalID).
		Delete(&entity.PendingCart{}).Error
}
