package persistence

import (
	"context"
	"errors"

	"github.com/erp/seeder/internal/domain/checkout"
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuoteRepository implements checkout.QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID finds a quote with its items by ID
func (r *GormQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*checkout.Quote, error) {
	var quote checkout.Quote
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&quote, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// Save creates or updates a quote and its items
func (r *GormQuoteRepository) Save(ctx context.Context, quote *checkout.Quote) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(quote).Error
}
