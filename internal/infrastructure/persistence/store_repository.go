package persistence

import (
	"context"
	"errors"

	"github.com/erp/seeder/internal/domain/shared"
	"github.com/erp/seeder/internal/domain/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStoreManager implements store.Manager using GORM
type GormStoreManager struct {
	db *gorm.DB
}

// NewGormStoreManager creates a new GormStoreManager
func NewGormStoreManager(db *gorm.DB) *GormStoreManager {
	return &GormStoreManager{db: db}
}

// DefaultStore returns the oldest active store
func (r *GormStoreManager) DefaultStore(ctx context.Context) (*store.Store, error) {
	var st store.Store
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at asc").
		First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

// FindByID finds a store by its ID
func (r *GormStoreManager) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	var st store.Store
	if err := r.db.WithContext(ctx).First(&st, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

// FindByCode finds a store by its code
func (r *GormStoreManager) FindByCode(ctx context.Context, code string) (*store.Store, error) {
	var st store.Store
	if err := r.db.WithContext(ctx).First(&st, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

// FindWebsiteByID finds a website by its ID
func (r *GormStoreManager) FindWebsiteByID(ctx context.Context, id uuid.UUID) (*store.Website, error) {
	var website store.Website
	if err := r.db.WithContext(ctx).First(&website, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &website, nil
}

// FindWebsiteByCode finds a website by its code
func (r *GormStoreManager) FindWebsiteByCode(ctx context.Context, code string) (*store.Website, error) {
	var website store.Website
	if err := r.db.WithContext(ctx).First(&website, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &website, nil
}

// Save creates or updates a store
func (r *GormStoreManager) Save(ctx context.Context, st *store.Store) error {
	return r.db.WithContext(ctx).Save(st).Error
}

// SaveWebsite creates or updates a website
func (r *GormStoreManager) SaveWebsite(ctx context.Context, website *store.Website) error {
	return r.db.WithContext(ctx).Save(website).Error
}
