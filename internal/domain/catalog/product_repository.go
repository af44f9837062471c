package catalog

import (
	"context"

	"github.com/google/uuid"
)

// SearchCriteria narrows product lookups for selection
type SearchCriteria struct {
	Types       []ProductType
	EnabledOnly bool
	VisibleOnly bool
	Page        int
	PageSize    int
}

// ProductRepository defines the interface for product lookups
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by SKU within a store
	FindBySKU(ctx context.Context, storeID uuid.UUID, sku string) (*Product, error)

	// Search finds products matching the criteria within a store
	Search(ctx context.Context, storeID uuid.UUID, criteria SearchCriteria) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Count counts products in a store
	Count(ctx context.Context, storeID uuid.UUID) (int64, error)
}
