package store

import (
	"context"

	"github.com/google/uuid"
)

// Manager resolves store and website scope for generation runs
type Manager interface {
	// DefaultStore returns the platform default store view
	DefaultStore(ctx context.Context) (*Store, error)

	// FindByID finds a store by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindByCode finds a store by its code
	FindByCode(ctx context.Context, code string) (*Store, error)

	// FindWebsiteByID finds a website by its ID
	FindWebsiteByID(ctx context.Context, id uuid.UUID) (*Website, error)

	// FindWebsiteByCode finds a website by its code
	FindWebsiteByCode(ctx context.Context, code string) (*Website, error)

	// Save creates or updates a store
	Save(ctx context.Context, store *Store) error

	// SaveWebsite creates or updates a website
	SaveWebsite(ctx context.Context, website *Website) error
}
