package customer

import (
	"context"

	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for customer persistence
type Repository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByEmail finds a customer by email within a website
	FindByEmail(ctx context.Context, websiteID uuid.UUID, email string) (*Customer, error)

	// FindByStore finds customers registered in a store
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// ExistsByEmail checks if a customer with the email exists in the website
	ExistsByEmail(ctx context.Context, websiteID uuid.UUID, email string) (bool, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Count counts customers in a store
	Count(ctx context.Context, storeID uuid.UUID) (int64, error)
}

// AddressRepository defines the interface for customer address persistence
type AddressRepository interface {
	// FindByCustomer returns the customer's addresses, oldest first
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error
}

// GroupRepository defines the interface for customer group lookups
type GroupRepository interface {
	// FindByID finds a group by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Group, error)

	// FindByCode finds a group by its code
	FindByCode(ctx context.Context, code string) (*Group, error)

	// Save creates or updates a group
	Save(ctx context.Context, group *Group) error
}

// AccountService registers customer accounts on the platform
type AccountService interface {
	// CreateAccount persists the customer with the given plain-text password
	// hashed by the platform's policy, returning the stored customer
	CreateAccount(ctx context.Context, c *Customer, password string) (*Customer, error)
}
