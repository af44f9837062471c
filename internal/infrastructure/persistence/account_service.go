package persistence

import (
	"context"

	"github.com/erp/seeder/internal/domain/customer"
	"github.com/erp/seeder/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// BcryptAccountService implements customer.AccountService. It hashes
// the plain-text password with bcrypt and persists the customer.
type BcryptAccountService struct {
	customers customer.Repository
	cost      int
}

// NewBcryptAccountService creates a new BcryptAccountService
func NewBcryptAccountService(customers customer.Repository) *BcryptAccountService {
	return &BcryptAccountService{
		customers: customers,
		cost:      bcrypt.DefaultCost,
	}
}

// CreateAccount hashes the password and persists the customer
func (s *BcryptAccountService) CreateAccount(ctx context.Context, c *customer.Customer, password string) (*customer.Customer, error) {
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	exists, err := s.customers.ExistsByEmail(ctx, c.WebsiteID, c.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	c.PasswordHash = string(hash)

	if err := s.customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
