package store

import (
	"strings"
	"time"

	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
)

// Website groups one or more stores under a shared customer scope
type Website struct {
	shared.BaseEntity
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Website) TableName() string {
	return "websites"
}

// NewWebsite creates a new website
func NewWebsite(code, name string) (*Website, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_WEBSITE_CODE", "Website code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_WEBSITE_NAME", "Website name cannot be empty")
	}
	return &Website{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToLower(code),
		Name:       name,
	}, nil
}

// Store is a storefront view with its own locale and currency settings
type Store struct {
	shared.BaseEntity
	WebsiteID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Code           string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string    `gorm:"type:varchar(200);not null"`
	Locale         string    `gorm:"type:varchar(10);not null;default:'en_US'"`
	DefaultCountry string    `gorm:"type:varchar(2);not null;default:'US'"`
	BaseCurrency   string    `gorm:"type:varchar(3);not null;default:'USD'"`
	Active         bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Store) TableName() string {
	return "stores"
}

// NewStore creates a new store under a website
func NewStore(websiteID uuid.UUID, code, name, locale string) (*Store, error) {
	if websiteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WEBSITE", "Website ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_STORE_CODE", "Store code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}
	if locale == "" {
		locale = "en_US"
	}

	return &Store{
		BaseEntity:     shared.NewBaseEntity(),
		WebsiteID:      websiteID,
		Code:           strings.ToLower(code),
		Name:           name,
		Locale:         locale,
		DefaultCountry: countryFromLocale(locale),
		BaseCurrency:   "USD",
		Active:         true,
	}, nil
}

// SetDefaultCountry overrides the country derived from the locale
func (s *Store) SetDefaultCountry(country string) error {
	if len(country) != 2 {
		return shared.NewDomainError("INVALID_COUNTRY", "Country must be a two-letter ISO code")
	}
	s.DefaultCountry = strings.ToUpper(country)
	s.UpdatedAt = time.Now()
	return nil
}

// SetBaseCurrency sets the store currency
func (s *Store) SetBaseCurrency(currency string) error {
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a three-letter ISO code")
	}
	s.BaseCurrency = strings.ToUpper(currency)
	s.UpdatedAt = time.Now()
	return nil
}

// countryFromLocale extracts the region part of a locale like "de_DE"
func countryFromLocale(locale string) string {
	parts := strings.Split(locale, "_")
	if len(parts) < 2 {
		return "US"
	}
	return strings.ToUpper(parts[len(parts)-1])
}
