package customer

import (
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
)

// Address is a saved customer address
type Address struct {
	shared.BaseEntity
	CustomerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName         string    `gorm:"type:varchar(100);not null"`
	LastName          string    `gorm:"type:varchar(100);not null"`
	Company           string    `gorm:"type:varchar(200)"`
	Street            string    `gorm:"type:varchar(500);not null"`
	City              string    `gorm:"type:varchar(100);not null"`
	Region            string    `gorm:"type:varchar(100)"`
	Postcode          string    `gorm:"type:varchar(20);not null"`
	CountryID         string    `gorm:"type:varchar(2);not null"`
	Telephone         string    `gorm:"type:varchar(50);not null"`
	IsDefaultBilling  bool      `gorm:"not null;default:false"`
	IsDefaultShipping bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Address) TableName() string {
	return "customer_addresses"
}

// NewAddress creates a new address owned by a customer
func NewAddress(customerID uuid.UUID, firstName, lastName, street, city, countryID, postcode, telephone string) (*Address, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Address name cannot be empty")
	}
	if street == "" {
		return nil, shared.NewDomainError("INVALID_STREET", "Street cannot be empty")
	}
	if city == "" {
		return nil, shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if len(countryID) != 2 {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Country must be a two-letter ISO code")
	}
	if postcode == "" {
		return nil, shared.NewDomainError("INVALID_POSTCODE", "Postcode cannot be empty")
	}
	if telephone == "" {
		return nil, shared.NewDomainError("INVALID_TELEPHONE", "Telephone cannot be empty")
	}

	return &Address{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		FirstName:  firstName,
		LastName:   lastName,
		Street:     street,
		City:       city,
		CountryID:  countryID,
		Postcode:   postcode,
		Telephone:  telephone,
	}, nil
}

// MarkDefault flags the address as default billing and shipping
func (a *Address) MarkDefault() {
	a.IsDefaultBilling = true
	a.IsDefaultShipping = true
}
