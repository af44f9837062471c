package customer

import (
	"strings"
	"time"

	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
)

// Gender represents the optional gender attribute of a customer
type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemale       Gender = "female"
	GenderNotSpecified Gender = "not_specified"
)

// IsValid checks if the value is a known gender
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderNotSpecified:
		return true
	}
	return false
}

// Customer represents a registered shop account
// It is the aggregate root for customer-related operations
type Customer struct {
	shared.BaseEntity
	WebsiteID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID    uuid.UUID `gorm:"type:uuid;not null;index"`
	GroupID    *uuid.UUID `gorm:"type:uuid;index"`
	Email      string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_customer_website_email,priority:2"`
	FirstName  string    `gorm:"type:varchar(100);not null"`
	LastName   string    `gorm:"type:varchar(100);not null"`
	MiddleName string    `gorm:"type:varchar(100)"`
	Prefix     string    `gorm:"type:varchar(20)"`
	Suffix     string    `gorm:"type:varchar(20)"`
	DateOfBirth string   `gorm:"type:varchar(10)"` // YYYY-MM-DD
	Gender     Gender    `gorm:"type:varchar(20)"`
	TaxNumber  string    `gorm:"type:varchar(50)"`
	PasswordHash string  `gorm:"type:varchar(200)"`
	Addresses  []Address `gorm:"foreignKey:CustomerID"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with the required identity fields
func NewCustomer(websiteID, storeID uuid.UUID, email, firstName, lastName string) (*Customer, error) {
	if websiteID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WEBSITE", "Website ID cannot be empty")
	}
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if firstName == "" || lastName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "First and last name cannot be empty")
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		WebsiteID:  websiteID,
		StoreID:    storeID,
		Email:      strings.ToLower(email),
		FirstName:  firstName,
		LastName:   lastName,
	}, nil
}

// FullName returns the customer's display name
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

// SetGroup assigns the customer to a group
func (c *Customer) SetGroup(groupID uuid.UUID) {
	c.GroupID = &groupID
	c.UpdatedAt = time.Now()
}

// SetDateOfBirth sets the date of birth, which must be YYYY-MM-DD
func (c *Customer) SetDateOfBirth(dob string) error {
	if _, err := time.Parse("2006-01-02", dob); err != nil {
		return shared.NewDomainError("INVALID_DOB", "Date of birth must be YYYY-MM-DD")
	}
	c.DateOfBirth = dob
	c.UpdatedAt = time.Now()
	return nil
}

// SetGender sets the gender attribute
func (c *Customer) SetGender(gender Gender) error {
	if !gender.IsValid() {
		return shared.NewDomainError("INVALID_GENDER", "Invalid gender value")
	}
	c.Gender = gender
	c.UpdatedAt = time.Now()
	return nil
}

// DefaultBillingAddress returns the address flagged as default billing, if any
func (c *Customer) DefaultBillingAddress() *Address {
	for idx := range c.Addresses {
		if c.Addresses[idx].IsDefaultBilling {
			return &c.Addresses[idx]
		}
	}
	return nil
}

// DefaultShippingAddress returns the address flagged as default shipping, if any
func (c *Customer) DefaultShippingAddress() *Address {
	for idx := range c.Addresses {
		if c.Addresses[idx].IsDefaultShipping {
			return &c.Addresses[idx]
		}
	}
	return nil
}

// Group represents a customer group (pricing/tax segment)
type Group struct {
	shared.BaseEntity
	Code string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (Group) TableName() string {
	return "customer_groups"
}

// NewGroup creates a new customer group
func NewGroup(code, name string) (*Group, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_CODE", "Group code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_GROUP_NAME", "Group name cannot be empty")
	}
	return &Group{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToLower(code),
		Name:       name,
	}, nil
}
