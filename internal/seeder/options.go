package seeder

import (
	"fmt"
	"sort"
	"strings"

	"github.com/erp/seeder/internal/domain/customer"
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerType selects how the order generator resolves a customer
type CustomerType string

const (
	CustomerTypeRandom   CustomerType = "random"
	CustomerTypeExisting CustomerType = "existing"
	CustomerTypeNew      CustomerType = "new"
	CustomerTypeGuest    CustomerType = "guest"
)

// IsValid checks if the value is a known CustomerType
func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeRandom, CustomerTypeExisting, CustomerTypeNew, CustomerTypeGuest:
		return true
	}
	return false
}

// ParseCustomerType parses a CLI/HTTP customer type argument
func ParseCustomerType(value string) (CustomerType, error) {
	t := CustomerType(strings.ToLower(strings.TrimSpace(value)))
	if value == "" {
		return CustomerTypeRandom, nil
	}
	if !t.IsValid() {
		return "", shared.NewDomainError("INVALID_CUSTOMER_TYPE",
			fmt.Sprintf("Unknown customer type %q, expected one of random, existing, new, guest", value))
	}
	return t, nil
}

// CustomerOverrides pins individual customer fields instead of drawing
// them from the faker. Only the fields listed here can be overridden;
// unknown keys are rejected at parse time.
type CustomerOverrides struct {
	Email       *string
	FirstName   *string
	MiddleName  *string
	LastName    *string
	Prefix      *string
	Suffix      *string
	DateOfBirth *string
	Gender      *customer.Gender
	TaxNumber   *string
	GroupCode   *string
	Password    *string
}

// overrideKeys maps wire keys to override setters
var overrideKeys = map[string]func(*CustomerOverrides, string) error{
	"email":       func(o *CustomerOverrides, v string) error { o.Email = &v; return nil },
	"first_name":  func(o *CustomerOverrides, v string) error { o.FirstName = &v; return nil },
	"middle_name": func(o *CustomerOverrides, v string) error { o.MiddleName = &v; return nil },
	"last_name":   func(o *CustomerOverrides, v string) error { o.LastName = &v; return nil },
	"prefix":      func(o *CustomerOverrides, v string) error { o.Prefix = &v; return nil },
	"suffix":      func(o *CustomerOverrides, v string) error { o.Suffix = &v; return nil },
	"date_of_birth": func(o *CustomerOverrides, v string) error {
		o.DateOfBirth = &v
		return nil
	},
	"gender": func(o *CustomerOverrides, v string) error {
		g := customer.Gender(v)
		if !g.IsValid() {
			return shared.NewDomainError("INVALID_GENDER",
				fmt.Sprintf("Unknown gender %q", v))
		}
		o.Gender = &g
		return nil
	},
	"tax_number": func(o *CustomerOverrides, v string) error { o.TaxNumber = &v; return nil },
	"group_code": func(o *CustomerOverrides, v string) error { o.GroupCode = &v; return nil },
	"password":   func(o *CustomerOverrides, v string) error { o.Password = &v; return nil },
}

// ParseCustomerOverrides converts a wire-level attribute map into typed
// overrides, rejecting keys outside the allow-list.
func ParseCustomerOverrides(attributes map[string]string) (*CustomerOverrides, error) {
	overrides := &CustomerOverrides{}
	for key, value := range attributes {
		set, ok := overrideKeys[key]
		if !ok {
			return nil, shared.NewDomainError("UNKNOWN_OVERRIDE",
				fmt.Sprintf("Unknown override key %q, allowed keys: %s", key, strings.Join(OverrideKeys(), ", ")))
		}
		if err := set(overrides, value); err != nil {
			return nil, err
		}
	}
	return overrides, nil
}

// OverrideKeys lists the allowed override keys in stable order
func OverrideKeys() []string {
	keys := make([]string, 0, len(overrideKeys))
	for key := range overrideKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// CustomerRunConfig parameterizes one customer generation call
type CustomerRunConfig struct {
	Count         int
	WebsiteCode   string
	StoreCode     string
	Locale        string
	WithAddresses bool
	AddressCount  int
	Overrides     *CustomerOverrides
}

// Normalize applies defaults to a run config
func (c *CustomerRunConfig) Normalize() {
	if c.Count <= 0 {
		c.Count = 1
	}
	if c.WithAddresses && c.AddressCount <= 0 {
		c.AddressCount = 1
	}
	if c.Overrides == nil {
		c.Overrides = &CustomerOverrides{}
	}
}

// OrderRunConfig parameterizes one order generation call. Flags the
// workflow does not consume yet (discount, tax exemption, partial
// invoicing, multi-address, target status) are accepted and carried so
// callers have a stable surface.
type OrderRunConfig struct {
	Count         int
	StoreCode     string
	Locale        string
	SKUs          []string
	CustomerType  CustomerType
	CustomerID    *uuid.UUID
	CustomerEmail string

	ShippingMethod string
	PaymentMethod  string
	ForceInvoice   bool
	ForceShipment  bool

	Tag            string
	Currency       string
	ProductType    string
	ItemCount      int
	WithDiscount   bool
	TaxExempt      bool
	PartialInvoice bool
	MultiAddress   bool
	TargetStatus   string
}

// Normalize applies defaults to a run config
func (c *OrderRunConfig) Normalize() {
	if c.Count <= 0 {
		c.Count = 10
	}
	if c.CustomerType == "" {
		c.CustomerType = CustomerTypeRandom
	}
	cleaned := make([]string, 0, len(c.SKUs))
	for _, sku := range c.SKUs {
		if trimmed := strings.TrimSpace(sku); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	c.SKUs = cleaned
}
