package seeder

import (
	"time"

	"github.com/erp/seeder/internal/domain/customer"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CustomerValidator checks generated customer data before persistence.
// It returns human-readable error strings instead of raising, so the
// caller can abort with the full list.
type CustomerValidator struct {
	validate *validator.Validate
}

// NewCustomerValidator creates a new CustomerValidator
func NewCustomerValidator() *CustomerValidator {
	return &CustomerValidator{validate: validator.New()}
}

// Validate returns the list of validation errors, empty when valid
func (v *CustomerValidator) Validate(c *customer.Customer) []string {
	var errs []string

	if c.Email == "" {
		errs = append(errs, "Email is required")
	} else if err := v.validate.Var(c.Email, "email"); err != nil {
		errs = append(errs, "Invalid email format")
	}

	if c.FirstName == "" {
		errs = append(errs, "First name is required")
	}
	if c.LastName == "" {
		errs = append(errs, "Last name is required")
	}
	if c.WebsiteID == uuid.Nil {
		errs = append(errs, "Website is required")
	}
	if c.StoreID == uuid.Nil {
		errs = append(errs, "Store is required")
	}

	if c.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", c.DateOfBirth)
		if err != nil || dob.Format("2006-01-02") != c.DateOfBirth {
			errs = append(errs, "Invalid date of birth format. Expected: YYYY-MM-DD")
		} else {
			age := ageInYears(dob, time.Now())
			if age < 18 {
				errs = append(errs, "Customer must be at least 18 years old")
			}
			if age > 120 {
				errs = append(errs, "Invalid date of birth")
			}
		}
	}

	if c.Gender != "" && !c.Gender.IsValid() {
		errs = append(errs, "Invalid gender value")
	}

	return errs
}

// ageInYears computes whole years between birth and now
func ageInYears(birth, now time.Time) int {
	years := now.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
