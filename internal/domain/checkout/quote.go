package checkout

import (
	"fmt"
	"time"

	"github.com/erp/seeder/internal/domain/catalog"
	"github.com/erp/seeder/internal/domain/customer"
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/erp/seeder/internal/domain/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle stage of a quote
type QuoteStatus string

const (
	QuoteStatusOpen   QuoteStatus = "open"
	QuoteStatusPlaced QuoteStatus = "placed"
)

// CheckoutMethod identifies how the quote is being checked out
type CheckoutMethod string

const (
	CheckoutMethodCustomer CheckoutMethod = "customer"
	CheckoutMethodGuest    CheckoutMethod = "guest"
)

// QuoteItem represents a cart line item
type QuoteItem struct {
	shared.BaseEntity
	QuoteID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID           `gorm:"type:uuid;not null"`
	SKU         string              `gorm:"type:varchar(64);not null"`
	Name        string              `gorm:"type:varchar(200);not null"`
	ProductType catalog.ProductType `gorm:"type:varchar(20);not null"`
	Qty         decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	Price       decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	RowTotal    decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (QuoteItem) TableName() string {
	return "quote_items"
}

// Address is a billing or shipping address attached to a quote.
// Unlike customer addresses it has no identity of its own.
type Address struct {
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Company   string `gorm:"type:varchar(200)"`
	Street    string `gorm:"type:varchar(500)"`
	City      string `gorm:"type:varchar(100)"`
	Region    string `gorm:"type:varchar(100)"`
	Postcode  string `gorm:"type:varchar(20)"`
	CountryID string `gorm:"type:varchar(2)"`
	Telephone string `gorm:"type:varchar(50)"`
}

// IsEmpty reports whether the address carries no data
func (a Address) IsEmpty() bool {
	return a.Street == "" && a.City == "" && a.CountryID == ""
}

// AddressFromCustomer converts a saved customer address to a quote address
func AddressFromCustomer(src customer.Address) Address {
	return Address{
		FirstName: src.FirstName,
		LastName:  src.LastName,
		Company:   src.Company,
		Street:    src.Street,
		City:      src.City,
		Region:    src.Region,
		Postcode:  src.Postcode,
		CountryID: src.CountryID,
		Telephone: src.Telephone,
	}
}

// Quote is the mutable pre-order cart aggregate. Once placed it becomes
// read-only; the resulting order is a separate entity.
type Quote struct {
	shared.StoreEntity
	CustomerID        *uuid.UUID     `gorm:"type:uuid;index"`
	CustomerEmail     string         `gorm:"type:varchar(200)"`
	CustomerFirstName string         `gorm:"type:varchar(100)"`
	CustomerLastName  string         `gorm:"type:varchar(100)"`
	CheckoutMethod    CheckoutMethod `gorm:"type:varchar(20);not null;default:'customer'"`
	CurrencyCode      string         `gorm:"type:varchar(3);not null"`
	Status            QuoteStatus    `gorm:"type:varchar(20);not null;default:'open'"`
	Items             []QuoteItem    `gorm:"foreignKey:QuoteID"`
	BillingAddress    Address        `gorm:"embedded;embeddedPrefix:billing_"`
	ShippingAddress   Address        `gorm:"embedded;embeddedPrefix:shipping_"`
	ShippingMethod    string         `gorm:"type:varchar(100)"`
	PaymentMethod     string         `gorm:"type:varchar(50)"`
	Subtotal          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	// rates collected for the current shipping address, not persisted
	shippingRates []ShippingRate `gorm:"-"`
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// NewCustomerQuote creates a quote bound to a store and a known customer
func NewCustomerQuote(st *store.Store, c *customer.Customer) (*Quote, error) {
	if st == nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store cannot be nil")
	}
	if c == nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer cannot be nil")
	}

	customerID := c.ID
	return &Quote{
		StoreEntity:       shared.NewStoreEntity(st.ID),
		CustomerID:        &customerID,
		CustomerEmail:     c.Email,
		CustomerFirstName: c.FirstName,
		CustomerLastName:  c.LastName,
		CheckoutMethod:    CheckoutMethodCustomer,
		CurrencyCode:      st.BaseCurrency,
		Status:            QuoteStatusOpen,
		Subtotal:          decimal.Zero,
		ShippingAmount:    decimal.Zero,
		GrandTotal:        decimal.Zero,
	}, nil
}

// NewGuestQuote creates a quote for an anonymous checkout
func NewGuestQuote(st *store.Store, email string) (*Quote, error) {
	if st == nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store cannot be nil")
	}
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Guest quote requires an email")
	}

	return &Quote{
		StoreEntity:    shared.NewStoreEntity(st.ID),
		CustomerEmail:  email,
		CheckoutMethod: CheckoutMethodGuest,
		CurrencyCode:   st.BaseCurrency,
		Status:         QuoteStatusOpen,
		Subtotal:       decimal.Zero,
		ShippingAmount: decimal.Zero,
		GrandTotal:     decimal.Zero,
	}, nil
}

// IsGuest reports whether the quote belongs to an anonymous checkout
func (q *Quote) IsGuest() bool {
	return q.CheckoutMethod == CheckoutMethodGuest
}

// IsPlaced reports whether the quote was already converted to an order
func (q *Quote) IsPlaced() bool {
	return q.Status == QuoteStatusPlaced
}

// IsVirtual reports whether no item in the quote requires shipping
func (q *Quote) IsVirtual() bool {
	if len(q.Items) == 0 {
		return false
	}
	for _, item := range q.Items {
		if item.ProductType.IsShippable() {
			return false
		}
	}
	return true
}

// AddProduct adds a product to the quote with the given quantity.
// Products that are not saleable are rejected.
func (q *Quote) AddProduct(p *catalog.Product, qty int) (*QuoteItem, error) {
	if q.IsPlaced() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a placed quote")
	}
	if p == nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product cannot be nil")
	}
	if qty <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if !p.IsSaleable() {
		return nil, shared.ErrOutOfStock
	}

	for idx := range q.Items {
		if q.Items[idx].ProductID == p.ID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in quote")
		}
	}

	quantity := decimal.NewFromInt(int64(qty))
	item := QuoteItem{
		BaseEntity:  shared.NewBaseEntity(),
		QuoteID:     q.ID,
		ProductID:   p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		ProductType: p.Type,
		Qty:         quantity,
		Price:       p.Price,
		RowTotal:    p.Price.Mul(quantity),
	}
	q.Items = append(q.Items, item)
	q.UpdatedAt = time.Now()

	return &q.Items[len(q.Items)-1], nil
}

// SetAddresses sets the billing and shipping addresses
func (q *Quote) SetAddresses(billing, shipping Address) error {
	if q.IsPlaced() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change addresses on a placed quote")
	}
	q.BillingAddress = billing
	q.ShippingAddress = shipping
	// a new shipping address invalidates previously collected rates
	q.shippingRates = nil
	q.UpdatedAt = time.Now()
	return nil
}

// SetCustomerName records the checkout contact name (used for guest quotes)
func (q *Quote) SetCustomerName(firstName, lastName string) {
	q.CustomerFirstName = firstName
	q.CustomerLastName = lastName
	q.UpdatedAt = time.Now()
}

// SetShippingRates stores rates collected for the current shipping address
func (q *Quote) SetShippingRates(rates []ShippingRate) {
	q.shippingRates = rates
}

// ShippingRates returns the rates collected for the current shipping address
func (q *Quote) ShippingRates() []ShippingRate {
	return q.shippingRates
}

// HasRate reports whether a collected rate matches the given method code
func (q *Quote) HasRate(code string) bool {
	for _, rate := range q.shippingRates {
		if rate.Code() == code {
			return true
		}
	}
	return false
}

// SetShippingMethod records the chosen shipping method code.
// Availability against collected rates is the caller's concern; the final
// placement guard may force a method with no matching rate.
func (q *Quote) SetShippingMethod(code string) error {
	if q.IsPlaced() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change shipping on a placed quote")
	}
	if code == "" {
		return shared.NewDomainError("INVALID_SHIPPING_METHOD", "Shipping method cannot be empty")
	}
	q.ShippingMethod = code
	q.UpdatedAt = time.Now()
	return nil
}

// SetPaymentMethod records the chosen payment method code
func (q *Quote) SetPaymentMethod(code string) error {
	if q.IsPlaced() {
		return shared.NewDomainError("INVALID_STATE", "Cannot change payment on a placed quote")
	}
	if code == "" {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method cannot be empty")
	}
	q.PaymentMethod = code
	q.UpdatedAt = time.Now()
	return nil
}

// CollectTotals recomputes subtotal, shipping amount and grand total
func (q *Quote) CollectTotals() {
	subtotal := decimal.Zero
	for _, item := range q.Items {
		subtotal = subtotal.Add(item.RowTotal)
	}
	q.Subtotal = subtotal

	shipping := decimal.Zero
	if !q.IsVirtual() && q.ShippingMethod != "" {
		for _, rate := range q.shippingRates {
			if rate.Code() == q.ShippingMethod {
				shipping = rate.Price
				break
			}
		}
	}
	q.ShippingAmount = shipping
	q.GrandTotal = subtotal.Add(shipping)
	q.UpdatedAt = time.Now()
}

// MarkPlaced transitions the quote to its terminal placed state
func (q *Quote) MarkPlaced() error {
	if q.IsPlaced() {
		return shared.NewDomainError("INVALID_STATE", "Quote is already placed")
	}
	if len(q.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot place a quote without items")
	}
	if !q.IsVirtual() && q.ShippingMethod == "" {
		return shared.NewDomainError("NO_SHIPPING_METHOD", "Cannot place a physical quote without a shipping method")
	}
	if q.PaymentMethod == "" {
		return shared.NewDomainError("NO_PAYMENT_METHOD", "Cannot place a quote without a payment method")
	}

	q.Status = QuoteStatusPlaced
	q.UpdatedAt = time.Now()
	return nil
}

// ItemCount returns the number of line items
func (q *Quote) ItemCount() int {
	return len(q.Items)
}

// ItemSKUs returns the SKUs of all line items
func (q *Quote) ItemSKUs() []string {
	skus := make([]string, 0, len(q.Items))
	for _, item := range q.Items {
		skus = append(skus, item.SKU)
	}
	return skus
}

// String implements fmt.Stringer for log output
func (q *Quote) String() string {
	return fmt.Sprintf("quote %s (%d items, %s %s)", q.ID, len(q.Items), q.GrandTotal, q.CurrencyCode)
}
