package checkout

import (
	"context"

	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known shipping method codes in carrier_method form. These are the
// methods probed as a last resort when no explicit method is available.
const (
	ShippingMethodFlatRate     = "flatrate_flatrate"
	ShippingMethodFreeShipping = "freeshipping_freeshipping"
	ShippingMethodTableRate    = "tablerate_bestway"
)

// CommonShippingMethods lists the fallback probe order for shipping methods
var CommonShippingMethods = []string{
	ShippingMethodFlatRate,
	ShippingMethodFreeShipping,
	ShippingMethodTableRate,
}

// Well-known offline payment method codes
const (
	PaymentMethodCheckmo        = "checkmo"
	PaymentMethodCashOnDelivery = "cashondelivery"
	PaymentMethodBankTransfer   = "banktransfer"
	PaymentMethodFree           = "free"
	PaymentMethodPurchaseOrder  = "purchaseorder"
)

// CommonPaymentMethods lists the fallback probe order for payment methods
var CommonPaymentMethods = []string{
	PaymentMethodCheckmo,
	PaymentMethodCashOnDelivery,
	PaymentMethodBankTransfer,
	PaymentMethodFree,
	PaymentMethodPurchaseOrder,
}

// CarrierSetting activates a shipping carrier for a store. The method
// and price describe the single rate the carrier offers; the seeder
// selects among configured rates, it implements no carrier logic.
type CarrierSetting struct {
	shared.StoreEntity
	Carrier     string          `gorm:"type:varchar(50);not null;index"`
	Title       string          `gorm:"type:varchar(100)"`
	Method      string          `gorm:"type:varchar(50);not null"`
	MethodTitle string          `gorm:"type:varchar(100)"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Active      bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (CarrierSetting) TableName() string {
	return "store_carriers"
}

// NewCarrierSetting creates an active carrier setting for a store
func NewCarrierSetting(storeID uuid.UUID, carrier, method, title string, price decimal.Decimal) (*CarrierSetting, error) {
	if carrier == "" {
		return nil, shared.NewDomainError("INVALID_CARRIER", "Carrier code cannot be empty")
	}
	if method == "" {
		return nil, shared.NewDomainError("INVALID_CARRIER", "Carrier method cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Carrier price cannot be negative")
	}
	return &CarrierSetting{
		StoreEntity: shared.NewStoreEntity(storeID),
		Carrier:     carrier,
		Method:      method,
		Title:       title,
		Price:       price,
		Active:      true,
	}, nil
}

// Rate converts the setting into the shipping rate it offers
func (s *CarrierSetting) Rate() ShippingRate {
	return ShippingRate{
		Carrier:      s.Carrier,
		CarrierTitle: s.Title,
		Method:       s.Method,
		MethodTitle:  s.MethodTitle,
		Price:        s.Price,
	}
}

// PaymentMethodSetting activates a payment method for a store
type PaymentMethodSetting struct {
	shared.StoreEntity
	Code   string `gorm:"type:varchar(50);not null;index"`
	Title  string `gorm:"type:varchar(100)"`
	Active bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (PaymentMethodSetting) TableName() string {
	return "store_payment_methods"
}

// NewPaymentMethodSetting creates an active payment method setting for a store
func NewPaymentMethodSetting(storeID uuid.UUID, code, title string) (*PaymentMethodSetting, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method code cannot be empty")
	}
	return &PaymentMethodSetting{
		StoreEntity: shared.NewStoreEntity(storeID),
		Code:        code,
		Title:       title,
		Active:      true,
	}, nil
}

// MethodRegistry exposes which carriers and payment methods are active
// for a given store.
type MethodRegistry interface {
	ActiveCarriers(ctx context.Context, storeID uuid.UUID) ([]string, error)
	IsCarrierActive(ctx context.Context, storeID uuid.UUID, carrier string) (bool, error)
	ActivePaymentMethods(ctx context.Context, storeID uuid.UUID) ([]string, error)
	IsPaymentMethodActive(ctx context.Context, storeID uuid.UUID, code string) (bool, error)
	SaveCarrier(ctx context.Context, setting *CarrierSetting) error
	SavePaymentMethod(ctx context.Context, setting *PaymentMethodSetting) error
}
