package persistence

import (
	"context"

	"github.com/erp/seeder/internal/domain/checkout"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormMethodRegistry implements checkout.MethodRegistry over the
// store_carriers and store_payment_methods tables.
type GormMethodRegistry struct {
	db *gorm.DB
}

// NewGormMethodRegistry creates a new GormMethodRegistry
func NewGormMethodRegistry(db *gorm.DB) *GormMethodRegistry {
	return &GormMethodRegistry{db: db}
}

var _ checkout.MethodRegistry = (*GormMethodRegistry)(nil)

// ActiveCarriers returns the codes of carriers active for the store
func (r *GormMethodRegistry) ActiveCarriers(ctx context.Context, storeID uuid.UUID) ([]string, error) {
	var carriers []string
	if err := r.db.WithContext(ctx).
		Model(&checkout.CarrierSetting{}).
		Where("store_id = ? AND active = ?", storeID, true).
		Order("carrier asc").
		Pluck("carrier", &carriers).Error; err != nil {
		return nil, err
	}
	return carriers, nil
}

// IsCarrierActive reports whether the carrier is active for the store
func (r *GormMethodRegistry) IsCarrierActive(ctx context.Context, storeID uuid.UUID, carrier string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&checkout.CarrierSetting{}).
		Where("store_id = ? AND carrier = ? AND active = ?", storeID, carrier, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ActivePaymentMethods returns the codes of payment methods active for the store
func (r *GormMethodRegistry) ActivePaymentMethods(ctx context.Context, storeID uuid.UUID) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&checkout.PaymentMethodSetting{}).
		Where("store_id = ? AND active = ?", storeID, true).
		Order("code asc").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// IsPaymentMethodActive reports whether the payment method is active for the store
func (r *GormMethodRegistry) IsPaymentMethodActive(ctx context.Context, storeID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&checkout.PaymentMethodSetting{}).
		Where("store_id = ? AND code = ? AND active = ?", storeID, code, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SaveCarrier creates or updates a carrier setting
func (r *GormMethodRegistry) SaveCarrier(ctx context.Context, setting *checkout.CarrierSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

// SavePaymentMethod creates or updates a payment method setting
func (r *GormMethodRegistry) SavePaymentMethod(ctx context.Context, setting *checkout.PaymentMethodSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}
