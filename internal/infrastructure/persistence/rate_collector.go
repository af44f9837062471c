package persistence

import (
	"context"

	"github.com/erp/seeder/internal/domain/checkout"
	"gorm.io/gorm"
)

// TableRateCollector implements checkout.RateCollector from the
// store_carriers table: every active carrier setting contributes the
// single rate it is configured with.
type TableRateCollector struct {
	db *gorm.DB
}

// NewTableRateCollector creates a new TableRateCollector
func NewTableRateCollector(db *gorm.DB) *TableRateCollector {
	return &TableRateCollector{db: db}
}

var _ checkout.RateCollector = (*TableRateCollector)(nil)

// CollectRates returns the configured rates for the quote's store.
// Virtual quotes need no shipping and collect no rates.
func (c *TableRateCollector) CollectRates(ctx context.Context, quote *checkout.Quote) ([]checkout.ShippingRate, error) {
	if quote.IsVirtual() {
		return nil, nil
	}

	var settings []checkout.CarrierSetting
	if err := c.db.WithContext(ctx).
		Where("store_id = ? AND active = ?", quote.StoreID, true).
		Order("carrier asc").
		Find(&settings).Error; err != nil {
		return nil, err
	}

	rates := make([]checkout.ShippingRate, 0, len(settings))
	for idx := range settings {
		rates = append(rates, settings[idx].Rate())
	}
	return rates, nil
}
