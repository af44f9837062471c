package checkout

import (
	"context"

	"github.com/shopspring/decimal"
)

// ShippingRate is a single quoted rate from a carrier. Rates are transient:
// they are collected per shipping address and never persisted.
type ShippingRate struct {
	Carrier      string
	CarrierTitle string
	Method       string
	MethodTitle  string
	Price        decimal.Decimal
}

// Code returns the composite method code in carrier_method form
func (r ShippingRate) Code() string {
	return r.Carrier + "_" + r.Method
}

// RateCollector produces the shipping rates available for a quote's
// current shipping address, limited to carriers active for the store.
type RateCollector interface {
	CollectRates(ctx context.Context, quote *Quote) ([]ShippingRate, error)
}
