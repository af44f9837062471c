package sales

import (
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentItem is a fulfilled line referencing an order item
type ShipmentItem struct {
	shared.BaseEntity
	ShipmentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null"`
	SKU         string          `gorm:"type:varchar(64);not null"`
	Qty         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (ShipmentItem) TableName() string {
	return "sales_shipment_items"
}

// Shipment fulfills the physical lines of an order. Virtual lines are
// never included.
type Shipment struct {
	shared.StoreEntity
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	IncrementID string         `gorm:"type:varchar(32);not null;uniqueIndex"`
	Items       []ShipmentItem `gorm:"foreignKey:ShipmentID"`
	Carrier     string         `gorm:"type:varchar(50)"`
	TrackingNo  string         `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "sales_shipments"
}

// NewShipmentForOrder builds a full shipment covering all unshipped
// physical quantities of the order.
func NewShipmentForOrder(order *Order, incrementID string) (*Shipment, error) {
	if order == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be nil")
	}
	if !order.CanShip() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order has nothing to ship")
	}
	if incrementID == "" {
		return nil, shared.NewDomainError("INVALID_INCREMENT_ID", "Increment ID cannot be empty")
	}

	shp := &Shipment{
		StoreEntity: shared.NewStoreEntity(order.StoreID),
		OrderID:     order.ID,
		IncrementID: incrementID,
	}
	if idx := carrierFromMethodCode(order.ShippingMethod); idx != "" {
		shp.Carrier = idx
	}

	for _, item := range order.Items {
		if !item.IsShippable() {
			continue
		}
		remaining := item.QtyOrdered.Sub(item.QtyShipped)
		if remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}
		shp.Items = append(shp.Items, ShipmentItem{
			BaseEntity:  shared.NewBaseEntity(),
			ShipmentID:  shp.ID,
			OrderItemID: item.ID,
			SKU:         item.SKU,
			Qty:         remaining,
		})
	}

	return shp, nil
}

// SetTracking attaches a tracking number to the shipment
func (s *Shipment) SetTracking(trackingNo string) {
	s.TrackingNo = trackingNo
}

// carrierFromMethodCode extracts the carrier part of a carrier_method code
func carrierFromMethodCode(code string) string {
	for i := 0; i < len(code); i++ {
		if code[i] == '_' {
			return code[:i]
		}
	}
	return code
}
