package sales

import (
	"context"

	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
)

// EntityKind identifies a numbered sales document type
type EntityKind string

const (
	EntityKindOrder    EntityKind = "order"
	EntityKindInvoice  EntityKind = "invoice"
	EntityKindShipment EntityKind = "shipment"
)

// SequenceGenerator issues increment IDs for sales documents, unique
// per store and document kind.
type SequenceGenerator interface {
	Next(ctx context.Context, storeID uuid.UUID, kind EntityKind) (string, error)
}

// OrderRepository persists order aggregates including their items
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByIncrementID(ctx context.Context, incrementID string) (*Order, error)
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]*Order, int64, error)
	Save(ctx context.Context, order *Order) error
	Count(ctx context.Context, storeID uuid.UUID) (int64, error)
}

// InvoiceRepository persists invoices
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*Invoice, error)
	Save(ctx context.Context, invoice *Invoice) error
}

// ShipmentRepository persists shipments
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*Shipment, error)
	Save(ctx context.Context, shipment *Shipment) error
}
