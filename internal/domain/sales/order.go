package sales

import (
	"fmt"
	"time"

	"github.com/erp/seeder/internal/domain/catalog"
	"github.com/erp/seeder/internal/domain/checkout"
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderState represents the state of a sales order
type OrderState string

const (
	OrderStatePending    OrderState = "pending"
	OrderStateProcessing OrderState = "processing"
	OrderStateComplete   OrderState = "complete"
	OrderStateCanceled   OrderState = "canceled"
)

// IsValid checks if the state is a valid OrderState
func (s OrderState) IsValid() bool {
	switch s {
	case OrderStatePending, OrderStateProcessing, OrderStateComplete, OrderStateCanceled:
		return true
	}
	return false
}

// String returns the string representation of OrderState
func (s OrderState) String() string {
	return string(s)
}

// CanTransitionTo checks if the state can transition to the target state
func (s OrderState) CanTransitionTo(target OrderState) bool {
	switch s {
	case OrderStatePending:
		return target == OrderStateProcessing || target == OrderStateComplete || target == OrderStateCanceled
	case OrderStateProcessing:
		return target == OrderStateComplete || target == OrderStateCanceled
	case OrderStateComplete, OrderStateCanceled:
		return false // Terminal states
	}
	return false
}

// OrderItem represents a line item in a sales order
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID           `gorm:"type:uuid;not null"`
	SKU         string              `gorm:"type:varchar(64);not null"`
	Name        string              `gorm:"type:varchar(200);not null"`
	ProductType catalog.ProductType `gorm:"type:varchar(20);not null"`
	QtyOrdered  decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	QtyInvoiced decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	QtyShipped  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Price       decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	RowTotal    decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "sales_order_items"
}

// IsShippable reports whether the line requires physical fulfillment
func (i *OrderItem) IsShippable() bool {
	return i.ProductType.IsShippable()
}

// Order represents a placed sales order aggregate root.
// It is created from a placed quote and drives invoicing and shipment.
type Order struct {
	shared.StoreEntity
	IncrementID     string           `gorm:"type:varchar(32);not null;uniqueIndex"`
	QuoteID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerID      *uuid.UUID       `gorm:"type:uuid;index"`
	CustomerEmail   string           `gorm:"type:varchar(200);not null"`
	CustomerName    string           `gorm:"type:varchar(200)"`
	IsGuest         bool             `gorm:"not null;default:false"`
	State           OrderState       `gorm:"type:varchar(20);not null;default:'pending'"`
	CurrencyCode    string           `gorm:"type:varchar(3);not null"`
	Items           []OrderItem      `gorm:"foreignKey:OrderID"`
	BillingAddress  checkout.Address `gorm:"embedded;embeddedPrefix:billing_"`
	ShippingAddress checkout.Address `gorm:"embedded;embeddedPrefix:shipping_"`
	ShippingMethod  string           `gorm:"type:varchar(100)"`
	PaymentMethod   string           `gorm:"type:varchar(50);not null"`
	Subtotal        decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	ShippingAmount  decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	GrandTotal      decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	TotalInvoiced   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CompletedAt     *time.Time
	CanceledAt      *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "sales_orders"
}

// NewOrderFromQuote creates an order from a placed quote
func NewOrderFromQuote(quote *checkout.Quote, incrementID string) (*Order, error) {
	if quote == nil {
		return nil, shared.NewDomainError("INVALID_QUOTE", "Quote cannot be nil")
	}
	if !quote.IsPlaced() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order requires a placed quote")
	}
	if incrementID == "" {
		return nil, shared.NewDomainError("INVALID_INCREMENT_ID", "Increment ID cannot be empty")
	}

	order := &Order{
		StoreEntity:     shared.NewStoreEntity(quote.StoreID),
		IncrementID:     incrementID,
		QuoteID:         quote.ID,
		CustomerID:      quote.CustomerID,
		CustomerEmail:   quote.CustomerEmail,
		CustomerName:    quote.CustomerFirstName + " " + quote.CustomerLastName,
		IsGuest:         quote.IsGuest(),
		State:           OrderStatePending,
		CurrencyCode:    quote.CurrencyCode,
		BillingAddress:  quote.BillingAddress,
		ShippingAddress: quote.ShippingAddress,
		ShippingMethod:  quote.ShippingMethod,
		PaymentMethod:   quote.PaymentMethod,
		Subtotal:        quote.Subtotal,
		ShippingAmount:  quote.ShippingAmount,
		GrandTotal:      quote.GrandTotal,
		TotalInvoiced:   decimal.Zero,
	}

	for _, qi := range quote.Items {
		order.Items = append(order.Items, OrderItem{
			BaseEntity:  shared.NewBaseEntity(),
			OrderID:     order.ID,
			ProductID:   qi.ProductID,
			SKU:         qi.SKU,
			Name:        qi.Name,
			ProductType: qi.ProductType,
			QtyOrdered:  qi.Qty,
			QtyInvoiced: decimal.Zero,
			QtyShipped:  decimal.Zero,
			Price:       qi.Price,
			RowTotal:    qi.RowTotal,
		})
	}

	return order, nil
}

// IsVirtual reports whether no item requires shipping
func (o *Order) IsVirtual() bool {
	for _, item := range o.Items {
		if item.IsShippable() {
			return false
		}
	}
	return len(o.Items) > 0
}

// CanInvoice reports whether the order still has uninvoiced quantity
func (o *Order) CanInvoice() bool {
	if o.State == OrderStateCanceled || o.State == OrderStateComplete {
		return false
	}
	for _, item := range o.Items {
		if item.QtyInvoiced.LessThan(item.QtyOrdered) {
			return true
		}
	}
	return false
}

// CanShip reports whether the order still has unshipped physical quantity
func (o *Order) CanShip() bool {
	if o.State == OrderStateCanceled || o.State == OrderStateComplete {
		return false
	}
	for _, item := range o.Items {
		if item.IsShippable() && item.QtyShipped.LessThan(item.QtyOrdered) {
			return true
		}
	}
	return false
}

// RegisterInvoice records invoiced quantities from a captured invoice
func (o *Order) RegisterInvoice(inv *Invoice) error {
	if inv == nil {
		return shared.NewDomainError("INVALID_INVOICE", "Invoice cannot be nil")
	}
	if !o.CanInvoice() {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be invoiced")
	}

	for _, line := range inv.Items {
		for idx := range o.Items {
			if o.Items[idx].ID == line.OrderItemID {
				o.Items[idx].QtyInvoiced = o.Items[idx].QtyInvoiced.Add(line.Qty)
				o.Items[idx].UpdatedAt = time.Now()
			}
		}
	}
	o.TotalInvoiced = o.TotalInvoiced.Add(inv.GrandTotal)
	o.advanceState()
	return nil
}

// RegisterShipment records shipped quantities from a shipment
func (o *Order) RegisterShipment(shp *Shipment) error {
	if shp == nil {
		return shared.NewDomainError("INVALID_SHIPMENT", "Shipment cannot be nil")
	}
	if !o.CanShip() {
		return shared.NewDomainError("INVALID_STATE", "Order cannot be shipped")
	}

	for _, line := range shp.Items {
		for idx := range o.Items {
			if o.Items[idx].ID == line.OrderItemID {
				o.Items[idx].QtyShipped = o.Items[idx].QtyShipped.Add(line.Qty)
				o.Items[idx].UpdatedAt = time.Now()
			}
		}
	}
	o.advanceState()
	return nil
}

// Cancel cancels the order with a reason
func (o *Order) Cancel(reason string) error {
	if !o.State.CanTransitionTo(OrderStateCanceled) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel order in %s state", o.State))
	}
	now := time.Now()
	o.State = OrderStateCanceled
	o.CanceledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	return nil
}

// advanceState moves the order forward based on fulfillment progress
func (o *Order) advanceState() {
	now := time.Now()
	if o.isFullyInvoiced() && (o.IsVirtual() || o.isFullyShipped()) {
		if o.State.CanTransitionTo(OrderStateComplete) {
			o.State = OrderStateComplete
			o.CompletedAt = &now
		}
	} else if o.State == OrderStatePending {
		o.State = OrderStateProcessing
	}
	o.UpdatedAt = now
}

func (o *Order) isFullyInvoiced() bool {
	for _, item := range o.Items {
		if item.QtyInvoiced.LessThan(item.QtyOrdered) {
			return false
		}
	}
	return true
}

func (o *Order) isFullyShipped() bool {
	for _, item := range o.Items {
		if item.IsShippable() && item.QtyShipped.LessThan(item.QtyOrdered) {
			return false
		}
	}
	return true
}
