package sales

import (
	"github.com/erp/seeder/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceState represents the capture state of an invoice
type InvoiceState string

const (
	InvoiceStateOpen InvoiceState = "open"
	InvoiceStatePaid InvoiceState = "paid"
)

// InvoiceItem is a billed line referencing an order item
type InvoiceItem struct {
	shared.BaseEntity
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderItemID uuid.UUID       `gorm:"type:uuid;not null"`
	SKU         string          `gorm:"type:varchar(64);not null"`
	Qty         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RowTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "sales_invoice_items"
}

// Invoice bills order quantities. The generator always creates full
// invoices covering every uninvoiced line.
type Invoice struct {
	shared.StoreEntity
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	IncrementID    string          `gorm:"type:varchar(32);not null;uniqueIndex"`
	State          InvoiceState    `gorm:"type:varchar(20);not null;default:'open'"`
	Items          []InvoiceItem   `gorm:"foreignKey:InvoiceID"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ShippingAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "sales_invoices"
}

// NewInvoiceForOrder builds a full invoice covering all uninvoiced
// quantities of the order, including the shipping amount on the first
// invoice.
func NewInvoiceForOrder(order *Order, incrementID string) (*Invoice, error) {
	if order == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be nil")
	}
	if !order.CanInvoice() {
		return nil, shared.NewDomainError("INVALID_STATE", "Order has nothing to invoice")
	}
	if incrementID == "" {
		return nil, shared.NewDomainError("INVALID_INCREMENT_ID", "Increment ID cannot be empty")
	}

	inv := &Invoice{
		StoreEntity: shared.NewStoreEntity(order.StoreID),
		OrderID:     order.ID,
		IncrementID: incrementID,
		State:       InvoiceStateOpen,
	}

	subtotal := decimal.Zero
	for _, item := range order.Items {
		remaining := item.QtyOrdered.Sub(item.QtyInvoiced)
		if remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}
		rowTotal := item.Price.Mul(remaining)
		inv.Items = append(inv.Items, InvoiceItem{
			BaseEntity:  shared.NewBaseEntity(),
			InvoiceID:   inv.ID,
			OrderItemID: item.ID,
			SKU:         item.SKU,
			Qty:         remaining,
			Price:       item.Price,
			RowTotal:    rowTotal,
		})
		subtotal = subtotal.Add(rowTotal)
	}

	shipping := decimal.Zero
	if order.TotalInvoiced.IsZero() {
		shipping = order.ShippingAmount
	}

	inv.Subtotal = subtotal
	inv.ShippingAmount = shipping
	inv.GrandTotal = subtotal.Add(shipping)
	return inv, nil
}

// Capture marks the invoice as paid
func (i *Invoice) Capture() error {
	if i.State == InvoiceStatePaid {
		return shared.NewDomainError("INVALID_STATE", "Invoice is already paid")
	}
	i.State = InvoiceStatePaid
	return nil
}
