package sales

import (
	"context"

	"github.com/erp/seeder/internal/domain/sales"
)

// InvoiceService creates and captures invoices for placed orders
type InvoiceService struct {
	orderRepo   sales.OrderRepository
	invoiceRepo sales.InvoiceRepository
	sequence    sales.SequenceGenerator
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(orderRepo sales.OrderRepository, invoiceRepo sales.InvoiceRepository, sequence sales.SequenceGenerator) *InvoiceService {
	return &InvoiceService{
		orderRepo:   orderRepo,
		invoiceRepo: invoiceRepo,
		sequence:    sequence,
	}
}

// CreateForOrder invoices all uninvoiced quantities of the order and
// immediately captures the result. The updated order is saved with the
// invoice.
func (s *InvoiceService) CreateForOrder(ctx context.Context, order *sales.Order) (*sales.Invoice, error) {
	incrementID, err := s.sequence.Next(ctx, order.StoreID, sales.EntityKindInvoice)
	if err != nil {
		return nil, err
	}

	invoice, err := sales.NewInvoiceForOrder(order, incrementID)
	if err != nil {
		return nil, err
	}
	if err := invoice.Capture(); err != nil {
		return nil, err
	}
	if err := order.RegisterInvoice(invoice); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	return invoice, nil
}
