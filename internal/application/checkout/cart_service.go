package checkout

import (
	"context"

	"github.com/erp/seeder/internal/domain/checkout"
	"github.com/erp/seeder/internal/domain/sales"
)

// CartService converts placed quotes into sales orders
type CartService struct {
	quoteRepo checkout.QuoteRepository
	orderRepo sales.OrderRepository
	sequence  sales.SequenceGenerator
}

// NewCartService creates a new CartService
func NewCartService(quoteRepo checkout.QuoteRepository, orderRepo sales.OrderRepository, sequence sales.SequenceGenerator) *CartService {
	return &CartService{
		quoteRepo: quoteRepo,
		orderRepo: orderRepo,
		sequence:  sequence,
	}
}

// PlaceOrder finalizes the quote and creates the corresponding order.
// Totals are collected, the quote is persisted, marked placed and
// persisted again so the stored quote always reflects the final state.
func (s *CartService) PlaceOrder(ctx context.Context, quote *checkout.Quote) (*sales.Order, error) {
	quote.CollectTotals()
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	if err := quote.MarkPlaced(); err != nil {
		return nil, err
	}

	incrementID, err := s.sequence.Next(ctx, quote.StoreID, sales.EntityKindOrder)
	if err != nil {
		return nil, err
	}

	order, err := sales.NewOrderFromQuote(quote, incrementID)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	if err := s.quoteRepo.Save(ctx, quote); err != nil {
		return nil, err
	}

	return order, nil
}
