package checkout

import (
	"context"

	"github.com/google/uuid"
)

// QuoteRepository persists quote aggregates including their items
type QuoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	Save(ctx context.Context, quote *Quote) error
}
