package sales

import (
	"context"

	"github.com/erp/seeder/internal/domain/sales"
	"go.uber.org/zap"
)

// CreditmemoService will refund invoiced orders. Refund creation is not
// implemented yet; requests are acknowledged and logged so callers can
// already wire the side effect.
//
// TODO: implement refund document creation once the returns flow lands.
type CreditmemoService struct {
	logger *zap.Logger
}

// NewCreditmemoService creates a new CreditmemoService
func NewCreditmemoService(logger *zap.Logger) *CreditmemoService {
	return &CreditmemoService{logger: logger}
}

// CreateForOrder records the refund request without creating a document
func (s *CreditmemoService) CreateForOrder(ctx context.Context, order *sales.Order) error {
	s.logger.Info("credit memo requested, refund documents are not implemented yet",
		zap.String("order_increment_id", order.IncrementID),
		zap.String("order_id", order.ID.String()),
	)
	return nil
}
