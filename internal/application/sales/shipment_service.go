package sales

import (
	"context"

	"github.com/erp/seeder/internal/domain/sales"
)

// ShipmentService creates shipments for placed orders
type ShipmentService struct {
	orderRepo    sales.OrderRepository
	shipmentRepo sales.ShipmentRepository
	sequence     sales.SequenceGenerator
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(orderRepo sales.OrderRepository, shipmentRepo sales.ShipmentRepository, sequence sales.SequenceGenerator) *ShipmentService {
	return &ShipmentService{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		sequence:     sequence,
	}
}

// CreateForOrder ships all unshipped physical quantities of the order.
// The updated order is saved with the shipment.
func (s *ShipmentService) CreateForOrder(ctx context.Context, order *sales.Order) (*sales.Shipment, error) {
	incrementID, err := s.sequence.Next(ctx, order.StoreID, sales.EntityKindShipment)
	if err != nil {
		return nil, err
	}

	shipment, err := sales.NewShipmentForOrder(order, incrementID)
	if err != nil {
		return nil, err
	}
	if err := order.RegisterShipment(shipment); err != nil {
		return nil, err
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	return shipment, nil
}
