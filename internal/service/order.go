package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
)

type OrderService struct {
	Repo *repo.GormRepo
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.Repo.GetOrder(ctx, id)
}

func (s *OrderService) BuyerOrders(ctx context.Context, buyerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListBuyerOrders(ctx, buyerID, limit, offset)
}

func (s *OrderService) SellerOrders(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListSellerOrders(ctx, sellerID, limit, offset)
}

func (s *OrderService) AllOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	return s.Repo.ListAllOrders(ctx, limit, offset)
}

// UpdateStatus lets the owning seller move an order through the fulfilment
// states. The assignment lifecycle owns agent_status; it is not touched
// here.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, sellerID uuid.UUID, status string) (*models.Order, error) {
	parsed, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, status)
	}
	return s.Repo.UpdateOrderStatus(ctx, orderID, sellerID, parsed)
}
