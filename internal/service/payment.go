package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
)

type PaymentService struct {
	Repo *repo.GormRepo
}

func (s *PaymentService) AllPayments(ctx context.Context, limit, offset int) ([]models.Payment, error) {
	return s.Repo.ListPayments(ctx, limit, offset)
}

func (s *PaymentService) SellerPayments(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	return s.Repo.ListSellerPayments(ctx, sellerID, limit, offset)
}

// UpdateStatus moves a payment through its lifecycle. paid_at is stamped
// exactly once, on the first transition into completed; that transition also
// writes the sale ledger row used by revenue analytics.
func (s *PaymentService) UpdateStatus(ctx context.Context, id uuid.UUID, status, transactionID string) (*models.Payment, error) {
	parsed, ok := models.ParsePaymentStatus(status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, status)
	}
	return s.Repo.UpdatePaymentStatus(ctx, id, parsed, transactionID)
}
