package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashewtrade/marketplace/internal/models"
)

func (r *GormRepo) ListPayments(ctx context.Context, limit, offset int) ([]models.Payment, error) {
	var items []models.Payment
	if err := r.DB.WithContext(ctx).
		Preload("Order").
		Preload("Order.Buyer").
		Preload("Order.Seller").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListSellerPayments(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]models.Payment, error) {
	var items []models.Payment
	if err := r.DB.WithContext(ctx).
		Preload("Order").
		Preload("Order.Buyer").
		Joins("JOIN orders ON orders.id = payments.order_id").
		Where("orders.seller_id = ?", sellerID).
		Order("payments.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdatePaymentStatus moves a payment to next. paid_at is written only on
// the first transition into completed, and that same transition records one
// "sale" ledger row against the buyer.
func (r *GormRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, next models.PaymentStatus, transactionID string) (*models.Payment, error) {
	var out models.Payment
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where("id = ?", id).First(&payment).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		firstCompletion := next == models.PaymentCompleted && payment.PaidAt == nil

		payment.Status = next
		if transactionID != "" {
			payment.TransactionID = transactionID
		}
		if firstCompletion {
			payment.PaidAt = &now
		}
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		if firstCompletion {
			var order models.Order
			if err := tx.Where("id = ?", payment.OrderID).First(&order).Error; err != nil {
				return err
			}
			sale := models.Transaction{
				UserID:          order.BuyerID,
				OrderID:         &order.ID,
				PaymentID:       &payment.ID,
				Amount:          payment.Amount,
				TransactionType: "sale",
				Description:     fmt.Sprintf("payment for order %s", order.OrderNumber),
			}
			if err := tx.Create(&sale).Error; err != nil {
				return err
			}
		}

		out = payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
