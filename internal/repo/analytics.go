package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/transport"
)

func (r *GormRepo) TotalSaleRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("transaction_type = ?", "sale").
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *GormRepo) CountOrders(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountProfiles(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Profile{}).Count(&n).Error
	return n, err
}

// SaleTransactionsSince returns (amount, created_at) pairs; callers bucket
// them by month themselves, which keeps the query portable.
func (r *GormRepo) SaleTransactionsSince(ctx context.Context, since time.Time) ([]models.Transaction, error) {
	var txns []models.Transaction
	if err := r.DB.WithContext(ctx).
		Where("transaction_type = ? AND created_at >= ?", "sale", since).
		Order("created_at ASC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

func (r *GormRepo) RevenueByCategory(ctx context.Context) ([]transport.CategoryRevenue, error) {
	var rows []transport.CategoryRevenue
	if err := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("products.category AS category, COALESCE(SUM(order_items.total_price), 0) AS revenue").
		Joins("JOIN products ON products.id = order_items.product_id").
		Group("products.category").
		Order("revenue DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *GormRepo) SellerOrderStats(ctx context.Context, sellerID uuid.UUID) (int64, map[string]int64, error) {
	type statusCount struct {
		Status string
		N      int64
	}
	var rows []statusCount
	if err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS n").
		Where("seller_id = ?", sellerID).
		Group("status").
		Scan(&rows).Error; err != nil {
		return 0, nil, err
	}

	var total int64
	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.N
		total += row.N
	}
	return total, byStatus, nil
}

func (r *GormRepo) SellerRevenue(ctx context.Context, sellerID uuid.UUID) (float64, error) {
	var total float64
	err := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("seller_id = ? AND status <> ?", sellerID, models.OrderCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

func (r *GormRepo) SellerOrdersSince(ctx context.Context, sellerID uuid.UUID, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("seller_id = ? AND status <> ? AND created_at >= ?", sellerID, models.OrderCancelled, since).
		Order("created_at ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) SellerTopProducts(ctx context.Context, sellerID uuid.UUID, limit int) ([]transport.ProductSales, error) {
	var rows []transport.ProductSales
	if err := r.DB.WithContext(ctx).
		Model(&models.OrderItem{}).
		Select("order_items.product_id AS product_id, products.name AS name, SUM(order_items.quantity) AS quantity, SUM(order_items.total_price) AS revenue").
		Joins("JOIN products ON products.id = order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.seller_id = ? AND orders.status <> ?", sellerID, models.OrderCancelled).
		Group("order_items.product_id, products.name").
		Order("revenue DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
