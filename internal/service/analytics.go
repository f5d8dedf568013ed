package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
	"github.com/cashewtrade/marketplace/internal/transport"
)

const (
	revenueMonths  = 12
	topProductsCap = 5
)

type AnalyticsService struct {
	Repo *repo.GormRepo
}

// RevenueReport is the admin-wide view: lifetime totals plus a rolling
// 12-month revenue series and a per-category breakdown.
func (s *AnalyticsService) RevenueReport(ctx context.Context) (*transport.RevenueReport, error) {
	totalRevenue, err := s.Repo.TotalSaleRevenue(ctx)
	if err != nil {
		return nil, err
	}
	totalOrders, err := s.Repo.CountOrders(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.Repo.CountProfiles(ctx)
	if err != nil {
		return nil, err
	}

	since := monthStart(time.Now().UTC()).AddDate(0, -(revenueMonths - 1), 0)
	txns, err := s.Repo.SaleTransactionsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	monthly := bucketByMonth(since, func(add func(t time.Time, amount float64)) {
		for _, txn := range txns {
			add(txn.CreatedAt, txn.Amount)
		}
	})

	byCategory, err := s.Repo.RevenueByCategory(ctx)
	if err != nil {
		return nil, err
	}

	return &transport.RevenueReport{
		TotalRevenue:      models.Round2(totalRevenue),
		TotalOrders:       totalOrders,
		TotalUsers:        totalUsers,
		MonthlyRevenue:    monthly,
		RevenueByCategory: byCategory,
	}, nil
}

func (s *AnalyticsService) SellerSalesReport(ctx context.Context, sellerID uuid.UUID) (*transport.SellerSalesReport, error) {
	totalOrders, byStatus, err := s.Repo.SellerOrderStats(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.Repo.SellerRevenue(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	since := monthStart(time.Now().UTC()).AddDate(0, -(revenueMonths - 1), 0)
	orders, err := s.Repo.SellerOrdersSince(ctx, sellerID, since)
	if err != nil {
		return nil, err
	}
	monthly := bucketByMonth(since, func(add func(t time.Time, amount float64)) {
		for _, o := range orders {
			add(o.CreatedAt, o.TotalAmount)
		}
	})

	top, err := s.Repo.SellerTopProducts(ctx, sellerID, topProductsCap)
	if err != nil {
		return nil, err
	}

	return &transport.SellerSalesReport{
		TotalRevenue:   models.Round2(revenue),
		TotalOrders:    totalOrders,
		OrdersByStatus: byStatus,
		MonthlyRevenue: monthly,
		TopProducts:    top,
	}, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// bucketByMonth materializes every month in the window so the series has
// no gaps, then lets emit feed in the raw (time, amount) pairs.
func bucketByMonth(since time.Time, emit func(add func(t time.Time, amount float64))) []transport.MonthlyRevenue {
	sums := make(map[string]float64, revenueMonths)
	out := make([]transport.MonthlyRevenue, 0, revenueMonths)
	for i := 0; i < revenueMonths; i++ {
		m := since.AddDate(0, i, 0)
		out = append(out, transport.MonthlyRevenue{Month: m.Format("Jan 2006")})
	}
	emit(func(t time.Time, amount float64) {
		sums[t.UTC().Format("Jan 2006")] += amount
	})
	for i := range out {
		out[i].Revenue = models.Round2(sums[out[i].Month])
	}
	return out
}
