package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/transport"
)

func TestRevenueReport(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	payments := &PaymentService{Repo: r}
	svc := &AnalyticsService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 100)

	_, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 2}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	var payment models.Payment
	require.NoError(t, r.DB.First(&payment).Error)
	_, err = payments.UpdateStatus(ctx, payment.ID, "completed", "txn-001")
	require.NoError(t, err)

	report, err := svc.RevenueReport(ctx)
	require.NoError(t, err)

	// Revenue counts completed payments, i.e. the 50% advance.
	require.Equal(t, 100.0, report.TotalRevenue)
	require.EqualValues(t, 1, report.TotalOrders)
	require.EqualValues(t, 2, report.TotalUsers)

	require.Len(t, report.MonthlyRevenue, 12)
	thisMonth := time.Now().UTC().Format("Jan 2006")
	require.Equal(t, thisMonth, report.MonthlyRevenue[11].Month)
	require.Equal(t, 100.0, report.MonthlyRevenue[11].Revenue)

	require.Len(t, report.RevenueByCategory, 1)
	require.Equal(t, "raw cashew", report.RevenueByCategory[0].Category)
	require.Equal(t, 200.0, report.RevenueByCategory[0].Revenue)
}

func TestSellerSalesReport(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	orders := &OrderService{Repo: r}
	svc := &AnalyticsService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	other := newProfile(t, r, models.RoleSeller)
	mine := newProduct(t, r, seller.ID, "W320 kernels", 100)
	theirs := newProduct(t, r, other.ID, "Raw nuts", 40)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items: []transport.CheckoutItem{
			{ProductID: mine.ID, Quantity: 3},
			{ProductID: theirs.ID, Quantity: 1},
		},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	for _, o := range res.Orders {
		if o.SellerID == seller.ID {
			_, err = orders.UpdateStatus(ctx, o.ID, seller.ID, "confirmed")
			require.NoError(t, err)
		}
	}

	report, err := svc.SellerSalesReport(ctx, seller.ID)
	require.NoError(t, err)

	require.Equal(t, 300.0, report.TotalRevenue)
	require.EqualValues(t, 1, report.TotalOrders)
	require.EqualValues(t, 1, report.OrdersByStatus["confirmed"])

	require.Len(t, report.MonthlyRevenue, 12)
	require.Equal(t, 300.0, report.MonthlyRevenue[11].Revenue)

	require.Len(t, report.TopProducts, 1)
	require.Equal(t, mine.ID, report.TopProducts[0].ProductID)
	require.EqualValues(t, 3, report.TopProducts[0].Quantity)
	require.Equal(t, 300.0, report.TopProducts[0].Revenue)
}

func TestSellerRevenueExcludesCancelled(t *testing.T) {
	r := newTestRepo(t)
	checkout := &CheckoutService{Repo: r}
	orders := &OrderService{Repo: r}
	svc := &AnalyticsService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 100)

	res, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	_, err = orders.UpdateStatus(ctx, res.Orders[0].ID, seller.ID, "cancelled")
	require.NoError(t, err)

	report, err := svc.SellerSalesReport(ctx, seller.ID)
	require.NoError(t, err)
	require.Zero(t, report.TotalRevenue)
	require.EqualValues(t, 1, report.OrdersByStatus["cancelled"])
}
