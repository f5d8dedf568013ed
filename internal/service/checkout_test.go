package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/transport"
)

func TestPlaceOrderSplitsBySeller(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	sellerA := newProfile(t, r, models.RoleSeller)
	sellerB := newProfile(t, r, models.RoleSeller)

	w320 := newProduct(t, r, sellerA.ID, "W320 kernels", 100)
	w240 := newProduct(t, r, sellerA.ID, "W240 kernels", 50)
	raw := newProduct(t, r, sellerB.ID, "Raw nuts", 50)

	res, err := svc.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items: []transport.CheckoutItem{
			{ProductID: w320.ID, Quantity: 2},
			{ProductID: w240.ID, Quantity: 1},
			{ProductID: raw.ID, Quantity: 1},
		},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)
	require.Len(t, res.Orders, 2)

	bySeller := map[uuid.UUID]models.Order{}
	for _, o := range res.Orders {
		bySeller[o.SellerID] = o
	}

	oa := bySeller[sellerA.ID]
	require.Equal(t, 250.0, oa.TotalAmount)
	require.Len(t, oa.Items, 2)
	require.Equal(t, models.OrderPending, oa.Status)
	require.Equal(t, models.AgentUnassigned, oa.AgentStatus)

	ob := bySeller[sellerB.ID]
	require.Equal(t, 50.0, ob.TotalAmount)
	require.Len(t, ob.Items, 1)

	require.Equal(t, 300.0, res.TotalAmount)
	require.Equal(t, 150.0, res.AdvanceAmount)

	// One advance payment per order at half the order total.
	var payments []models.Payment
	require.NoError(t, r.DB.Find(&payments).Error)
	require.Len(t, payments, 2)
	for _, p := range payments {
		require.Equal(t, models.PaymentPending, p.Status)
		require.Equal(t, "advance_payment", p.PaymentMethod)

		o, err := r.GetOrder(ctx, p.OrderID)
		require.NoError(t, err)
		require.Equal(t, o.TotalAmount/2, p.Amount)
	}
}

func TestPlaceOrderSnapshotsPrices(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := svc.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 3}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	// A later price change must not touch the recorded items.
	require.NoError(t, r.DB.Model(&models.Product{}).Where("id = ?", prod.ID).Update("price", 999).Error)

	order, err := r.GetOrder(ctx, res.Orders[0].ID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, 80.0, order.Items[0].UnitPrice)
	require.Equal(t, 240.0, order.Items[0].TotalPrice)
	require.Equal(t, 240.0, order.TotalAmount)
}

func TestPlaceOrderRequiresShippingAddress(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	_, err := svc.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "   ",
	})
	require.ErrorIs(t, err, ErrValidation)

	// Nothing may be written on a rejected checkout.
	var n int64
	require.NoError(t, r.DB.Model(&models.Order{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestPlaceOrderBillingFallsBackToShipping(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := svc.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)
	require.Equal(t, "12 Harbour Rd", res.Orders[0].BillingAddress)
}

func TestPlaceOrderDropsUnknownProducts(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	res, err := svc.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items: []transport.CheckoutItem{
			{ProductID: prod.ID, Quantity: 1},
			{ProductID: uuid.New(), Quantity: 5},
		},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)
	require.Len(t, res.Orders, 1)
	require.Equal(t, 80.0, res.TotalAmount)
}

func TestPlaceOrderAllUnknownProducts(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)

	_, err := svc.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: uuid.New(), Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPlaceOrderNotifiesSellers(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 80)

	_, err := svc.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	notes, err := r.ListNotifications(ctx, seller.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	require.Equal(t, "order", notes[0].Type)
}

func TestPlaceOrderInvalidQuantity(t *testing.T) {
	r := newTestRepo(t)
	svc := &CheckoutService{Repo: r}

	buyer := newProfile(t, r, models.RoleBuyer)

	_, err := svc.PlaceOrder(context.Background(), buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: uuid.New(), Quantity: -1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.True(t, errors.Is(err, ErrValidation))
}
