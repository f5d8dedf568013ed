package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/cashewtrade/marketplace/internal/cache"
	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/transport"
)

func newTestCache(t *testing.T) *cache.CatalogCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewCatalogCache(client, time.Minute)
}

func TestCreateProductDefaults(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	seller := newProfile(t, r, models.RoleSeller)

	prod, err := svc.CreateProduct(ctx, seller.ID, transport.CreateProductRequest{
		Name:          "W320 kernels",
		Category:      "kernels",
		Price:         720,
		StockQuantity: 40,
	})
	require.NoError(t, err)
	require.Equal(t, "kg", prod.Unit)
	require.True(t, prod.IsActive)
	require.Equal(t, seller.ID, prod.SellerID)
}

func TestCreateProductValidation(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	seller := newProfile(t, r, models.RoleSeller)

	_, err := svc.CreateProduct(ctx, seller.ID, transport.CreateProductRequest{Name: " ", Category: "kernels", Price: 10})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, seller.ID, transport.CreateProductRequest{Name: "x", Category: "kernels", Price: 0})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateProduct(ctx, seller.ID, transport.CreateProductRequest{Name: "x", Category: "kernels", Price: 10, StockQuantity: -1})
	require.ErrorIs(t, err, ErrValidation)
}

func TestPatchProductScopedToOwner(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	seller := newProfile(t, r, models.RoleSeller)
	other := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 100)

	price := 120.0
	updated, err := svc.PatchProduct(ctx, transport.PatchProductRequest{Price: &price}, prod.ID, seller.ID)
	require.NoError(t, err)
	require.Equal(t, 120.0, updated.Price)

	_, err = svc.PatchProduct(ctx, transport.PatchProductRequest{Price: &price}, prod.ID, other.ID)
	require.Error(t, err)
}

func TestStorefrontUsesCache(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r, Cache: newTestCache(t)}
	ctx := context.Background()

	seller := newProfile(t, r, models.RoleSeller)
	newProduct(t, r, seller.ID, "W320 kernels", 100)

	first, err := svc.Storefront(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Bypass the service so the cache and the table diverge; the warm cache
	// must answer until something invalidates it.
	require.NoError(t, r.DB.Model(&models.Product{}).Where("1=1").Update("is_active", false).Error)

	second, err := svc.Storefront(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
}

func TestProductWriteInvalidatesCache(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r, Cache: newTestCache(t)}
	ctx := context.Background()

	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 100)

	first, err := svc.Storefront(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	inactive := false
	_, err = svc.PatchProduct(ctx, transport.PatchProductRequest{IsActive: &inactive}, prod.ID, seller.ID)
	require.NoError(t, err)

	second, err := svc.Storefront(ctx)
	require.NoError(t, err)
	require.Empty(t, second)
}

func TestStorefrontWithoutCache(t *testing.T) {
	r := newTestRepo(t)
	svc := &CatalogService{Repo: r}
	ctx := context.Background()

	seller := newProfile(t, r, models.RoleSeller)
	newProduct(t, r, seller.ID, "W320 kernels", 100)

	items, err := svc.Storefront(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestDeleteProductReferencedByOrderDeactivates(t *testing.T) {
	r := newTestRepo(t)
	catalog := &CatalogService{Repo: r}
	checkout := &CheckoutService{Repo: r}
	ctx := context.Background()

	buyer := newProfile(t, r, models.RoleBuyer)
	seller := newProfile(t, r, models.RoleSeller)
	prod := newProduct(t, r, seller.ID, "W320 kernels", 100)

	_, err := checkout.PlaceOrder(ctx, buyer.ID, transport.CheckoutRequest{
		Items:           []transport.CheckoutItem{{ProductID: prod.ID, Quantity: 1}},
		ShippingAddress: "12 Harbour Rd",
	})
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteProduct(ctx, prod.ID, seller.ID))

	// The row survives for order history but disappears from the storefront.
	var kept models.Product
	require.NoError(t, r.DB.Where("id = ?", prod.ID).First(&kept).Error)
	require.False(t, kept.IsActive)
}
