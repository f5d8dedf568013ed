package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return &repo.GormRepo{DB: db}
}

func newProfile(t *testing.T, r *repo.GormRepo, role models.Role) *models.Profile {
	t.Helper()

	p := &models.Profile{
		Email:        fmt.Sprintf("%s-%s@example.com", role, uuid.NewString()[:8]),
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
		FullName:     "Test " + string(role),
	}
	require.NoError(t, r.CreateProfile(context.Background(), p))
	return p
}

func newProduct(t *testing.T, r *repo.GormRepo, sellerID uuid.UUID, name string, price float64) *models.Product {
	t.Helper()

	p, err := r.CreateProduct(context.Background(), &models.Product{
		SellerID:      sellerID,
		Name:          name,
		Category:      "raw cashew",
		Price:         price,
		Unit:          "kg",
		StockQuantity: 100,
		IsActive:      true,
	})
	require.NoError(t, err)
	return p
}
