package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/transport"
)

func (r *GormRepo) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).Preload("Seller").Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductsByIDs loads the catalog snapshot a cart is resolved against.
// Inactive products are excluded so deactivated listings silently drop out
// of carts instead of failing checkout.
func (r *GormRepo) GetProductsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	var items []models.Product
	if len(ids) == 0 {
		return items, nil
	}
	if err := r.DB.WithContext(ctx).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListActiveProducts is the buyer storefront query: active, in stock, with
// the seller identity joined in.
func (r *GormRepo) ListActiveProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Preload("Seller").
		Where("is_active = ? AND stock_quantity > 0", true).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ListSellerProducts(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) (*models.Product, error) {
	if err := r.DB.WithContext(ctx).Create(prod).Error; err != nil {
		return nil, err
	}
	return prod, nil
}

func (r *GormRepo) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id, sellerID uuid.UUID) (*models.Product, error) {
	var prod models.Product
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&prod).Error; err != nil {
		return nil, err
	}

	if req.Name != nil {
		prod.Name = *req.Name
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}
	if req.Category != nil {
		prod.Category = *req.Category
	}
	if req.Price != nil {
		prod.Price = *req.Price
	}
	if req.Unit != nil {
		prod.Unit = *req.Unit
	}
	if req.QualityGrade != nil {
		prod.QualityGrade = *req.QualityGrade
	}
	if req.Origin != nil {
		prod.Origin = *req.Origin
	}
	if req.StockQuantity != nil {
		prod.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		prod.IsActive = *req.IsActive
	}
	if req.Images != nil {
		prod.Images = models.StringList(req.Images)
	}

	if err := r.DB.WithContext(ctx).Save(&prod).Error; err != nil {
		return nil, err
	}
	return &prod, nil
}

// DeleteProduct hard-deletes only while no order item references the
// product; afterwards it deactivates instead, keeping order history intact.
func (r *GormRepo) DeleteProduct(ctx context.Context, id, sellerID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prod models.Product
		if err := tx.Where("id = ? AND seller_id = ?", id, sellerID).First(&prod).Error; err != nil {
			return err
		}

		var referenced int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&referenced).Error; err != nil {
			return err
		}
		if referenced > 0 {
			return tx.Model(&prod).Update("is_active", false).Error
		}
		return tx.Delete(&prod).Error
	})
}
