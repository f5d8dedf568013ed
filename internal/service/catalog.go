package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cashewtrade/marketplace/internal/cache"
	"github.com/cashewtrade/marketplace/internal/es"
	"github.com/cashewtrade/marketplace/internal/events"
	"github.com/cashewtrade/marketplace/internal/models"
	"github.com/cashewtrade/marketplace/internal/repo"
	"github.com/cashewtrade/marketplace/internal/transport"
	"github.com/cashewtrade/marketplace/pkg/logging"
)

// CatalogService owns the product lifecycle. Cache, Index and Producer are
// optional; when nil the corresponding side effect is skipped.
type CatalogService struct {
	Repo     *repo.GormRepo
	Cache    *cache.CatalogCache
	Index    *es.ProductIndex
	Producer *events.Producer
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.Repo.GetProduct(ctx, id)
}

// Storefront returns the buyer-visible listing: active, in stock, seller
// joined. Served from redis when warm.
func (s *CatalogService) Storefront(ctx context.Context) ([]models.Product, error) {
	if items, ok := s.Cache.GetActive(ctx); ok {
		return items, nil
	}

	items, err := s.Repo.ListActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	s.Cache.SetActive(ctx, items)
	return items, nil
}

func (s *CatalogService) SellerProducts(ctx context.Context, sellerID uuid.UUID) ([]models.Product, error) {
	return s.Repo.ListSellerProducts(ctx, sellerID)
}

func (s *CatalogService) CreateProduct(ctx context.Context, sellerID uuid.UUID, req transport.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}
	prod := &models.Product{
		SellerID:      sellerID,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Price:         req.Price,
		Unit:          unit,
		QualityGrade:  req.QualityGrade,
		Origin:        req.Origin,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
		Images:        models.StringList(req.Images),
	}

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, err
	}

	s.afterProductWrite(ctx, created, "product_created")
	return created, nil
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id, sellerID uuid.UUID) (*models.Product, error) {
	if req.Price != nil && *req.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id, sellerID)
	if err != nil {
		return nil, err
	}

	s.afterProductWrite(ctx, prod, "product_updated")
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id, sellerID uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id, sellerID); err != nil {
		return err
	}

	l := logging.FromContext(ctx)
	s.Cache.Invalidate(ctx)
	if s.Index != nil {
		if err := s.Index.DeleteProduct(ctx, id); err != nil {
			l.Warn("search_deindex_failed", "product_id", id, "error", err)
		}
	}
	if s.Producer != nil {
		event := map[string]any{"type": "product_deleted", "product_id": id}
		if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, id.String(), event); err != nil {
			l.Warn("event_publish_failed", "topic", events.TopicProductEvents, "error", err)
		}
	}
	return nil
}

// Search queries the elasticsearch mirror of the catalog.
func (s *CatalogService) Search(ctx context.Context, q string, from, size int) (int64, []models.Product, error) {
	if s.Index == nil {
		return 0, nil, fmt.Errorf("%w: search is not configured", ErrValidation)
	}
	return s.Index.Search(ctx, q, from, size)
}

func (s *CatalogService) afterProductWrite(ctx context.Context, prod *models.Product, eventType string) {
	l := logging.FromContext(ctx)

	s.Cache.Invalidate(ctx)
	if s.Index != nil {
		if err := s.Index.IndexProduct(ctx, prod); err != nil {
			l.Warn("search_index_failed", "product_id", prod.ID, "error", err)
		}
	}
	if s.Producer != nil {
		event := map[string]any{
			"type":       eventType,
			"product_id": prod.ID,
			"seller_id":  prod.SellerID,
			"name":       prod.Name,
		}
		if err := s.Producer.PublishEvent(ctx, events.TopicProductEvents, prod.ID.String(), event); err != nil {
			l.Warn("event_publish_failed", "topic", events.TopicProductEvents, "error", err)
		}
	}
}
