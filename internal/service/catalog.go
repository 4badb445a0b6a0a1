package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/electroshop/internal/events"
	"github.com/Skotchmaster/electroshop/internal/models"
	"github.com/Skotchmaster/electroshop/internal/repo"
	"github.com/Skotchmaster/electroshop/internal/search"
	"github.com/Skotchmaster/electroshop/internal/transport"
	"github.com/Skotchmaster/electroshop/internal/util"
	"github.com/Skotchmaster/electroshop/pkg/logging"
)

const indexTimeout = 5 * time.Second

type CatalogService struct {
	Repo   *repo.GormRepo
	Index  search.Index
	Events events.Publisher
}

type ListParams struct {
	Page       int
	Limit      int
	Brands     []string
	Categories []string
	// Brand, when set, replaces Brands.
	Brand string
}

type SearchParams struct {
	Query    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

func (s *CatalogService) ListProducts(ctx context.Context, p ListParams) (*transport.ProductPage, error) {
	page, offset, limit := util.Calculate(p.Page, p.Limit)

	filter := repo.ProductFilter{Brands: p.Brands, Categories: p.Categories}
	if p.Brand != "" {
		filter.Brands = []string{p.Brand}
	}

	total, items, err := s.Repo.ListProducts(ctx, filter, offset, limit)
	if err != nil {
		return nil, err
	}
	return &transport.ProductPage{
		Products:      items,
		CurrentPage:   page,
		TotalPages:    util.TotalPages(total, limit),
		TotalProducts: total,
	}, nil
}

func (s *CatalogService) Brands(ctx context.Context) ([]string, error) {
	return s.Repo.Brands(ctx)
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.Repo.Categories(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	return p, nil
}

func (s *CatalogService) Search(ctx context.Context, p SearchParams) ([]models.Product, error) {
	if p.MinPrice != nil && p.MaxPrice != nil && p.MinPrice.GreaterThan(*p.MaxPrice) {
		return nil, fmt.Errorf("minPrice is greater than maxPrice: %w", ErrValidation)
	}

	p.Query = strings.TrimSpace(p.Query)

	if s.Index != nil {
		items, err := s.Index.Search(ctx, search.Query{
			Text:     p.Query,
			Category: p.Category,
			MinPrice: p.MinPrice,
			MaxPrice: p.MaxPrice,
		})
		if err == nil {
			return items, nil
		}
		logging.FromContext(ctx).Warn("search_index_failed", "reason", "falling back to database", "error", err)
	}

	return s.Repo.SearchProducts(ctx, repo.SearchFilter{
		Query:    p.Query,
		Category: p.Category,
		MinPrice: p.MinPrice,
		MaxPrice: p.MaxPrice,
	})
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Name) == "" || req.Description == "" || req.Brand == "" || req.Category == "" || req.Image == "" {
		return nil, fmt.Errorf("name, description, brand, category and image are required: %w", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}

	prod := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Brand:       req.Brand,
		Category:    req.Category,
		Image:       req.Image,
		InStock:     true,
	}
	if req.InStock != nil {
		prod.InStock = *req.InStock
	}

	created, err := s.Repo.CreateProduct(ctx, prod)
	if err != nil {
		return nil, err
	}
	s.mirror(ctx, created, "product_created")
	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	for _, f := range []*string{req.Name, req.Description, req.Brand, req.Category, req.Image} {
		if f != nil && strings.TrimSpace(*f) == "" {
			return nil, fmt.Errorf("fields cannot be set to empty: %w", ErrValidation)
		}
	}

	prod, err := s.Repo.UpdateProduct(ctx, id, func(p *models.Product) error {
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Brand != nil {
			p.Brand = *req.Brand
		}
		if req.Category != nil {
			p.Category = *req.Category
		}
		if req.Image != nil {
			p.Image = *req.Image
		}
		if req.InStock != nil {
			p.InStock = *req.InStock
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err, ErrProductNotFound)
	}
	s.mirror(ctx, prod, "product_updated")
	return prod, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if s.Index != nil {
		ictx, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexTimeout)
		defer cancel()
		if err := s.Index.DeleteProduct(ictx, id.String()); err != nil {
			logging.FromContext(ctx).Error("search_index_delete_failed", "product_id", id, "error", err)
		}
	}
	events.Emit(ctx, s.Events, events.TopicProducts, id.String(), "product_deleted", map[string]any{"id": id})
	return nil
}

// mirror pushes a changed product to the search index and the event stream.
func (s *CatalogService) mirror(ctx context.Context, p *models.Product, eventType string) {
	if s.Index != nil {
		ictx, cancel := context.WithTimeout(context.WithoutCancel(ctx), indexTimeout)
		defer cancel()
		if err := s.Index.IndexProduct(ictx, p); err != nil {
			logging.FromContext(ctx).Error("search_index_failed", "product_id", p.ID, "error", err)
		}
	}
	events.Emit(ctx, s.Events, events.TopicProducts, p.ID.String(), eventType, p)
}

// Reindex pushes every product to the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	if s.Index == nil {
		return 0, nil
	}
	n := 0
	for page := 1; page <= util.MaxPage; page++ {
		_, offset, limit := util.Calculate(page, util.MaxPageSize)
		_, items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{}, offset, limit)
		if err != nil {
			return n, err
		}
		for i := range items {
			if err := s.Index.IndexProduct(ctx, &items[i]); err != nil {
				return n, err
			}
			n++
		}
		if len(items) < limit {
			return n, nil
		}
	}
	return n, nil
}
