package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
)

// CatalogService manages products and categories. Products referenced by
// sales, transfers or production are never hard-deleted; deactivation keeps
// history intact while hiding them from new carts.
type CatalogService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
	ReactivateProduct(ctx context.Context, id uuid.UUID) error

	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context, includeInactive bool) ([]dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeactivateCategory(ctx context.Context, id uuid.UUID) error
}

type catalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository) CatalogService {
	return &catalogService{products: products, categories: categories}
}

// ─── Products ────────────────────────────────────────────────────────────────

func (s *catalogService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Price.IsNegative() {
		return nil, errors.New("price cannot be negative")
	}

	p := model.Product{
		Name:   req.Name,
		Unit:   req.Unit,
		Price:  req.Price,
		Active: true,
	}
	if p.Unit == "" {
		p.Unit = "kg"
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			return nil, fmt.Errorf("category %s: %w", *req.CategoryID, ErrNotFound)
		}
		p.CategoryID = &categoryID
	}
	if req.ReorderLevel != nil {
		if req.ReorderLevel.IsNegative() {
			return nil, errors.New("reorder_level cannot be negative")
		}
		p.ReorderLevel = *req.ReorderLevel
	}

	if err := s.products.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productToResponse(&p), nil
}

func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return productToResponse(p), nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *productToResponse(&p))
	}
	return &dto.ProductListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Unit != nil {
		p.Unit = *req.Unit
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, errors.New("price cannot be negative")
		}
		p.Price = *req.Price
	}
	if req.ReorderLevel != nil {
		if req.ReorderLevel.IsNegative() {
			return nil, errors.New("reorder_level cannot be negative")
		}
		p.ReorderLevel = *req.ReorderLevel
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			return nil, fmt.Errorf("category %s: %w", *req.CategoryID, ErrNotFound)
		}
		p.CategoryID = &categoryID
		p.Category = nil
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return productToResponse(p), nil
}

func (s *catalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return s.products.SoftDelete(ctx, id)
}

func (s *catalogService) ReactivateProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	return s.products.Reactivate(ctx, id)
}

// ─── Categories ──────────────────────────────────────────────────────────────

func (s *catalogService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := model.Category{Name: req.Name, Description: req.Description, Active: true}
	if err := s.categories.Create(ctx, &c); err != nil {
		return nil, err
	}
	return categoryToResponse(&c), nil
}

func (s *catalogService) ListCategories(ctx context.Context, includeInactive bool) ([]dto.CategoryResponse, error) {
	categories, err := s.categories.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		items = append(items, *categoryToResponse(&c))
	}
	return items, nil
}

func (s *catalogService) UpdateCategory(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return categoryToResponse(c), nil
}

// DeactivateCategory refuses while active products still reference the
// category.
func (s *catalogService) DeactivateCategory(ctx context.Context, id uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return fmt.Errorf("category %s: %w", id, ErrNotFound)
	}
	n, err := s.categories.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("category has %d active products and cannot be deactivated", n)
	}
	return s.categories.SoftDelete(ctx, id)
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:           p.ID.String(),
		Name:         p.Name,
		Unit:         p.Unit,
		Price:        p.Price,
		ReorderLevel: p.ReorderLevel,
		Active:       p.Active,
	}
	if p.CategoryID != nil {
		id := p.CategoryID.String()
		resp.CategoryID = &id
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	return resp
}

func categoryToResponse(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}
