package service_test

import (
	"context"
	"testing"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
	// productCounts fakes the active-products-per-category count
	productCounts map[uuid.UUID]int64
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{
		categories:    make(map[uuid.UUID]*model.Category),
		productCounts: make(map[uuid.UUID]int64),
	}
}

func (r *stubCategoryRepo) add(c *model.Category) *model.Category {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return c
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	r.add(c)
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) List(_ context.Context, includeInactive bool) ([]model.Category, error) {
	var out []model.Category
	for _, c := range r.categories {
		if !includeInactive && !c.Active {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categories[id]; ok {
		c.Active = false
	}
	return nil
}

func (r *stubCategoryRepo) CountProducts(_ context.Context, id uuid.UUID) (int64, error) {
	return r.productCounts[id], nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

func newCatalog() (service.CatalogService, *stubProductRepo, *stubCategoryRepo) {
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	return service.NewCatalogService(products, categories), products, categories
}

func TestCreateProductDefaultsAndValidation(t *testing.T) {
	svc, _, _ := newCatalog()
	ctx := context.Background()

	resp, err := svc.CreateProduct(ctx, dto.CreateProductRequest{
		Name:  "Embutido",
		Price: dec("180"),
	})
	require.NoError(t, err)
	assert.Equal(t, "kg", resp.Unit, "unit defaults to kg")
	assert.True(t, resp.Active)

	_, err = svc.CreateProduct(ctx, dto.CreateProductRequest{Name: "Bad", Price: dec("-1")})
	require.Error(t, err)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	svc, _, _ := newCatalog()
	missing := uuid.NewString()

	_, err := svc.CreateProduct(context.Background(), dto.CreateProductRequest{
		Name:       "Embutido",
		Price:      dec("180"),
		CategoryID: &missing,
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeactivateAndReactivateProduct(t *testing.T) {
	svc, products, _ := newCatalog()
	p := products.add(&model.Product{Name: "Embutido", Unit: "kg", Price: dec("180"), Active: true})
	ctx := context.Background()

	require.NoError(t, svc.DeactivateProduct(ctx, p.ID))
	assert.False(t, p.Active)

	require.NoError(t, svc.ReactivateProduct(ctx, p.ID))
	assert.True(t, p.Active)
}

func TestDeactivateCategoryBlockedWhileInUse(t *testing.T) {
	svc, _, categories := newCatalog()
	c := categories.add(&model.Category{Name: "Cured", Active: true})
	categories.productCounts[c.ID] = 3
	ctx := context.Background()

	err := svc.DeactivateCategory(ctx, c.ID)
	require.Error(t, err)
	assert.True(t, c.Active)

	categories.productCounts[c.ID] = 0
	require.NoError(t, svc.DeactivateCategory(ctx, c.ID))
	assert.False(t, c.Active)
}
