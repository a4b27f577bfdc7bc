package service_test

import (
	"context"
	"fmt"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── In-memory stubs ──────────────────────────────────────────────────────────
// Services tolerate a nil *gorm.DB (runTx calls fn(nil)), so these stubs back
// unit tests without a database.

type invKey struct {
	product  uuid.UUID
	location uuid.UUID
}

// stubInventoryRepo is an in-memory InventoryRepository.
type stubInventoryRepo struct {
	records map[invKey]*model.InventoryRecord
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{records: make(map[invKey]*model.InventoryRecord)}
}

func (r *stubInventoryRepo) seed(productID, locationID uuid.UUID, qty decimal.Decimal) {
	r.records[invKey{productID, locationID}] = &model.InventoryRecord{
		ProductID: productID, LocationID: locationID, Quantity: qty,
	}
}

func (r *stubInventoryRepo) quantity(productID, locationID uuid.UUID) decimal.Decimal {
	if rec, ok := r.records[invKey{productID, locationID}]; ok {
		return rec.Quantity
	}
	return decimal.Zero
}

func (r *stubInventoryRepo) List(_ context.Context, locationID *uuid.UUID) ([]model.InventoryRecord, error) {
	var out []model.InventoryRecord
	for _, rec := range r.records {
		if locationID != nil && rec.LocationID != *locationID {
			continue
		}
		out = append(out, *rec)
	}
	return out, nil
}

func (r *stubInventoryRepo) FindForUpdateTx(_ *gorm.DB, productID, locationID uuid.UUID) (*model.InventoryRecord, error) {
	rec, ok := r.records[invKey{productID, locationID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *stubInventoryRepo) CreateTx(_ *gorm.DB, rec *model.InventoryRecord) error {
	r.records[invKey{rec.ProductID, rec.LocationID}] = rec
	return nil
}

func (r *stubInventoryRepo) AddQuantityTx(_ *gorm.DB, productID, locationID uuid.UUID, delta decimal.Decimal) error {
	rec, ok := r.records[invKey{productID, locationID}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.Quantity = rec.Quantity.Add(delta)
	return nil
}

func (r *stubInventoryRepo) DB() *gorm.DB { return nil }

var _ repository.InventoryRepository = (*stubInventoryRepo)(nil)

// stubMovementRepo records every ledger entry for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) List(_ context.Context, _ dto.MovementFilter) ([]model.StockMovement, int64, error) {
	return r.movements, int64(len(r.movements)), nil
}

var _ repository.MovementRepository = (*stubMovementRepo)(nil)

// stubDiscountRepo serves a fixed wholesale policy.
type stubDiscountRepo struct {
	settings model.DiscountSettings
}

func (r *stubDiscountRepo) Get(_ context.Context) (*model.DiscountSettings, error) {
	cp := r.settings
	return &cp, nil
}

func (r *stubDiscountRepo) Update(_ context.Context, s *model.DiscountSettings) error {
	r.settings = *s
	return nil
}

var _ repository.DiscountRepository = (*stubDiscountRepo)(nil)

// stubProductRepo is an in-memory product catalog.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) add(p *model.Product) *model.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return p
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	r.add(p)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = true
	}
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubLocationRepo holds the facility and any stores.
type stubLocationRepo struct {
	locations map[uuid.UUID]*model.Location
}

func newStubLocationRepo() *stubLocationRepo {
	return &stubLocationRepo{locations: make(map[uuid.UUID]*model.Location)}
}

func (r *stubLocationRepo) add(l *model.Location) *model.Location {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	r.locations[l.ID] = l
	return l
}

func (r *stubLocationRepo) Create(_ context.Context, l *model.Location) error {
	r.add(l)
	return nil
}

func (r *stubLocationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (r *stubLocationRepo) FindFacility(_ context.Context) (*model.Location, error) {
	for _, l := range r.locations {
		if l.Kind == model.LocationKindFacility {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubLocationRepo) List(_ context.Context, _ bool) ([]model.Location, error) {
	var out []model.Location
	for _, l := range r.locations {
		out = append(out, *l)
	}
	return out, nil
}

func (r *stubLocationRepo) Update(_ context.Context, l *model.Location) error {
	r.locations[l.ID] = l
	return nil
}

var _ repository.LocationRepository = (*stubLocationRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository with its own number sequence.
type stubSaleRepo struct {
	sales map[uuid.UUID]*model.Sale
	seq   int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	var out []model.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *stubSaleRepo) UpdateStatusTx(_ *gorm.DB, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) UpdateReseco(_ context.Context, id uuid.UUID, amount decimal.Decimal) error {
	s, ok := r.sales[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Reseco = &amount
	return nil
}

func (r *stubSaleRepo) NextTransactionNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubProductionRepo is an in-memory ProductionRepository.
type stubProductionRepo struct {
	records map[uuid.UUID]*model.ProductionRecord
	batch   int
}

func newStubProductionRepo() *stubProductionRepo {
	return &stubProductionRepo{records: make(map[uuid.UUID]*model.ProductionRecord)}
}

func (r *stubProductionRepo) CreateTx(_ *gorm.DB, p *model.ProductionRecord) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.records[p.ID] = p
	return nil
}

func (r *stubProductionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ProductionRecord, error) {
	p, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductionRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.ProductionRecord, error) {
	p, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductionRepo) List(_ context.Context, _ dto.ProductionFilter) ([]model.ProductionRecord, int64, error) {
	var out []model.ProductionRecord
	for _, p := range r.records {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubProductionRepo) UpdateTx(_ *gorm.DB, p *model.ProductionRecord) error {
	r.records[p.ID] = p
	return nil
}

// AddIngredientsTx only validates the parent row: the service attaches the
// rows to the in-memory record itself.
func (r *stubProductionRepo) AddIngredientsTx(_ *gorm.DB, rows []model.ProductionIngredient) error {
	for _, row := range rows {
		if _, ok := r.records[row.ProductionRecordID]; !ok {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *stubProductionRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.records, id)
	return nil
}

func (r *stubProductionRepo) NextBatchNumber(_ context.Context) (string, error) {
	r.batch++
	return fmt.Sprintf("B%03d", r.batch), nil
}

func (r *stubProductionRepo) DB() *gorm.DB { return nil }

var _ repository.ProductionRepository = (*stubProductionRepo)(nil)

// stubTransferRepo is an in-memory TransferRepository.
type stubTransferRepo struct {
	transfers map[uuid.UUID]*model.TransferRequest
}

func newStubTransferRepo() *stubTransferRepo {
	return &stubTransferRepo{transfers: make(map[uuid.UUID]*model.TransferRequest)}
}

func (r *stubTransferRepo) Create(_ context.Context, t *model.TransferRequest) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.transfers[t.ID] = t
	return nil
}

func (r *stubTransferRepo) FindByID(_ context.Context, id uuid.UUID) (*model.TransferRequest, error) {
	t, ok := r.transfers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransferRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.TransferRequest, error) {
	t, ok := r.transfers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransferRepo) List(_ context.Context, _ dto.TransferFilter) ([]model.TransferRequest, int64, error) {
	var out []model.TransferRequest
	for _, t := range r.transfers {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubTransferRepo) UpdateTx(_ *gorm.DB, t *model.TransferRequest) error {
	r.transfers[t.ID] = t
	return nil
}

func (r *stubTransferRepo) DB() *gorm.DB { return nil }

var _ repository.TransferRepository = (*stubTransferRepo)(nil)

// stubIngredientRepo is an in-memory IngredientRepository.
type stubIngredientRepo struct {
	ingredients map[uuid.UUID]*model.Ingredient
}

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{ingredients: make(map[uuid.UUID]*model.Ingredient)}
}

func (r *stubIngredientRepo) add(i *model.Ingredient) *model.Ingredient {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredients[i.ID] = i
	return i
}

func (r *stubIngredientRepo) Create(_ context.Context, i *model.Ingredient) error {
	r.add(i)
	return nil
}

func (r *stubIngredientRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Ingredient, error) {
	i, ok := r.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubIngredientRepo) List(_ context.Context, _ bool) ([]model.Ingredient, error) {
	var out []model.Ingredient
	for _, i := range r.ingredients {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubIngredientRepo) Update(_ context.Context, i *model.Ingredient) error {
	r.ingredients[i.ID] = i
	return nil
}

func (r *stubIngredientRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if i, ok := r.ingredients[id]; ok {
		i.Active = false
	}
	return nil
}

func (r *stubIngredientRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Ingredient, error) {
	i, ok := r.ingredients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *i
	return &cp, nil
}

func (r *stubIngredientRepo) AddQuantityTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	i, ok := r.ingredients[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.Quantity = i.Quantity.Add(delta)
	return nil
}

var _ repository.IngredientRepository = (*stubIngredientRepo)(nil)
