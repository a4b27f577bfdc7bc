package service_test

import (
	"context"
	"testing"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productionFixture struct {
	svc         service.ProductionService
	repo        *stubProductionRepo
	products    *stubProductRepo
	ingredients *stubIngredientRepo
	locations   *stubLocationRepo
	inventory   *stubInventoryRepo
	movements   *stubMovementRepo
	ledger      service.LedgerService

	chorizo  *model.Product
	pork     *model.Ingredient
	salt     *model.Ingredient
	facility *model.Location
}

func newProductionFixture() *productionFixture {
	f := &productionFixture{
		repo:        newStubProductionRepo(),
		products:    newStubProductRepo(),
		ingredients: newStubIngredientRepo(),
		locations:   newStubLocationRepo(),
		inventory:   newStubInventoryRepo(),
		movements:   &stubMovementRepo{},
	}
	f.facility = f.locations.add(&model.Location{Name: "Production Facility", Kind: model.LocationKindFacility, Status: "active"})
	f.chorizo = f.products.add(&model.Product{Name: "Chorizo", Unit: "kg", Price: dec("320"), Active: true})
	f.pork = f.ingredients.add(&model.Ingredient{Name: "Pork Shoulder", Unit: "kg", Quantity: dec("100"), Active: true})
	f.salt = f.ingredients.add(&model.Ingredient{Name: "Salt", Unit: "kg", Quantity: dec("10"), Active: true})

	f.ledger = service.NewLedgerService(f.inventory, f.movements)
	f.svc = service.NewProductionService(f.repo, f.products, f.ingredients, f.locations, f.ledger, nil)
	return f
}

func (f *productionFixture) record(t *testing.T, qty string, uses ...dto.IngredientUseRequest) *dto.ProductionResponse {
	t.Helper()
	resp, err := f.svc.Record(context.Background(), dto.RecordProductionRequest{
		ProductID:   f.chorizo.ID.String(),
		Quantity:    dec(qty),
		Ingredients: uses,
	})
	require.NoError(t, err)
	return resp
}

func TestRecordProductionConsumesInitialIngredients(t *testing.T) {
	f := newProductionFixture()

	resp := f.record(t, "50",
		dto.IngredientUseRequest{IngredientID: f.pork.ID.String(), Quantity: dec("40")},
		dto.IngredientUseRequest{IngredientID: f.salt.ID.String(), Quantity: dec("0.5")},
	)

	assert.Equal(t, "B001", resp.BatchNumber)
	assert.Equal(t, model.ProductionInProgress, resp.Status)
	require.Len(t, resp.Ingredients, 2)
	assert.Equal(t, "initial", resp.Ingredients[0].Stage)

	assert.True(t, f.pork.Quantity.Equal(dec("60")))
	assert.True(t, f.salt.Quantity.Equal(dec("9.5")))

	// An open batch never credits the facility
	assert.True(t, f.inventory.quantity(f.chorizo.ID, f.facility.ID).IsZero())
	assert.Empty(t, f.movements.movements)
}

func TestRecordProductionBatchNumbersIncrement(t *testing.T) {
	f := newProductionFixture()

	first := f.record(t, "10")
	second := f.record(t, "20")

	assert.Equal(t, "B001", first.BatchNumber)
	assert.Equal(t, "B002", second.BatchNumber)
}

func TestRecordProductionRejectsInsufficientIngredient(t *testing.T) {
	f := newProductionFixture()

	_, err := f.svc.Record(context.Background(), dto.RecordProductionRequest{
		ProductID: f.chorizo.ID.String(),
		Quantity:  dec("50"),
		Ingredients: []dto.IngredientUseRequest{
			{IngredientID: f.salt.ID.String(), Quantity: dec("11")},
		},
	})

	var insufficient *service.InsufficientIngredientError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "Salt", insufficient.Name)
	assert.True(t, insufficient.Requested.Equal(dec("11")))
	assert.True(t, insufficient.Available.Equal(dec("10")))
	assert.True(t, f.salt.Quantity.Equal(dec("10")), "a rejected run must not consume anything")
}

func TestRecordProductionRejectsInactiveProduct(t *testing.T) {
	f := newProductionFixture()
	f.chorizo.Active = false

	_, err := f.svc.Record(context.Background(), dto.RecordProductionRequest{
		ProductID: f.chorizo.ID.String(),
		Quantity:  dec("10"),
	})
	require.Error(t, err)
}

func TestCompletionCreditsFacilityWithActualWeight(t *testing.T) {
	f := newProductionFixture()
	resp := f.record(t, "100")
	id := uuid.MustParse(resp.ID)

	actual := dec("95")
	done, err := f.svc.SetStatus(context.Background(), id, dto.SetProductionStatusRequest{
		Status:       model.ProductionCompleted,
		ActualWeight: &actual,
	})
	require.NoError(t, err)

	assert.Equal(t, model.ProductionCompleted, done.Status)
	assert.True(t, done.Quantity.Equal(dec("95")), "actual weight overrides the planned quantity")
	assert.True(t, f.inventory.quantity(f.chorizo.ID, f.facility.ID).Equal(dec("95")))

	require.Len(t, f.movements.movements, 1)
	assert.Equal(t, service.MovementProduction, f.movements.movements[0].Kind)
}

func TestCompletionConsumesAdditionalIngredients(t *testing.T) {
	f := newProductionFixture()
	resp := f.record(t, "50",
		dto.IngredientUseRequest{IngredientID: f.pork.ID.String(), Quantity: dec("40")},
	)
	id := uuid.MustParse(resp.ID)

	done, err := f.svc.SetStatus(context.Background(), id, dto.SetProductionStatusRequest{
		Status: model.ProductionCompleted,
		AdditionalIngredients: []dto.IngredientUseRequest{
			{IngredientID: f.salt.ID.String(), Quantity: dec("1")},
		},
	})
	require.NoError(t, err)

	assert.True(t, f.salt.Quantity.Equal(dec("9")))
	require.Len(t, done.Ingredients, 2)
	assert.Equal(t, "additional", done.Ingredients[1].Stage)
}

func TestProductionTransitions(t *testing.T) {
	f := newProductionFixture()
	resp := f.record(t, "30")
	id := uuid.MustParse(resp.ID)

	// in-progress → quality-check → completed is valid
	_, err := f.svc.SetStatus(context.Background(), id, dto.SetProductionStatusRequest{Status: model.ProductionQualityCheck})
	require.NoError(t, err)
	_, err = f.svc.SetStatus(context.Background(), id, dto.SetProductionStatusRequest{Status: model.ProductionCompleted})
	require.NoError(t, err)

	// completed is terminal — re-completing must not double-credit
	_, err = f.svc.SetStatus(context.Background(), id, dto.SetProductionStatusRequest{Status: model.ProductionCompleted})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	_, err = f.svc.SetStatus(context.Background(), id, dto.SetProductionStatusRequest{Status: model.ProductionInProgress})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	assert.True(t, f.inventory.quantity(f.chorizo.ID, f.facility.ID).Equal(dec("30")))
	assert.Len(t, f.movements.movements, 1)
}

func TestCompletionRejectsNonPositiveActualWeight(t *testing.T) {
	f := newProductionFixture()
	resp := f.record(t, "30")
	id := uuid.MustParse(resp.ID)

	zero := decimal.Zero
	_, err := f.svc.SetStatus(context.Background(), id, dto.SetProductionStatusRequest{
		Status:       model.ProductionCompleted,
		ActualWeight: &zero,
	})
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
}

func TestDeleteCompletedBatchReversesEverything(t *testing.T) {
	f := newProductionFixture()
	resp := f.record(t, "50",
		dto.IngredientUseRequest{IngredientID: f.pork.ID.String(), Quantity: dec("40")},
	)
	id := uuid.MustParse(resp.ID)
	_, err := f.svc.SetStatus(context.Background(), id, dto.SetProductionStatusRequest{Status: model.ProductionCompleted})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), id))

	// The facility credit is reversed and the ingredients returned
	assert.True(t, f.inventory.quantity(f.chorizo.ID, f.facility.ID).IsZero())
	assert.True(t, f.pork.Quantity.Equal(dec("100")))

	// production + production_reversal
	require.Len(t, f.movements.movements, 2)
	assert.Equal(t, service.MovementProductionReversal, f.movements.movements[1].Kind)

	_, err = f.svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteOpenBatchOnlyRestoresIngredients(t *testing.T) {
	f := newProductionFixture()
	resp := f.record(t, "50",
		dto.IngredientUseRequest{IngredientID: f.salt.ID.String(), Quantity: dec("2")},
	)
	id := uuid.MustParse(resp.ID)

	require.NoError(t, f.svc.Delete(context.Background(), id))

	assert.True(t, f.salt.Quantity.Equal(dec("10")))
	// No credit was ever applied, so no reversal either
	assert.Empty(t, f.movements.movements)
}

// staleProductionRepo serves pre-completion snapshots from FindByID, the way
// two overlapping read-committed requests would each see the batch before
// either commits.
type staleProductionRepo struct{ *stubProductionRepo }

func (r *staleProductionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionRecord, error) {
	p, err := r.stubProductionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *p
	cp.Status = model.ProductionQualityCheck
	cp.LedgerApplied = false
	return &cp, nil
}

func TestCompletionCreditsFacilityOnceUnderConcurrentRequests(t *testing.T) {
	f := newProductionFixture()
	resp := f.record(t, "40")
	id := uuid.MustParse(resp.ID)
	ctx := context.Background()

	_, err := f.svc.SetStatus(ctx, id, dto.SetProductionStatusRequest{Status: model.ProductionQualityCheck})
	require.NoError(t, err)

	svc := service.NewProductionService(&staleProductionRepo{stubProductionRepo: f.repo},
		f.products, f.ingredients, f.locations, f.ledger, nil)

	_, err = svc.SetStatus(ctx, id, dto.SetProductionStatusRequest{Status: model.ProductionCompleted})
	require.NoError(t, err)

	// The second request saw a quality-check snapshot and passed the
	// pre-flight transition check; the locked re-read must reject it before
	// the facility is credited a second time.
	_, err = svc.SetStatus(ctx, id, dto.SetProductionStatusRequest{Status: model.ProductionCompleted})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	assert.True(t, f.inventory.quantity(f.chorizo.ID, f.facility.ID).Equal(dec("40")))
	assert.Len(t, f.movements.movements, 1)
}

func TestDeleteCompletedBatchUndoesOnceUnderConcurrentRequests(t *testing.T) {
	f := newProductionFixture()
	resp := f.record(t, "50",
		dto.IngredientUseRequest{IngredientID: f.pork.ID.String(), Quantity: dec("40")},
	)
	id := uuid.MustParse(resp.ID)
	ctx := context.Background()
	_, err := f.svc.SetStatus(ctx, id, dto.SetProductionStatusRequest{Status: model.ProductionCompleted})
	require.NoError(t, err)

	svc := service.NewProductionService(&staleProductionRepo{stubProductionRepo: f.repo},
		f.products, f.ingredients, f.locations, f.ledger, nil)

	require.NoError(t, svc.Delete(ctx, id))

	// The second request's locked re-read finds the row gone and aborts,
	// so neither the reversal debit nor the ingredient restore runs twice.
	err = svc.Delete(ctx, id)
	assert.ErrorIs(t, err, service.ErrNotFound)

	assert.True(t, f.inventory.quantity(f.chorizo.ID, f.facility.ID).IsZero())
	assert.True(t, f.pork.Quantity.Equal(dec("100")))
	assert.Len(t, f.movements.movements, 2)
}
