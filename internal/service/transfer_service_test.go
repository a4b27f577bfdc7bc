package service_test

import (
	"context"
	"testing"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transferFixture struct {
	svc       service.TransferService
	repo      *stubTransferRepo
	products  *stubProductRepo
	locations *stubLocationRepo
	inventory *stubInventoryRepo
	movements *stubMovementRepo
	ledger    service.LedgerService

	tocino   *model.Product
	facility *model.Location
	store    *model.Location
	userID   uuid.UUID
}

func newTransferFixture() *transferFixture {
	f := &transferFixture{
		repo:      newStubTransferRepo(),
		products:  newStubProductRepo(),
		locations: newStubLocationRepo(),
		inventory: newStubInventoryRepo(),
		movements: &stubMovementRepo{},
		userID:    uuid.New(),
	}
	f.tocino = f.products.add(&model.Product{Name: "Tocino", Unit: "kg", Price: dec("280"), Active: true})
	f.facility = f.locations.add(&model.Location{Name: "Production Facility", Kind: model.LocationKindFacility, Status: "active"})
	f.store = f.locations.add(&model.Location{Name: "Main Store", Kind: model.LocationKindStore, Status: "active"})

	f.ledger = service.NewLedgerService(f.inventory, f.movements)
	f.svc = service.NewTransferService(f.repo, f.products, f.locations, f.ledger, nil)
	return f
}

func (f *transferFixture) request(t *testing.T, qty string) *dto.TransferResponse {
	t.Helper()
	resp, err := f.svc.Request(context.Background(), f.userID, dto.RequestTransferRequest{
		ProductID:      f.tocino.ID.String(),
		Quantity:       dec(qty),
		FromLocationID: f.facility.ID.String(),
		ToLocationID:   f.store.ID.String(),
	})
	require.NoError(t, err)
	return resp
}

func TestRequestTransferStartsPending(t *testing.T) {
	f := newTransferFixture()

	// A pending request may over-ask: stock is only validated on completion
	resp := f.request(t, "500")

	assert.Equal(t, model.TransferPending, resp.Status)
	assert.Equal(t, f.userID.String(), resp.TransferredBy)
	assert.Empty(t, f.movements.movements)
}

func TestRequestTransferRejectsSameRoute(t *testing.T) {
	f := newTransferFixture()

	_, err := f.svc.Request(context.Background(), f.userID, dto.RequestTransferRequest{
		ProductID:      f.tocino.ID.String(),
		Quantity:       dec("5"),
		FromLocationID: f.facility.ID.String(),
		ToLocationID:   f.facility.ID.String(),
	})
	assert.ErrorIs(t, err, service.ErrInvalidRoute)
}

func TestTransferMovesStockOnlyOnCompletion(t *testing.T) {
	f := newTransferFixture()
	f.inventory.seed(f.tocino.ID, f.facility.ID, dec("30"))
	resp := f.request(t, "12")
	id := uuid.MustParse(resp.ID)
	ctx := context.Background()

	// pending → in-transit: informational, no ledger activity
	inTransit, err := f.svc.SetStatus(ctx, id, model.TransferInTransit)
	require.NoError(t, err)
	assert.Equal(t, model.TransferInTransit, inTransit.Status)
	assert.Empty(t, f.movements.movements)
	assert.True(t, f.inventory.quantity(f.tocino.ID, f.facility.ID).Equal(dec("30")))

	// in-transit → completed: debit source, credit destination
	done, err := f.svc.SetStatus(ctx, id, model.TransferCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.TransferCompleted, done.Status)
	assert.True(t, f.inventory.quantity(f.tocino.ID, f.facility.ID).Equal(dec("18")))
	assert.True(t, f.inventory.quantity(f.tocino.ID, f.store.ID).Equal(dec("12")))
	require.Len(t, f.movements.movements, 2)
	assert.Equal(t, service.MovementTransferOut, f.movements.movements[0].Kind)
	assert.Equal(t, service.MovementTransferIn, f.movements.movements[1].Kind)

	// completed is terminal
	_, err = f.svc.SetStatus(ctx, id, model.TransferCancelled)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	assert.Len(t, f.movements.movements, 2)
}

func TestTransferCompletionFailsWithoutStock(t *testing.T) {
	f := newTransferFixture()
	f.inventory.seed(f.tocino.ID, f.facility.ID, dec("5"))
	resp := f.request(t, "12")
	id := uuid.MustParse(resp.ID)
	ctx := context.Background()

	_, err := f.svc.SetStatus(ctx, id, model.TransferInTransit)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, id, model.TransferCompleted)
	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)

	// The transfer stays in-transit and no stock moved anywhere
	current, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.TransferInTransit, current.Status)
	assert.True(t, f.inventory.quantity(f.tocino.ID, f.facility.ID).Equal(dec("5")))
	assert.True(t, f.inventory.quantity(f.tocino.ID, f.store.ID).IsZero())

	// Restocking lets the same transfer complete
	f.inventory.seed(f.tocino.ID, f.facility.ID, dec("20"))
	_, err = f.svc.SetStatus(ctx, id, model.TransferCompleted)
	require.NoError(t, err)
	assert.True(t, f.inventory.quantity(f.tocino.ID, f.store.ID).Equal(dec("12")))
}

func TestTransferCancellationNeverTouchesLedger(t *testing.T) {
	f := newTransferFixture()
	f.inventory.seed(f.tocino.ID, f.facility.ID, dec("30"))
	ctx := context.Background()

	pending := f.request(t, "10")
	_, err := f.svc.SetStatus(ctx, uuid.MustParse(pending.ID), model.TransferCancelled)
	require.NoError(t, err)

	rejected := f.request(t, "10")
	_, err = f.svc.SetStatus(ctx, uuid.MustParse(rejected.ID), model.TransferRejected)
	require.NoError(t, err)

	assert.Empty(t, f.movements.movements)
	assert.True(t, f.inventory.quantity(f.tocino.ID, f.facility.ID).Equal(dec("30")))

	// Both are terminal
	_, err = f.svc.SetStatus(ctx, uuid.MustParse(pending.ID), model.TransferInTransit)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
	_, err = f.svc.SetStatus(ctx, uuid.MustParse(rejected.ID), model.TransferPending)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestTransferRejectsNonPositiveQuantity(t *testing.T) {
	f := newTransferFixture()

	_, err := f.svc.Request(context.Background(), f.userID, dto.RequestTransferRequest{
		ProductID:      f.tocino.ID.String(),
		Quantity:       dec("0"),
		FromLocationID: f.facility.ID.String(),
		ToLocationID:   f.store.ID.String(),
	})
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
}

// staleTransferRepo serves pre-completion snapshots from FindByID, the way
// two overlapping read-committed requests would each see the transfer before
// either commits.
type staleTransferRepo struct{ *stubTransferRepo }

func (r *staleTransferRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TransferRequest, error) {
	tr, err := r.stubTransferRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tr.Status = model.TransferInTransit
	tr.LedgerApplied = false
	return tr, nil
}

func TestCompleteTransferMovesStockOnceUnderConcurrentRequests(t *testing.T) {
	f := newTransferFixture()
	f.inventory.seed(f.tocino.ID, f.facility.ID, dec("30"))
	resp := f.request(t, "12")
	id := uuid.MustParse(resp.ID)
	ctx := context.Background()

	_, err := f.svc.SetStatus(ctx, id, model.TransferInTransit)
	require.NoError(t, err)

	svc := service.NewTransferService(&staleTransferRepo{stubTransferRepo: f.repo},
		f.products, f.locations, f.ledger, nil)

	_, err = svc.SetStatus(ctx, id, model.TransferCompleted)
	require.NoError(t, err)

	// The second request saw an in-transit snapshot and passed the pre-flight
	// transition check; the locked re-read must reject it before any move.
	_, err = svc.SetStatus(ctx, id, model.TransferCompleted)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	assert.True(t, f.inventory.quantity(f.tocino.ID, f.facility.ID).Equal(dec("18")))
	assert.True(t, f.inventory.quantity(f.tocino.ID, f.store.ID).Equal(dec("12")))
	assert.Len(t, f.movements.movements, 2)
}
