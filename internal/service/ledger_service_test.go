package service_test

import (
	"context"
	"testing"

	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedger() (service.LedgerService, *stubInventoryRepo, *stubMovementRepo) {
	inv := newStubInventoryRepo()
	mov := &stubMovementRepo{}
	return service.NewLedgerService(inv, mov), inv, mov
}

func TestCreditCreatesRecordLazily(t *testing.T) {
	ledger, inv, mov := newLedger()
	productID, locationID := uuid.New(), uuid.New()

	after, err := ledger.CreditTx(nil, productID, locationID, dec("12.5"), service.MovementProduction, "Production batch B001", nil)
	require.NoError(t, err)

	assert.True(t, after.Equal(dec("12.5")))
	assert.True(t, inv.quantity(productID, locationID).Equal(dec("12.5")))

	require.Len(t, mov.movements, 1)
	m := mov.movements[0]
	assert.Equal(t, service.MovementProduction, m.Kind)
	assert.True(t, m.QuantityBefore.IsZero())
	assert.True(t, m.QuantityAfter.Equal(dec("12.5")))
}

func TestDebitRejectsOverdraw(t *testing.T) {
	ledger, inv, mov := newLedger()
	productID, locationID := uuid.New(), uuid.New()
	inv.seed(productID, locationID, dec("3"))

	_, err := ledger.DebitTx(nil, productID, locationID, dec("5"), service.MovementSale, "Sale TXN-000001", nil)

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, productID, insufficient.ProductID)
	assert.Equal(t, locationID, insufficient.LocationID)
	assert.True(t, insufficient.Requested.Equal(dec("5")))
	assert.True(t, insufficient.Available.Equal(dec("3")))
	assert.True(t, insufficient.Shortfall().Equal(dec("2")))

	// Nothing changed: no movement written, quantity untouched
	assert.Empty(t, mov.movements)
	assert.True(t, inv.quantity(productID, locationID).Equal(dec("3")))
}

func TestDebitOnMissingRecordReportsZeroAvailable(t *testing.T) {
	ledger, _, _ := newLedger()

	_, err := ledger.DebitTx(nil, uuid.New(), uuid.New(), dec("1"), service.MovementSale, "", nil)

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.IsZero())
}

func TestDebitWritesNegativeMovement(t *testing.T) {
	ledger, inv, mov := newLedger()
	productID, locationID := uuid.New(), uuid.New()
	inv.seed(productID, locationID, dec("10"))

	ref := uuid.New()
	after, err := ledger.DebitTx(nil, productID, locationID, dec("4"), service.MovementSale, "Sale TXN-000001", &ref)
	require.NoError(t, err)
	assert.True(t, after.Equal(dec("6")))

	require.Len(t, mov.movements, 1)
	m := mov.movements[0]
	assert.True(t, m.Quantity.Equal(dec("-4")), "debit movements carry a negative quantity")
	assert.True(t, m.QuantityBefore.Equal(dec("10")))
	assert.True(t, m.QuantityAfter.Equal(dec("6")))
	require.NotNil(t, m.ReferenceID)
	assert.Equal(t, ref, *m.ReferenceID)
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	ledger, _, mov := newLedger()

	_, err := ledger.CreditTx(nil, uuid.New(), uuid.New(), decimal.Zero, service.MovementAdjustment, "", nil)
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	_, err = ledger.DebitTx(nil, uuid.New(), uuid.New(), dec("-1"), service.MovementAdjustment, "", nil)
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)

	assert.Empty(t, mov.movements)
}

func TestMoveConservesTotalQuantity(t *testing.T) {
	ledger, inv, mov := newLedger()
	productID := uuid.New()
	from, to := uuid.New(), uuid.New()
	inv.seed(productID, from, dec("20"))

	err := ledger.MoveTx(nil, productID, dec("7.25"), from, to, "Transfer", nil)
	require.NoError(t, err)

	assert.True(t, inv.quantity(productID, from).Equal(dec("12.75")))
	assert.True(t, inv.quantity(productID, to).Equal(dec("7.25")))

	// One transfer_out + one transfer_in entry
	require.Len(t, mov.movements, 2)
	assert.Equal(t, service.MovementTransferOut, mov.movements[0].Kind)
	assert.Equal(t, service.MovementTransferIn, mov.movements[1].Kind)

	// Moving it back restores the original balances
	err = ledger.MoveTx(nil, productID, dec("7.25"), to, from, "Transfer back", nil)
	require.NoError(t, err)
	assert.True(t, inv.quantity(productID, from).Equal(dec("20")))
	assert.True(t, inv.quantity(productID, to).IsZero())
}

func TestMoveRejectsSameSourceAndDestination(t *testing.T) {
	ledger, inv, _ := newLedger()
	productID, locationID := uuid.New(), uuid.New()
	inv.seed(productID, locationID, dec("10"))

	err := ledger.MoveTx(nil, productID, dec("1"), locationID, locationID, "", nil)
	assert.ErrorIs(t, err, service.ErrInvalidRoute)
	assert.True(t, inv.quantity(productID, locationID).Equal(dec("10")))
}

func TestMoveFailsWhenSourceLacksStock(t *testing.T) {
	ledger, inv, mov := newLedger()
	productID := uuid.New()
	from, to := uuid.New(), uuid.New()
	inv.seed(productID, from, dec("2"))

	err := ledger.MoveTx(nil, productID, dec("5"), from, to, "", nil)

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Empty(t, mov.movements)
	assert.True(t, inv.quantity(productID, from).Equal(dec("2")))
	assert.True(t, inv.quantity(productID, to).IsZero())
}

func TestQuantityReadsZeroForUnknownPair(t *testing.T) {
	ledger, inv, _ := newLedger()
	productID, locationID := uuid.New(), uuid.New()

	qty, err := ledger.Quantity(context.Background(), productID, locationID)
	require.NoError(t, err)
	assert.True(t, qty.IsZero())

	inv.seed(productID, locationID, dec("8"))
	qty, err = ledger.Quantity(context.Background(), productID, locationID)
	require.NoError(t, err)
	assert.True(t, qty.Equal(dec("8")))
}
