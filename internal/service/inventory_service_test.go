package service_test

import (
	"context"
	"testing"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInventoryService() (service.InventoryService, *stubInventoryRepo, *stubMovementRepo) {
	inv := newStubInventoryRepo()
	mov := &stubMovementRepo{}
	ledger := service.NewLedgerService(inv, mov)
	// nil Redis client: reads hit the repository directly
	return service.NewInventoryService(inv, mov, ledger, nil), inv, mov
}

func TestGetInventoryFiltersByLocation(t *testing.T) {
	svc, inv, _ := newInventoryService()
	productID := uuid.New()
	locationA, locationB := uuid.New(), uuid.New()
	inv.seed(productID, locationA, dec("5"))
	inv.seed(productID, locationB, dec("7"))

	all, err := svc.GetInventory(context.Background(), dto.InventoryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.GetInventory(context.Background(), dto.InventoryFilter{LocationID: locationA.String()})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.True(t, scoped[0].Quantity.Equal(dec("5")))
}

func TestAdjustStockAppliesSignedDelta(t *testing.T) {
	svc, inv, mov := newInventoryService()
	productID, locationID := uuid.New(), uuid.New()
	ctx := context.Background()

	// Positive delta on a fresh pair creates the record
	up, err := svc.AdjustStock(ctx, dto.AdjustStockRequest{
		ProductID:  productID.String(),
		LocationID: locationID.String(),
		Delta:      dec("10"),
		Reason:     "initial count",
	})
	require.NoError(t, err)
	assert.True(t, up.Quantity.Equal(dec("10")))

	down, err := svc.AdjustStock(ctx, dto.AdjustStockRequest{
		ProductID:  productID.String(),
		LocationID: locationID.String(),
		Delta:      dec("-2.5"),
		Reason:     "spoilage",
	})
	require.NoError(t, err)
	assert.True(t, down.Quantity.Equal(dec("7.5")))
	assert.True(t, inv.quantity(productID, locationID).Equal(dec("7.5")))

	// Both corrections are on the movement trail
	require.Len(t, mov.movements, 2)
	assert.Equal(t, service.MovementAdjustment, mov.movements[0].Kind)
	assert.Equal(t, "spoilage", mov.movements[1].Reason)
}

func TestAdjustStockRejectsZeroDelta(t *testing.T) {
	svc, _, _ := newInventoryService()

	_, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID:  uuid.NewString(),
		LocationID: uuid.NewString(),
		Delta:      decimal.Zero,
		Reason:     "noop",
	})
	assert.ErrorIs(t, err, service.ErrInvalidQuantity)
}

func TestAdjustStockCannotGoNegative(t *testing.T) {
	svc, inv, _ := newInventoryService()
	productID, locationID := uuid.New(), uuid.New()
	inv.seed(productID, locationID, dec("3"))

	_, err := svc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductID:  productID.String(),
		LocationID: locationID.String(),
		Delta:      dec("-4"),
		Reason:     "recount",
	})

	var insufficient *service.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, inv.quantity(productID, locationID).Equal(dec("3")))
}

func TestListMovementsExposesAuditTrail(t *testing.T) {
	svc, _, _ := newInventoryService()
	productID, locationID := uuid.New(), uuid.New()
	ctx := context.Background()

	_, err := svc.AdjustStock(ctx, dto.AdjustStockRequest{
		ProductID:  productID.String(),
		LocationID: locationID.String(),
		Delta:      dec("6"),
		Reason:     "delivery",
	})
	require.NoError(t, err)

	list, err := svc.ListMovements(ctx, dto.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, list.Data, 1)
	assert.Equal(t, service.MovementAdjustment, list.Data[0].Kind)
	assert.True(t, list.Data[0].QuantityBefore.IsZero())
	assert.True(t, list.Data[0].QuantityAfter.Equal(dec("6")))
}
