package service

import (
	"context"
	"errors"

	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Movement kinds written by the ledger.
const (
	MovementProduction         = "production"
	MovementProductionReversal = "production_reversal"
	MovementTransferIn         = "transfer_in"
	MovementTransferOut        = "transfer_out"
	MovementSale               = "sale"
	MovementSaleReversal       = "sale_reversal"
	MovementAdjustment         = "adjustment"
)

// LedgerService maintains non-negative per-(product, location) quantities.
// Every mutation runs inside the caller's transaction under a row lock, so the
// insufficient-stock check and the update are atomic against concurrent
// writers. Each mutation also appends an immutable StockMovement row.
type LedgerService interface {
	// CreditTx adds qty to (product, location), creating the record at zero
	// first if absent. Returns the resulting quantity.
	CreditTx(tx *gorm.DB, productID, locationID uuid.UUID, qty decimal.Decimal, kind, reason string, ref *uuid.UUID) (decimal.Decimal, error)
	// DebitTx subtracts qty, failing with InsufficientStockError when the
	// available quantity is lower. Returns the resulting quantity.
	DebitTx(tx *gorm.DB, productID, locationID uuid.UUID, qty decimal.Decimal, kind, reason string, ref *uuid.UUID) (decimal.Decimal, error)
	// MoveTx debits from and credits to in the same transaction.
	MoveTx(tx *gorm.DB, productID uuid.UUID, qty decimal.Decimal, from, to uuid.UUID, reason string, ref *uuid.UUID) error
	// Quantity reads the current quantity without locking (0 when absent).
	Quantity(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error)
}

type ledgerService struct {
	inventory repository.InventoryRepository
	movements repository.MovementRepository
}

func NewLedgerService(inventory repository.InventoryRepository, movements repository.MovementRepository) LedgerService {
	return &ledgerService{inventory: inventory, movements: movements}
}

func (s *ledgerService) CreditTx(tx *gorm.DB, productID, locationID uuid.UUID, qty decimal.Decimal, kind, reason string, ref *uuid.UUID) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, ErrInvalidQuantity
	}

	rec, err := s.inventory.FindForUpdateTx(tx, productID, locationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Lazily create the record at zero, then credit
		rec = &model.InventoryRecord{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}
		if err := s.inventory.CreateTx(tx, rec); err != nil {
			return decimal.Zero, err
		}
	} else if err != nil {
		return decimal.Zero, err
	}

	before := rec.Quantity
	after := before.Add(qty)
	if err := s.inventory.AddQuantityTx(tx, productID, locationID, qty); err != nil {
		return decimal.Zero, err
	}

	return after, s.movements.CreateTx(tx, &model.StockMovement{
		ProductID:      productID,
		LocationID:     locationID,
		Kind:           kind,
		Quantity:       qty,
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         reason,
		ReferenceID:    ref,
	})
}

func (s *ledgerService) DebitTx(tx *gorm.DB, productID, locationID uuid.UUID, qty decimal.Decimal, kind, reason string, ref *uuid.UUID) (decimal.Decimal, error) {
	if !qty.IsPositive() {
		return decimal.Zero, ErrInvalidQuantity
	}

	rec, err := s.inventory.FindForUpdateTx(tx, productID, locationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, &InsufficientStockError{
			ProductID: productID, LocationID: locationID,
			Requested: qty, Available: decimal.Zero,
		}
	}
	if err != nil {
		return decimal.Zero, err
	}

	if rec.Quantity.LessThan(qty) {
		return decimal.Zero, &InsufficientStockError{
			ProductID: productID, LocationID: locationID,
			Requested: qty, Available: rec.Quantity,
		}
	}

	before := rec.Quantity
	after := before.Sub(qty)
	if err := s.inventory.AddQuantityTx(tx, productID, locationID, qty.Neg()); err != nil {
		return decimal.Zero, err
	}

	return after, s.movements.CreateTx(tx, &model.StockMovement{
		ProductID:      productID,
		LocationID:     locationID,
		Kind:           kind,
		Quantity:       qty.Neg(),
		QuantityBefore: before,
		QuantityAfter:  after,
		Reason:         reason,
		ReferenceID:    ref,
	})
}

// MoveTx orders the debit before the credit: if the source lacks stock the
// transaction aborts with nothing applied, and a successful debit is always
// followed by the credit inside the same transaction — no partial-transfer
// state can be observed.
func (s *ledgerService) MoveTx(tx *gorm.DB, productID uuid.UUID, qty decimal.Decimal, from, to uuid.UUID, reason string, ref *uuid.UUID) error {
	if from == to {
		return ErrInvalidRoute
	}
	if _, err := s.DebitTx(tx, productID, from, qty, MovementTransferOut, reason, ref); err != nil {
		return err
	}
	_, err := s.CreditTx(tx, productID, to, qty, MovementTransferIn, reason, ref)
	return err
}

func (s *ledgerService) Quantity(ctx context.Context, productID, locationID uuid.UUID) (decimal.Decimal, error) {
	records, err := s.inventory.List(ctx, &locationID)
	if err != nil {
		return decimal.Zero, err
	}
	for _, rec := range records {
		if rec.ProductID == productID {
			return rec.Quantity, nil
		}
	}
	return decimal.Zero, nil
}
