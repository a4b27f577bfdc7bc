package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Domain errors shared by the ledger and the services built on it.
// All of them are recoverable: a failed mutation leaves prior state unchanged
// and the handler maps the error to a 4xx response.
var (
	// ErrInvalidQuantity rejects non-positive amounts.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrInvalidRoute rejects transfers whose source equals the destination.
	ErrInvalidRoute = errors.New("transfer source and destination must differ")
	// ErrNotFound covers unknown product/location/record ids.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidTransition rejects a state-machine move that is not allowed.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// InsufficientStockError reports a debit that exceeds the available quantity,
// naming the offending product and location.
type InsufficientStockError struct {
	ProductID  uuid.UUID
	LocationID uuid.UUID
	Requested  decimal.Decimal
	Available  decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s at location %s: requested %s, available %s (short %s)",
		e.ProductID, e.LocationID, e.Requested, e.Available, e.Shortfall())
}

// Shortfall is the amount by which the request exceeds availability.
func (e *InsufficientStockError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// InsufficientIngredientError is the ingredient-stock analogue raised when a
// production run tries to consume more raw material than the facility holds.
type InsufficientIngredientError struct {
	IngredientID uuid.UUID
	Name         string
	Requested    decimal.Decimal
	Available    decimal.Decimal
}

func (e *InsufficientIngredientError) Error() string {
	return fmt.Sprintf("insufficient ingredient stock for %s: requested %s, available %s",
		e.Name, e.Requested, e.Available)
}
