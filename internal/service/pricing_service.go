package service

import (
	"context"

	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/shopspring/decimal"
)

// taxRate is the flat sales tax applied after discounts. Fixed by policy,
// deliberately not configurable.
var taxRate = decimal.NewFromFloat(0.08)

var oneHundred = decimal.NewFromInt(100)

// PriceLine is one cart line as seen by the pricing engine.
type PriceLine struct {
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	DiscountPct decimal.Decimal
}

// Quote is the monetary breakdown of a cart. All values are carried at full
// decimal precision; rounding to 2 places happens only at the response
// boundary.
type Quote struct {
	Subtotal          decimal.Decimal
	TotalUnits        decimal.Decimal
	Wholesale         bool
	WholesaleDiscount decimal.Decimal
	GlobalDiscount    decimal.Decimal
	Tax               decimal.Decimal
	Total             decimal.Decimal
}

// PricingService computes cart totals under the active wholesale policy.
type PricingService interface {
	Quote(ctx context.Context, lines []PriceLine, globalDiscountPct decimal.Decimal) (*Quote, error)
}

type pricingService struct {
	discounts repository.DiscountRepository
}

func NewPricingService(discounts repository.DiscountRepository) PricingService {
	return &pricingService{discounts: discounts}
}

// Quote prices the cart:
//
//  1. Per line: net = unitPrice·qty·(1 − discountPct/100); subtotal = Σ net.
//  2. The order is wholesale when the summed unit count reaches the
//     configured minimum (inclusive boundary).
//  3. A wholesale order gets the configured discount order-wide: percentage
//     of the subtotal, or a fixed amount capped at the subtotal.
//  4. The operator-entered global discount stacks additively with the
//     wholesale discount; the discounted subtotal never goes below zero.
//  5. tax = afterDiscount · 8%; total = afterDiscount + tax.
func (s *pricingService) Quote(ctx context.Context, lines []PriceLine, globalDiscountPct decimal.Decimal) (*Quote, error) {
	settings, err := s.discounts.Get(ctx)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	totalUnits := decimal.Zero
	for _, line := range lines {
		lineTotal := line.UnitPrice.Mul(line.Quantity)
		lineDiscount := lineTotal.Mul(line.DiscountPct).Div(oneHundred)
		subtotal = subtotal.Add(lineTotal.Sub(lineDiscount))
		totalUnits = totalUnits.Add(line.Quantity)
	}

	q := &Quote{Subtotal: subtotal, TotalUnits: totalUnits}

	// Wholesale eligibility is decided on unit count, not value
	minUnits := decimal.NewFromInt(int64(settings.WholesaleMinUnits))
	if totalUnits.GreaterThanOrEqual(minUnits) && subtotal.IsPositive() {
		q.Wholesale = true
		if settings.DiscountType == model.DiscountTypeFixedAmount {
			q.WholesaleDiscount = decimal.Min(settings.WholesaleDiscountAmount, subtotal)
		} else {
			q.WholesaleDiscount = subtotal.Mul(settings.WholesaleDiscountPercent).Div(oneHundred)
		}
	} else {
		q.WholesaleDiscount = decimal.Zero
	}

	q.GlobalDiscount = subtotal.Mul(globalDiscountPct).Div(oneHundred)

	afterDiscount := subtotal.Sub(q.GlobalDiscount).Sub(q.WholesaleDiscount)
	if afterDiscount.IsNegative() {
		afterDiscount = decimal.Zero
	}

	q.Tax = afterDiscount.Mul(taxRate)
	q.Total = afterDiscount.Add(q.Tax)
	return q, nil
}
