package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"
	"github.com/mikoypft/lztmeat/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	Checkout(ctx context.Context, userID uuid.UUID, req dto.CheckoutRequest) (*dto.SaleResponse, error)
	ReverseSale(ctx context.Context, id uuid.UUID, reason string) error
	ApplyReseco(ctx context.Context, id uuid.UUID, req dto.ResecoRequest) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
}

type saleService struct {
	repo       repository.SaleRepository
	products   repository.ProductRepository
	locations  repository.LocationRepository
	ledger     LedgerService
	pricing    PricingService
	inventory  InventoryService
	dispatcher *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	ledger LedgerService,
	pricing PricingService,
	inventory InventoryService,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:       repo,
		products:   products,
		locations:  locations,
		ledger:     ledger,
		pricing:    pricing,
		inventory:  inventory,
		dispatcher: dispatcher,
	}
}

// ── Checkout ─────────────────────────────────────────────────────────────────
// Full flow:
//  1. Resolve the store and every cart product (pre-flight, outside TX)
//  2. Price the cart under the active wholesale policy
//  3. BEGIN TX: next transaction number, create sale + items, debit each
//     line's quantity from the store under a row lock
//  4. COMMIT — any line failing the stock check rolls the whole sale back
//  5. Invalidate the inventory cache and enqueue low-stock alerts

func (s *saleService) Checkout(ctx context.Context, userID uuid.UUID, req dto.CheckoutRequest) (*dto.SaleResponse, error) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location_id: %w", err)
	}
	location, err := s.locations.FindByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", req.LocationID, ErrNotFound)
	}
	if location.Kind != model.LocationKindStore {
		return nil, errors.New("sales can only be registered at a store")
	}
	if location.Status != "active" {
		return nil, fmt.Errorf("store %s is inactive", location.Name)
	}

	type resolvedItem struct {
		productID    uuid.UUID
		name         string
		unitPrice    decimal.Decimal
		quantity     decimal.Decimal
		discountPct  decimal.Decimal
		reorderLevel decimal.Decimal
	}

	resolved := make([]resolvedItem, 0, len(req.Items))
	lines := make([]PriceLine, 0, len(req.Items))
	for _, item := range req.Items {
		if !item.Quantity.IsPositive() {
			return nil, ErrInvalidQuantity
		}
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product_id: %w", err)
		}
		p, err := s.products.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
		}
		if !p.Active {
			return nil, fmt.Errorf("product %s is inactive and cannot be sold", p.Name)
		}
		resolved = append(resolved, resolvedItem{
			productID:    pid,
			name:         p.Name,
			unitPrice:    p.Price,
			quantity:     item.Quantity,
			discountPct:  item.DiscountPct,
			reorderLevel: p.ReorderLevel,
		})
		lines = append(lines, PriceLine{UnitPrice: p.Price, Quantity: item.Quantity, DiscountPct: item.DiscountPct})
	}

	quote, err := s.pricing.Quote(ctx, lines, req.GlobalDiscountPct)
	if err != nil {
		return nil, err
	}

	type lowStock struct {
		name      string
		remaining decimal.Decimal
		threshold decimal.Decimal
	}
	var alerts []lowStock

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		txNum, err := s.repo.NextTransactionNumber(ctx, tx)
		if err != nil {
			return err
		}

		sale = model.Sale{
			TransactionID:     fmt.Sprintf("TXN-%06d", txNum),
			LocationID:        locationID,
			Subtotal:          quote.Subtotal.Round(2),
			GlobalDiscount:    quote.GlobalDiscount.Round(2),
			WholesaleDiscount: quote.WholesaleDiscount.Round(2),
			Tax:               quote.Tax.Round(2),
			Total:             quote.Total.Round(2),
			PaymentMethod:     req.PaymentMethod,
			Status:            "completed",
			SoldBy:            userID,
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				ProductID:   r.productID,
				Quantity:    r.quantity,
				UnitPrice:   r.unitPrice,
				DiscountPct: r.discountPct,
			})
		}
		if err := s.repo.CreateTx(tx, &sale); err != nil {
			return err
		}

		// Debit each line under a row lock — the first failure aborts the
		// transaction, leaving no partial debit behind.
		saleRef := sale.ID
		for _, r := range resolved {
			remaining, err := s.ledger.DebitTx(tx, r.productID, locationID, r.quantity,
				MovementSale, fmt.Sprintf("Sale %s", sale.TransactionID), &saleRef)
			if err != nil {
				return err
			}
			if r.reorderLevel.IsPositive() && remaining.LessThan(r.reorderLevel) {
				alerts = append(alerts, lowStock{name: r.name, remaining: remaining, threshold: r.reorderLevel})
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if s.inventory != nil {
		s.inventory.InvalidateCache(ctx)
	}

	// Low-stock alerts are best-effort — fire & forget
	if s.dispatcher != nil {
		for _, a := range alerts {
			_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertPayload{
				Product:   a.name,
				Location:  location.Name,
				Remaining: a.remaining.String(),
				Threshold: a.threshold.String(),
			})
		}
	}

	resp := saleToResponse(&sale, quote.Wholesale)
	for i, r := range resolved {
		resp.Items[i].Product = r.name
	}
	return resp, nil
}

// ── ReverseSale ──────────────────────────────────────────────────────────────
// Credits every line back to the originating store exactly once. The status is
// checked again on a row-locked read inside the transaction, so a reversal
// racing another one errors instead of crediting twice.

func (s *saleService) ReverseSale(ctx context.Context, id uuid.UUID, reason string) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	if sale.Status == "reversed" {
		return errors.New("sale is already reversed")
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		locked, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		if locked.Status == "reversed" {
			return errors.New("sale is already reversed")
		}
		saleRef := locked.ID
		for _, item := range locked.Items {
			_, err := s.ledger.CreditTx(tx, item.ProductID, locked.LocationID, item.Quantity,
				MovementSaleReversal, fmt.Sprintf("Reversal %s — %s", locked.TransactionID, reason), &saleRef)
			if err != nil {
				return err
			}
		}
		return s.repo.UpdateStatusTx(tx, id, "reversed")
	})
	if txErr != nil {
		return txErr
	}

	if s.inventory != nil {
		s.inventory.InvalidateCache(ctx)
	}
	return nil
}

// ApplyReseco records a manual post-sale cash deduction used for reconciling
// cash variance. It never touches the stock ledger.
func (s *saleService) ApplyReseco(ctx context.Context, id uuid.UUID, req dto.ResecoRequest) (*dto.SaleResponse, error) {
	if req.Amount.IsNegative() {
		return nil, errors.New("reseco amount cannot be negative")
	}
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("sale %s: %w", id, ErrNotFound)
	}
	if sale.Status != "completed" {
		return nil, errors.New("reseco can only be applied to a completed sale")
	}

	amount := req.Amount.Round(2)
	if err := s.repo.UpdateReseco(ctx, id, amount); err != nil {
		return nil, err
	}
	sale.Reseco = &amount
	return saleToResponse(sale, false), nil
}

// ListSales returns a paginated list filtered by date, store and status.
// Default filter: today's completed sales.
func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Status == "" {
		filter.Status = "completed"
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		items = append(items, *saleToResponse(&sale, false))
	}
	return &dto.SaleListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func saleToResponse(sale *model.Sale, wholesale bool) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(sale.Items))
	for _, item := range sale.Items {
		name := ""
		if item.Product != nil {
			name = item.Product.Name
		}
		lineTotal := item.UnitPrice.Mul(item.Quantity)
		lineTotal = lineTotal.Sub(lineTotal.Mul(item.DiscountPct).Div(oneHundred)).Round(2)
		items = append(items, dto.SaleItemResponse{
			ProductID:   item.ProductID.String(),
			Product:     name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			DiscountPct: item.DiscountPct,
			LineTotal:   lineTotal,
		})
	}
	return &dto.SaleResponse{
		ID:                sale.ID.String(),
		TransactionID:     sale.TransactionID,
		LocationID:        sale.LocationID.String(),
		Items:             items,
		Subtotal:          sale.Subtotal,
		GlobalDiscount:    sale.GlobalDiscount,
		WholesaleDiscount: sale.WholesaleDiscount,
		Wholesale:         wholesale || sale.WholesaleDiscount.IsPositive(),
		Tax:               sale.Tax,
		Total:             sale.Total,
		PaymentMethod:     sale.PaymentMethod,
		Reseco:            sale.Reseco,
		Status:            sale.Status,
		CreatedAt:         sale.CreatedAt.Format(time.RFC3339),
	}
}
