package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productionTransitions holds the allowed forward moves of a batch.
var productionTransitions = map[string][]string{
	model.ProductionInProgress:   {model.ProductionQualityCheck, model.ProductionCompleted},
	model.ProductionQualityCheck: {model.ProductionCompleted},
	model.ProductionCompleted:    {},
}

type ProductionService interface {
	Record(ctx context.Context, req dto.RecordProductionRequest) (*dto.ProductionResponse, error)
	SetStatus(ctx context.Context, id uuid.UUID, req dto.SetProductionStatusRequest) (*dto.ProductionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductionResponse, error)
	List(ctx context.Context, filter dto.ProductionFilter) (*dto.ProductionListResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productionService struct {
	repo        repository.ProductionRepository
	products    repository.ProductRepository
	ingredients repository.IngredientRepository
	locations   repository.LocationRepository
	ledger      LedgerService
	inventory   InventoryService
}

func NewProductionService(
	repo repository.ProductionRepository,
	products repository.ProductRepository,
	ingredients repository.IngredientRepository,
	locations repository.LocationRepository,
	ledger LedgerService,
	inventory InventoryService,
) ProductionService {
	return &productionService{
		repo:        repo,
		products:    products,
		ingredients: ingredients,
		locations:   locations,
		ledger:      ledger,
		inventory:   inventory,
	}
}

// Record opens a batch in "in-progress" and consumes its initial ingredients.
// Stock is NOT credited here — that happens only on the transition into
// "completed".
func (s *productionService) Record(ctx context.Context, req dto.RecordProductionRequest) (*dto.ProductionResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
	}
	if !product.Active {
		return nil, fmt.Errorf("product %s is inactive", product.Name)
	}

	batch := req.BatchNumber
	if batch == "" {
		batch, err = s.repo.NextBatchNumber(ctx)
		if err != nil {
			return nil, err
		}
	}

	record := model.ProductionRecord{
		ProductID:   productID,
		ProductName: product.Name,
		Quantity:    req.Quantity,
		BatchNumber: batch,
		Status:      model.ProductionInProgress,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &record); err != nil {
			return err
		}
		rows, err := s.consumeIngredientsTx(tx, record.ID, req.Ingredients, "initial")
		if err != nil {
			return err
		}
		record.Ingredients = rows
		return s.repo.AddIngredientsTx(tx, rows)
	})
	if txErr != nil {
		return nil, txErr
	}
	return productionToResponse(&record), nil
}

// SetStatus advances the batch. Only the transition into "completed" touches
// the stock ledger: the facility is credited with the actual weight when one
// is reported, otherwise with the planned quantity. LedgerApplied guards
// against crediting the same batch twice.
func (s *productionService) SetStatus(ctx context.Context, id uuid.UUID, req dto.SetProductionStatusRequest) (*dto.ProductionResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("production record %s: %w", id, ErrNotFound)
	}

	if !transitionAllowed(productionTransitions, record.Status, req.Status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, record.Status, req.Status)
	}

	completing := req.Status == model.ProductionCompleted
	if completing && req.ActualWeight != nil && !req.ActualWeight.IsPositive() {
		return nil, ErrInvalidQuantity
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-validated on a row-locked read: two racing completions cannot
		// both pass the transition check and credit the batch twice.
		locked, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		if !transitionAllowed(productionTransitions, locked.Status, req.Status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, locked.Status, req.Status)
		}
		if completing {
			if req.ActualWeight != nil {
				locked.Quantity = *req.ActualWeight
			}
			rows, err := s.consumeIngredientsTx(tx, locked.ID, req.AdditionalIngredients, "additional")
			if err != nil {
				return err
			}
			if err := s.repo.AddIngredientsTx(tx, rows); err != nil {
				return err
			}
			locked.Ingredients = append(locked.Ingredients, rows...)

			if !locked.LedgerApplied {
				facility, err := s.locations.FindFacility(ctx)
				if err != nil {
					return fmt.Errorf("production facility: %w", err)
				}
				ref := locked.ID
				_, err = s.ledger.CreditTx(tx, locked.ProductID, facility.ID, locked.Quantity,
					MovementProduction, fmt.Sprintf("Production batch %s", locked.BatchNumber), &ref)
				if err != nil {
					return err
				}
				locked.LedgerApplied = true
			}
		}
		locked.Status = req.Status
		if err := s.repo.UpdateTx(tx, locked); err != nil {
			return err
		}
		record = locked
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if completing && s.inventory != nil {
		s.inventory.InvalidateCache(ctx)
	}
	return productionToResponse(record), nil
}

func (s *productionService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductionResponse, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("production record %s: %w", id, ErrNotFound)
	}
	return productionToResponse(record), nil
}

func (s *productionService) List(ctx context.Context, filter dto.ProductionFilter) (*dto.ProductionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	records, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductionResponse, 0, len(records))
	for _, record := range records {
		items = append(items, *productionToResponse(&record))
	}
	return &dto.ProductionListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Delete undoes the batch symmetrically: the facility credit is reversed only
// when it was applied, and every consumed ingredient is returned to stock.
func (s *productionService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("production record %s: %w", id, ErrNotFound)
	}

	var applied bool
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Row-locked re-read: the undo runs against the batch's committed
		// state, and a concurrent delete aborts here instead of restoring
		// the ingredients a second time.
		locked, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		applied = locked.LedgerApplied
		if locked.LedgerApplied {
			facility, err := s.locations.FindFacility(ctx)
			if err != nil {
				return fmt.Errorf("production facility: %w", err)
			}
			ref := locked.ID
			_, err = s.ledger.DebitTx(tx, locked.ProductID, facility.ID, locked.Quantity,
				MovementProductionReversal, fmt.Sprintf("Deleted batch %s", locked.BatchNumber), &ref)
			if err != nil {
				return err
			}
		}
		for _, row := range locked.Ingredients {
			if err := s.ingredients.AddQuantityTx(tx, row.IngredientID, row.Quantity); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("production record %s: %w", id, ErrNotFound)
		}
		return txErr
	}

	if applied && s.inventory != nil {
		s.inventory.InvalidateCache(ctx)
	}
	return nil
}

// consumeIngredientsTx debits each ingredient under a row lock and returns
// the usage rows to attach to the batch.
func (s *productionService) consumeIngredientsTx(tx *gorm.DB, recordID uuid.UUID, uses []dto.IngredientUseRequest, stage string) ([]model.ProductionIngredient, error) {
	rows := make([]model.ProductionIngredient, 0, len(uses))
	for _, use := range uses {
		if !use.Quantity.IsPositive() {
			return nil, ErrInvalidQuantity
		}
		ingredientID, err := uuid.Parse(use.IngredientID)
		if err != nil {
			return nil, fmt.Errorf("invalid ingredient_id: %w", err)
		}
		ing, err := s.ingredients.FindForUpdateTx(tx, ingredientID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ingredient %s: %w", use.IngredientID, ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		if ing.Quantity.LessThan(use.Quantity) {
			return nil, &InsufficientIngredientError{
				IngredientID: ingredientID, Name: ing.Name,
				Requested: use.Quantity, Available: ing.Quantity,
			}
		}
		if err := s.ingredients.AddQuantityTx(tx, ingredientID, use.Quantity.Neg()); err != nil {
			return nil, err
		}
		rows = append(rows, model.ProductionIngredient{
			ProductionRecordID: recordID,
			IngredientID:       ingredientID,
			Quantity:           use.Quantity,
			Stage:              stage,
		})
	}
	return rows, nil
}

func transitionAllowed(transitions map[string][]string, from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func productionToResponse(record *model.ProductionRecord) *dto.ProductionResponse {
	ingredients := make([]dto.IngredientUseResponse, 0, len(record.Ingredients))
	for _, row := range record.Ingredients {
		name := ""
		if row.Ingredient != nil {
			name = row.Ingredient.Name
		}
		ingredients = append(ingredients, dto.IngredientUseResponse{
			IngredientID: row.IngredientID.String(),
			Ingredient:   name,
			Quantity:     row.Quantity,
			Stage:        row.Stage,
		})
	}
	return &dto.ProductionResponse{
		ID:          record.ID.String(),
		ProductID:   record.ProductID.String(),
		ProductName: record.ProductName,
		Quantity:    record.Quantity,
		BatchNumber: record.BatchNumber,
		Status:      record.Status,
		Ingredients: ingredients,
		CreatedAt:   record.CreatedAt.Format(time.RFC3339),
	}
}
