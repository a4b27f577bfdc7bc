package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientService manages raw materials kept at the production facility.
// Ingredient stock lives on the ingredient row itself, separate from the
// finished-goods ledger.
type IngredientService interface {
	Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.IngredientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error)
	Adjust(ctx context.Context, id uuid.UUID, req dto.AdjustIngredientRequest) (*dto.IngredientResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type ingredientService struct {
	repo repository.IngredientRepository
	db   *gorm.DB
}

func NewIngredientService(repo repository.IngredientRepository, db *gorm.DB) IngredientService {
	return &ingredientService{repo: repo, db: db}
}

func (s *ingredientService) Create(ctx context.Context, req dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if req.Quantity.IsNegative() {
		return nil, ErrInvalidQuantity
	}
	ing := model.Ingredient{
		Name:     req.Name,
		Unit:     req.Unit,
		Quantity: req.Quantity,
		Active:   true,
	}
	if ing.Unit == "" {
		ing.Unit = "kg"
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		ing.CategoryID = &categoryID
	}
	if err := s.repo.Create(ctx, &ing); err != nil {
		return nil, err
	}
	return ingredientToResponse(&ing), nil
}

func (s *ingredientService) Get(ctx context.Context, id uuid.UUID) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}
	return ingredientToResponse(ing), nil
}

func (s *ingredientService) List(ctx context.Context, includeInactive bool) ([]dto.IngredientResponse, error) {
	ingredients, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.IngredientResponse, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, *ingredientToResponse(&ing))
	}
	return items, nil
}

func (s *ingredientService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}
	if req.Name != nil {
		ing.Name = *req.Name
	}
	if req.Unit != nil {
		ing.Unit = *req.Unit
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		ing.CategoryID = &categoryID
	}
	if err := s.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ingredientToResponse(ing), nil
}

// Adjust applies a signed correction under a row lock; stock never goes
// negative.
func (s *ingredientService) Adjust(ctx context.Context, id uuid.UUID, req dto.AdjustIngredientRequest) (*dto.IngredientResponse, error) {
	if req.Delta.IsZero() {
		return nil, ErrInvalidQuantity
	}

	var resp *dto.IngredientResponse
	txErr := runTx(ctx, s.db, func(tx *gorm.DB) error {
		ing, err := s.repo.FindForUpdateTx(tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
		}
		if err != nil {
			return err
		}
		newQty := ing.Quantity.Add(req.Delta)
		if newQty.IsNegative() {
			return &InsufficientIngredientError{
				IngredientID: id, Name: ing.Name,
				Requested: req.Delta.Neg(), Available: ing.Quantity,
			}
		}
		if err := s.repo.AddQuantityTx(tx, id, req.Delta); err != nil {
			return err
		}
		ing.Quantity = newQty
		resp = ingredientToResponse(ing)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return resp, nil
}

func (s *ingredientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("ingredient %s: %w", id, ErrNotFound)
	}
	return s.repo.SoftDelete(ctx, id)
}

func ingredientToResponse(ing *model.Ingredient) *dto.IngredientResponse {
	resp := &dto.IngredientResponse{
		ID:       ing.ID.String(),
		Name:     ing.Name,
		Unit:     ing.Unit,
		Quantity: ing.Quantity,
		Active:   ing.Active,
	}
	if ing.CategoryID != nil {
		id := ing.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}
