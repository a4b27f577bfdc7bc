package repository

import (
	"context"

	"github.com/mikoypft/lztmeat/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IngredientRepository interface {
	Create(ctx context.Context, i *model.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error)
	List(ctx context.Context, includeInactive bool) ([]model.Ingredient, error)
	Update(ctx context.Context, i *model.Ingredient) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// FindForUpdateTx locks the row so consumption checks are race-free.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Ingredient, error)
	AddQuantityTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error
}

type ingredientRepo struct{ db *gorm.DB }

func NewIngredientRepository(db *gorm.DB) IngredientRepository { return &ingredientRepo{db: db} }

func (r *ingredientRepo) Create(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *ingredientRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := r.db.WithContext(ctx).First(&i, id).Error
	return &i, err
}

func (r *ingredientRepo) List(ctx context.Context, includeInactive bool) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Find(&ingredients).Error
	return ingredients, err
}

func (r *ingredientRepo) Update(ctx context.Context, i *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *ingredientRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Ingredient{}).Where("id = ?", id).Update("active", false).Error
}

func (r *ingredientRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Ingredient, error) {
	var i model.Ingredient
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&i, id).Error
	return &i, err
}

func (r *ingredientRepo) AddQuantityTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Ingredient{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error
}
