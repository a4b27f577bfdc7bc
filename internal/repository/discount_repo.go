package repository

import (
	"context"
	"errors"

	"github.com/mikoypft/lztmeat/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DiscountRepository manages the singleton discount_settings row (id = 1).
type DiscountRepository interface {
	Get(ctx context.Context) (*model.DiscountSettings, error)
	Update(ctx context.Context, s *model.DiscountSettings) error
}

type discountRepo struct{ db *gorm.DB }

func NewDiscountRepository(db *gorm.DB) DiscountRepository { return &discountRepo{db: db} }

// Get returns the settings row, creating it with defaults on first access.
func (r *discountRepo) Get(ctx context.Context) (*model.DiscountSettings, error) {
	var s model.DiscountSettings
	err := r.db.WithContext(ctx).First(&s, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s = model.DiscountSettings{
			ID:                       1,
			WholesaleMinUnits:        5,
			DiscountType:             model.DiscountTypePercentage,
			WholesaleDiscountPercent: decimal.NewFromInt(1),
			WholesaleDiscountAmount:  decimal.Zero,
		}
		if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
			return nil, err
		}
		return &s, nil
	}
	return &s, err
}

func (r *discountRepo) Update(ctx context.Context, s *model.DiscountSettings) error {
	s.ID = 1
	return r.db.WithContext(ctx).Save(s).Error
}
