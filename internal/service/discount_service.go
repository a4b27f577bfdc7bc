package service

import (
	"context"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"
)

// DiscountService manages the singleton wholesale policy consumed by pricing.
type DiscountService interface {
	Get(ctx context.Context) (*dto.DiscountSettingsResponse, error)
	Update(ctx context.Context, req dto.UpdateDiscountSettingsRequest) (*dto.DiscountSettingsResponse, error)
}

type discountService struct {
	repo repository.DiscountRepository
}

func NewDiscountService(repo repository.DiscountRepository) DiscountService {
	return &discountService{repo: repo}
}

func (s *discountService) Get(ctx context.Context) (*dto.DiscountSettingsResponse, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return discountToResponse(settings), nil
}

func (s *discountService) Update(ctx context.Context, req dto.UpdateDiscountSettingsRequest) (*dto.DiscountSettingsResponse, error) {
	settings := &model.DiscountSettings{
		WholesaleMinUnits:        req.WholesaleMinUnits,
		DiscountType:             req.DiscountType,
		WholesaleDiscountPercent: req.WholesaleDiscountPercent,
		WholesaleDiscountAmount:  req.WholesaleDiscountAmount,
	}
	if err := s.repo.Update(ctx, settings); err != nil {
		return nil, err
	}
	return discountToResponse(settings), nil
}

func discountToResponse(s *model.DiscountSettings) *dto.DiscountSettingsResponse {
	return &dto.DiscountSettingsResponse{
		WholesaleMinUnits:        s.WholesaleMinUnits,
		DiscountType:             s.DiscountType,
		WholesaleDiscountPercent: s.WholesaleDiscountPercent,
		WholesaleDiscountAmount:  s.WholesaleDiscountAmount,
	}
}
