package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
)

// StoreService manages retail locations. The production facility is seeded at
// startup and cannot be created or deactivated through this surface.
type StoreService interface {
	Create(ctx context.Context, req dto.CreateStoreRequest) (*dto.LocationResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.LocationResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateStoreRequest) (*dto.LocationResponse, error)
}

type storeService struct {
	locations repository.LocationRepository
}

func NewStoreService(locations repository.LocationRepository) StoreService {
	return &storeService{locations: locations}
}

func (s *storeService) Create(ctx context.Context, req dto.CreateStoreRequest) (*dto.LocationResponse, error) {
	l := model.Location{
		Name:    req.Name,
		Address: req.Address,
		Kind:    model.LocationKindStore,
		Status:  "active",
	}
	if err := s.locations.Create(ctx, &l); err != nil {
		return nil, err
	}
	return locationToResponse(&l), nil
}

func (s *storeService) Get(ctx context.Context, id uuid.UUID) (*dto.LocationResponse, error) {
	l, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	return locationToResponse(l), nil
}

func (s *storeService) List(ctx context.Context, includeInactive bool) ([]dto.LocationResponse, error) {
	locations, err := s.locations.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		items = append(items, *locationToResponse(&l))
	}
	return items, nil
}

func (s *storeService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateStoreRequest) (*dto.LocationResponse, error) {
	l, err := s.locations.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", id, ErrNotFound)
	}
	if l.Kind == model.LocationKindFacility && req.Status != nil && *req.Status != "active" {
		return nil, errors.New("the production facility cannot be deactivated")
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Address != nil {
		l.Address = req.Address
	}
	if req.Status != nil {
		l.Status = *req.Status
	}

	if err := s.locations.Update(ctx, l); err != nil {
		return nil, err
	}
	return locationToResponse(l), nil
}

func locationToResponse(l *model.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:      l.ID.String(),
		Name:    l.Name,
		Address: l.Address,
		Kind:    l.Kind,
		Status:  l.Status,
	}
}
