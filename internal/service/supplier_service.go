package service

import (
	"context"
	"fmt"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context, includeInactive bool) ([]dto.SupplierResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	sup := model.Supplier{
		Name:        req.Name,
		ContactName: req.ContactName,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Active:      true,
	}
	if err := s.repo.Create(ctx, &sup); err != nil {
		return nil, err
	}
	return supplierToResponse(&sup), nil
}

func (s *supplierService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("supplier %s: %w", id, ErrNotFound)
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) List(ctx context.Context, includeInactive bool) ([]dto.SupplierResponse, error) {
	suppliers, err := s.repo.List(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, sup := range suppliers {
		items = append(items, *supplierToResponse(&sup))
	}
	return items, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("supplier %s: %w", id, ErrNotFound)
	}
	if req.Name != nil {
		sup.Name = *req.Name
	}
	if req.ContactName != nil {
		sup.ContactName = req.ContactName
	}
	if req.Email != nil {
		sup.Email = req.Email
	}
	if req.Phone != nil {
		sup.Phone = req.Phone
	}
	if req.Address != nil {
		sup.Address = req.Address
	}
	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return supplierToResponse(sup), nil
}

func (s *supplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("supplier %s: %w", id, ErrNotFound)
	}
	return s.repo.SoftDelete(ctx, id)
}

func supplierToResponse(s *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID.String(),
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		Address:     s.Address,
		Active:      s.Active,
	}
}
