package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// transferTransitions: stock moves only on the transition into "completed";
// cancellation and rejection are terminal and never touch the ledger.
var transferTransitions = map[string][]string{
	model.TransferPending:   {model.TransferInTransit, model.TransferCancelled, model.TransferRejected},
	model.TransferInTransit: {model.TransferCompleted, model.TransferCancelled},
	model.TransferCompleted: {},
	model.TransferCancelled: {},
	model.TransferRejected:  {},
}

type TransferService interface {
	Request(ctx context.Context, userID uuid.UUID, req dto.RequestTransferRequest) (*dto.TransferResponse, error)
	SetStatus(ctx context.Context, id uuid.UUID, status string) (*dto.TransferResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TransferResponse, error)
	List(ctx context.Context, filter dto.TransferFilter) (*dto.TransferListResponse, error)
}

type transferService struct {
	repo      repository.TransferRepository
	products  repository.ProductRepository
	locations repository.LocationRepository
	ledger    LedgerService
	inventory InventoryService
}

func NewTransferService(
	repo repository.TransferRepository,
	products repository.ProductRepository,
	locations repository.LocationRepository,
	ledger LedgerService,
	inventory InventoryService,
) TransferService {
	return &transferService{
		repo:      repo,
		products:  products,
		locations: locations,
		ledger:    ledger,
		inventory: inventory,
	}
}

// Request opens a transfer in "pending". Stock is validated and moved only
// when the transfer later completes, so a pending request can over-ask
// without blocking anything.
func (s *transferService) Request(ctx context.Context, userID uuid.UUID, req dto.RequestTransferRequest) (*dto.TransferResponse, error) {
	if !req.Quantity.IsPositive() {
		return nil, ErrInvalidQuantity
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	fromID, err := uuid.Parse(req.FromLocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid from_location_id: %w", err)
	}
	toID, err := uuid.Parse(req.ToLocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid to_location_id: %w", err)
	}
	if fromID == toID {
		return nil, ErrInvalidRoute
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, fmt.Errorf("product %s: %w", req.ProductID, ErrNotFound)
	}
	if _, err := s.locations.FindByID(ctx, fromID); err != nil {
		return nil, fmt.Errorf("location %s: %w", req.FromLocationID, ErrNotFound)
	}
	if _, err := s.locations.FindByID(ctx, toID); err != nil {
		return nil, fmt.Errorf("location %s: %w", req.ToLocationID, ErrNotFound)
	}

	transfer := model.TransferRequest{
		ProductID:      productID,
		Quantity:       req.Quantity,
		FromLocationID: fromID,
		ToLocationID:   toID,
		Status:         model.TransferPending,
		TransferredBy:  userID,
	}
	if err := s.repo.Create(ctx, &transfer); err != nil {
		return nil, err
	}

	full, err := s.repo.FindByID(ctx, transfer.ID)
	if err != nil {
		return transferToResponse(&transfer), nil
	}
	return transferToResponse(full), nil
}

// SetStatus drives the state machine. Completing a transfer debits the source
// and credits the destination atomically; an insufficient source balance rolls
// the whole transition back and the transfer stays in-transit.
func (s *transferService) SetStatus(ctx context.Context, id uuid.UUID, status string) (*dto.TransferResponse, error) {
	transfer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transfer %s: %w", id, ErrNotFound)
	}

	if !transitionAllowed(transferTransitions, transfer.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, transfer.Status, status)
	}

	completing := status == model.TransferCompleted

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Re-validated on a row-locked read: two racing completions cannot
		// both pass the transition check and move the stock twice.
		locked, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		if !transitionAllowed(transferTransitions, locked.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, locked.Status, status)
		}
		if completing && !locked.LedgerApplied {
			ref := locked.ID
			err := s.ledger.MoveTx(tx, locked.ProductID, locked.Quantity,
				locked.FromLocationID, locked.ToLocationID,
				fmt.Sprintf("Transfer %s", locked.ID), &ref)
			if err != nil {
				return err
			}
			locked.LedgerApplied = true
		}
		locked.Status = status
		if err := s.repo.UpdateTx(tx, locked); err != nil {
			return err
		}
		transfer.Status = locked.Status
		transfer.LedgerApplied = locked.LedgerApplied
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if completing && s.inventory != nil {
		s.inventory.InvalidateCache(ctx)
	}
	return transferToResponse(transfer), nil
}

func (s *transferService) Get(ctx context.Context, id uuid.UUID) (*dto.TransferResponse, error) {
	transfer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transfer %s: %w", id, ErrNotFound)
	}
	return transferToResponse(transfer), nil
}

func (s *transferService) List(ctx context.Context, filter dto.TransferFilter) (*dto.TransferListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	transfers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransferResponse, 0, len(transfers))
	for _, transfer := range transfers {
		items = append(items, *transferToResponse(&transfer))
	}
	return &dto.TransferListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func transferToResponse(t *model.TransferRequest) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:             t.ID.String(),
		ProductID:      t.ProductID.String(),
		Quantity:       t.Quantity,
		FromLocationID: t.FromLocationID.String(),
		ToLocationID:   t.ToLocationID.String(),
		Status:         t.Status,
		TransferredBy:  t.TransferredBy.String(),
		CreatedAt:      t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.Format(time.RFC3339),
	}
	if t.Product != nil {
		resp.Product = t.Product.Name
	}
	if t.From != nil {
		resp.From = t.From.Name
	}
	if t.To != nil {
		resp.To = t.To.Name
	}
	return resp
}
