package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"
	"github.com/mikoypft/lztmeat/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	inventoryCacheTTL     = 5 * time.Minute
	inventoryVersionKey   = "inventory:version"
	inventorySnapshotKeyF = "inventory:v%d:%s"
)

// InventoryService reads inventory and applies manual adjustments.
// Reads go through a Redis snapshot cache keyed by a version counter; every
// ledger mutation bumps the counter so stale snapshots are never used for
// validation decisions — the DB ledger stays the single source of truth.
type InventoryService interface {
	GetInventory(ctx context.Context, filter dto.InventoryFilter) ([]dto.InventoryRecordResponse, error)
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.InventoryRecordResponse, error)
	ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error)
	// InvalidateCache bumps the snapshot version. Called by every service
	// that commits a ledger mutation.
	InvalidateCache(ctx context.Context)
}

type inventoryService struct {
	inventory repository.InventoryRepository
	movements repository.MovementRepository
	ledger    LedgerService
	rdb       *redis.Client
}

func NewInventoryService(
	inventory repository.InventoryRepository,
	movements repository.MovementRepository,
	ledger LedgerService,
	rdb *redis.Client,
) InventoryService {
	return &inventoryService{inventory: inventory, movements: movements, ledger: ledger, rdb: rdb}
}

func (s *inventoryService) GetInventory(ctx context.Context, filter dto.InventoryFilter) ([]dto.InventoryRecordResponse, error) {
	var locationID *uuid.UUID
	if filter.LocationID != "" {
		id, err := uuid.Parse(filter.LocationID)
		if err != nil {
			return nil, fmt.Errorf("invalid location_id: %w", err)
		}
		locationID = &id
	}

	cacheKey := s.snapshotKey(ctx, filter.LocationID)
	if s.rdb != nil && cacheKey != "" {
		if raw, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cached []dto.InventoryRecordResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	records, err := s.inventory.List(ctx, locationID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.InventoryRecordResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, inventoryToResponse(&rec))
	}

	if s.rdb != nil && cacheKey != "" {
		if raw, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, cacheKey, raw, inventoryCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *inventoryService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest) (*dto.InventoryRecordResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product_id: %w", err)
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location_id: %w", err)
	}
	if req.Delta.IsZero() {
		return nil, ErrInvalidQuantity
	}

	var after dto.InventoryRecordResponse
	txErr := runTx(ctx, s.inventory.DB(), func(tx *gorm.DB) error {
		var newQty decimal.Decimal
		var err error
		if req.Delta.IsPositive() {
			newQty, err = s.ledger.CreditTx(tx, productID, locationID, req.Delta, MovementAdjustment, req.Reason, nil)
		} else {
			newQty, err = s.ledger.DebitTx(tx, productID, locationID, req.Delta.Neg(), MovementAdjustment, req.Reason, nil)
		}
		if err != nil {
			return err
		}
		after = dto.InventoryRecordResponse{
			ProductID:  req.ProductID,
			LocationID: req.LocationID,
			Quantity:   newQty,
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.InvalidateCache(ctx)
	return &after, nil
}

func (s *inventoryService) ListMovements(ctx context.Context, filter dto.MovementFilter) (*dto.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	movements, total, err := s.movements.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		var ref *string
		if m.ReferenceID != nil {
			r := m.ReferenceID.String()
			ref = &r
		}
		items = append(items, dto.MovementResponse{
			ID:             m.ID.String(),
			ProductID:      m.ProductID.String(),
			LocationID:     m.LocationID.String(),
			Kind:           m.Kind,
			Quantity:       m.Quantity,
			QuantityBefore: m.QuantityBefore,
			QuantityAfter:  m.QuantityAfter,
			Reason:         m.Reason,
			ReferenceID:    ref,
			CreatedAt:      m.CreatedAt.Format(time.RFC3339),
		})
	}
	return &dto.MovementListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *inventoryService) InvalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, inventoryVersionKey).Err(); err != nil {
		log.Warn().Err(err).Msg("inventory cache invalidation failed")
	}
}

// snapshotKey folds the current version counter into the cache key so that a
// bump atomically orphans every old snapshot. Returns "" when Redis is down.
func (s *inventoryService) snapshotKey(ctx context.Context, locationID string) string {
	if s.rdb == nil {
		return ""
	}
	ver, err := s.rdb.Get(ctx, inventoryVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return ""
	}
	scope := locationID
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf(inventorySnapshotKeyF, ver, scope)
}

func inventoryToResponse(rec *model.InventoryRecord) dto.InventoryRecordResponse {
	resp := dto.InventoryRecordResponse{
		ProductID:  rec.ProductID.String(),
		LocationID: rec.LocationID.String(),
		Quantity:   rec.Quantity,
	}
	if rec.Product != nil {
		resp.Product = rec.Product.Name
		resp.Unit = rec.Product.Unit
	}
	if rec.Location != nil {
		resp.Location = rec.Location.Name
	}
	return resp
}
