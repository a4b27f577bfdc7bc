package repository

import (
	"context"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransferRepository interface {
	Create(ctx context.Context, t *model.TransferRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.TransferRequest, error)
	// FindForUpdateTx re-reads the transfer inside tx under SELECT ... FOR UPDATE.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.TransferRequest, error)
	List(ctx context.Context, filter dto.TransferFilter) ([]model.TransferRequest, int64, error)
	UpdateTx(tx *gorm.DB, t *model.TransferRequest) error
	DB() *gorm.DB
}

type transferRepo struct{ db *gorm.DB }

func NewTransferRepository(db *gorm.DB) TransferRepository { return &transferRepo{db: db} }

func (r *transferRepo) Create(ctx context.Context, t *model.TransferRequest) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *transferRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.TransferRequest, error) {
	var t model.TransferRequest
	err := r.db.WithContext(ctx).
		Preload("Product").Preload("From").Preload("To").
		First(&t, id).Error
	return &t, err
}

func (r *transferRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.TransferRequest, error) {
	var t model.TransferRequest
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, id).Error
	return &t, err
}

func (r *transferRepo) List(ctx context.Context, filter dto.TransferFilter) ([]model.TransferRequest, int64, error) {
	var transfers []model.TransferRequest
	var total int64

	q := r.db.WithContext(ctx).Model(&model.TransferRequest{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.ProductID != "" {
		q = q.Where("product_id = ?", filter.ProductID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Product").Preload("From").Preload("To").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&transfers).Error
	return transfers, total, err
}

func (r *transferRepo) UpdateTx(tx *gorm.DB, t *model.TransferRequest) error {
	return tx.Save(t).Error
}

func (r *transferRepo) DB() *gorm.DB { return r.db }
