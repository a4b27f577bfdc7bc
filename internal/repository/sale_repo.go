package repository

import (
	"context"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	CreateTx(tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	// FindForUpdateTx re-reads the sale inside tx under SELECT ... FOR UPDATE.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error
	UpdateReseco(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error
	NextTransactionNumber(ctx context.Context, tx *gorm.DB) (int, error)
	DB() *gorm.DB
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) CreateTx(tx *gorm.DB, s *model.Sale) error {
	return tx.Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items.Product").Preload("Location").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Items").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.LocationID != "" {
		q = q.Where("location_id = ?", filter.LocationID)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Product").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) UpdateStatusTx(tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("status", status).Error
}

func (r *saleRepo) UpdateReseco(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).Update("reseco", amount).Error
}

func (r *saleRepo) NextTransactionNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic transaction number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('sales_transaction_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) DB() *gorm.DB { return r.db }
