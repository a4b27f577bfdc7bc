package repository

import (
	"context"
	"regexp"
	"strconv"

	"github.com/mikoypft/lztmeat/internal/dto"
	"github.com/mikoypft/lztmeat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductionRepository interface {
	CreateTx(tx *gorm.DB, p *model.ProductionRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionRecord, error)
	// FindForUpdateTx re-reads the record inside tx under SELECT ... FOR UPDATE.
	FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.ProductionRecord, error)
	List(ctx context.Context, filter dto.ProductionFilter) ([]model.ProductionRecord, int64, error)
	UpdateTx(tx *gorm.DB, p *model.ProductionRecord) error
	AddIngredientsTx(tx *gorm.DB, rows []model.ProductionIngredient) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	// NextBatchNumber returns the next free "B%03d" token.
	NextBatchNumber(ctx context.Context) (string, error)
	DB() *gorm.DB
}

type productionRepo struct{ db *gorm.DB }

func NewProductionRepository(db *gorm.DB) ProductionRepository { return &productionRepo{db: db} }

func (r *productionRepo) CreateTx(tx *gorm.DB, p *model.ProductionRecord) error {
	return tx.Create(p).Error
}

func (r *productionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ProductionRecord, error) {
	var p model.ProductionRecord
	err := r.db.WithContext(ctx).
		Preload("Ingredients").Preload("Ingredients.Ingredient").
		First(&p, id).Error
	return &p, err
}

func (r *productionRepo) FindForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.ProductionRecord, error) {
	var p model.ProductionRecord
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Ingredients").First(&p, id).Error
	return &p, err
}

func (r *productionRepo) List(ctx context.Context, filter dto.ProductionFilter) ([]model.ProductionRecord, int64, error) {
	var records []model.ProductionRecord
	var total int64

	q := r.db.WithContext(ctx).Model(&model.ProductionRecord{})
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
	err := q.Preload("Ingredients").Preload("Ingredients.Ingredient").
		Order("created_at DESC").Offset(offset).Limit(filter.Limit).
		Find(&records).Error
	return records, total, err
}

func (r *productionRepo) UpdateTx(tx *gorm.DB, p *model.ProductionRecord) error {
	return tx.Save(p).Error
}

func (r *productionRepo) AddIngredientsTx(tx *gorm.DB, rows []model.ProductionIngredient) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func (r *productionRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Where("production_record_id = ?", id).Delete(&model.ProductionIngredient{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.ProductionRecord{}, id).Error
}

var batchNumberRe = regexp.MustCompile(`^B(\d+)$`)

func (r *productionRepo) NextBatchNumber(ctx context.Context) (string, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).Model(&model.ProductionRecord{}).
		Pluck("batch_number", &numbers).Error; err != nil {
		return "", err
	}
	max := 0
	for _, n := range numbers {
		m := batchNumberRe.FindStringSubmatch(n)
		if m == nil {
			continue
		}
		if v, err := strconv.Atoi(m[1]); err == nil && v > max {
			max = v
		}
	}
	return "B" + pad3(max+1), nil
}

func pad3(n int) string {
	s := strconv.Itoa(n)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}

func (r *productionRepo) DB() *gorm.DB { return r.db }
