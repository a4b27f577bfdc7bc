package repository

import (
	"context"

	"github.com/mikoypft/lztmeat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	// FindFacility returns the singular Production Facility row.
	FindFacility(ctx context.Context) (*model.Location, error)
	List(ctx context.Context, includeInactive bool) ([]model.Location, error)
	Update(ctx context.Context, l *model.Location) error
}

type locationRepo struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) LocationRepository { return &locationRepo{db: db} }

func (r *locationRepo) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var l model.Location
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *locationRepo) FindFacility(ctx context.Context) (*model.Location, error) {
	var l model.Location
	err := r.db.WithContext(ctx).Where("kind = ?", model.LocationKindFacility).First(&l).Error
	return &l, err
}

func (r *locationRepo) List(ctx context.Context, includeInactive bool) ([]model.Location, error) {
	var locations []model.Location
	q := r.db.WithContext(ctx).Order("kind ASC, name ASC")
	if !includeInactive {
		q = q.Where("status = 'active'")
	}
	err := q.Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Update(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}
