package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type futurePlanGormRepository struct {
	db *gorm.DB
}

func NewFuturePlanGormRepository(db *gorm.DB) domainrepo.FuturePlanRepository {
	return &futurePlanGormRepository{db: db}
}

func (r *futurePlanGormRepository) Create(ctx context.Context, p *model.FuturePlan) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *futurePlanGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.FuturePlan, error) {
	plans := []model.FuturePlan{}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("target_date ASC NULLS LAST").
		Order("created_at DESC").
		Find(&plans).Error

	if err != nil {
		return nil, err
	}

	return plans, nil
}

func (r *futurePlanGormRepository) FindByID(ctx context.Context, id int64) (*model.FuturePlan, error) {
	var p model.FuturePlan

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *futurePlanGormRepository) Update(ctx context.Context, p *model.FuturePlan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *futurePlanGormRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.FuturePlan{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}

	return nil
}
