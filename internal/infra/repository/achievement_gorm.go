package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type achievementGormRepository struct {
	db *gorm.DB
}

func NewAchievementGormRepository(db *gorm.DB) domainrepo.AchievementRepository {
	return &achievementGormRepository{db: db}
}

func (r *achievementGormRepository) Create(ctx context.Context, a *model.Achievement) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *achievementGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Achievement, error) {
	items := []model.Achievement{}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date_achieved DESC NULLS LAST").
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *achievementGormRepository) FindByID(ctx context.Context, id int64) (*model.Achievement, error) {
	var a model.Achievement

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&a).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *achievementGormRepository) Update(ctx context.Context, a *model.Achievement) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *achievementGormRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Achievement{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}

	return nil
}
