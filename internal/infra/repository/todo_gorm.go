package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type todoGormRepository struct {
	db *gorm.DB
}

func NewTodoGormRepository(db *gorm.DB) domainrepo.TodoRepository {
	return &todoGormRepository{db: db}
}

func (r *todoGormRepository) Create(ctx context.Context, item *model.TodoItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *todoGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.TodoItem, error) {
	items := []model.TodoItem{}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *todoGormRepository) FindByID(ctx context.Context, id int64) (*model.TodoItem, error) {
	var item model.TodoItem

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainrepo.ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

func (r *todoGormRepository) Update(ctx context.Context, item *model.TodoItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *todoGormRepository) DeleteByID(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TodoItem{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainrepo.ErrNotFound
	}

	return nil
}
