package repository

import (
	"app/internal/domain/model"
	"context"
)

type AchievementRepository interface {
	Create(ctx context.Context, a *model.Achievement) error
	// date_achieved降順（NULLは最後）、同値はcreated_at降順
	ListByUserID(ctx context.Context, userID int64) ([]model.Achievement, error)
	FindByID(ctx context.Context, id int64) (*model.Achievement, error)
	Update(ctx context.Context, a *model.Achievement) error
	DeleteByID(ctx context.Context, id int64) error
}
