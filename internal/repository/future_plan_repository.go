package repository

import (
	"app/internal/domain/model"
	"context"
)

type FuturePlanRepository interface {
	Create(ctx context.Context, p *model.FuturePlan) error
	// target_date昇順（NULLは最後）、同値はcreated_at降順
	ListByUserID(ctx context.Context, userID int64) ([]model.FuturePlan, error)
	FindByID(ctx context.Context, id int64) (*model.FuturePlan, error)
	Update(ctx context.Context, p *model.FuturePlan) error
	DeleteByID(ctx context.Context, id int64) error
}
