package repository

import (
	"app/internal/domain/model"
	"context"
)

// UserProfileはUser1人につき1行
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	FindByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
}
