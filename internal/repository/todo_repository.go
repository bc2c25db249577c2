package repository

import (
	"app/internal/domain/model"
	"context"
)

type TodoRepository interface {
	Create(ctx context.Context, item *model.TodoItem) error
	// 所有者のTODOをcreated_at降順で全件
	ListByUserID(ctx context.Context, userID int64) ([]model.TodoItem, error)
	FindByID(ctx context.Context, id int64) (*model.TodoItem, error)
	Update(ctx context.Context, item *model.TodoItem) error
	DeleteByID(ctx context.Context, id int64) error
}
