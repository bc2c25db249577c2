package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// ユーザーの保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成（空のProfileも同時に作る）
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する
	FindByID(ctx context.Context, id int64) (*model.User, error)
	// メールからユーザーを1件取得する
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// ユーザー名からユーザーを1件取得する
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// パスワードハッシュの更新
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
}
