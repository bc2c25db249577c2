package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
	domainrepo "app/internal/repository"

	"gorm.io/gorm"
)

type revokedTokenGormRepository struct {
	db *gorm.DB
}

// GORM実装
func NewRevokedTokenRepository(db *gorm.DB) domainrepo.RevokedTokenRepository {
	return &revokedTokenGormRepository{db: db}
}

// 台帳に1行追記。jtiのunique違反はErrConflict（=すでにrevoke済み）。
func (r *revokedTokenGormRepository) Create(ctx context.Context, token *model.RevokedToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		if isUniqueViolation(err) {
			return domainrepo.ErrConflict
		}
		return err
	}
	return nil
}

// jtiが台帳にあるか。uniqueインデックスの1件lookup。
func (r *revokedTokenGormRepository) ExistsByJTI(ctx context.Context, jti string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.RevokedToken{}).
		Where("jti = ?", jti).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// cutoffより古い行を削除。元のトークンはとっくに期限切れなので安全。
func (r *revokedTokenGormRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.RevokedToken{})

	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
