package repository

import (
	"app/internal/domain/model"
	"context"
	"time"
)

// 失効台帳への追記・参照
type RevokedTokenRepository interface {
	// 1行追記。同じjtiの二重追記はErrConflict
	Create(ctx context.Context, token *model.RevokedToken) error
	// jtiが台帳に載っているか。認証ゲートが毎リクエスト呼ぶ
	ExistsByJTI(ctx context.Context, jti string) (bool, error)
	// cutoffより古い行を削除して件数を返す（cron用）
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
