package model

import "time"

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// RevokedTokenは失効済みJWTのjtiを記録する台帳。
// jtiが載った時点でそのトークンは自然期限に関係なく無効。
type RevokedToken struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	JTI       string    `gorm:"column:jti;type:varchar(36);uniqueIndex;not null"`
	TokenType TokenType `gorm:"type:varchar(10);not null"`
	UserID    int64     `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (RevokedToken) TableName() string {
	return "token_blocklist"
}
