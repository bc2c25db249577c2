package validator

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"app/internal/usecase"
)

var (
	// 必須フィールド不足
	ErrMissingFields = errors.New("Missing required fields (username, email, password)")
	// ログインの必須フィールド不足
	ErrMissingLoginFields = errors.New("Missing required fields (email, password)")
	// email形式が不正
	ErrInvalidEmailFormat = errors.New("Invalid email format")
	// 新パスワード未指定
	ErrMissingNewPassword = errors.New("New password is required")
)

type authValidator struct{}

// Usecaseはinterfaceを依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username, email, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingFields
	}

	if !isEmailLike(email) {
		return ErrInvalidEmailFormat
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, email, password string) error {
	if strings.TrimSpace(email) == "" || password == "" {
		return ErrMissingLoginFields
	}

	return nil
}

// パスワード変更の入力を検証
func (v *authValidator) ValidateChangePassword(ctx context.Context, newPassword string) error {
	if newPassword == "" {
		return ErrMissingNewPassword
	}

	return nil
}

// メール形式をチェック
func isEmailLike(s string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(s))
	return err == nil
}
