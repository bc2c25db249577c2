package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/token"

	"golang.org/x/crypto/bcrypt"
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateRegister(ctx context.Context, username, email, password string) error
	ValidateLogin(ctx context.Context, email, password string) error
	ValidateChangePassword(ctx context.Context, newPassword string) error
}

type UserDTO struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type RegisterOutput struct {
	Message string  `json:"message"`
	User    UserDTO `json:"user"`
}

type LoginInput struct {
	Email    string
	Password string
}

// ログイン成功時はaccess+refreshの2枚組を返す
type LoginOutput struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshOutput struct {
	AccessToken string `json:"access_token"`
}

type MessageOutput struct {
	Message string `json:"message"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	blocklist repository.RevokedTokenRepository
	tokens    *token.Manager
	validator AuthValidator
}

func NewAuthUsecase(
	users repository.UserRepository,
	blocklist repository.RevokedTokenRepository,
	tokens *token.Manager,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		blocklist: blocklist,
		tokens:    tokens,
		validator: validator,
	}
}

// Registerは会員登録。username/emailの重複は409。
// 事前チェックはすり抜けることがあるので、unique制約違反（ErrConflict）も409に落とす。
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	if err := u.validator.ValidateRegister(ctx, in.Username, in.Email, in.Password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// 重複の事前チェック
	if existing, err := u.users.FindByUsername(ctx, in.Username); err == nil && existing != nil {
		return nil, NewHTTPError(http.StatusConflict, "Username already exists")
	} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if existing, err := u.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, NewHTTPError(http.StatusConflict, "Email already registered")
	} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// 空のProfileを同時に作る（1:1）
	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(pwHash),
		Profile:      &model.Profile{},
	}

	if err := u.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// レースで制約に当たった（事前チェック後に他リクエストが先行）
			return nil, NewHTTPError(http.StatusConflict, "Username or email already exists")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return &RegisterOutput{
		Message: "User registered successfully",
		User:    toUserDTO(user),
	}, nil
}

// Loginはメール+パスワード認証。
// 「emailが無い」と「パスワード違い」は同じ401にする（列挙対策）。
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	if err := u.validator.ValidateLogin(ctx, in.Email, in.Password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := u.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	// 直接ログインなのでaccessはfresh
	pair, err := u.tokens.IssuePair(user.ID, true)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &LoginOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Refreshは新しいaccessトークンだけを発行する（fresh=false）。
// refreshトークン自体はローテーションしない。
func (u *AuthUsecase) Refresh(ctx context.Context, userID int64) (*RefreshOutput, error) {
	access, err := u.tokens.IssueAccess(userID, false)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &RefreshOutput{AccessToken: access}, nil
}

// Logoutは提示されたトークンのjtiを台帳に載せる。
// 同じjtiの二重revokeは「すでに目的の状態」なので成功扱い。
func (u *AuthUsecase) Logout(ctx context.Context, userID int64, jti string, tokenType model.TokenType) (*MessageOutput, error) {
	err := u.blocklist.Create(ctx, &model.RevokedToken{
		JTI:       jti,
		TokenType: tokenType,
		UserID:    userID,
	})
	if err != nil && !errors.Is(err, repository.ErrConflict) {
		return nil, NewHTTPError(http.StatusInternalServerError, "Could not process logout request.")
	}

	if tokenType == model.TokenTypeRefresh {
		return &MessageOutput{Message: "Refresh token revoked."}, nil
	}
	return &MessageOutput{Message: "Access token revoked. User logged out."}, nil
}

// ChangePasswordは再ハッシュして保存するだけ。
// 既発行のトークンはrevokeしない（freshガードが前段の防御）。
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID int64, newPassword string) (*MessageOutput, error) {
	if err := u.validator.ValidateChangePassword(ctx, newPassword); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	if err := u.users.UpdatePasswordHash(ctx, userID, string(pwHash)); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "Could not update password.")
	}

	return &MessageOutput{Message: "Password updated successfully."}, nil
}

// Meは認証済みユーザーの公開フィールドを返す
func (u *AuthUsecase) Me(ctx context.Context, userID int64) (*UserDTO, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toUserDTO(user)
	return &dto, nil
}

func toUserDTO(u *model.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: formatTime(u.CreatedAt),
		UpdatedAt: formatTime(u.UpdatedAt),
	}
}
