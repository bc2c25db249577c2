package token

import (
	"errors"
	"strconv"
	"time"

	"app/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	// 署名・形式が不正
	ErrInvalidToken = errors.New("invalid token")
	// 期限切れ
	ErrTokenExpired = errors.New("token expired")
	// subが数値のユーザーIDになっていない
	ErrInvalidSubject = errors.New("invalid subject")
)

// ClaimsはこのアプリのJWTペイロード。
// subはユーザーIDの10進文字列、jtiはトークンごとのUUID。
type Claims struct {
	TokenType model.TokenType `json:"type"`
	Fresh     bool            `json:"fresh,omitempty"`
	jwt.RegisteredClaims
}

// UserID はsubをint64に戻す。ゲートで1回だけパースする。
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidSubject
	}
	return id, nil
}

type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ManagerはHS256でトークンを発行・検証する。
// 副作用なし。署名鍵は起動時に渡される（リクエスト時に失敗しない）。
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// IssueAccess はアクセストークンを1枚発行する。
// freshは直接ログインの直後だけtrue。refresh経由はfalse。
func (m *Manager) IssueAccess(userID int64, fresh bool) (string, error) {
	return m.sign(userID, model.TokenTypeAccess, fresh, m.accessTTL)
}

// IssueRefresh はリフレッシュトークンを1枚発行する。
func (m *Manager) IssueRefresh(userID int64) (string, error) {
	return m.sign(userID, model.TokenTypeRefresh, false, m.refreshTTL)
}

// IssuePair はログイン時のaccess+refreshの2枚組を発行する。
// それぞれ独立したjti・期限を持つ。
func (m *Manager) IssuePair(userID int64, fresh bool) (Pair, error) {
	access, err := m.IssueAccess(userID, fresh)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := m.IssueRefresh(userID)
	if err != nil {
		return Pair{}, err
	}

	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

func (m *Manager) sign(userID int64, tokenType model.TokenType, fresh bool, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		TokenType: tokenType,
		Fresh:     fresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Parse は署名と期限を検証してClaimsを返す。
// 台帳の照合は呼び出し側（ミドルウェア）の責務。
func (m *Manager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if t == nil || !t.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != model.TokenTypeAccess && claims.TokenType != model.TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
