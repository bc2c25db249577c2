package middleware

import (
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey     = "user_id"     // int64
	CtxTokenJTIKey   = "token_jti"   // string
	CtxTokenTypeKey  = "token_type"  // model.TokenType
	CtxTokenFreshKey = "token_fresh" // bool
)

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// AuthJWTはbearerトークンの検証ゲート。
// 署名・期限を検証したあと、失効台帳を毎回照合する。
// requiredと違う種別のトークンは422。
func AuthJWT(tm *token.Manager, blocklist repository.RevokedTokenRepository, required model.TokenType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("missing authorization header"))
			}

			// Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("invalid authorization header"))
			}
			rawToken := strings.TrimSpace(parts[1])
			if rawToken == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("invalid authorization header"))
			}

			// 署名と期限を検証する
			claims, err := tm.Parse(rawToken)
			if err != nil {
				if errors.Is(err, token.ErrTokenExpired) {
					return c.JSON(http.StatusUnauthorized, errorJSON("token has expired"))
				}
				return c.JSON(http.StatusUnprocessableEntity, errorJSON("invalid token"))
			}

			// 種別チェック（refresh専用エンドポイントなど）
			if claims.TokenType != required {
				if required == model.TokenTypeRefresh {
					return c.JSON(http.StatusUnprocessableEntity, errorJSON("only refresh tokens are allowed"))
				}
				return c.JSON(http.StatusUnprocessableEntity, errorJSON("only access tokens are allowed"))
			}

			// subを1回だけint64に戻す
			userID, err := claims.UserID()
			if err != nil {
				return c.JSON(http.StatusUnprocessableEntity, errorJSON("invalid token"))
			}

			// 失効台帳の照合。載っていたら自然期限が残っていても401。
			revoked, err := blocklist.ExistsByJTI(c.Request().Context(), claims.ID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, errorJSON("internal error"))
			}
			if revoked {
				return c.JSON(http.StatusUnauthorized, errorJSON("token has been revoked"))
			}

			// contextへ保存
			c.Set(CtxUserIDKey, userID)
			c.Set(CtxTokenJTIKey, claims.ID)
			c.Set(CtxTokenTypeKey, claims.TokenType)
			c.Set(CtxTokenFreshKey, claims.Fresh)

			return next(c)
		}
	}
}

// RequireFreshはAuthJWTの後段に置くガード。
// パスワード変更などはログイン直後のトークンだけ通す。
func RequireFresh() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			fresh, ok := c.Get(CtxTokenFreshKey).(bool)
			if !ok || !fresh {
				return c.JSON(http.StatusUnauthorized, errorJSON("fresh token required"))
			}
			return next(c)
		}
	}
}

// UserIDFromContextはAuthJWTが入れたユーザーIDを取り出す。
func UserIDFromContext(c echo.Context) (int64, bool) {
	userID, ok := c.Get(CtxUserIDKey).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// TokenFromContextはAuthJWTが入れたjtiと種別を取り出す（logout用）。
func TokenFromContext(c echo.Context) (jti string, tokenType model.TokenType, ok bool) {
	jti, okJTI := c.Get(CtxTokenJTIKey).(string)
	tokenType, okType := c.Get(CtxTokenTypeKey).(model.TokenType)
	if !okJTI || !okType || jti == "" {
		return "", "", false
	}
	return jti, tokenType, true
}
