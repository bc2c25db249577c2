package server

import (
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/token"

	"github.com/labstack/echo/v4"
)

// Handlersはルート登録に必要なハンドラ一式
type Handlers struct {
	Auth         *handler.AuthHandler
	Todos        *handler.TodoHandler
	Achievements *handler.AchievementHandler
	Plans        *handler.PlanHandler
	Profile      *handler.ProfileHandler
}

// RegisterRoutesは全エンドポイントを登録する。
// リソース系は全部accessトークンのゲートを通る。
func RegisterRoutes(e *echo.Echo, h Handlers, tm *token.Manager, blocklist repository.RevokedTokenRepository) {
	access := middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess)

	h.Auth.RegisterRoutes(e, tm, blocklist)
	h.Todos.RegisterRoutes(e, access)
	h.Achievements.RegisterRoutes(e, access)
	h.Plans.RegisterRoutes(e, access)
	h.Profile.RegisterRoutes(e, access)
}
