package handler

import (
	"errors"
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /anchor/profileのHTTP
type ProfileHandler struct {
	uc *usecase.ProfileUsecase
}

// DI
func NewProfileHandler(uc *usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

type ProfileRequest struct {
	ProfessionalTitle *string `json:"professional_title"`
	OneLinerBio       *string `json:"one_liner_bio"`
	Skill             *string `json:"skill"`
	Summary           *string `json:"summary"`
}

// /anchor/profile を登録
func (h *ProfileHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/anchor")
	g.Use(authMW)

	g.GET("/profile", h.get)
	g.PUT("/profile", h.update)
}

func (h *ProfileHandler) get(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.Get(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) update(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body must be JSON"})
	}

	out, err := h.uc.Update(c.Request().Context(), userID, usecase.UpdateProfileInput{
		ProfessionalTitle: req.ProfessionalTitle,
		OneLinerBio:       req.OneLinerBio,
		Skill:             req.Skill,
		Summary:           req.Summary,
	})
	if err != nil {
		// 既知フィールドが1つも無いPUTはエラー扱いにしない（元仕様）
		if errors.Is(err, usecase.ErrNoProfileFields) {
			return c.JSON(http.StatusOK, usecase.MessageOutput{Message: "No relevant profile fields provided for update."})
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
