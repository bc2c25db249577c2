package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /achievementsのHTTP
type AchievementHandler struct {
	uc *usecase.AchievementUsecase
}

// DI
func NewAchievementHandler(uc *usecase.AchievementUsecase) *AchievementHandler {
	return &AchievementHandler{uc: uc}
}

type AchievementRequest struct {
	Title               *string   `json:"title"`
	Description         *string   `json:"description"`
	QuantifiableResults *string   `json:"quantifiable_results"`
	CoreSkills          *[]string `json:"core_skills_json"`
	DateAchieved        *string   `json:"date_achieved"`
}

// /achievements, /achievements/:id を登録
func (h *AchievementHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/achievements")
	g.Use(authMW)

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

func (h *AchievementHandler) list(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.List(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AchievementHandler) create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AchievementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body must be JSON"})
	}

	in := usecase.CreateAchievementInput{
		Description:         req.Description,
		QuantifiableResults: req.QuantifiableResults,
		CoreSkills:          req.CoreSkills,
		DateAchieved:        req.DateAchieved,
	}
	if req.Title != nil {
		in.Title = *req.Title
	}

	out, err := h.uc.Create(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AchievementHandler) get(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	achievementID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), userID, achievementID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AchievementHandler) update(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	achievementID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req AchievementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body must be JSON"})
	}

	out, err := h.uc.Update(c.Request().Context(), userID, achievementID, usecase.UpdateAchievementInput{
		Title:               req.Title,
		Description:         req.Description,
		QuantifiableResults: req.QuantifiableResults,
		CoreSkills:          req.CoreSkills,
		DateAchieved:        req.DateAchieved,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AchievementHandler) delete(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	achievementID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), userID, achievementID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
