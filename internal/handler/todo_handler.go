package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /todoのHTTP
type TodoHandler struct {
	uc *usecase.TodoUsecase
}

// DI
func NewTodoHandler(uc *usecase.TodoUsecase) *TodoHandler {
	return &TodoHandler{uc: uc}
}

type TodoRequest struct {
	Title          *string `json:"title"`
	Description    *string `json:"description"`
	DueDate        *string `json:"due_date"`
	Status         *string `json:"status"`
	Priority       *string `json:"priority"`
	IsCurrentFocus *bool   `json:"is_current_focus"`
}

// /todo/todos, /todo/todos/:id を登録
func (h *TodoHandler) RegisterRoutes(e *echo.Echo, authMW echo.MiddlewareFunc) {
	g := e.Group("/todo")
	g.Use(authMW)

	g.GET("/todos", h.list)
	g.POST("/todos", h.create)
	g.GET("/todos/:id", h.get)
	g.PUT("/todos/:id", h.update)
	g.DELETE("/todos/:id", h.delete)
}

func (h *TodoHandler) list(c echo.Context) error {
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

func (h *TodoHandler) create(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req TodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body must be JSON"})
	}

	in := usecase.CreateTodoInput{
		Description:    req.Description,
		DueDate:        req.DueDate,
		Status:         req.Status,
		Priority:       req.Priority,
		IsCurrentFocus: req.IsCurrentFocus,
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

func (h *TodoHandler) get(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	todoID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.Get(c.Request().Context(), userID, todoID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *TodoHandler) update(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	todoID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req TodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Request body must be JSON"})
	}

	out, err := h.uc.Update(c.Request().Context(), userID, todoID, usecase.UpdateTodoInput{
		Title:          req.Title,
		Description:    req.Description,
		DueDate:        req.DueDate,
		Status:         req.Status,
		Priority:       req.Priority,
		IsCurrentFocus: req.IsCurrentFocus,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *TodoHandler) delete(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	todoID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), userID, todoID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
