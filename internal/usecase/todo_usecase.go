package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// TodoUsecaseは/todoの業務ロジック。全操作が所有者フィルタ付き。
type TodoUsecase struct {
	todos repo.TodoRepository
}

func NewTodoUsecase(todos repo.TodoRepository) *TodoUsecase {
	return &TodoUsecase{todos: todos}
}

type TodoDTO struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	DueDate        *string `json:"due_date"`
	Status         string  `json:"status"`
	Priority       string  `json:"priority"`
	IsCurrentFocus bool    `json:"is_current_focus"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	CompletedAt    *string `json:"completed_at"`
}

// 部分更新はpointer=未指定。optionalな文字列・日付は空文字でクリア。
type CreateTodoInput struct {
	Title          string
	Description    *string
	DueDate        *string
	Status         *string
	Priority       *string
	IsCurrentFocus *bool
}

type UpdateTodoInput struct {
	Title          *string
	Description    *string
	DueDate        *string
	Status         *string
	Priority       *string
	IsCurrentFocus *bool
}

func validTodoStatus(s string) bool {
	switch model.TodoStatus(s) {
	case model.TodoStatusPending, model.TodoStatusInProgress, model.TodoStatusCompleted, model.TodoStatusDeferred:
		return true
	}
	return false
}

func validTodoPriority(s string) bool {
	switch model.TodoPriority(s) {
	case model.TodoPriorityLow, model.TodoPriorityMedium, model.TodoPriorityHigh:
		return true
	}
	return false
}

func (u *TodoUsecase) Create(ctx context.Context, userID int64, in CreateTodoInput) (*TodoDTO, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "Title is required and must be a non-empty string")
	}

	item := &model.TodoItem{
		UserID:   userID,
		Title:    title,
		Status:   model.TodoStatusPending,
		Priority: model.TodoPriorityMedium,
	}

	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			item.Description = &d
		}
	}

	if in.DueDate != nil && *in.DueDate != "" {
		d, err := parseDate(*in.DueDate)
		if err != nil {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid due_date format. Please use YYYY-MM-DD.")
		}
		item.DueDate = &d
	}

	if in.Status != nil {
		s := strings.ToLower(*in.Status)
		if !validTodoStatus(s) {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid status. Allowed values are: pending, in_progress, completed, deferred")
		}
		item.Status = model.TodoStatus(s)
	}

	if in.Priority != nil {
		p := strings.ToLower(*in.Priority)
		if !validTodoPriority(p) {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid priority. Allowed values are: low, medium, high")
		}
		item.Priority = model.TodoPriority(p)
	}

	if in.IsCurrentFocus != nil {
		item.IsCurrentFocus = *in.IsCurrentFocus
	}

	if item.Status == model.TodoStatusCompleted {
		now := time.Now()
		item.CompletedAt = &now
	}

	if err := u.todos.Create(ctx, item); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toTodoDTO(item)
	return &dto, nil
}

func (u *TodoUsecase) List(ctx context.Context, userID int64) ([]TodoDTO, error) {
	items, err := u.todos.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dtos := make([]TodoDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toTodoDTO(&items[i]))
	}
	return dtos, nil
}

func (u *TodoUsecase) Get(ctx context.Context, userID, todoID int64) (*TodoDTO, error) {
	item, err := u.findOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	dto := toTodoDTO(item)
	return &dto, nil
}

// Updateは「送られてきたフィールドだけ」を更新する。
// statusがcompletedに入ったらcompleted_atを打ち、外れたらクリアする。
func (u *TodoUsecase) Update(ctx context.Context, userID, todoID int64, in UpdateTodoInput) (*TodoDTO, error) {
	item, err := u.findOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "Title must be a non-empty string if provided")
		}
		item.Title = title
	}

	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			item.Description = &d
		} else {
			item.Description = nil
		}
	}

	if in.DueDate != nil {
		if *in.DueDate == "" {
			item.DueDate = nil
		} else {
			d, err := parseDate(*in.DueDate)
			if err != nil {
				return nil, NewHTTPError(http.StatusBadRequest, "Invalid due_date format. Please use YYYY-MM-DD.")
			}
			item.DueDate = &d
		}
	}

	if in.Status != nil {
		s := strings.ToLower(*in.Status)
		if !validTodoStatus(s) {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid status. Allowed values are: pending, in_progress, completed, deferred")
		}
		item.Status = model.TodoStatus(s)

		if item.Status == model.TodoStatusCompleted {
			if item.CompletedAt == nil {
				now := time.Now()
				item.CompletedAt = &now
			}
		} else {
			item.CompletedAt = nil
		}
	}

	if in.Priority != nil {
		p := strings.ToLower(*in.Priority)
		if !validTodoPriority(p) {
			return nil, NewHTTPError(http.StatusBadRequest, "Invalid priority. Allowed values are: low, medium, high")
		}
		item.Priority = model.TodoPriority(p)
	}

	if in.IsCurrentFocus != nil {
		item.IsCurrentFocus = *in.IsCurrentFocus
	}

	if err := u.todos.Update(ctx, item); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	dto := toTodoDTO(item)
	return &dto, nil
}

func (u *TodoUsecase) Delete(ctx context.Context, userID, todoID int64) error {
	if _, err := u.findOwned(ctx, userID, todoID); err != nil {
		return err
	}

	if err := u.todos.DeleteByID(ctx, todoID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "To-do item not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// 404（無い）と403（他人の行）を区別する
func (u *TodoUsecase) findOwned(ctx context.Context, userID, todoID int64) (*model.TodoItem, error) {
	item, err := u.todos.FindByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, NewHTTPError(http.StatusNotFound, "To-do item not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if item.UserID != userID {
		return nil, NewHTTPError(http.StatusForbidden, "Forbidden: You do not have permission to access this item")
	}

	return item, nil
}

func toTodoDTO(item *model.TodoItem) TodoDTO {
	return TodoDTO{
		ID:             item.ID,
		UserID:         item.UserID,
		Title:          item.Title,
		Description:    item.Description,
		DueDate:        formatDate(item.DueDate),
		Status:         string(item.Status),
		Priority:       string(item.Priority),
		IsCurrentFocus: item.IsCurrentFocus,
		CreatedAt:      formatTime(item.CreatedAt),
		UpdatedAt:      formatTime(item.UpdatedAt),
		CompletedAt:    formatTimePtr(item.CompletedAt),
	}
}
