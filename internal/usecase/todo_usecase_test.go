package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: TodoRepository
// =====================

type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Create(ctx context.Context, item *model.TodoItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTodoRepository) ListByUserID(ctx context.Context, userID int64) ([]model.TodoItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.TodoItem)
	return items, args.Error(1)
}

func (m *MockTodoRepository) FindByID(ctx context.Context, id int64) (*model.TodoItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*model.TodoItem)
	return item, args.Error(1)
}

func (m *MockTodoRepository) Update(ctx context.Context, item *model.TodoItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTodoRepository) DeleteByID(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

// =====================
// Create
// =====================

func TestTodoUsecase_Create_Defaults(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("Create", mock.Anything, mock.MatchedBy(func(item *model.TodoItem) bool {
		// status/priorityのデフォルトと所有者の紐付け
		return item.UserID == 1 && item.Title == "Buy milk" &&
			item.Status == model.TodoStatusPending &&
			item.Priority == model.TodoPriorityMedium &&
			item.CompletedAt == nil
	})).Return(nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Create(ctx, 1, usecase.CreateTodoInput{Title: "  Buy milk  "})
	assert.NoError(t, err)
	assert.Equal(t, "Buy milk", out.Title)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "medium", out.Priority)

	todos.AssertExpectations(t)
}

func TestTodoUsecase_Create_EmptyTitle(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Create(ctx, 1, usecase.CreateTodoInput{Title: "   "})
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusBadRequest)

	todos.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTodoUsecase_Create_InvalidStatus(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Create(ctx, 1, usecase.CreateTodoInput{Title: "x", Status: strPtr("done")})
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusBadRequest)

	he, _ := usecase.AsHTTPError(err)
	assert.Equal(t, "Invalid status. Allowed values are: pending, in_progress, completed, deferred", he.Message)
}

func TestTodoUsecase_Create_InvalidPriority(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Create(ctx, 1, usecase.CreateTodoInput{Title: "x", Priority: strPtr("urgent")})
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusBadRequest)
}

func TestTodoUsecase_Create_BadDueDate(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Create(ctx, 1, usecase.CreateTodoInput{Title: "x", DueDate: strPtr("31-12-2026")})
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusBadRequest)

	he, _ := usecase.AsHTTPError(err)
	assert.Equal(t, "Invalid due_date format. Please use YYYY-MM-DD.", he.Message)
}

// completedで作成した場合はcompleted_atが即打たれる
func TestTodoUsecase_Create_CompletedSetsTimestamp(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("Create", mock.Anything, mock.MatchedBy(func(item *model.TodoItem) bool {
		return item.Status == model.TodoStatusCompleted && item.CompletedAt != nil
	})).Return(nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Create(ctx, 1, usecase.CreateTodoInput{Title: "x", Status: strPtr("completed")})
	assert.NoError(t, err)
	assert.NotNil(t, out.CompletedAt)

	todos.AssertExpectations(t)
}

// =====================
// Get / 所有権
// =====================

func TestTodoUsecase_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("FindByID", mock.Anything, int64(99)).Return(nil, repository.ErrNotFound)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Get(ctx, 1, 99)
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusNotFound)

	he, _ := usecase.AsHTTPError(err)
	assert.Equal(t, "To-do item not found", he.Message)
}

// 他人の行は404ではなく403
func TestTodoUsecase_Get_Forbidden(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("FindByID", mock.Anything, int64(5)).Return(&model.TodoItem{
		ID:     5,
		UserID: 2,
		Title:  "someone else's",
	}, nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Get(ctx, 1, 5)
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusForbidden)
}

// =====================
// Update
// =====================

func TestTodoUsecase_Update_PartialFieldsOnly(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	todos.On("FindByID", mock.Anything, int64(5)).Return(&model.TodoItem{
		ID:       5,
		UserID:   1,
		Title:    "old title",
		DueDate:  &due,
		Status:   model.TodoStatusPending,
		Priority: model.TodoPriorityLow,
	}, nil)

	todos.On("Update", mock.Anything, mock.MatchedBy(func(item *model.TodoItem) bool {
		// titleだけ変わり、他は保持される
		return item.Title == "new title" &&
			item.DueDate != nil &&
			item.Status == model.TodoStatusPending &&
			item.Priority == model.TodoPriorityLow
	})).Return(nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Update(ctx, 1, 5, usecase.UpdateTodoInput{Title: strPtr("new title")})
	assert.NoError(t, err)
	assert.Equal(t, "new title", out.Title)

	todos.AssertExpectations(t)
}

// 空文字のdue_dateはクリア扱い
func TestTodoUsecase_Update_ClearDueDate(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	todos.On("FindByID", mock.Anything, int64(5)).Return(&model.TodoItem{
		ID:      5,
		UserID:  1,
		Title:   "x",
		DueDate: &due,
		Status:  model.TodoStatusPending,
	}, nil)

	todos.On("Update", mock.Anything, mock.MatchedBy(func(item *model.TodoItem) bool {
		return item.DueDate == nil
	})).Return(nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Update(ctx, 1, 5, usecase.UpdateTodoInput{DueDate: strPtr("")})
	assert.NoError(t, err)
	assert.Nil(t, out.DueDate)
}

func TestTodoUsecase_Update_CompleteSetsCompletedAt(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("FindByID", mock.Anything, int64(5)).Return(&model.TodoItem{
		ID:     5,
		UserID: 1,
		Title:  "x",
		Status: model.TodoStatusInProgress,
	}, nil)

	todos.On("Update", mock.Anything, mock.MatchedBy(func(item *model.TodoItem) bool {
		return item.Status == model.TodoStatusCompleted && item.CompletedAt != nil
	})).Return(nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Update(ctx, 1, 5, usecase.UpdateTodoInput{Status: strPtr("completed")})
	assert.NoError(t, err)
	assert.NotNil(t, out.CompletedAt)
}

// completedから外れたらcompleted_atはクリア
func TestTodoUsecase_Update_ReopenClearsCompletedAt(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	done := time.Now()
	todos.On("FindByID", mock.Anything, int64(5)).Return(&model.TodoItem{
		ID:          5,
		UserID:      1,
		Title:       "x",
		Status:      model.TodoStatusCompleted,
		CompletedAt: &done,
	}, nil)

	todos.On("Update", mock.Anything, mock.MatchedBy(func(item *model.TodoItem) bool {
		return item.Status == model.TodoStatusPending && item.CompletedAt == nil
	})).Return(nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Update(ctx, 1, 5, usecase.UpdateTodoInput{Status: strPtr("pending")})
	assert.NoError(t, err)
	assert.Nil(t, out.CompletedAt)
}

func TestTodoUsecase_Update_EmptyTitleRejected(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("FindByID", mock.Anything, int64(5)).Return(&model.TodoItem{
		ID:     5,
		UserID: 1,
		Title:  "x",
	}, nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.Update(ctx, 1, 5, usecase.UpdateTodoInput{Title: strPtr("  ")})
	assert.Nil(t, out)
	assertHTTPStatus(t, err, http.StatusBadRequest)

	todos.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// =====================
// Delete
// =====================

func TestTodoUsecase_Delete_Success(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("FindByID", mock.Anything, int64(5)).Return(&model.TodoItem{ID: 5, UserID: 1}, nil)
	todos.On("DeleteByID", mock.Anything, int64(5)).Return(nil)

	u := usecase.NewTodoUsecase(todos)

	err := u.Delete(ctx, 1, 5)
	assert.NoError(t, err)

	todos.AssertExpectations(t)
}

func TestTodoUsecase_Delete_Forbidden(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("FindByID", mock.Anything, int64(5)).Return(&model.TodoItem{ID: 5, UserID: 2}, nil)

	u := usecase.NewTodoUsecase(todos)

	err := u.Delete(ctx, 1, 5)
	assertHTTPStatus(t, err, http.StatusForbidden)

	todos.AssertNotCalled(t, "DeleteByID", mock.Anything, mock.Anything)
}

// =====================
// List
// =====================

func TestTodoUsecase_List_Empty(t *testing.T) {
	ctx := context.Background()
	todos := new(MockTodoRepository)

	todos.On("ListByUserID", mock.Anything, int64(1)).Return([]model.TodoItem{}, nil)

	u := usecase.NewTodoUsecase(todos)

	out, err := u.List(ctx, 1)
	assert.NoError(t, err)
	// 空でも[]を返す（nilではなく）
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}
