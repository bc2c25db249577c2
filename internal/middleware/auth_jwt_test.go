package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/token"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBlocklist struct {
	mock.Mock
}

func (m *MockBlocklist) Create(ctx context.Context, t *model.RevokedToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockBlocklist) ExistsByJTI(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlocklist) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// ゲートを通ったらuser_idを返すだけのハンドラ
func okHandler(c echo.Context) error {
	userID, _ := middleware.UserIDFromContext(c)
	return c.JSON(http.StatusOK, map[string]int64{"user_id": userID})
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authz string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	e.GET("/protected", okHandler, mw)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body: %v", err)
	}
	return body["error"]
}

func TestAuthJWT_Success(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)
	blocklist.On("ExistsByJTI", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	raw, err := tm.IssueAccess(42, true)
	assert.NoError(t, err)

	mw := middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess)
	rec := doRequest(t, mw, "Bearer "+raw)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]int64
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body["user_id"])

	blocklist.AssertExpectations(t)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)

	mw := middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess)
	rec := doRequest(t, mw, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing authorization header", errorMessage(t, rec))

	// 台帳は見に行かない
	blocklist.AssertNotCalled(t, "ExistsByJTI", mock.Anything, mock.Anything)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)

	mw := middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess)
	rec := doRequest(t, mw, "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// 署名・形式が壊れたトークンは422
func TestAuthJWT_MalformedToken(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)

	mw := middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess)
	rec := doRequest(t, mw, "Bearer not-a-jwt")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "invalid token", errorMessage(t, rec))
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	issued := token.NewManager("test-secret", -time.Minute, time.Hour)
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)

	raw, err := issued.IssueAccess(1, false)
	assert.NoError(t, err)

	mw := middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess)
	rec := doRequest(t, mw, "Bearer "+raw)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token has expired", errorMessage(t, rec))
}

// accessゲートにrefreshトークンを出した場合は422
func TestAuthJWT_WrongTokenType(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)

	raw, err := tm.IssueRefresh(1)
	assert.NoError(t, err)

	mw := middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess)
	rec := doRequest(t, mw, "Bearer "+raw)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "only access tokens are allowed", errorMessage(t, rec))
}

func TestAuthJWT_RefreshGateRejectsAccess(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)

	raw, err := tm.IssueAccess(1, true)
	assert.NoError(t, err)

	mw := middleware.AuthJWT(tm, blocklist, model.TokenTypeRefresh)
	rec := doRequest(t, mw, "Bearer "+raw)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "only refresh tokens are allowed", errorMessage(t, rec))
}

// 台帳に載ったjtiは自然期限が残っていても401
func TestAuthJWT_RevokedToken(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)
	blocklist.On("ExistsByJTI", mock.Anything, mock.AnythingOfType("string")).Return(true, nil)

	raw, err := tm.IssueAccess(1, true)
	assert.NoError(t, err)

	mw := middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess)
	rec := doRequest(t, mw, "Bearer "+raw)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token has been revoked", errorMessage(t, rec))

	blocklist.AssertExpectations(t)
}

// =====================
// RequireFresh
// =====================

func TestRequireFresh_FreshTokenPasses(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)
	blocklist.On("ExistsByJTI", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	raw, err := tm.IssueAccess(1, true)
	assert.NoError(t, err)

	e := echo.New()
	e.GET("/fresh-only", okHandler,
		middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess),
		middleware.RequireFresh(),
	)

	req := httptest.NewRequest(http.MethodGet, "/fresh-only", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

// refresh経由のaccess（fresh=false）はfresh必須エンドポイントで401
func TestRequireFresh_NonFreshRejected(t *testing.T) {
	tm := token.NewManager("test-secret", time.Hour, time.Hour)
	blocklist := new(MockBlocklist)
	blocklist.On("ExistsByJTI", mock.Anything, mock.AnythingOfType("string")).Return(false, nil)

	raw, err := tm.IssueAccess(1, false)
	assert.NoError(t, err)

	e := echo.New()
	e.GET("/fresh-only", okHandler,
		middleware.AuthJWT(tm, blocklist, model.TokenTypeAccess),
		middleware.RequireFresh(),
	)

	req := httptest.NewRequest(http.MethodGet, "/fresh-only", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "fresh token required", errorMessage(t, rec))
}
