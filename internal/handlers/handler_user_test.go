package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/craftmyfolio/cmf_backend/internal/apperrors"
	"github.com/craftmyfolio/cmf_backend/internal/core/domain"
	"github.com/craftmyfolio/cmf_backend/internal/handlers"
	"github.com/craftmyfolio/cmf_backend/internal/middleware"
	"github.com/craftmyfolio/cmf_backend/internal/utils"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

const profileTestSecret = "test-secret-key"

func newProfileRouter(userSvc *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := handlers.NewUserHandler(userSvc)
	r.GET("/api/auth/profile", middleware.AuthMiddleware(profileTestSecret), handler.GetProfile)
	return r
}

func getProfile(t *testing.T, r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProfileSuccess(t *testing.T) {
	userSvc := new(MockUserService)
	r := newProfileRouter(userSvc)

	token, err := utils.GenerateJWT("user-1", profileTestSecret, time.Hour, "issuer")
	require.NoError(t, err)

	userSvc.On("GetUserByID", mock.Anything, "user-1").
		Return(&domain.User{UserID: "user-1", Name: "Ann", Email: "ann@x.com", Provider: domain.ProviderLocal, IsVerified: true}, nil)

	w := getProfile(t, r, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	user := body["user"].(map[string]any)
	assert.Equal(t, "user-1", user["id"])
	assert.Equal(t, "ann@x.com", user["email"])
}

func TestGetProfileMissingHeader(t *testing.T) {
	r := newProfileRouter(new(MockUserService))

	w := getProfile(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetProfileExpiredToken(t *testing.T) {
	r := newProfileRouter(new(MockUserService))

	token, err := utils.GenerateJWT("user-1", profileTestSecret, -time.Minute, "issuer")
	require.NoError(t, err)

	w := getProfile(t, r, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Token has expired", body["error"])
}

func TestGetProfileUserDeleted(t *testing.T) {
	userSvc := new(MockUserService)
	r := newProfileRouter(userSvc)

	token, err := utils.GenerateJWT("user-1", profileTestSecret, time.Hour, "issuer")
	require.NoError(t, err)

	userSvc.On("GetUserByID", mock.Anything, "user-1").
		Return(nil, apperrors.ErrNotFound)

	w := getProfile(t, r, "Bearer "+token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
