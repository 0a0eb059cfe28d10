package user

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"lexdraft/internal/auth"
	"lexdraft/internal/domain"
	"lexdraft/internal/errors"
	"lexdraft/internal/middleware"
	"lexdraft/internal/session"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockService) UpdateProfile(ctx context.Context, id string, profile ProfileUpdate) (*domain.User, error) {
	args := m.Called(ctx, id, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockService) IncreaseTokenVersion(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	auth.SetSecret("test-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))
	return router
}

func postJSON(router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(t)

	mockService.On("Register", mock.Anything, mock.MatchedBy(func(user *domain.User) bool {
		return user.FullName == "John Doe" &&
			user.Email == "john@example.com" &&
			user.Password == "password123"
	})).Return(nil).Run(func(args mock.Arguments) {
		user := args.Get(1).(*domain.User)
		user.ID = "U1"
		user.CreatedAt = time.Now()
		user.UpdatedAt = time.Now()
	})

	router.POST("/auth/register", handler.Register)

	w := postJSON(router, "/auth/register", FormRegister{
		FullName: "John Doe",
		Email:    "john@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	var response map[string]map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "U1", response["user"]["id"])
	assert.NotContains(t, w.Body.String(), "password")
	mockService.AssertExpectations(t)
}

func TestRegister_InvalidInput(t *testing.T) {
	cases := map[string]FormRegister{
		"missing email":  {FullName: "John Doe", Password: "password123"},
		"invalid email":  {FullName: "John Doe", Email: "invalid-email", Password: "password123"},
		"short password": {FullName: "John Doe", Email: "john@example.com", Password: "123"},
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			mockService := new(MockService)
			router := setupRouter(t)
			router.POST("/auth/register", NewHandler(mockService).Register)

			w := postJSON(router, "/auth/register", payload)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestLogin_Success(t *testing.T) {
	mockService := new(MockService)
	handler := NewHandler(mockService)
	router := setupRouter(t)

	user := &domain.User{
		ID:       "U1",
		FullName: "John Doe",
		Email:    "john@example.com",
		IsActive: true,
	}
	mockService.On("Login", mock.Anything, "john@example.com", "password123").Return(user, nil)

	router.POST("/auth/login", handler.Login)

	w := postJSON(router, "/auth/login", FormLogin{Email: "john@example.com", Password: "password123"})

	require.Equal(t, http.StatusOK, w.Code)
	var response map[string]any
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.NotEmpty(t, response["access_token"])
	assert.NotNil(t, response["user"])

	var refresh *http.Cookie
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == refreshCookie {
			refresh = cookie
		}
	}
	require.NotNil(t, refresh)
	assert.True(t, refresh.HttpOnly)
	mockService.AssertExpectations(t)
}

func TestLogin_InvalidInput(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	router.POST("/auth/login", NewHandler(mockService).Login)

	w := postJSON(router, "/auth/login", struct{ Email string }{Email: "john@example.com"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogin_WrongCredentials(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	router.POST("/auth/login", NewHandler(mockService).Login)

	mockService.On("Login", mock.Anything, "nonexistent@example.com", "password123").
		Return(nil, errors.Unauthorized("Invalid email or password", nil))

	w := postJSON(router, "/auth/login", FormLogin{Email: "nonexistent@example.com", Password: "password123"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertExpectations(t)
}

func refreshRequest(token string) *http.Request {
	req := httptest.NewRequest("POST", "/auth/refresh", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: refreshCookie, Value: token})
	}
	return req
}

func TestRefreshToken_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	router.POST("/auth/refresh", NewHandler(mockService).RefreshToken)

	token, err := auth.GenerateRefreshToken("U1", 2)
	require.NoError(t, err)
	mockService.On("GetUserByID", mock.Anything, "U1").
		Return(&domain.User{ID: "U1", TokenVersion: 2, IsActive: true}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, refreshRequest(token))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
}

func TestRefreshToken_Rejected(t *testing.T) {
	setupRouter(t)
	access, err := auth.GenerateAccessToken("U1", 2)
	require.NoError(t, err)
	stale, err := auth.GenerateRefreshToken("U1", 1)
	require.NoError(t, err)

	cases := map[string]string{
		"no cookie":     "",
		"garbage":       "not-a-jwt",
		"access token":  access,
		"stale version": stale,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			mockService := new(MockService)
			router := setupRouter(t)
			router.POST("/auth/refresh", NewHandler(mockService).RefreshToken)
			mockService.On("GetUserByID", mock.Anything, "U1").
				Return(&domain.User{ID: "U1", TokenVersion: 2, IsActive: true}, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, refreshRequest(token))

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestLogout_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	handler := NewHandler(mockService)

	mockService.On("IncreaseTokenVersion", mock.Anything, "U1").Return(nil)

	router.DELETE("/auth/logout", func(c *gin.Context) {
		c.Request = c.Request.WithContext(session.WithUser(c.Request.Context(), &session.User{ID: "U1"}))
		handler.Logout(c)
	})

	req := httptest.NewRequest("DELETE", "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertExpectations(t)
}

func TestLogout_NoSession(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	router.DELETE("/auth/logout", NewHandler(mockService).Logout)

	req := httptest.NewRequest("DELETE", "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockService.AssertNotCalled(t, "IncreaseTokenVersion", mock.Anything, mock.Anything)
}

func TestGetProfile_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	handler := NewHandler(mockService)

	user := &domain.User{
		ID:        "U1",
		FullName:  "John Doe",
		Email:     "john@example.com",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	mockService.On("GetUserByID", mock.Anything, "U1").Return(user, nil)

	router.GET("/profile", func(c *gin.Context) {
		c.Set("user_id", "U1")
		handler.GetProfile(c)
	})

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response domain.SafeUser
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "John Doe", response.FullName)
	assert.Equal(t, "john@example.com", response.Email)
	mockService.AssertExpectations(t)
}

func TestGetProfile_NoUserID(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	router.GET("/profile", NewHandler(mockService).GetProfile)

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProfile_Success(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	handler := NewHandler(mockService)

	mockService.On("UpdateProfile", mock.Anything, "U1", mock.MatchedBy(func(p ProfileUpdate) bool {
		return p.Bio != nil && *p.Bio == "Notary" && p.FullName == nil
	})).Return(&domain.User{ID: "U1", Bio: "Notary"}, nil)

	router.PUT("/profile", func(c *gin.Context) {
		c.Set("user_id", "U1")
		handler.UpdateProfile(c)
	})

	body := bytes.NewBufferString(`{"bio":"Notary"}`)
	req := httptest.NewRequest("PUT", "/profile", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Notary")
	mockService.AssertExpectations(t)
}

func TestUpdateProfile_InvalidAvatar(t *testing.T) {
	mockService := new(MockService)
	router := setupRouter(t)
	handler := NewHandler(mockService)

	router.PUT("/profile", func(c *gin.Context) {
		c.Set("user_id", "U1")
		handler.UpdateProfile(c)
	})

	req := httptest.NewRequest("PUT", "/profile", bytes.NewBufferString(`{"avatar_url":"not a url"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
