package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artisell/artisell-backend/config"
	"github.com/artisell/artisell-backend/internal/app/repository"
	"github.com/artisell/artisell-backend/internal/app/service"
	"github.com/artisell/artisell-backend/internal/db"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	jwtConfig := config.JWTConfig{
		Secret:             "test-jwt-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
	}

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, jwtConfig.Secret, jwtConfig.AccessTokenExpiry, jwtConfig.RefreshTokenExpiry)
	authController := NewAuthController(authService, jwtConfig)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	return authController, router, testDB
}

func postJSON(router *gin.Engine, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Register_Success(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/register", controller.Register)

	w := postJSON(router, "/auth/register", map[string]interface{}{
		"email":    "new@example.com",
		"password": "password123",
		"name":     "New User",
		"phone":    "09171234567",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["access_token"])
	assert.NotEmpty(t, response["refresh_token"])

	user := response["user"].(map[string]interface{})
	assert.Equal(t, "new@example.com", user["email"])

	// Password hash must never leak into the response
	assert.NotContains(t, user, "password_hash")
}

func TestAuthController_Register_DuplicateEmail(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/register", controller.Register)

	body := map[string]interface{}{
		"email":    "dup@example.com",
		"password": "password123",
		"name":     "First",
	}

	w := postJSON(router, "/auth/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "An account with this email already exists")
}

func TestAuthController_Register_InvalidInput(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/register", controller.Register)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "Missing email",
			body: map[string]interface{}{"password": "password123", "name": "User"},
		},
		{
			name: "Bad email format",
			body: map[string]interface{}{"email": "nope", "password": "password123", "name": "User"},
		},
		{
			name: "Short password",
			body: map[string]interface{}{"email": "ok@example.com", "password": "short", "name": "User"},
		},
		{
			name: "Missing name",
			body: map[string]interface{}{"email": "ok@example.com", "password": "password123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/auth/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAuthController_Login_Success(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/register", controller.Register)
	router.POST("/auth/login", controller.Login)

	w := postJSON(router, "/auth/register", map[string]interface{}{
		"email":    "login@example.com",
		"password": "password123",
		"name":     "Login User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/auth/login", map[string]interface{}{
		"email":    "login@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["access_token"])
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	controller, router, _ := setupAuthControllerTest(t)

	router.POST("/auth/register", controller.Register)
	router.POST("/auth/login", controller.Login)

	w := postJSON(router, "/auth/register", map[string]interface{}{
		"email":    "login@example.com",
		"password": "password123",
		"name":     "Login User",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/auth/login", map[string]interface{}{
		"email":    "login@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestAuthController_GetMe(t *testing.T) {
	controller, router, testDB := setupAuthControllerTest(t)

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-jwt-secret", 15*time.Minute, 7*24*time.Hour)
	registered, _, err := authService.Register("me@example.com", "password123", "Me", "")
	require.NoError(t, err)

	router.GET("/auth/me", func(c *gin.Context) {
		setUserIDInContext(c, registered.ID)
		controller.GetMe(c)
	})

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "me@example.com")
}

func TestAuthController_Logout(t *testing.T) {
	controller, router, testDB := setupAuthControllerTest(t)

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-jwt-secret", 15*time.Minute, 7*24*time.Hour)
	registered, tokens, err := authService.Register("bye@example.com", "password123", "Bye", "")
	require.NoError(t, err)

	router.POST("/auth/logout", func(c *gin.Context) {
		setUserIDInContext(c, registered.ID)
		c.Set("raw_token", tokens.AccessToken)
		controller.Logout(c)
	})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Logged out successfully")
}

func TestAuthController_UpdateMe(t *testing.T) {
	controller, router, testDB := setupAuthControllerTest(t)

	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(userRepo, "test-jwt-secret", 15*time.Minute, 7*24*time.Hour)
	registered, _, err := authService.Register("profile@example.com", "password123", "Old Name", "")
	require.NoError(t, err)

	router.PUT("/auth/me", func(c *gin.Context) {
		setUserIDInContext(c, registered.ID)
		controller.UpdateMe(c)
	})

	payload, _ := json.Marshal(map[string]interface{}{
		"name": "New Name",
		"city": "Iloilo City",
	})
	req := httptest.NewRequest(http.MethodPut, "/auth/me", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New Name")
	assert.Contains(t, w.Body.String(), "Iloilo City")
}
