package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/middleware"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/internal/services"
	"github.com/taskforge/taskforge-api/pkg/dto"
	"github.com/taskforge/taskforge-api/tests/testutil"
)

func newTestJWTService() *services.JWTService {
	return services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
}

func generateTestToken(t *testing.T, jwtSvc *services.JWTService, userID uuid.UUID, email, role string) string {
	t.Helper()
	pair, err := jwtSvc.GenerateTokenPair(userID, email, role)
	require.NoError(t, err)
	return pair.AccessToken
}

func setupAuthTest(t *testing.T) (*testutil.MockUserService, *testutil.MockTokenService, *AuthHandler, *services.JWTService) {
	t.Helper()
	mockUserService := new(testutil.MockUserService)
	mockTokenService := new(testutil.MockTokenService)
	jwtSvc := newTestJWTService()
	handler := NewAuthHandler(mockUserService, mockTokenService, jwtSvc)
	return mockUserService, mockTokenService, handler, jwtSvc
}

func testUser(userID uuid.UUID) *models.User {
	return &models.User{
		ID:        userID,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Role:      models.RoleMember,
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	mockUserService, mockTokenService, handler, _ := setupAuthTest(t)

	userID := uuid.New()
	user := testUser(userID)

	mockUserService.On("Register", mock.Anything, "John", "Doe", "john@example.com", "password123", "").
		Return(user, nil)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	body := dto.RegisterRequest{
		FirstName: "John", LastName: "Doe",
		Email: "john@example.com", Password: "password123",
	}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.AuthResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
	assert.Equal(t, userID, response.User.ID)
	assert.Equal(t, "John Doe", response.User.Name)

	mockUserService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	mockUserService, _, handler, _ := setupAuthTest(t)

	mockUserService.On("Register", mock.Anything, "John", "Doe", "john@example.com", "password123", "").
		Return(nil, services.ErrEmailTaken)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	body := dto.RegisterRequest{
		FirstName: "John", LastName: "Doe",
		Email: "john@example.com", Password: "password123",
	}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already exists")
}

func TestAuthHandler_Register_InvalidEmail(t *testing.T) {
	_, _, handler, _ := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	body := dto.RegisterRequest{
		FirstName: "John", LastName: "Doe",
		Email: "not-an-email", Password: "password123",
	}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "valid email")
}

func TestAuthHandler_Register_InvalidRole(t *testing.T) {
	_, _, handler, _ := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/register", handler.Register)

	body := dto.RegisterRequest{
		FirstName: "John", LastName: "Doe",
		Email: "john@example.com", Password: "password123", Role: "SUPERUSER",
	}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "role must be ADMIN or MEMBER")
}

func TestAuthHandler_Login_Success(t *testing.T) {
	mockUserService, mockTokenService, handler, _ := setupAuthTest(t)

	userID := uuid.New()
	user := testUser(userID)

	mockUserService.On("Authenticate", mock.Anything, "john@example.com", "password123").
		Return(user, nil)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body := dto.LoginRequest{Email: "john@example.com", Password: "password123"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.AuthResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)

	mockUserService.AssertExpectations(t)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	mockUserService, _, handler, _ := setupAuthTest(t)

	mockUserService.On("Authenticate", mock.Anything, "john@example.com", "wrong").
		Return(nil, services.ErrInvalidCredentials)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/login", handler.Login)

	body := dto.LoginRequest{Email: "john@example.com", Password: "wrong"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
}

func TestAuthHandler_Refresh_Success(t *testing.T) {
	mockUserService, mockTokenService, handler, jwtSvc := setupAuthTest(t)

	userID := uuid.New()
	user := testUser(userID)
	pair, err := jwtSvc.GenerateTokenPair(userID, user.Email, user.Role)
	require.NoError(t, err)
	tokenHash := services.HashToken(pair.RefreshToken)

	mockTokenService.On("ValidateRefreshToken", mock.Anything, tokenHash).Return(userID, nil)
	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockTokenService.On("RevokeRefreshToken", mock.Anything, tokenHash).Return(nil)
	mockTokenService.On("StoreRefreshToken", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.Refresh)

	body := dto.RefreshRequest{RefreshToken: pair.RefreshToken}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.AuthResponse
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, response.RefreshToken)

	mockTokenService.AssertExpectations(t)
	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	_, _, handler, _ := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.Refresh)

	body := dto.RefreshRequest{RefreshToken: "garbage"}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Refresh_RevokedToken(t *testing.T) {
	_, mockTokenService, handler, jwtSvc := setupAuthTest(t)

	userID := uuid.New()
	pair, err := jwtSvc.GenerateTokenPair(userID, "john@example.com", models.RoleMember)
	require.NoError(t, err)
	tokenHash := services.HashToken(pair.RefreshToken)

	mockTokenService.On("ValidateRefreshToken", mock.Anything, tokenHash).
		Return(uuid.Nil, assert.AnError)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/refresh", handler.Refresh)

	body := dto.RefreshRequest{RefreshToken: pair.RefreshToken}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Logout_Success(t *testing.T) {
	_, mockTokenService, handler, _ := setupAuthTest(t)

	refreshToken := "some-refresh-token"
	mockTokenService.On("RevokeRefreshToken", mock.Anything, services.HashToken(refreshToken)).
		Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Post("/auth/logout", handler.Logout)

	body := dto.LogoutRequest{RefreshToken: refreshToken}
	jsonBody, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_LogoutAll_Success(t *testing.T) {
	_, mockTokenService, handler, jwtSvc := setupAuthTest(t)

	userID := uuid.New()
	mockTokenService.On("RevokeAllUserTokens", mock.Anything, userID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/auth/logout-all", handler.LogoutAll)

	token := generateTestToken(t, jwtSvc, userID, "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodPost, "/auth/logout-all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockTokenService.AssertExpectations(t)
}

func TestAuthHandler_Profile_Success(t *testing.T) {
	mockUserService, _, handler, jwtSvc := setupAuthTest(t)

	userID := uuid.New()
	user := testUser(userID)
	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/auth/profile", handler.Profile)

	token := generateTestToken(t, jwtSvc, userID, user.Email, user.Role)
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ProfileResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, userID, response.UserID)
	assert.Equal(t, "John Doe", response.Name)

	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_Profile_EchoesTokenClaims(t *testing.T) {
	mockUserService, _, handler, jwtSvc := setupAuthTest(t)

	userID := uuid.New()
	user := testUser(userID)
	user.Role = models.RoleMember
	mockUserService.On("GetByID", mock.Anything, userID).Return(user, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/auth/profile", handler.Profile)

	// Email and role come from the token, not the stored row.
	token := generateTestToken(t, jwtSvc, userID, "claims@example.com", models.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.ProfileResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "claims@example.com", response.Email)
	assert.Equal(t, models.RoleAdmin, response.Role)
	assert.Equal(t, "John Doe", response.Name)

	mockUserService.AssertExpectations(t)
}

func TestAuthHandler_Profile_Unauthenticated(t *testing.T) {
	_, _, handler, jwtSvc := setupAuthTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/auth/profile", handler.Profile)

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
