package handlers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/taskforge/taskforge-api/internal/middleware"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/internal/services"
	"github.com/taskforge/taskforge-api/pkg/dto"
)

type AuthHandler struct {
	userService  UserServiceInterface
	tokenService TokenServiceInterface
	jwtService   JWTServiceInterface
}

func NewAuthHandler(userService UserServiceInterface, tokenService TokenServiceInterface, jwtService JWTServiceInterface) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokenService: tokenService,
		jwtService:   jwtService,
	}
}

func (h *AuthHandler) Register(c *drift.Context) {
	var req dto.RegisterRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.FirstName == "" || req.LastName == "" {
		c.BadRequest("firstName and lastName are required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		c.BadRequest("a valid email is required")
		return
	}
	if req.Password == "" {
		c.BadRequest("password is required")
		return
	}
	if req.Role != "" && req.Role != models.RoleAdmin && req.Role != models.RoleMember {
		c.BadRequest("role must be ADMIN or MEMBER")
		return
	}

	ctx := context.Background()

	user, err := h.userService.Register(ctx, req.FirstName, req.LastName, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			conflict(c, "user with this email already exists")
			return
		}
		c.InternalServerError("failed to register user")
		return
	}

	h.respondWithTokens(c, ctx, user, 201)
}

func (h *AuthHandler) Login(c *drift.Context) {
	var req dto.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		c.BadRequest("email and password are required")
		return
	}

	ctx := context.Background()

	user, err := h.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.Unauthorized("invalid email or password")
			return
		}
		c.InternalServerError("failed to log in")
		return
	}

	h.respondWithTokens(c, ctx, user, 200)
}

func (h *AuthHandler) Refresh(c *drift.Context) {
	var req dto.RefreshRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	claimedUserID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid or expired refresh token")
		return
	}

	ctx := context.Background()
	tokenHash := services.HashToken(req.RefreshToken)

	storedUserID, err := h.tokenService.ValidateRefreshToken(ctx, tokenHash)
	if err != nil || storedUserID != claimedUserID {
		c.Unauthorized("invalid or expired refresh token")
		return
	}

	user, err := h.userService.GetByID(ctx, claimedUserID)
	if err != nil {
		c.Unauthorized("invalid or expired refresh token")
		return
	}

	// Rotate: the presented token is revoked before its replacement is issued.
	if err := h.tokenService.RevokeRefreshToken(ctx, tokenHash); err != nil {
		c.InternalServerError("failed to refresh token")
		return
	}

	h.respondWithTokens(c, ctx, user, 200)
}

func (h *AuthHandler) Logout(c *drift.Context) {
	var req dto.LogoutRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	if err := h.tokenService.RevokeRefreshToken(context.Background(), services.HashToken(req.RefreshToken)); err != nil {
		c.InternalServerError("failed to log out")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) LogoutAll(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	if err := h.tokenService.RevokeAllUserTokens(context.Background(), userID); err != nil {
		c.InternalServerError("failed to log out")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "logged out everywhere"})
}

func (h *AuthHandler) Profile(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	// Identity claims are echoed from the token; only the display name
	// comes from the store.
	user, err := h.userService.GetByID(context.Background(), userID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	_ = c.JSON(200, dto.ProfileResponse{
		UserID: userID,
		Email:  middleware.GetUserEmail(c),
		Name:   user.FullName(),
		Role:   middleware.GetUserRole(c),
	})
}

func (h *AuthHandler) respondWithTokens(c *drift.Context, ctx context.Context, user *models.User, status int) {
	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		c.InternalServerError("failed to generate tokens")
		return
	}

	expiresAt := time.Now().Add(h.jwtService.RefreshExpiry())
	if err := h.tokenService.StoreRefreshToken(ctx, user.ID, services.HashToken(pair.RefreshToken), expiresAt); err != nil {
		c.InternalServerError("failed to store refresh token")
		return
	}

	_ = c.JSON(status, dto.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		User: dto.UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.FullName(),
			Role:  user.Role,
		},
	})
}
