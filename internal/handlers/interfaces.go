package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, firstName, lastName, email, password, role string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email, role string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
	RefreshExpiry() time.Duration
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	Create(ctx context.Context, name, description string, dueDate time.Time, creatorID uuid.UUID) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, projectID, actingUserID uuid.UUID, params services.UpdateProjectParams) (*models.Project, error)
	Delete(ctx context.Context, projectID, actingUserID uuid.UUID) error
	AssignUser(ctx context.Context, projectID, targetUserID, actingUserID uuid.UUID) (*models.Project, error)
	UnassignUser(ctx context.Context, projectID, targetUserID, actingUserID uuid.UUID) (*models.Project, error)
	IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
}

// InvitationServiceInterface defines the methods used by handlers from InvitationService
type InvitationServiceInterface interface {
	Send(ctx context.Context, projectID uuid.UUID, receiverEmail string, senderID uuid.UUID) (*models.Invitation, error)
	ListForReceiver(ctx context.Context, userID uuid.UUID) ([]models.Invitation, error)
	Approve(ctx context.Context, invitationID, actingUserID uuid.UUID) (*models.Invitation, error)
	Reject(ctx context.Context, invitationID, actingUserID uuid.UUID) (*models.Invitation, error)
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	Create(ctx context.Context, params services.CreateTaskParams) (*models.Task, error)
	List(ctx context.Context) ([]models.Task, error)
	GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
	Update(ctx context.Context, taskID uuid.UUID, params services.UpdateTaskParams) (*models.Task, error)
	Delete(ctx context.Context, taskID uuid.UUID) error
}

// TaskStatusServiceInterface defines the methods used by handlers from TaskStatusService
type TaskStatusServiceInterface interface {
	Create(ctx context.Context, name, color string) (*models.TaskStatus, error)
	List(ctx context.Context) ([]models.TaskStatus, error)
	GetByID(ctx context.Context, statusID uuid.UUID) (*models.TaskStatus, error)
	Update(ctx context.Context, statusID uuid.UUID, params services.UpdateTaskStatusParams) (*models.TaskStatus, error)
	Delete(ctx context.Context, statusID uuid.UUID) error
}

// StatisticsServiceInterface defines the methods used by handlers from StatisticsService
type StatisticsServiceInterface interface {
	GetStatistics(ctx context.Context, userID uuid.UUID) (*services.Statistics, error)
}
