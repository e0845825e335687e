package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/internal/services"
)

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, firstName, lastName, email, password, role string) (*models.User, error) {
	args := m.Called(ctx, firstName, lastName, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockTokenService mocks the TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) ValidateRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	args := m.Called(ctx, tokenHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockTokenService) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockProjectService mocks the ProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, name, description string, dueDate time.Time, creatorID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, name, description, dueDate, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context) ([]models.Project, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, projectID, actingUserID uuid.UUID, params services.UpdateProjectParams) (*models.Project, error) {
	args := m.Called(ctx, projectID, actingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, projectID, actingUserID uuid.UUID) error {
	args := m.Called(ctx, projectID, actingUserID)
	return args.Error(0)
}

func (m *MockProjectService) AssignUser(ctx context.Context, projectID, targetUserID, actingUserID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, projectID, targetUserID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) UnassignUser(ctx context.Context, projectID, targetUserID, actingUserID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, projectID, targetUserID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

// MockInvitationService mocks the InvitationService
type MockInvitationService struct {
	mock.Mock
}

func (m *MockInvitationService) Send(ctx context.Context, projectID uuid.UUID, receiverEmail string, senderID uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, projectID, receiverEmail, senderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationService) ListForReceiver(ctx context.Context, userID uuid.UUID) ([]models.Invitation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Invitation), args.Error(1)
}

func (m *MockInvitationService) Approve(ctx context.Context, invitationID, actingUserID uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, invitationID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

func (m *MockInvitationService) Reject(ctx context.Context, invitationID, actingUserID uuid.UUID) (*models.Invitation, error) {
	args := m.Called(ctx, invitationID, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Invitation), args.Error(1)
}

// MockTaskService mocks the TaskService
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, params services.CreateTaskParams) (*models.Task, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context) ([]models.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, taskID uuid.UUID, params services.UpdateTaskParams) (*models.Task, error) {
	args := m.Called(ctx, taskID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

// MockTaskStatusService mocks the TaskStatusService
type MockTaskStatusService struct {
	mock.Mock
}

func (m *MockTaskStatusService) Create(ctx context.Context, name, color string) (*models.TaskStatus, error) {
	args := m.Called(ctx, name, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskStatus), args.Error(1)
}

func (m *MockTaskStatusService) List(ctx context.Context) ([]models.TaskStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.TaskStatus), args.Error(1)
}

func (m *MockTaskStatusService) GetByID(ctx context.Context, statusID uuid.UUID) (*models.TaskStatus, error) {
	args := m.Called(ctx, statusID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskStatus), args.Error(1)
}

func (m *MockTaskStatusService) Update(ctx context.Context, statusID uuid.UUID, params services.UpdateTaskStatusParams) (*models.TaskStatus, error) {
	args := m.Called(ctx, statusID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskStatus), args.Error(1)
}

func (m *MockTaskStatusService) Delete(ctx context.Context, statusID uuid.UUID) error {
	args := m.Called(ctx, statusID)
	return args.Error(0)
}

// MockStatisticsService mocks the StatisticsService
type MockStatisticsService struct {
	mock.Mock
}

func (m *MockStatisticsService) GetStatistics(ctx context.Context, userID uuid.UUID) (*services.Statistics, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Statistics), args.Error(1)
}
