package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/database"
	"github.com/taskforge/taskforge-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the plaintext behind every fixture user's password hash.
const TestPassword = "password123"

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db           *database.DB
	counter      int
	passwordHash string
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

func (f *Fixtures) hashedPassword(t *testing.T) string {
	t.Helper()
	if f.passwordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("failed to hash test password: %v", err)
		}
		f.passwordHash = string(hash)
	}
	return f.passwordHash
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", f.counter),
		Email:     fmt.Sprintf("user%d@example.com", f.counter),
		Role:      models.RoleMember,
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, email, password_hash, role, created_at, updated_at
	`, user.FirstName, user.LastName, user.Email, f.hashedPassword(t), user.Role).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's first and last name
func WithName(firstName, lastName string) UserOption {
	return func(u *models.User) {
		u.FirstName = firstName
		u.LastName = lastName
	}
}

// WithRole sets the user's role
func WithRole(role string) UserOption {
	return func(u *models.User) {
		u.Role = role
	}
}

// CreateProject creates a test project owned by the given creator
func (f *Fixtures) CreateProject(t *testing.T, creator *models.User, opts ...ProjectOption) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		Name:        fmt.Sprintf("Test Project %d", f.counter),
		Description: fmt.Sprintf("Description for project %d", f.counter),
		DueDate:     time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour),
		CreatorID:   creator.ID,
	}

	for _, opt := range opts {
		opt(project)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, due_date, creator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, due_date, creator_id, created_at, updated_at
	`, project.Name, project.Description, project.DueDate, project.CreatorID).Scan(
		&project.ID, &project.Name, &project.Description, &project.DueDate,
		&project.CreatorID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	project.Creator = creator
	return project
}

// ProjectOption configures a test project
type ProjectOption func(*models.Project)

// WithProjectName sets the project's name
func WithProjectName(name string) ProjectOption {
	return func(p *models.Project) {
		p.Name = name
	}
}

// WithDueDate sets the project's due date
func WithDueDate(dueDate time.Time) ProjectOption {
	return func(p *models.Project) {
		p.DueDate = dueDate
	}
}

// AddProjectMember assigns a user to a project
func (f *Fixtures) AddProjectMember(t *testing.T, project *models.Project, user *models.User) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`, project.ID, user.ID)
	if err != nil {
		t.Fatalf("failed to add project member: %v", err)
	}
}

// CreateTaskStatus creates a test task status
func (f *Fixtures) CreateTaskStatus(t *testing.T, name, color string) *models.TaskStatus {
	t.Helper()

	status := &models.TaskStatus{Name: name, Color: color}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO task_statuses (name, color)
		VALUES ($1, $2)
		RETURNING id, name, color, created_at, updated_at
	`, status.Name, status.Color).Scan(
		&status.ID, &status.Name, &status.Color, &status.CreatedAt, &status.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create task status: %v", err)
	}

	return status
}

// CreateTask creates a test task inside a project, assigned to a user
func (f *Fixtures) CreateTask(t *testing.T, project *models.Project, user *models.User, status *models.TaskStatus) *models.Task {
	t.Helper()
	f.counter++

	task := &models.Task{
		Name:        fmt.Sprintf("Test Task %d", f.counter),
		Description: fmt.Sprintf("Description for task %d", f.counter),
		StartDate:   time.Now().Truncate(24 * time.Hour),
		EndDate:     time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour),
		ProjectID:   project.ID,
		UserID:      user.ID,
		StatusID:    status.ID,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (name, description, start_date, end_date, project_id, user_id, status_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, start_date, end_date, project_id, user_id, status_id, created_at, updated_at
	`, task.Name, task.Description, task.StartDate, task.EndDate,
		task.ProjectID, task.UserID, task.StatusID).Scan(
		&task.ID, &task.Name, &task.Description, &task.StartDate, &task.EndDate,
		&task.ProjectID, &task.UserID, &task.StatusID, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}

// CreateInvitation creates a test invitation with the given status
func (f *Fixtures) CreateInvitation(t *testing.T, project *models.Project, sender, receiver *models.User, status string) *models.Invitation {
	t.Helper()

	invitation := &models.Invitation{
		ProjectID:  project.ID,
		SenderID:   sender.ID,
		ReceiverID: receiver.ID,
		Status:     status,
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO invitations (project_id, sender_id, receiver_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, project_id, sender_id, receiver_id, status, created_at, updated_at
	`, invitation.ProjectID, invitation.SenderID, invitation.ReceiverID, invitation.Status).Scan(
		&invitation.ID, &invitation.ProjectID, &invitation.SenderID,
		&invitation.ReceiverID, &invitation.Status, &invitation.CreatedAt, &invitation.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create invitation: %v", err)
	}

	return invitation
}

// CreateRefreshToken creates a test refresh token
func (f *Fixtures) CreateRefreshToken(t *testing.T, userID uuid.UUID, tokenHash string, expiresAt time.Time) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, userID, tokenHash, expiresAt)
	if err != nil {
		t.Fatalf("failed to create refresh token: %v", err)
	}
}
