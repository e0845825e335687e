package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskforge/taskforge-api/internal/database"
	"github.com/taskforge/taskforge-api/internal/models"
)

var (
	ErrStatusNotFound  = errors.New("task status not found")
	ErrStatusNameTaken = errors.New("task status with this name already exists")
	ErrStatusInUse     = errors.New("task status is referenced by existing tasks")
)

type UpdateTaskStatusParams struct {
	Name  *string
	Color *string
}

type TaskStatusService struct {
	db *database.DB
}

func NewTaskStatusService(db *database.DB) *TaskStatusService {
	return &TaskStatusService{db: db}
}

func (s *TaskStatusService) Create(ctx context.Context, name, color string) (*models.TaskStatus, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM task_statuses WHERE name = $1)
	`, name).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrStatusNameTaken
	}

	var status models.TaskStatus
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO task_statuses (name, color)
		VALUES ($1, $2)
		RETURNING id, name, color, created_at, updated_at
	`, name, color).Scan(&status.ID, &status.Name, &status.Color, &status.CreatedAt, &status.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create task status: %w", err)
	}
	return &status, nil
}

func (s *TaskStatusService) List(ctx context.Context) ([]models.TaskStatus, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, name, color, created_at, updated_at
		FROM task_statuses
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statuses []models.TaskStatus
	for rows.Next() {
		var status models.TaskStatus
		if err := rows.Scan(&status.ID, &status.Name, &status.Color, &status.CreatedAt, &status.UpdatedAt); err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, rows.Err()
}

func (s *TaskStatusService) GetByID(ctx context.Context, statusID uuid.UUID) (*models.TaskStatus, error) {
	var status models.TaskStatus
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, name, color, created_at, updated_at
		FROM task_statuses WHERE id = $1
	`, statusID).Scan(&status.ID, &status.Name, &status.Color, &status.CreatedAt, &status.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}

func (s *TaskStatusService) Update(ctx context.Context, statusID uuid.UUID, params UpdateTaskStatusParams) (*models.TaskStatus, error) {
	if _, err := s.GetByID(ctx, statusID); err != nil {
		return nil, err
	}

	// Renaming a status to its own current name is allowed.
	if params.Name != nil {
		var takenBy uuid.UUID
		err := s.db.Pool.QueryRow(ctx, `
			SELECT id FROM task_statuses WHERE name = $1
		`, *params.Name).Scan(&takenBy)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		if err == nil && takenBy != statusID {
			return nil, ErrStatusNameTaken
		}
	}

	var status models.TaskStatus
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE task_statuses SET
			name = COALESCE($1, name),
			color = COALESCE($2, color),
			updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, color, created_at, updated_at
	`, params.Name, params.Color, statusID).Scan(
		&status.ID, &status.Name, &status.Color, &status.CreatedAt, &status.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}
	return &status, nil
}

func (s *TaskStatusService) Delete(ctx context.Context, statusID uuid.UUID) error {
	if _, err := s.GetByID(ctx, statusID); err != nil {
		return err
	}

	var inUse bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM tasks WHERE status_id = $1)
	`, statusID).Scan(&inUse)
	if err != nil {
		return err
	}
	if inUse {
		return ErrStatusInUse
	}

	_, err = s.db.Pool.Exec(ctx, `DELETE FROM task_statuses WHERE id = $1`, statusID)
	return err
}
