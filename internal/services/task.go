package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskforge/taskforge-api/internal/database"
	"github.com/taskforge/taskforge-api/internal/models"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrAssigneeNotMember = errors.New("user must be assigned to the project to have tasks")
)

type CreateTaskParams struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	StatusID    uuid.UUID
}

// UpdateTaskParams carries the mutable task fields. ProjectID is absent on
// purpose: a task cannot move between projects.
type UpdateTaskParams struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	UserID      *uuid.UUID
	StatusID    *uuid.UUID
}

type TaskService struct {
	db *database.DB
}

func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db}
}

func (s *TaskService) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	var projectExists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)
	`, params.ProjectID).Scan(&projectExists)
	if err != nil {
		return nil, err
	}
	if !projectExists {
		return nil, ErrProjectNotFound
	}

	var userExists bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)
	`, params.UserID).Scan(&userExists)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	isMember, err := s.isProjectMember(ctx, params.ProjectID, params.UserID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, ErrAssigneeNotMember
	}

	var statusExists bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM task_statuses WHERE id = $1)
	`, params.StatusID).Scan(&statusExists)
	if err != nil {
		return nil, err
	}
	if !statusExists {
		return nil, ErrStatusNotFound
	}

	var taskID uuid.UUID
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (name, description, start_date, end_date, project_id, user_id, status_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, params.Name, params.Description, params.StartDate, params.EndDate,
		params.ProjectID, params.UserID, params.StatusID).Scan(&taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.GetByID(ctx, taskID)
}

func (s *TaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	row := s.db.Pool.QueryRow(ctx, taskSelect+` WHERE t.id = $1`, taskID)
	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, taskSelect+` ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (s *TaskService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	var projectExists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)
	`, projectID).Scan(&projectExists)
	if err != nil {
		return nil, err
	}
	if !projectExists {
		return nil, ErrProjectNotFound
	}

	rows, err := s.db.Pool.Query(ctx, taskSelect+` WHERE t.project_id = $1 ORDER BY t.created_at DESC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, params UpdateTaskParams) (*models.Task, error) {
	var projectID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT project_id FROM tasks WHERE id = $1`, taskID).Scan(&projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	// Reassignment must pass the same membership rule as creation.
	if params.UserID != nil {
		isMember, err := s.isProjectMember(ctx, projectID, *params.UserID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrAssigneeNotMember
		}
	}

	if params.StatusID != nil {
		var statusExists bool
		err := s.db.Pool.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM task_statuses WHERE id = $1)
		`, *params.StatusID).Scan(&statusExists)
		if err != nil {
			return nil, err
		}
		if !statusExists {
			return nil, ErrStatusNotFound
		}
	}

	_, err = s.db.Pool.Exec(ctx, `
		UPDATE tasks SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			start_date = COALESCE($3, start_date),
			end_date = COALESCE($4, end_date),
			user_id = COALESCE($5, user_id),
			status_id = COALESCE($6, status_id),
			updated_at = NOW()
		WHERE id = $7
	`, params.Name, params.Description, params.StartDate, params.EndDate,
		params.UserID, params.StatusID, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.GetByID(ctx, taskID)
}

func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (s *TaskService) isProjectMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var isMember bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1 AND creator_id = $2)
		    OR EXISTS(SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)
	`, projectID, userID).Scan(&isMember)
	return isMember, err
}

const taskSelect = `
	SELECT t.id, t.name, t.description, t.start_date, t.end_date,
	       t.project_id, t.user_id, t.status_id, t.created_at, t.updated_at,
	       p.id, p.name,
	       u.id, u.first_name, u.last_name, u.email, u.role,
	       ts.id, ts.name, ts.color
	FROM tasks t
	JOIN projects p ON t.project_id = p.id
	JOIN users u ON t.user_id = u.id
	JOIN task_statuses ts ON t.status_id = ts.id`

func scanTask(row pgx.Row) (*models.Task, error) {
	var task models.Task
	var project models.Project
	var user models.User
	var status models.TaskStatus
	err := row.Scan(
		&task.ID, &task.Name, &task.Description, &task.StartDate, &task.EndDate,
		&task.ProjectID, &task.UserID, &task.StatusID, &task.CreatedAt, &task.UpdatedAt,
		&project.ID, &project.Name,
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Role,
		&status.ID, &status.Name, &status.Color,
	)
	if err != nil {
		return nil, err
	}
	task.Project = &project
	task.User = &user
	task.Status = &status
	return &task, nil
}

func collectTasks(rows pgx.Rows) ([]models.Task, error) {
	var tasks []models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
