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
	ErrProjectNotFound   = errors.New("project not found")
	ErrNotProjectCreator = errors.New("only the project creator can perform this action")
	ErrAlreadyAssigned   = errors.New("user is already assigned to this project")
	ErrNotAssigned       = errors.New("user is not assigned to this project")
)

type UpdateProjectParams struct {
	Name        *string
	Description *string
	DueDate     *time.Time
}

type ProjectService struct {
	db *database.DB
}

func NewProjectService(db *database.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) Create(ctx context.Context, name, description string, dueDate time.Time, creatorID uuid.UUID) (*models.Project, error) {
	var id uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, due_date, creator_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, name, description, dueDate, creatorID).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID returns the project with its creator and membership list expanded.
func (s *ProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	var creator models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.description, p.due_date, p.creator_id, p.created_at, p.updated_at,
		       u.id, u.first_name, u.last_name, u.email, u.role
		FROM projects p
		JOIN users u ON p.creator_id = u.id
		WHERE p.id = $1
	`, projectID).Scan(
		&project.ID, &project.Name, &project.Description, &project.DueDate,
		&project.CreatorID, &project.CreatedAt, &project.UpdatedAt,
		&creator.ID, &creator.FirstName, &creator.LastName, &creator.Email, &creator.Role,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	project.Creator = &creator

	members, err := s.getMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	project.Members = members

	return &project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT p.id, p.name, p.description, p.due_date, p.creator_id, p.created_at, p.updated_at,
		       u.id, u.first_name, u.last_name, u.email, u.role
		FROM projects p
		JOIN users u ON p.creator_id = u.id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		var creator models.User
		if err := rows.Scan(
			&project.ID, &project.Name, &project.Description, &project.DueDate,
			&project.CreatorID, &project.CreatedAt, &project.UpdatedAt,
			&creator.ID, &creator.FirstName, &creator.LastName, &creator.Email, &creator.Role,
		); err != nil {
			return nil, err
		}
		project.Creator = &creator
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	memberRows, err := s.db.Pool.Query(ctx, `
		SELECT pm.id, pm.project_id, pm.user_id, pm.created_at,
		       u.id, u.first_name, u.last_name, u.email, u.role
		FROM project_members pm
		JOIN users u ON pm.user_id = u.id
		ORDER BY pm.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	membersByProject := make(map[uuid.UUID][]models.ProjectMember)
	for memberRows.Next() {
		var member models.ProjectMember
		var user models.User
		if err := memberRows.Scan(
			&member.ID, &member.ProjectID, &member.UserID, &member.CreatedAt,
			&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Role,
		); err != nil {
			return nil, err
		}
		member.User = &user
		membersByProject[member.ProjectID] = append(membersByProject[member.ProjectID], member)
	}
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		projects[i].Members = membersByProject[projects[i].ID]
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, projectID, actingUserID uuid.UUID, params UpdateProjectParams) (*models.Project, error) {
	if err := s.requireCreator(ctx, projectID, actingUserID); err != nil {
		return nil, err
	}

	_, err := s.db.Pool.Exec(ctx, `
		UPDATE projects SET
			name = COALESCE($1, name),
			description = COALESCE($2, description),
			due_date = COALESCE($3, due_date),
			updated_at = NOW()
		WHERE id = $4
	`, params.Name, params.Description, params.DueDate, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.GetByID(ctx, projectID)
}

func (s *ProjectService) Delete(ctx context.Context, projectID, actingUserID uuid.UUID) error {
	if err := s.requireCreator(ctx, projectID, actingUserID); err != nil {
		return err
	}

	_, err := s.db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, projectID)
	return err
}

func (s *ProjectService) AssignUser(ctx context.Context, projectID, targetUserID, actingUserID uuid.UUID) (*models.Project, error) {
	if err := s.requireCreator(ctx, projectID, actingUserID); err != nil {
		return nil, err
	}

	var userExists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)
	`, targetUserID).Scan(&userExists)
	if err != nil {
		return nil, err
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	isMember, err := s.IsMember(ctx, projectID, targetUserID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyAssigned
	}

	_, err = s.db.Pool.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`, projectID, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to assign user: %w", err)
	}

	return s.GetByID(ctx, projectID)
}

func (s *ProjectService) UnassignUser(ctx context.Context, projectID, targetUserID, actingUserID uuid.UUID) (*models.Project, error) {
	if err := s.requireCreator(ctx, projectID, actingUserID); err != nil {
		return nil, err
	}

	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND user_id = $2
	`, projectID, targetUserID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, ErrNotAssigned
	}

	return s.GetByID(ctx, projectID)
}

// IsMember reports whether the user may act within the project: the creator
// counts as a member without a membership row.
func (s *ProjectService) IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	var isMember bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1 AND creator_id = $2)
		    OR EXISTS(SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)
	`, projectID, userID).Scan(&isMember)
	return isMember, err
}

func (s *ProjectService) requireCreator(ctx context.Context, projectID, userID uuid.UUID) error {
	var creatorID uuid.UUID
	err := s.db.Pool.QueryRow(ctx, `SELECT creator_id FROM projects WHERE id = $1`, projectID).Scan(&creatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProjectNotFound
		}
		return err
	}
	if creatorID != userID {
		return ErrNotProjectCreator
	}
	return nil
}

func (s *ProjectService) getMembers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT pm.id, pm.project_id, pm.user_id, pm.created_at,
		       u.id, u.first_name, u.last_name, u.email, u.role
		FROM project_members pm
		JOIN users u ON pm.user_id = u.id
		WHERE pm.project_id = $1
		ORDER BY pm.created_at
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.ProjectMember
	for rows.Next() {
		var member models.ProjectMember
		var user models.User
		if err := rows.Scan(
			&member.ID, &member.ProjectID, &member.UserID, &member.CreatedAt,
			&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.Role,
		); err != nil {
			return nil, err
		}
		member.User = &user
		members = append(members, member)
	}
	return members, rows.Err()
}
