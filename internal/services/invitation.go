package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/taskforge/taskforge-api/internal/database"
	"github.com/taskforge/taskforge-api/internal/models"
)

var (
	ErrInvitationNotFound      = errors.New("invitation not found")
	ErrNotInvitationReceiver   = errors.New("only the invitation receiver can act on this invitation")
	ErrSelfInvitation          = errors.New("you cannot invite yourself")
	ErrPendingInvitationExists = errors.New("a pending invitation already exists for this user and project")
)

// InvitationStatusError signals an approve/reject call on an invitation that
// already left the pending state. The message reports the current status.
type InvitationStatusError struct {
	Status string
}

func (e *InvitationStatusError) Error() string {
	return "invitation is already " + strings.ToLower(e.Status)
}

type InvitationService struct {
	db *database.DB
}

func NewInvitationService(db *database.DB) *InvitationService {
	return &InvitationService{db: db}
}

func (s *InvitationService) Send(ctx context.Context, projectID uuid.UUID, receiverEmail string, senderID uuid.UUID) (*models.Invitation, error) {
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

	var senderEmail string
	err = s.db.Pool.QueryRow(ctx, `SELECT email FROM users WHERE id = $1`, senderID).Scan(&senderEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if senderEmail == receiverEmail {
		return nil, ErrSelfInvitation
	}

	var receiverID uuid.UUID
	err = s.db.Pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, receiverEmail).Scan(&receiverID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var alreadyMember bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)
	`, projectID, receiverID).Scan(&alreadyMember)
	if err != nil {
		return nil, err
	}
	if alreadyMember {
		return nil, ErrAlreadyAssigned
	}

	var pendingExists bool
	err = s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM invitations WHERE project_id = $1 AND receiver_id = $2 AND status = $3)
	`, projectID, receiverID, models.InvitationStatusPending).Scan(&pendingExists)
	if err != nil {
		return nil, err
	}
	if pendingExists {
		return nil, ErrPendingInvitationExists
	}

	var invitationID uuid.UUID
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO invitations (project_id, sender_id, receiver_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, projectID, senderID, receiverID, models.InvitationStatusPending).Scan(&invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return s.GetWithDetails(ctx, invitationID)
}

// ListForReceiver returns every invitation addressed to the user, newest
// first, with sender, receiver and project expanded.
func (s *InvitationService) ListForReceiver(ctx context.Context, userID uuid.UUID) ([]models.Invitation, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT i.id, i.project_id, i.sender_id, i.receiver_id, i.status, i.created_at, i.updated_at,
		       s.id, s.first_name, s.last_name, s.email, s.role,
		       r.id, r.first_name, r.last_name, r.email, r.role,
		       p.id, p.name, p.description
		FROM invitations i
		JOIN users s ON i.sender_id = s.id
		JOIN users r ON i.receiver_id = r.id
		JOIN projects p ON i.project_id = p.id
		WHERE i.receiver_id = $1
		ORDER BY i.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []models.Invitation
	for rows.Next() {
		var invitation models.Invitation
		var sender, receiver models.User
		var project models.Project
		if err := rows.Scan(
			&invitation.ID, &invitation.ProjectID, &invitation.SenderID, &invitation.ReceiverID,
			&invitation.Status, &invitation.CreatedAt, &invitation.UpdatedAt,
			&sender.ID, &sender.FirstName, &sender.LastName, &sender.Email, &sender.Role,
			&receiver.ID, &receiver.FirstName, &receiver.LastName, &receiver.Email, &receiver.Role,
			&project.ID, &project.Name, &project.Description,
		); err != nil {
			return nil, err
		}
		invitation.Sender = &sender
		invitation.Receiver = &receiver
		invitation.Project = &project
		invitations = append(invitations, invitation)
	}
	return invitations, rows.Err()
}

// Approve moves a pending invitation to APPROVED and grants membership in a
// single transaction. An approved invitation without a membership row (or
// the reverse) must never be observable.
func (s *InvitationService) Approve(ctx context.Context, invitationID, actingUserID uuid.UUID) (*models.Invitation, error) {
	invitation, err := s.getForTransition(ctx, invitationID, actingUserID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		UPDATE invitations SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.InvitationStatusApproved, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (project_id, user_id) DO NOTHING
	`, invitation.ProjectID, invitation.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.GetWithDetails(ctx, invitationID)
}

func (s *InvitationService) Reject(ctx context.Context, invitationID, actingUserID uuid.UUID) (*models.Invitation, error) {
	if _, err := s.getForTransition(ctx, invitationID, actingUserID); err != nil {
		return nil, err
	}

	_, err := s.db.Pool.Exec(ctx, `
		UPDATE invitations SET status = $1, updated_at = NOW() WHERE id = $2
	`, models.InvitationStatusRejected, invitationID)
	if err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	return s.GetWithDetails(ctx, invitationID)
}

func (s *InvitationService) GetWithDetails(ctx context.Context, invitationID uuid.UUID) (*models.Invitation, error) {
	var invitation models.Invitation
	var sender, receiver models.User
	var project models.Project
	err := s.db.Pool.QueryRow(ctx, `
		SELECT i.id, i.project_id, i.sender_id, i.receiver_id, i.status, i.created_at, i.updated_at,
		       s.id, s.first_name, s.last_name, s.email, s.role,
		       r.id, r.first_name, r.last_name, r.email, r.role,
		       p.id, p.name, p.description
		FROM invitations i
		JOIN users s ON i.sender_id = s.id
		JOIN users r ON i.receiver_id = r.id
		JOIN projects p ON i.project_id = p.id
		WHERE i.id = $1
	`, invitationID).Scan(
		&invitation.ID, &invitation.ProjectID, &invitation.SenderID, &invitation.ReceiverID,
		&invitation.Status, &invitation.CreatedAt, &invitation.UpdatedAt,
		&sender.ID, &sender.FirstName, &sender.LastName, &sender.Email, &sender.Role,
		&receiver.ID, &receiver.FirstName, &receiver.LastName, &receiver.Email, &receiver.Role,
		&project.ID, &project.Name, &project.Description,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	invitation.Sender = &sender
	invitation.Receiver = &receiver
	invitation.Project = &project
	return &invitation, nil
}

// getForTransition loads the invitation and runs the shared approve/reject
// guards: existence, receiver identity, pending status.
func (s *InvitationService) getForTransition(ctx context.Context, invitationID, actingUserID uuid.UUID) (*models.Invitation, error) {
	var invitation models.Invitation
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, project_id, sender_id, receiver_id, status, created_at, updated_at
		FROM invitations WHERE id = $1
	`, invitationID).Scan(
		&invitation.ID, &invitation.ProjectID, &invitation.SenderID, &invitation.ReceiverID,
		&invitation.Status, &invitation.CreatedAt, &invitation.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}

	if invitation.ReceiverID != actingUserID {
		return nil, ErrNotInvitationReceiver
	}

	if invitation.Status != models.InvitationStatusPending {
		return nil, &InvitationStatusError{Status: invitation.Status}
	}

	return &invitation, nil
}
