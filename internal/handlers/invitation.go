package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/taskforge/taskforge-api/internal/middleware"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/internal/services"
	"github.com/taskforge/taskforge-api/pkg/dto"
)

type InvitationHandler struct {
	invitationService InvitationServiceInterface
}

func NewInvitationHandler(invitationService InvitationServiceInterface) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

func (h *InvitationHandler) Send(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.SendInvitationRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.ReceiverEmail == "" {
		c.BadRequest("receiverEmail is required")
		return
	}
	if req.ProjectID == uuid.Nil {
		c.BadRequest("projectId is required")
		return
	}

	invitation, err := h.invitationService.Send(context.Background(), req.ProjectID, req.ReceiverEmail, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			c.NotFound("project not found")
		case errors.Is(err, services.ErrUserNotFound):
			c.NotFound("user with this email not found")
		case errors.Is(err, services.ErrSelfInvitation):
			c.BadRequest("you cannot invite yourself")
		case errors.Is(err, services.ErrAlreadyAssigned):
			conflict(c, "user is already a member of this project")
		case errors.Is(err, services.ErrPendingInvitationExists):
			conflict(c, "a pending invitation for this user already exists")
		default:
			c.InternalServerError("failed to send invitation")
		}
		return
	}

	_ = c.JSON(201, invitationResponse(invitation))
}

func (h *InvitationHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invitations, err := h.invitationService.ListForReceiver(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get invitations")
		return
	}

	response := make([]dto.InvitationResponse, len(invitations))
	for i := range invitations {
		response[i] = invitationResponse(&invitations[i])
	}

	_ = c.JSON(200, response)
}

func (h *InvitationHandler) Approve(c *drift.Context) {
	h.transition(c, h.invitationService.Approve)
}

func (h *InvitationHandler) Reject(c *drift.Context) {
	h.transition(c, h.invitationService.Reject)
}

func (h *InvitationHandler) transition(c *drift.Context, fn func(ctx context.Context, invitationID, actingUserID uuid.UUID) (*models.Invitation, error)) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invitationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid invitation id")
		return
	}

	invitation, err := fn(context.Background(), invitationID, userID)
	if err != nil {
		var statusErr *services.InvitationStatusError
		switch {
		case errors.Is(err, services.ErrInvitationNotFound):
			c.NotFound("invitation not found")
		case errors.Is(err, services.ErrNotInvitationReceiver):
			c.Forbidden("only the invited user can respond to this invitation")
		case errors.As(err, &statusErr):
			c.BadRequest(statusErr.Error())
		default:
			c.InternalServerError("failed to update invitation")
		}
		return
	}

	_ = c.JSON(200, invitationResponse(invitation))
}

func invitationResponse(invitation *models.Invitation) dto.InvitationResponse {
	response := dto.InvitationResponse{
		ID:         invitation.ID,
		ProjectID:  invitation.ProjectID,
		SenderID:   invitation.SenderID,
		ReceiverID: invitation.ReceiverID,
		Status:     invitation.Status,
		CreatedAt:  invitation.CreatedAt,
		UpdatedAt:  invitation.UpdatedAt,
	}
	if invitation.Sender != nil {
		response.Sender = userRef(invitation.Sender)
	}
	if invitation.Receiver != nil {
		response.Receiver = userRef(invitation.Receiver)
	}
	if invitation.Project != nil {
		response.Project = dto.ProjectRef{
			ID:          invitation.Project.ID,
			Name:        invitation.Project.Name,
			Description: invitation.Project.Description,
		}
	}
	return response
}
