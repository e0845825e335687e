package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendInvitationRequest struct {
	ReceiverEmail string    `json:"receiverEmail"`
	ProjectID     uuid.UUID `json:"projectId"`
}

type InvitationResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"projectId"`
	SenderID   uuid.UUID  `json:"senderId"`
	ReceiverID uuid.UUID  `json:"receiverId"`
	Status     string     `json:"status"`
	Sender     UserRef    `json:"sender"`
	Receiver   UserRef    `json:"receiver"`
	Project    ProjectRef `json:"project"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
