package models

import (
	"time"

	"github.com/google/uuid"
)

// Invitation states. PENDING is the only non-terminal state.
const (
	InvitationStatusPending  = "PENDING"
	InvitationStatusApproved = "APPROVED"
	InvitationStatusRejected = "REJECTED"
)

type Invitation struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"projectId"`
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Sender   *User    `json:"sender,omitempty"`
	Receiver *User    `json:"receiver,omitempty"`
	Project  *Project `json:"project,omitempty"`
}
