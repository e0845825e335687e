package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
}

type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

type AssignUserRequest struct {
	UserID uuid.UUID `json:"userId"`
}

// ProjectRef is the compact project view embedded in invitation responses.
type ProjectRef struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

type ProjectResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	DueDate       string    `json:"dueDate"`
	CreatorID     uuid.UUID `json:"creatorId"`
	Role          string    `json:"role,omitempty"`
	Creator       UserRef   `json:"creator"`
	AssignedUsers []UserRef `json:"assignedUsers"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
