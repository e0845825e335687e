package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	ProjectID   uuid.UUID `json:"projectId"`
	UserID      uuid.UUID `json:"userId"`
	StatusID    uuid.UUID `json:"statusId"`
}

// UpdateTaskRequest has no projectId field: tasks cannot move between
// projects after creation.
type UpdateTaskRequest struct {
	Name        *string    `json:"name,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *string    `json:"startDate,omitempty"`
	EndDate     *string    `json:"endDate,omitempty"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	StatusID    *uuid.UUID `json:"statusId,omitempty"`
}

type TaskProjectRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type TaskResponse struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	ProjectID   uuid.UUID          `json:"projectId"`
	UserID      uuid.UUID          `json:"userId"`
	StatusID    uuid.UUID          `json:"statusId"`
	Project     TaskProjectRef     `json:"project"`
	User        UserRef            `json:"user"`
	Status      TaskStatusResponse `json:"status"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
