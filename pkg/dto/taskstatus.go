package dto

import "github.com/google/uuid"

type CreateTaskStatusRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type UpdateTaskStatusRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

type TaskStatusResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}
