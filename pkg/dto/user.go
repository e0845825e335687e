package dto

import "github.com/google/uuid"

// UserRef is the compact identity view embedded in project, task and
// invitation responses.
type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}
