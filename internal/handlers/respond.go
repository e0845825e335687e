package handlers

import (
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/pkg/dto"
)

const dateLayout = "2006-01-02"

func conflict(c *drift.Context, message string) {
	_ = c.JSON(409, map[string]string{"error": message})
}

func userRef(u *models.User) dto.UserRef {
	return dto.UserRef{
		ID:    u.ID,
		Name:  u.FullName(),
		Email: u.Email,
	}
}
