package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/taskforge/taskforge-api/internal/middleware"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/internal/services"
	"github.com/taskforge/taskforge-api/pkg/dto"
)

type ProjectHandler struct {
	projectService ProjectServiceInterface
}

func NewProjectHandler(projectService ProjectServiceInterface) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		c.BadRequest("dueDate must be in YYYY-MM-DD format")
		return
	}

	project, err := h.projectService.Create(context.Background(), req.Name, req.Description, dueDate, userID)
	if err != nil {
		c.InternalServerError("failed to create project")
		return
	}

	_ = c.JSON(201, projectResponse(project, ""))
}

func (h *ProjectHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projects, err := h.projectService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to get projects")
		return
	}

	response := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		response[i] = projectResponse(&projects[i], "")
	}

	_ = c.JSON(200, response)
}

func (h *ProjectHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	project, err := h.projectService.GetByID(context.Background(), projectID)
	if err != nil {
		c.NotFound("project not found")
		return
	}

	role := "MEMBER"
	if project.CreatorID == userID {
		role = "CREATOR"
	}

	_ = c.JSON(200, projectResponse(project, role))
}

func (h *ProjectHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	params := services.UpdateProjectParams{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.DueDate != nil {
		dueDate, err := time.Parse(dateLayout, *req.DueDate)
		if err != nil {
			c.BadRequest("dueDate must be in YYYY-MM-DD format")
			return
		}
		params.DueDate = &dueDate
	}

	project, err := h.projectService.Update(context.Background(), projectID, userID, params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			c.NotFound("project not found")
		case errors.Is(err, services.ErrNotProjectCreator):
			c.Forbidden("only the project creator can update this project")
		default:
			c.InternalServerError("failed to update project")
		}
		return
	}

	_ = c.JSON(200, projectResponse(project, ""))
}

func (h *ProjectHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	if err := h.projectService.Delete(context.Background(), projectID, userID); err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			c.NotFound("project not found")
		case errors.Is(err, services.ErrNotProjectCreator):
			c.Forbidden("only the project creator can delete this project")
		default:
			c.InternalServerError("failed to delete project")
		}
		return
	}

	_ = c.JSON(200, map[string]string{"message": "project deleted"})
}

func (h *ProjectHandler) AssignUser(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	var req dto.AssignUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.UserID == uuid.Nil {
		c.BadRequest("userId is required")
		return
	}

	project, err := h.projectService.AssignUser(context.Background(), projectID, req.UserID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			c.NotFound("project not found")
		case errors.Is(err, services.ErrUserNotFound):
			c.NotFound("user not found")
		case errors.Is(err, services.ErrNotProjectCreator):
			c.Forbidden("only the project creator can assign users")
		case errors.Is(err, services.ErrAlreadyAssigned):
			conflict(c, "user is already assigned to this project")
		default:
			c.InternalServerError("failed to assign user")
		}
		return
	}

	_ = c.JSON(200, projectResponse(project, "CREATOR"))
}

func (h *ProjectHandler) UnassignUser(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	targetUserID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.BadRequest("invalid user id")
		return
	}

	project, err := h.projectService.UnassignUser(context.Background(), projectID, targetUserID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			c.NotFound("project not found")
		case errors.Is(err, services.ErrNotProjectCreator):
			c.Forbidden("only the project creator can unassign users")
		case errors.Is(err, services.ErrNotAssigned):
			c.NotFound("user is not assigned to this project")
		default:
			c.InternalServerError("failed to unassign user")
		}
		return
	}

	_ = c.JSON(200, projectResponse(project, "CREATOR"))
}

func projectResponse(project *models.Project, role string) dto.ProjectResponse {
	response := dto.ProjectResponse{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		DueDate:       project.DueDate.Format(dateLayout),
		CreatorID:     project.CreatorID,
		Role:          role,
		AssignedUsers: make([]dto.UserRef, 0, len(project.Members)),
		CreatedAt:     project.CreatedAt,
		UpdatedAt:     project.UpdatedAt,
	}
	if project.Creator != nil {
		response.Creator = userRef(project.Creator)
	}
	for _, member := range project.Members {
		if member.User != nil {
			response.AssignedUsers = append(response.AssignedUsers, userRef(member.User))
		}
	}
	return response
}
