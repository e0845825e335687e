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

type TaskStatusHandler struct {
	statusService TaskStatusServiceInterface
}

func NewTaskStatusHandler(statusService TaskStatusServiceInterface) *TaskStatusHandler {
	return &TaskStatusHandler{statusService: statusService}
}

func (h *TaskStatusHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTaskStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	if req.Color == "" {
		c.BadRequest("color is required")
		return
	}

	status, err := h.statusService.Create(context.Background(), req.Name, req.Color)
	if err != nil {
		if errors.Is(err, services.ErrStatusNameTaken) {
			conflict(c, "a task status with this name already exists")
			return
		}
		c.InternalServerError("failed to create task status")
		return
	}

	_ = c.JSON(201, taskStatusResponse(status))
}

func (h *TaskStatusHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	statuses, err := h.statusService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to get task statuses")
		return
	}

	response := make([]dto.TaskStatusResponse, len(statuses))
	for i := range statuses {
		response[i] = taskStatusResponse(&statuses[i])
	}

	_ = c.JSON(200, response)
}

func (h *TaskStatusHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	statusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid status id")
		return
	}

	status, err := h.statusService.GetByID(context.Background(), statusID)
	if err != nil {
		if errors.Is(err, services.ErrStatusNotFound) {
			c.NotFound("task status not found")
			return
		}
		c.InternalServerError("failed to get task status")
		return
	}

	_ = c.JSON(200, taskStatusResponse(status))
}

func (h *TaskStatusHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	statusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid status id")
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	status, err := h.statusService.Update(context.Background(), statusID, services.UpdateTaskStatusParams{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStatusNotFound):
			c.NotFound("task status not found")
		case errors.Is(err, services.ErrStatusNameTaken):
			conflict(c, "a task status with this name already exists")
		default:
			c.InternalServerError("failed to update task status")
		}
		return
	}

	_ = c.JSON(200, taskStatusResponse(status))
}

func (h *TaskStatusHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	statusID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid status id")
		return
	}

	if err := h.statusService.Delete(context.Background(), statusID); err != nil {
		switch {
		case errors.Is(err, services.ErrStatusNotFound):
			c.NotFound("task status not found")
		case errors.Is(err, services.ErrStatusInUse):
			conflict(c, "task status is still referenced by tasks")
		default:
			c.InternalServerError("failed to delete task status")
		}
		return
	}

	_ = c.JSON(200, map[string]string{"message": "task status deleted"})
}

func taskStatusResponse(status *models.TaskStatus) dto.TaskStatusResponse {
	return dto.TaskStatusResponse{
		ID:    status.ID,
		Name:  status.Name,
		Color: status.Color,
	}
}
