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

type TaskHandler struct {
	taskService TaskServiceInterface
}

func NewTaskHandler(taskService TaskServiceInterface) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}
	if req.ProjectID == uuid.Nil {
		c.BadRequest("projectId is required")
		return
	}
	if req.UserID == uuid.Nil {
		c.BadRequest("userId is required")
		return
	}
	if req.StatusID == uuid.Nil {
		c.BadRequest("statusId is required")
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.BadRequest("startDate must be in YYYY-MM-DD format")
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.BadRequest("endDate must be in YYYY-MM-DD format")
		return
	}
	if endDate.Before(startDate) {
		c.BadRequest("endDate must not be before startDate")
		return
	}

	task, err := h.taskService.Create(context.Background(), services.CreateTaskParams{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   startDate,
		EndDate:     endDate,
		ProjectID:   req.ProjectID,
		UserID:      req.UserID,
		StatusID:    req.StatusID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProjectNotFound):
			c.NotFound("project not found")
		case errors.Is(err, services.ErrUserNotFound):
			c.NotFound("user not found")
		case errors.Is(err, services.ErrStatusNotFound):
			c.NotFound("task status not found")
		case errors.Is(err, services.ErrAssigneeNotMember):
			c.BadRequest("user must be assigned to the project to have tasks")
		default:
			c.InternalServerError("failed to create task")
		}
		return
	}

	_ = c.JSON(201, taskResponse(task))
}

func (h *TaskHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	tasks, err := h.taskService.List(context.Background())
	if err != nil {
		c.InternalServerError("failed to get tasks")
		return
	}

	_ = c.JSON(200, taskResponses(tasks))
}

func (h *TaskHandler) ListByProject(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	tasks, err := h.taskService.ListByProject(context.Background(), projectID)
	if err != nil {
		c.InternalServerError("failed to get tasks")
		return
	}

	_ = c.JSON(200, taskResponses(tasks))
}

func (h *TaskHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	task, err := h.taskService.GetByID(context.Background(), taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.NotFound("task not found")
			return
		}
		c.InternalServerError("failed to get task")
		return
	}

	_ = c.JSON(200, taskResponse(task))
}

func (h *TaskHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	params := services.UpdateTaskParams{
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		StatusID:    req.StatusID,
	}
	if req.StartDate != nil {
		startDate, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			c.BadRequest("startDate must be in YYYY-MM-DD format")
			return
		}
		params.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			c.BadRequest("endDate must be in YYYY-MM-DD format")
			return
		}
		params.EndDate = &endDate
	}

	task, err := h.taskService.Update(context.Background(), taskID, params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			c.NotFound("task not found")
		case errors.Is(err, services.ErrStatusNotFound):
			c.NotFound("task status not found")
		case errors.Is(err, services.ErrAssigneeNotMember):
			c.BadRequest("user must be assigned to the project to have tasks")
		default:
			c.InternalServerError("failed to update task")
		}
		return
	}

	_ = c.JSON(200, taskResponse(task))
}

func (h *TaskHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	if err := h.taskService.Delete(context.Background(), taskID); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.NotFound("task not found")
			return
		}
		c.InternalServerError("failed to delete task")
		return
	}

	_ = c.JSON(200, map[string]string{"message": "task deleted"})
}

func taskResponse(task *models.Task) dto.TaskResponse {
	response := dto.TaskResponse{
		ID:          task.ID,
		Name:        task.Name,
		Description: task.Description,
		StartDate:   task.StartDate.Format(dateLayout),
		EndDate:     task.EndDate.Format(dateLayout),
		ProjectID:   task.ProjectID,
		UserID:      task.UserID,
		StatusID:    task.StatusID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Project != nil {
		response.Project = dto.TaskProjectRef{ID: task.Project.ID, Name: task.Project.Name}
	}
	if task.User != nil {
		response.User = userRef(task.User)
	}
	if task.Status != nil {
		response.Status = dto.TaskStatusResponse{
			ID:    task.Status.ID,
			Name:  task.Status.Name,
			Color: task.Status.Color,
		}
	}
	return response
}

func taskResponses(tasks []models.Task) []dto.TaskResponse {
	response := make([]dto.TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
	}
	return response
}
