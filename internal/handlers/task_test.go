package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/middleware"
	"github.com/taskforge/taskforge-api/internal/models"
	"github.com/taskforge/taskforge-api/internal/services"
	"github.com/taskforge/taskforge-api/pkg/dto"
	"github.com/taskforge/taskforge-api/tests/testutil"
)

func setupTaskTest(t *testing.T) (*testutil.MockTaskService, *TaskHandler, *services.JWTService) {
	t.Helper()
	mockTaskService := new(testutil.MockTaskService)
	handler := NewTaskHandler(mockTaskService)
	jwtSvc := newTestJWTService()
	return mockTaskService, handler, jwtSvc
}

func testTask(projectID, userID, statusID uuid.UUID) *models.Task {
	return &models.Task{
		ID:        uuid.New(),
		Name:      "Design homepage mockup",
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		ProjectID: projectID,
		UserID:    userID,
		StatusID:  statusID,
		Project:   &models.Project{ID: projectID, Name: "E-commerce Website"},
		User: &models.User{
			ID: userID, FirstName: "John", LastName: "Doe",
			Email: "john@example.com", Role: models.RoleAdmin,
		},
		Status: &models.TaskStatus{ID: statusID, Name: "To Do", Color: "#6B7280"},
	}
}

func TestTaskHandler_Create_Success(t *testing.T) {
	mockTaskService, handler, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	projectID := uuid.New()
	statusID := uuid.New()
	task := testTask(projectID, userID, statusID)

	mockTaskService.On("Create", mock.Anything, services.CreateTaskParams{
		Name:      "Design homepage mockup",
		StartDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		ProjectID: projectID,
		UserID:    userID,
		StatusID:  statusID,
	}).Return(task, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/tasks", handler.Create)

	body := dto.CreateTaskRequest{
		Name:      "Design homepage mockup",
		StartDate: "2024-01-15",
		EndDate:   "2024-01-20",
		ProjectID: projectID,
		UserID:    userID,
		StatusID:  statusID,
	}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "john@example.com", models.RoleAdmin)
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.TaskResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, task.ID, response.ID)
	assert.Equal(t, "2024-01-15", response.StartDate)
	assert.Equal(t, "2024-01-20", response.EndDate)
	assert.Equal(t, "To Do", response.Status.Name)
	assert.Equal(t, "John Doe", response.User.Name)

	mockTaskService.AssertExpectations(t)
}

func TestTaskHandler_Create_EndBeforeStart(t *testing.T) {
	_, handler, jwtSvc := setupTaskTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/tasks", handler.Create)

	body := dto.CreateTaskRequest{
		Name:      "Design homepage mockup",
		StartDate: "2024-01-20",
		EndDate:   "2024-01-15",
		ProjectID: uuid.New(),
		UserID:    uuid.New(),
		StatusID:  uuid.New(),
	}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "endDate must not be before startDate")
}

func TestTaskHandler_Create_AssigneeNotMember(t *testing.T) {
	mockTaskService, handler, jwtSvc := setupTaskTest(t)

	mockTaskService.On("Create", mock.Anything, mock.Anything).
		Return(nil, services.ErrAssigneeNotMember)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/tasks", handler.Create)

	body := dto.CreateTaskRequest{
		Name:      "Design homepage mockup",
		StartDate: "2024-01-15",
		EndDate:   "2024-01-20",
		ProjectID: uuid.New(),
		UserID:    uuid.New(),
		StatusID:  uuid.New(),
	}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be assigned to the project")
}

func TestTaskHandler_Create_MissingStatus(t *testing.T) {
	_, handler, jwtSvc := setupTaskTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/tasks", handler.Create)

	body := dto.CreateTaskRequest{
		Name:      "Design homepage mockup",
		StartDate: "2024-01-15",
		EndDate:   "2024-01-20",
		ProjectID: uuid.New(),
		UserID:    uuid.New(),
	}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "statusId is required")
}

func TestTaskHandler_List_Success(t *testing.T) {
	mockTaskService, handler, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	tasks := []models.Task{
		*testTask(uuid.New(), userID, uuid.New()),
		*testTask(uuid.New(), userID, uuid.New()),
	}
	mockTaskService.On("List", mock.Anything).Return(tasks, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/tasks", handler.List)

	token := generateTestToken(t, jwtSvc, userID, "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.TaskResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Len(t, response, 2)

	mockTaskService.AssertExpectations(t)
}

func TestTaskHandler_ListByProject_Success(t *testing.T) {
	mockTaskService, handler, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	projectID := uuid.New()
	tasks := []models.Task{*testTask(projectID, userID, uuid.New())}
	mockTaskService.On("ListByProject", mock.Anything, projectID).Return(tasks, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/tasks/project/:projectId", handler.ListByProject)

	token := generateTestToken(t, jwtSvc, userID, "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodGet, "/tasks/project/"+projectID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.TaskResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response, 1)
	assert.Equal(t, projectID, response[0].ProjectID)

	mockTaskService.AssertExpectations(t)
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	mockTaskService, handler, jwtSvc := setupTaskTest(t)

	taskID := uuid.New()
	mockTaskService.On("GetByID", mock.Anything, taskID).
		Return(nil, services.ErrTaskNotFound)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/tasks/:id", handler.Get)

	token := generateTestToken(t, jwtSvc, uuid.New(), "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodGet, "/tasks/"+taskID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "task not found")
}

func TestTaskHandler_Update_Success(t *testing.T) {
	mockTaskService, handler, jwtSvc := setupTaskTest(t)

	userID := uuid.New()
	statusID := uuid.New()
	task := testTask(uuid.New(), userID, statusID)

	name := "Design homepage mockup v2"
	mockTaskService.On("Update", mock.Anything, task.ID, services.UpdateTaskParams{
		Name:     &name,
		StatusID: &statusID,
	}).Return(task, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/tasks/:id", handler.Update)

	body := dto.UpdateTaskRequest{Name: &name, StatusID: &statusID}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, userID, "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodPatch, "/tasks/"+task.ID.String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockTaskService.AssertExpectations(t)
}

func TestTaskHandler_Update_BadStartDate(t *testing.T) {
	_, handler, jwtSvc := setupTaskTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/tasks/:id", handler.Update)

	startDate := "January 15"
	body := dto.UpdateTaskRequest{StartDate: &startDate}
	jsonBody, _ := json.Marshal(body)

	token := generateTestToken(t, jwtSvc, uuid.New(), "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodPatch, "/tasks/"+uuid.New().String(), bytes.NewReader(jsonBody))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "startDate must be in YYYY-MM-DD format")
}

func TestTaskHandler_Delete_Success(t *testing.T) {
	mockTaskService, handler, jwtSvc := setupTaskTest(t)

	taskID := uuid.New()
	mockTaskService.On("Delete", mock.Anything, taskID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Delete("/tasks/:id", handler.Delete)

	token := generateTestToken(t, jwtSvc, uuid.New(), "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodDelete, "/tasks/"+taskID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "task deleted")

	mockTaskService.AssertExpectations(t)
}
