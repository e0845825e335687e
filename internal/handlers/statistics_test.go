package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

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

func setupStatisticsTest(t *testing.T) (*testutil.MockStatisticsService, *StatisticsHandler, *services.JWTService) {
	t.Helper()
	mockStatisticsService := new(testutil.MockStatisticsService)
	handler := NewStatisticsHandler(mockStatisticsService)
	jwtSvc := newTestJWTService()
	return mockStatisticsService, handler, jwtSvc
}

func TestStatisticsHandler_Get_Success(t *testing.T) {
	mockStatisticsService, handler, jwtSvc := setupStatisticsTest(t)

	userID := uuid.New()
	stats := &services.Statistics{
		TotalProjects: 3,
		TotalTasks:    12,
		StatusCounts: []services.StatusCount{
			{Status: "To Do", Count: 5},
			{Status: "In Progress", Count: 4},
			{Status: "Done", Count: 3},
		},
		DailyStats: []services.DailyTaskStats{
			{Date: "2024-01-15", Finished: 2, Created: 3},
		},
	}
	mockStatisticsService.On("GetStatistics", mock.Anything, userID).Return(stats, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/statistics", handler.Get)

	token := generateTestToken(t, jwtSvc, userID, "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodGet, "/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response dto.StatisticsResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, 3, response.TotalProjects)
	assert.Equal(t, 12, response.TotalTasks)
	require.Len(t, response.StatusCounts, 3)
	assert.Equal(t, "To Do", response.StatusCounts[0].Status)
	require.Len(t, response.DailyStats, 1)
	assert.Equal(t, "2024-01-15", response.DailyStats[0].Date)

	mockStatisticsService.AssertExpectations(t)
}

func TestStatisticsHandler_Get_ServiceError(t *testing.T) {
	mockStatisticsService, handler, jwtSvc := setupStatisticsTest(t)

	userID := uuid.New()
	mockStatisticsService.On("GetStatistics", mock.Anything, userID).
		Return(nil, assert.AnError)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/statistics", handler.Get)

	token := generateTestToken(t, jwtSvc, userID, "john@example.com", models.RoleMember)
	req := httptest.NewRequest(http.MethodGet, "/statistics", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
