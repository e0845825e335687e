package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/taskforge/taskforge-api/internal/middleware"
	"github.com/taskforge/taskforge-api/pkg/dto"
)

type StatisticsHandler struct {
	statisticsService StatisticsServiceInterface
}

func NewStatisticsHandler(statisticsService StatisticsServiceInterface) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	stats, err := h.statisticsService.GetStatistics(context.Background(), userID)
	if err != nil {
		c.InternalServerError("failed to get statistics")
		return
	}

	response := dto.StatisticsResponse{
		TotalProjects: stats.TotalProjects,
		TotalTasks:    stats.TotalTasks,
		StatusCounts:  make([]dto.StatusCount, len(stats.StatusCounts)),
		DailyStats:    make([]dto.DailyTaskStats, len(stats.DailyStats)),
	}
	for i, sc := range stats.StatusCounts {
		response.StatusCounts[i] = dto.StatusCount{Status: sc.Status, Count: sc.Count}
	}
	for i, ds := range stats.DailyStats {
		response.DailyStats[i] = dto.DailyTaskStats{Date: ds.Date, Finished: ds.Finished, Created: ds.Created}
	}

	_ = c.JSON(200, response)
}
