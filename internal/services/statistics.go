package services

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/database"
)

type StatusCount struct {
	Status string
	Count  int
}

type DailyTaskStats struct {
	Date     string
	Finished int
	Created  int
}

// Statistics mixes two real aggregates with placeholder series. Only
// TotalProjects and TotalTasks are derived from stored data; StatusCounts
// and DailyStats are randomly generated until real aggregation ships.
type Statistics struct {
	TotalProjects int
	TotalTasks    int
	StatusCounts  []StatusCount
	DailyStats    []DailyTaskStats
}

type StatisticsService struct {
	db *database.DB
}

func NewStatisticsService(db *database.DB) *StatisticsService {
	return &StatisticsService{db: db}
}

func (s *StatisticsService) GetStatistics(ctx context.Context, userID uuid.UUID) (*Statistics, error) {
	var totalProjects int
	err := s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM projects p
		WHERE p.creator_id = $1
		   OR EXISTS(SELECT 1 FROM project_members pm WHERE pm.project_id = p.id AND pm.user_id = $1)
	`, userID).Scan(&totalProjects)
	if err != nil {
		return nil, err
	}

	var totalTasks int
	err = s.db.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tasks t
		WHERE EXISTS(
			SELECT 1 FROM projects p
			WHERE p.id = t.project_id
			  AND (p.creator_id = $1
			       OR EXISTS(SELECT 1 FROM project_members pm WHERE pm.project_id = p.id AND pm.user_id = $1))
		)
	`, userID).Scan(&totalTasks)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Pool.Query(ctx, `
		SELECT name FROM task_statuses ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var statusCounts []StatusCount
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		statusCounts = append(statusCounts, StatusCount{
			Status: name,
			Count:  rand.IntN(11),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Statistics{
		TotalProjects: totalProjects,
		TotalTasks:    totalTasks,
		StatusCounts:  statusCounts,
		DailyStats:    generateDailyStats(),
	}, nil
}

func generateDailyStats() []DailyTaskStats {
	stats := make([]DailyTaskStats, 0, 30)
	today := time.Now()
	for i := 29; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		stats = append(stats, DailyTaskStats{
			Date:     day.Format("2006-01-02"),
			Finished: rand.IntN(8),
			Created:  rand.IntN(8),
		})
	}
	return stats
}
