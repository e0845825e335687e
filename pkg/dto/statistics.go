package dto

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DailyTaskStats struct {
	Date     string `json:"date"`
	Finished int    `json:"finished"`
	Created  int    `json:"created"`
}

// StatisticsResponse: totalProjects and totalTasks are real counts over the
// caller's project set; statusCounts and dailyStats are placeholders.
type StatisticsResponse struct {
	TotalProjects int              `json:"totalProjects"`
	TotalTasks    int              `json:"totalTasks"`
	StatusCounts  []StatusCount    `json:"statusCounts"`
	DailyStats    []DailyTaskStats `json:"dailyStats"`
}
