package dto

import "github.com/gymtrack/gymtrack-backend/internal/models"

type UsersResponse struct {
	Success bool          `json:"success"`
	Users   []models.User `json:"users"`
}

type Stats struct {
	TotalUsers         int64 `json:"totalUsers"`
	TotalActivities    int64 `json:"totalActivities"`
	ActivitiesToday    int64 `json:"activitiesToday"`
	ActivitiesThisWeek int64 `json:"activitiesThisWeek"`
}

type StatsResponse struct {
	Success bool  `json:"success"`
	Stats   Stats `json:"stats"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
