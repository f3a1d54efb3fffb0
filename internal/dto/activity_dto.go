package dto

import "github.com/gymtrack/gymtrack-backend/internal/models"

type CreateActivityRequest struct {
	ActivityType string `json:"activityType"`
	Description  string `json:"description"`
	Duration     int    `json:"duration"`
	Equipment    string `json:"equipment"`
	Date         string `json:"date"` // RFC 3339 or YYYY-MM-DD; empty means now
}

type ActivityResponse struct {
	Success  bool            `json:"success"`
	Activity models.Activity `json:"activity"`
}

type ActivitiesResponse struct {
	Success    bool              `json:"success"`
	Activities []models.Activity `json:"activities"`
}
