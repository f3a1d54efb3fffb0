package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/gymtrack/gymtrack-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrNotActivityOwner = errors.New("not authorized to delete this activity")
)

type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Create records a workout for the actor. Ownership always comes from the
// session, never from client input. Zero-value fields get defaults:
// activityType "Workout", date now, negative durations clamped to zero.
func (s *ActivityService) Create(actor Actor, activityType, description string, duration int, equipment string, date time.Time) (*models.Activity, error) {
	if activityType == "" {
		activityType = "Workout"
	}
	if date.IsZero() {
		date = time.Now()
	}
	if duration < 0 {
		duration = 0
	}

	activity := models.Activity{
		ID:           models.NewID("activity"),
		UserID:       actor.ID,
		Username:     actor.Username,
		ActivityType: activityType,
		Description:  description,
		Duration:     duration,
		Equipment:    equipment,
		Date:         date,
	}

	if err := s.db.Create(&activity).Error; err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}
	return &activity, nil
}

// List returns all activities for owners and only the actor's own for
// members, in creation order.
func (s *ActivityService) List(actor Actor) ([]models.Activity, error) {
	q := s.db.Order("created_at")
	if !actor.IsOwner() {
		q = q.Where("user_id = ?", actor.ID)
	}

	activities := make([]models.Activity, 0)
	if err := q.Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

// Delete removes an activity. Members may only delete their own; owners may
// delete any.
func (s *ActivityService) Delete(actor Actor, activityID string) error {
	var activity models.Activity
	err := s.db.First(&activity, "id = ?", activityID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrActivityNotFound
	}
	if err != nil {
		return fmt.Errorf("look up activity: %w", err)
	}

	if !actor.IsOwner() && activity.UserID != actor.ID {
		return ErrNotActivityOwner
	}

	if err := s.db.Delete(&activity).Error; err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}
