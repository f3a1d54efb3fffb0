package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/gymtrack/gymtrack-backend/internal/dto"
	"github.com/gymtrack/gymtrack-backend/internal/models"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListMembers returns every member account. Password hashes never leave the
// model's json:"-" field.
func (s *AdminService) ListMembers() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.db.Order("created_at").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteMember removes a member and all of their activities in one
// transaction, so a crash can never orphan activity rows.
func (s *AdminService) DeleteMember(userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		err := tx.First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("look up user: %w", err)
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.Activity{}).Error; err != nil {
			return fmt.Errorf("delete user activities: %w", err)
		}
		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

// Stats computes membership and activity aggregates fresh on every call.
// "Today" is the server's local calendar date; "this week" is a rolling
// seven days.
func (s *AdminService) Stats(now time.Time) (*dto.Stats, error) {
	stats := &dto.Stats{}

	if err := s.db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := s.db.Model(&models.Activity{}).Count(&stats.TotalActivities).Error; err != nil {
		return nil, fmt.Errorf("count activities: %w", err)
	}

	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.db.Model(&models.Activity{}).
		Where("date >= ? AND date < ?", startOfDay, startOfDay.AddDate(0, 0, 1)).
		Count(&stats.ActivitiesToday).Error; err != nil {
		return nil, fmt.Errorf("count today's activities: %w", err)
	}

	if err := s.db.Model(&models.Activity{}).
		Where("date >= ?", now.AddDate(0, 0, -7)).
		Count(&stats.ActivitiesThisWeek).Error; err != nil {
		return nil, fmt.Errorf("count this week's activities: %w", err)
	}

	return stats, nil
}
