package models

import "time"

// Activity is a single logged workout. Username is a snapshot of the member's
// username at creation time and is intentionally not joined live.
type Activity struct {
	ID           string    `gorm:"primaryKey;size:40" json:"id"`
	UserID       string    `gorm:"size:40;not null;index" json:"userId"`
	Username     string    `gorm:"size:100;not null" json:"username"`
	ActivityType string    `gorm:"size:100" json:"activityType"`
	Description  string    `gorm:"type:text" json:"description"`
	Duration     int       `json:"duration"`
	Equipment    string    `gorm:"size:255" json:"equipment"`
	Date         time.Time `gorm:"index" json:"date"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Activity) TableName() string { return "activities" }
