package models

import (
	"time"

	"gorm.io/gorm"
)

// Activity counts handled updates per user per calendar day.
type Activity struct {
	UserID  int64     `gorm:"not null;uniqueIndex:idx_activity_user_day"`
	Day     time.Time `gorm:"type:date;not null;uniqueIndex:idx_activity_user_day"`
	Actions int       `gorm:"not null;default:1"`

	gorm.Model
}
