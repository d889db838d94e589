package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reminder struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID int64     `gorm:"index;not null"` // Telegram id of the owner

	Text string `gorm:"type:varchar(255);not null"`
	Done bool   `gorm:"not null;default:false"`

	// RemindAt is always stored in UTC; Timezone is kept for display only.
	RemindAt time.Time `gorm:"not null"`
	Timezone string    `gorm:"type:varchar(64);not null;default:'Europe/Moscow'"`

	gorm.Model
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
