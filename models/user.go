package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultTimezone = "Europe/Moscow"

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	TelegramID int64     `gorm:"uniqueIndex;not null"`
	Username   string    `gorm:"type:varchar(64)"`
	Language   string    `gorm:"type:varchar(8);default:'ru'"`

	Role string `gorm:"type:varchar(20);not null;default:'user'"` // 'user' or 'admin'

	// IANA zone chosen through the /time wizard; used when composing reminder instants.
	Timezone string `gorm:"type:varchar(64);not null;default:'Europe/Moscow'"`

	// Optional E.164 number; enables the SMS fallback channel.
	Phone string `gorm:"type:varchar(20)"`

	IsAlive bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
