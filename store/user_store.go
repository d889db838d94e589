package store

import (
	"context"
	"errors"
	"time"

	"remindbot/models"
	"remindbot/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserStore struct {
	db        *gorm.DB
	defaultTZ string
}

func NewUserStore(db *gorm.DB, defaultTZ string) *UserStore {
	if defaultTZ == "" {
		defaultTZ = models.DefaultTimezone
	}
	return &UserStore{db: db, defaultTZ: defaultTZ}
}

func (s *UserStore) Get(ctx context.Context, telegramID int64) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Upsert registers a user on first contact or flips an existing one back to alive.
func (s *UserStore) Upsert(ctx context.Context, telegramID int64, username, language string) (*models.User, error) {
	u, err := s.Get(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		u = &models.User{
			TelegramID: telegramID,
			Username:   username,
			Language:   language,
			Role:       "user",
			Timezone:   s.defaultTZ,
			IsAlive:    true,
		}
		if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
			return nil, err
		}
		return u, nil
	}
	if !u.IsAlive {
		if err := s.db.WithContext(ctx).Model(u).Update("is_alive", true).Error; err != nil {
			return nil, err
		}
		u.IsAlive = true
	}
	return u, nil
}

func (s *UserStore) SetTimezone(ctx context.Context, telegramID int64, tz string) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("telegram_id = ?", telegramID).
		Update("timezone", tz).Error
}

// Timezone resolves the user's display zone, falling back to the default when
// the user is unknown or never completed timezone setup.
func (s *UserStore) Timezone(ctx context.Context, telegramID int64) string {
	u, err := s.Get(ctx, telegramID)
	if err != nil || u == nil || u.Timezone == "" {
		return s.defaultTZ
	}
	return u.Timezone
}

// BumpActivity increments today's action counter for the user.
func (s *UserStore) BumpActivity(ctx context.Context, telegramID int64) error {
	day := utils.BeginningOfDay(time.Now().UTC())
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"actions": gorm.Expr("activities.actions + 1"),
			}),
		}).
		Create(&models.Activity{UserID: telegramID, Day: day, Actions: 1}).Error
}

func (s *UserStore) TotalActions(ctx context.Context, telegramID int64) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("user_id = ?", telegramID).
		Select("COALESCE(SUM(actions), 0)").
		Scan(&total).Error
	return total, err
}
