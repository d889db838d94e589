package store

import (
	"context"
	"errors"
	"math"

	"remindbot/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PageSize = 10

// ErrNotFound is returned when a reminder no longer exists. Callers treat it
// as benign and render the empty state.
var ErrNotFound = errors.New("reminder not found")

type ReminderStore struct {
	db *gorm.DB
}

func NewReminderStore(db *gorm.DB) *ReminderStore {
	return &ReminderStore{db: db}
}

func (s *ReminderStore) Insert(ctx context.Context, r *models.Reminder) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *ReminderStore) Get(ctx context.Context, userID int64, id uuid.UUID) (*models.Reminder, error) {
	var r models.Reminder
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListPage returns one page of the user's reminders ordered by target instant.
func (s *ReminderStore) ListPage(ctx context.Context, userID int64, page int) ([]models.Reminder, error) {
	if page < 1 {
		page = 1
	}
	var rows []models.Reminder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("remind_at").
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&rows).Error
	return rows, err
}

func (s *ReminderStore) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// TotalPages is always at least 1, even for an empty list.
func (s *ReminderStore) TotalPages(ctx context.Context, userID int64) (int, error) {
	count, err := s.Count(ctx, userID)
	if err != nil {
		return 0, err
	}
	pages := int(math.Ceil(float64(count) / float64(PageSize)))
	if pages < 1 {
		pages = 1
	}
	return pages, nil
}

// ListActive returns every non-completed reminder across all users. Used by
// the boot-time recovery pass and the resync sweep.
func (s *ReminderStore) ListActive(ctx context.Context) ([]models.Reminder, error) {
	var rows []models.Reminder
	err := s.db.WithContext(ctx).
		Where("done = ?", false).
		Find(&rows).Error
	return rows, err
}

func (s *ReminderStore) SetDone(ctx context.Context, userID int64, id uuid.UUID, done bool) error {
	res := s.db.WithContext(ctx).
		Model(&models.Reminder{}).
		Where("user_id = ? AND id = ?", userID, id).
		Update("done", done)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ReminderStore) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&models.Reminder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
