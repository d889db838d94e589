package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"remindbot/models"
	"remindbot/session"
	"remindbot/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

type fakeBot struct {
	mu   sync.Mutex
	sent []tgbotapi.Chattable
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) sentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

// lastText digs the text out of the most recent send, whatever its config type.
func (b *fakeBot) lastText() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.sent) == 0 {
		return ""
	}
	switch c := b.sent[len(b.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return c.Text
	case tgbotapi.EditMessageTextConfig:
		return c.Text
	}
	return ""
}

type fakeReminders struct {
	mu         sync.Mutex
	rows       []*models.Reminder
	failInsert bool
}

func (f *fakeReminders) Insert(ctx context.Context, r *models.Reminder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failInsert {
		return errors.New("insert failed")
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	cp := *r
	f.rows = append(f.rows, &cp)
	return nil
}

func (f *fakeReminders) Get(ctx context.Context, userID int64, id uuid.UUID) (*models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == userID && r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeReminders) forUser(userID int64) []*models.Reminder {
	var out []*models.Reminder
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RemindAt.Before(out[j].RemindAt) })
	return out
}

func (f *fakeReminders) ListPage(ctx context.Context, userID int64, page int) ([]models.Reminder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.forUser(userID)
	lo := (page - 1) * store.PageSize
	if lo >= len(rows) {
		return nil, nil
	}
	hi := lo + store.PageSize
	if hi > len(rows) {
		hi = len(rows)
	}
	var out []models.Reminder
	for _, r := range rows[lo:hi] {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReminders) TotalPages(ctx context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := len(f.forUser(userID))
	pages := (n + store.PageSize - 1) / store.PageSize
	if pages < 1 {
		pages = 1
	}
	return pages, nil
}

func (f *fakeReminders) SetDone(ctx context.Context, userID int64, id uuid.UUID, done bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.UserID == userID && r.ID == id {
			r.Done = done
			return nil
		}
	}
	return store.ErrNotFound
}

func (f *fakeReminders) Delete(ctx context.Context, userID int64, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rows {
		if r.UserID == userID && r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

type fakeUsers struct {
	mu       sync.Mutex
	tz       map[int64]string
	actions  map[int64]int64
	upserted []int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{tz: make(map[int64]string), actions: make(map[int64]int64)}
}

func (f *fakeUsers) Upsert(ctx context.Context, telegramID int64, username, language string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserted = append(f.upserted, telegramID)
	return &models.User{TelegramID: telegramID, Username: username}, nil
}

func (f *fakeUsers) SetTimezone(ctx context.Context, telegramID int64, tz string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tz[telegramID] = tz
	return nil
}

func (f *fakeUsers) Timezone(ctx context.Context, telegramID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tz, ok := f.tz[telegramID]; ok {
		return tz
	}
	return models.DefaultTimezone
}

func (f *fakeUsers) BumpActivity(ctx context.Context, telegramID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions[telegramID]++
	return nil
}

func (f *fakeUsers) TotalActions(ctx context.Context, telegramID int64) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.actions[telegramID], nil
}

type registration struct {
	userID int64
	id     uuid.UUID
	text   string
	dueAt  time.Time
}

type fakeRegistry struct {
	mu         sync.Mutex
	registered []registration
	cancelled  []uuid.UUID
	live       map[uuid.UUID]bool
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{live: make(map[uuid.UUID]bool)}
}

func (f *fakeRegistry) Register(userID int64, reminderID uuid.UUID, text string, dueAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, registration{userID: userID, id: reminderID, text: text, dueAt: dueAt})
	f.live[reminderID] = true
}

func (f *fakeRegistry) Cancel(userID int64, reminderID uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, reminderID)
	existed := f.live[reminderID]
	delete(f.live, reminderID)
	return existed
}

func newTestHandler(t *testing.T) (*Handler, *fakeBot, *fakeReminders, *fakeUsers, *fakeRegistry, session.Store) {
	t.Helper()
	bot := &fakeBot{}
	reminders := &fakeReminders{}
	users := newFakeUsers()
	reg := newFakeRegistry()
	sessions := session.NewMemoryStore()
	h := New(bot, users, reminders, sessions, reg, models.DefaultTimezone)
	return h, bot, reminders, users, reg, sessions
}

func commandMsg(userID int64, text string) tgbotapi.Update {
	cmdLen := strings.IndexByte(text, ' ')
	if cmdLen < 0 {
		cmdLen = len(text)
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, UserName: "tester"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}},
	}}
}

func textMsg(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		From:      &tgbotapi.User{ID: userID, UserName: "tester"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}}
}

func callback(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: &tgbotapi.User{ID: userID, UserName: "tester"},
		Data: data,
		Message: &tgbotapi.Message{
			MessageID: 10,
			Chat:      &tgbotapi.Chat{ID: userID},
		},
	}}
}
