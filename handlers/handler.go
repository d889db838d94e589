// Package handlers routes inbound Telegram updates through the conversation
// state machine: the reminder creation wizard, the timezone wizard and the
// paginated to-do list.
package handlers

import (
	"context"
	"log"
	"time"

	"remindbot/keyboard"
	"remindbot/models"
	"remindbot/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// botAPI is the slice of *tgbotapi.BotAPI the handlers use; faked in tests.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type ReminderStore interface {
	Insert(ctx context.Context, r *models.Reminder) error
	Get(ctx context.Context, userID int64, id uuid.UUID) (*models.Reminder, error)
	ListPage(ctx context.Context, userID int64, page int) ([]models.Reminder, error)
	TotalPages(ctx context.Context, userID int64) (int, error)
	SetDone(ctx context.Context, userID int64, id uuid.UUID, done bool) error
	Delete(ctx context.Context, userID int64, id uuid.UUID) error
}

type UserStore interface {
	Upsert(ctx context.Context, telegramID int64, username, language string) (*models.User, error)
	SetTimezone(ctx context.Context, telegramID int64, tz string) error
	Timezone(ctx context.Context, telegramID int64) string
	BumpActivity(ctx context.Context, telegramID int64) error
	TotalActions(ctx context.Context, telegramID int64) (int64, error)
}

// Registry is the scheduling side the conversation needs: arm and disarm.
type Registry interface {
	Register(userID int64, reminderID uuid.UUID, text string, dueAt time.Time)
	Cancel(userID int64, reminderID uuid.UUID) bool
}

type Handler struct {
	bot       botAPI
	users     UserStore
	reminders ReminderStore
	sessions  session.Store
	sched     Registry

	defaultTZ  string
	defaultLoc *time.Location

	now func() time.Time // stubbed in tests
}

func New(bot botAPI, users UserStore, reminders ReminderStore, sessions session.Store, sched Registry, defaultTZ string) *Handler {
	loc, err := time.LoadLocation(defaultTZ)
	if defaultTZ == "" || err != nil {
		defaultTZ = models.DefaultTimezone
		loc, _ = time.LoadLocation(defaultTZ)
	}
	return &Handler{
		bot:        bot,
		users:      users,
		reminders:  reminders,
		sessions:   sessions,
		sched:      sched,
		defaultTZ:  defaultTZ,
		defaultLoc: loc,
		now:        time.Now,
	}
}

// HandleUpdate is the entry point for one inbound update. Safe to run on its
// own goroutine; shared state is guarded by the scheduler and session stores.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.From != nil:
		h.bumpActivity(ctx, update.Message.From.ID)
		h.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		h.bumpActivity(ctx, update.CallbackQuery.From.ID)
		h.handleCallback(ctx, update.CallbackQuery)
	}
}

func (h *Handler) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	sess := h.session(ctx, userID)

	if msg.IsCommand() {
		h.handleCommand(ctx, msg, sess)
		return
	}

	switch sess.Step {
	case session.StepPickTime:
		h.timeEntered(ctx, msg, sess)
	case session.StepPickCity:
		h.cityEntered(ctx, msg, sess)
	case session.StepPickDate:
		h.sendText(msg.Chat.ID, msgUseDateKeyboard)
	case session.StepPickRegion:
		h.sendMarkup(msg.Chat.ID, msgUseRegionKeyboard, keyboard.RegionMenu())
	default:
		h.sendText(msg.Chat.ID, "I did not understand "+msg.Text+". Send /help for the command list.")
	}
}

func (h *Handler) handleCommand(ctx context.Context, msg *tgbotapi.Message, sess session.Session) {
	cmd := msg.Command()

	// Inside a wizard only /cancel and /help are commands; anything else is
	// just invalid input for the current step.
	if sess.Step != session.StepIdle && cmd != "cancel" && cmd != "help" {
		switch sess.Step {
		case session.StepPickTime:
			h.sendText(msg.Chat.ID, msgBadTime)
		case session.StepPickCity:
			h.sendText(msg.Chat.ID, msgBadCity)
		case session.StepPickRegion:
			h.sendText(msg.Chat.ID, msgUseRegionKeyboard)
		default:
			h.sendText(msg.Chat.ID, msgUseDateKeyboard)
		}
		return
	}

	switch cmd {
	case "start":
		h.cmdStart(ctx, msg)
	case "help":
		h.sendText(msg.Chat.ID, msgHelp)
	case "r":
		h.cmdRemind(ctx, msg, sess)
	case "list":
		h.cmdList(ctx, msg, sess)
	case "time":
		h.cmdTime(ctx, msg, sess)
	case "stats":
		h.cmdStats(ctx, msg)
	case "cancel":
		h.cmdCancel(ctx, msg, sess)
	default:
		h.sendText(msg.Chat.ID, msgHelp)
	}
}

func (h *Handler) cmdStart(ctx context.Context, msg *tgbotapi.Message) {
	if _, err := h.users.Upsert(ctx, msg.From.ID, msg.From.UserName, msg.From.LanguageCode); err != nil {
		log.Printf("handlers: upsert user %d: %v", msg.From.ID, err)
		h.sendText(msg.Chat.ID, msgStorageError)
		return
	}
	if err := h.sessions.Clear(ctx, msg.From.ID); err != nil {
		log.Printf("handlers: reset session for %d: %v", msg.From.ID, err)
	}
	h.sendText(msg.Chat.ID, msgStart)
}

func (h *Handler) cmdStats(ctx context.Context, msg *tgbotapi.Message) {
	total, err := h.users.TotalActions(ctx, msg.From.ID)
	if err != nil {
		log.Printf("handlers: stats for %d: %v", msg.From.ID, err)
		h.sendText(msg.Chat.ID, msgStorageError)
		return
	}
	h.sendText(msg.Chat.ID, statsText(total))
}

func (h *Handler) cmdCancel(ctx context.Context, msg *tgbotapi.Message, sess session.Session) {
	if sess.Step == session.StepIdle {
		h.sendText(msg.Chat.ID, msgNothingToCancel)
		return
	}
	sess.ResetWizard()
	h.putSession(ctx, msg.From.ID, sess)
	h.sendText(msg.Chat.ID, msgWizardCancelled)
}

func (h *Handler) bumpActivity(ctx context.Context, userID int64) {
	if err := h.users.BumpActivity(ctx, userID); err != nil {
		log.Printf("handlers: bump activity for %d: %v", userID, err)
	}
}

func (h *Handler) session(ctx context.Context, userID int64) session.Session {
	sess, err := h.sessions.Get(ctx, userID)
	if err != nil {
		log.Printf("handlers: load session for %d: %v", userID, err)
		return session.Session{}
	}
	return sess
}

func (h *Handler) putSession(ctx context.Context, userID int64, sess session.Session) {
	if err := h.sessions.Put(ctx, userID, sess); err != nil {
		log.Printf("handlers: save session for %d: %v", userID, err)
	}
}

func (h *Handler) sendText(chatID int64, text string) {
	if _, err := h.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("handlers: send to %d: %v", chatID, err)
	}
}

func (h *Handler) sendMarkup(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := h.bot.Send(msg); err != nil {
		log.Printf("handlers: send to %d: %v", chatID, err)
	}
}

func (h *Handler) editMarkup(chatID int64, messageID int, text string, kb tgbotapi.InlineKeyboardMarkup) {
	if _, err := h.bot.Send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, kb)); err != nil {
		log.Printf("handlers: edit message %d in %d: %v", messageID, chatID, err)
	}
}

func (h *Handler) editText(chatID int64, messageID int, text string) {
	if _, err := h.bot.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		log.Printf("handlers: edit message %d in %d: %v", messageID, chatID, err)
	}
}

func (h *Handler) ack(callbackID string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		log.Printf("handlers: answer callback: %v", err)
	}
}
