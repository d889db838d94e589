package handlers

import (
	"context"
	"log"
	"strings"
	"time"

	"remindbot/keyboard"
	"remindbot/models"
	"remindbot/session"
	"remindbot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// cmdRemind starts the creation wizard. The reminder text comes with the
// command; an empty one re-prompts without entering the wizard.
func (h *Handler) cmdRemind(ctx context.Context, msg *tgbotapi.Message, sess session.Session) {
	text := strings.TrimSpace(msg.CommandArguments())
	if text == "" {
		h.sendText(msg.Chat.ID, msgEmptyReminder)
		return
	}

	sess.ResetWizard()
	sess.Text = text
	sess.Step = session.StepPickDate
	h.putSession(ctx, msg.From.ID, sess)

	h.sendMarkup(msg.Chat.ID, msgPickDate, keyboard.DateChoice())
}

// quickDate handles the "today" / "tomorrow" shortcuts. The date is resolved
// in the user's timezone so a reminder set just after their midnight lands on
// the right day.
func (h *Handler) quickDate(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	userID := cb.From.ID
	loc := h.userLocation(ctx, userID)

	day := h.now().In(loc)
	if cb.Data == keyboard.CallbackTomorrow {
		day = day.AddDate(0, 0, 1)
	}

	sess.Year, sess.Month, sess.Day = day.Year(), int(day.Month()), day.Day()
	sess.Step = session.StepPickTime
	h.putSession(ctx, userID, sess)

	h.editText(cb.Message.Chat.ID, cb.Message.MessageID, msgSendTime)
}

// openCalendar renders the month grid for "other".
func (h *Handler) openCalendar(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	now := h.now().In(h.userLocation(ctx, cb.From.ID))
	sess.CalYear, sess.CalMonth = now.Year(), int(now.Month())
	h.putSession(ctx, cb.From.ID, sess)

	h.editMarkup(cb.Message.Chat.ID, cb.Message.MessageID, msgPickDate,
		keyboard.MonthGrid(sess.CalYear, time.Month(sess.CalMonth)))
}

// flipMonth steps the calendar widget, wrapping the year at both ends.
func (h *Handler) flipMonth(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	if sess.CalYear == 0 {
		return
	}

	year, month := sess.CalYear, time.Month(sess.CalMonth)
	if cb.Data == keyboard.CallbackNext {
		year, month = utils.NextMonth(year, month)
	} else {
		year, month = utils.PrevMonth(year, month)
	}

	sess.CalYear, sess.CalMonth = year, int(month)
	h.putSession(ctx, cb.From.ID, sess)

	h.editMarkup(cb.Message.Chat.ID, cb.Message.MessageID, msgPickDate, keyboard.MonthGrid(year, month))
}

// dayPicked handles a "day:<year>:<month>:<day>" selection from the grid.
func (h *Handler) dayPicked(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	year, month, day, ok := parseDayPayload(cb.Data)
	if !ok {
		log.Printf("handlers: malformed day payload %q", cb.Data)
		return
	}

	sess.Year, sess.Month, sess.Day = year, month, day
	sess.Step = session.StepPickTime
	h.putSession(ctx, cb.From.ID, sess)

	h.editText(cb.Message.Chat.ID, cb.Message.MessageID, msgSendTime)
}

// timeEntered completes the wizard: validate HH:MM, compose the target
// instant in the user's zone, persist, then arm the timer. Persistence must
// succeed before scheduling; a reminder already in the past is stored as done
// and never scheduled.
func (h *Handler) timeEntered(ctx context.Context, msg *tgbotapi.Message, sess session.Session) {
	hour, minute, ok := utils.ParseClockTime(strings.TrimSpace(msg.Text))
	if !ok {
		h.sendText(msg.Chat.ID, msgBadTime)
		return
	}

	userID := msg.From.ID
	tz := h.users.Timezone(ctx, userID)
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("handlers: bad stored timezone %q for user %d: %v", tz, userID, err)
		tz, loc = h.defaultTZ, h.defaultLoc
	}

	target := time.Date(sess.Year, time.Month(sess.Month), sess.Day, hour, minute, 0, 0, loc).UTC()
	past := target.Before(h.now().UTC())

	reminder := &models.Reminder{
		UserID:   userID,
		Text:     sess.Text,
		RemindAt: target,
		Done:     past,
		Timezone: tz,
	}
	if err := h.reminders.Insert(ctx, reminder); err != nil {
		log.Printf("handlers: insert reminder for user %d: %v", userID, err)
		h.sendText(msg.Chat.ID, msgSaveFailed)
		return
	}

	if !past {
		h.sched.Register(userID, reminder.ID, reminder.Text, target)
	}

	h.sendText(msg.Chat.ID, confirmText(sess.Text, hour, minute, sess.Day, sess.Month, sess.Year, past))

	sess.ResetWizard()
	h.putSession(ctx, userID, sess)
}

func (h *Handler) userLocation(ctx context.Context, userID int64) *time.Location {
	loc, err := time.LoadLocation(h.users.Timezone(ctx, userID))
	if err != nil {
		return h.defaultLoc
	}
	return loc
}
