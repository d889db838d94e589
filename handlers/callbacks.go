package handlers

import (
	"context"
	"strconv"
	"strings"

	"remindbot/keyboard"
	"remindbot/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// handleCallback dispatches a button press. Wizard buttons are gated on the
// session step; list buttons work from any state because the list is not a
// wizard, just a message with intents encoded in the payloads.
func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	h.ack(cb.ID)

	if cb.Message == nil {
		return
	}

	sess := h.session(ctx, cb.From.ID)
	data := cb.Data

	switch {
	case data == keyboard.CallbackNoop:

	case data == keyboard.CallbackCancel:
		h.cancelPressed(ctx, cb, sess)

	case strings.HasPrefix(data, "done:"):
		h.toggleDone(ctx, cb, sess)
	case strings.HasPrefix(data, "del:"):
		h.deleteTodo(ctx, cb, sess)
	case data == keyboard.CallbackPageUp || data == keyboard.CallbackPageDown:
		h.flipPage(ctx, cb, sess)
	case data == keyboard.CallbackShowAll || data == keyboard.CallbackActive:
		h.setFilter(ctx, cb, sess)

	case sess.Step == session.StepPickDate:
		switch {
		case data == keyboard.CallbackToday || data == keyboard.CallbackTomorrow:
			h.quickDate(ctx, cb, sess)
		case data == keyboard.CallbackOther:
			h.openCalendar(ctx, cb, sess)
		case data == keyboard.CallbackPrev || data == keyboard.CallbackNext:
			h.flipMonth(ctx, cb, sess)
		case strings.HasPrefix(data, "day:"):
			h.dayPicked(ctx, cb, sess)
		}

	case sess.Step == session.StepPickRegion && strings.HasPrefix(data, "region:"):
		h.regionPicked(ctx, cb, sess)
	}
}

// cancelPressed clears a wizard in progress, or just closes the list view.
func (h *Handler) cancelPressed(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	if sess.Step == session.StepIdle {
		h.editText(cb.Message.Chat.ID, cb.Message.MessageID, msgListClosed)
		return
	}
	sess.ResetWizard()
	h.putSession(ctx, cb.From.ID, sess)
	h.editText(cb.Message.Chat.ID, cb.Message.MessageID, msgWizardCancelled)
}

// parseDayPayload parses "day:<year>:<month>:<day>".
func parseDayPayload(data string) (year, month, day int, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 4 {
		return 0, 0, 0, false
	}
	var err error
	if year, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if month, err = strconv.Atoi(parts[2]); err != nil || month < 1 || month > 12 {
		return 0, 0, 0, false
	}
	if day, err = strconv.Atoi(parts[3]); err != nil || day < 1 || day > 31 {
		return 0, 0, 0, false
	}
	return year, month, day, true
}

// parseTogglePayload parses "done:<uuid>:<0|1>"; the trailing flag is the
// done-state the row showed when the button was pressed.
func parseTogglePayload(data string) (id uuid.UUID, wasDone, ok bool) {
	parts := strings.Split(data, ":")
	if len(parts) != 3 {
		return uuid.Nil, false, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false, false
	}
	return id, parts[2] == "1", true
}
