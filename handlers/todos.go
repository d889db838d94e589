package handlers

import (
	"context"
	"errors"
	"log"

	"remindbot/keyboard"
	"remindbot/session"
	"remindbot/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// cmdList opens the paginated to-do view at the session's cursor.
func (h *Handler) cmdList(ctx context.Context, msg *tgbotapi.Message, sess session.Session) {
	if sess.Page < 1 {
		sess.Page = 1
	}
	sess.ShowAll = true
	h.renderList(ctx, msg.Chat.ID, 0, msg.From.ID, sess)
}

// flipPage moves the cursor one page. A request outside [1, totalPages] is
// acknowledged but changes nothing.
func (h *Handler) flipPage(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	userID := cb.From.ID

	totalPages, err := h.reminders.TotalPages(ctx, userID)
	if err != nil {
		log.Printf("handlers: total pages for %d: %v", userID, err)
		return
	}

	target := sess.Page + 1
	if cb.Data == keyboard.CallbackPageDown {
		target = sess.Page - 1
	}
	if target < 1 || target > totalPages {
		return
	}

	sess.Page = target
	h.renderList(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, sess)
}

func (h *Handler) setFilter(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	sess.ShowAll = cb.Data == keyboard.CallbackShowAll
	h.renderList(ctx, cb.Message.Chat.ID, cb.Message.MessageID, cb.From.ID, sess)
}

// toggleDone flips the completion flag. Marking done cancels the pending
// timer; marking active again re-arms it from the stored instant when that
// instant is still in the future.
func (h *Handler) toggleDone(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	userID := cb.From.ID

	id, wasDone, ok := parseTogglePayload(cb.Data)
	if !ok {
		log.Printf("handlers: malformed toggle payload %q", cb.Data)
		return
	}
	done := !wasDone

	err := h.reminders.SetDone(ctx, userID, id, done)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// Already gone; just re-render.
	case err != nil:
		log.Printf("handlers: toggle reminder %s: %v", id, err)
		h.sendText(cb.Message.Chat.ID, msgStorageError)
		return
	}

	if done {
		if h.sched.Cancel(userID, id) {
			log.Printf("handlers: cancelled timer for reminder %s", id)
		}
	} else if err == nil {
		h.rearm(ctx, userID, id)
	}

	h.renderList(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, sess)
}

// rearm re-registers a reminder that was toggled back to active.
func (h *Handler) rearm(ctx context.Context, userID int64, id uuid.UUID) {
	r, err := h.reminders.Get(ctx, userID, id)
	if err != nil || r == nil {
		return
	}
	if r.RemindAt.After(h.now().UTC()) {
		h.sched.Register(userID, r.ID, r.Text, r.RemindAt)
	}
}

// deleteTodo removes the reminder and any pending timer for it.
func (h *Handler) deleteTodo(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	userID := cb.From.ID

	id, err := uuid.Parse(cb.Data[len("del:"):])
	if err != nil {
		log.Printf("handlers: malformed delete payload %q", cb.Data)
		return
	}

	if err := h.reminders.Delete(ctx, userID, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("handlers: delete reminder %s: %v", id, err)
		h.sendText(cb.Message.Chat.ID, msgStorageError)
		return
	}
	h.sched.Cancel(userID, id)

	h.renderList(ctx, cb.Message.Chat.ID, cb.Message.MessageID, userID, sess)
}

// renderList recomputes the page count, clamps the cursor and redraws the
// current page, so a mutation never leaves a stale view. messageID == 0 sends
// a fresh message instead of editing.
func (h *Handler) renderList(ctx context.Context, chatID int64, messageID int, userID int64, sess session.Session) {
	totalPages, err := h.reminders.TotalPages(ctx, userID)
	if err != nil {
		log.Printf("handlers: total pages for %d: %v", userID, err)
		h.sendText(chatID, msgStorageError)
		return
	}
	if sess.Page < 1 {
		sess.Page = 1
	}
	if sess.Page > totalPages {
		sess.Page = totalPages
	}
	sess.TotalPages = totalPages

	rows, err := h.reminders.ListPage(ctx, userID, sess.Page)
	if err != nil {
		log.Printf("handlers: list page %d for %d: %v", sess.Page, userID, err)
		h.sendText(chatID, msgStorageError)
		return
	}

	h.putSession(ctx, userID, sess)

	if len(rows) == 0 {
		if messageID != 0 {
			h.editText(chatID, messageID, msgNoTodos)
		} else {
			h.sendText(chatID, msgNoTodos)
		}
		return
	}

	title := listTitle(sess.Page, totalPages)
	kb := keyboard.TodoList(rows, sess.ShowAll, sess.Page, totalPages)
	if messageID != 0 {
		h.editMarkup(chatID, messageID, title, kb)
	} else {
		h.sendMarkup(chatID, title, kb)
	}
}
