package handlers

import (
	"context"
	"log"
	"strings"

	"remindbot/keyboard"
	"remindbot/session"
	"remindbot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// cmdTime starts the timezone wizard: pick a region, then type a city.
func (h *Handler) cmdTime(ctx context.Context, msg *tgbotapi.Message, sess session.Session) {
	sess.ResetWizard()
	sess.Step = session.StepPickRegion
	h.putSession(ctx, msg.From.ID, sess)

	h.sendMarkup(msg.Chat.ID, msgPickRegion, keyboard.RegionMenu())
}

// regionPicked handles "region:<name>". The region must be one of the fixed
// list; the match is case-insensitive and the canonical spelling is kept.
func (h *Handler) regionPicked(ctx context.Context, cb *tgbotapi.CallbackQuery, sess session.Session) {
	name := strings.TrimPrefix(cb.Data, "region:")

	var region string
	for _, r := range keyboard.Regions {
		if strings.EqualFold(r, name) {
			region = r
			break
		}
	}
	if region == "" {
		log.Printf("handlers: unknown region %q", name)
		return
	}

	sess.Region = region
	sess.Step = session.StepPickCity
	h.putSession(ctx, cb.From.ID, sess)

	h.editText(cb.Message.Chat.ID, cb.Message.MessageID, msgSendCity)
}

// cityEntered validates "Region/City" against the runtime timezone catalog.
// An unknown city re-prompts with the region retained, so the user can retry
// without restarting region selection.
func (h *Handler) cityEntered(ctx context.Context, msg *tgbotapi.Message, sess session.Session) {
	city := normalizeCity(msg.Text)
	if city == "" {
		h.sendText(msg.Chat.ID, msgBadCity)
		return
	}

	if !utils.ValidTimezone(sess.Region, city) {
		h.sendText(msg.Chat.ID, cityRetryText(sess.Region, city))
		return
	}

	tz := sess.Region + "/" + city
	if err := h.users.SetTimezone(ctx, msg.From.ID, tz); err != nil {
		log.Printf("handlers: set timezone for %d: %v", msg.From.ID, err)
		h.sendText(msg.Chat.ID, msgStorageError)
		return
	}

	sess.ResetWizard()
	h.putSession(ctx, msg.From.ID, sess)
	h.sendText(msg.Chat.ID, tzSetText(tz))
}

// normalizeCity turns free text into IANA city form: "new york" → "New_York".
func normalizeCity(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, "_")
}
