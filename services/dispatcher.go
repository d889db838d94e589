// services/dispatcher.go
package services

import (
	"context"
	"log"

	"remindbot/models"

	"github.com/google/uuid"
)

// Messenger is the outbound side of the chat transport.
type Messenger interface {
	SendText(chatID int64, text string) error
}

// UserLookup resolves delivery metadata for the SMS fallback.
type UserLookup interface {
	Get(ctx context.Context, telegramID int64) (*models.User, error)
}

// Dispatcher sends due reminders. Delivery is at-most-once and best-effort:
// failures are logged, never retried, and the registry entry stays consumed.
type Dispatcher struct {
	bot   Messenger
	users UserLookup
	sms   *TwilioNotifier // nil when Twilio is not configured
}

func NewDispatcher(bot Messenger, users UserLookup, sms *TwilioNotifier) *Dispatcher {
	return &Dispatcher{bot: bot, users: users, sms: sms}
}

// Deliver matches DeliverFunc and runs on a timer goroutine.
func (d *Dispatcher) Deliver(userID int64, reminderID uuid.UUID, text string) {
	body := "🔔 Reminder: " + text

	err := d.bot.SendText(userID, body)
	if err == nil {
		log.Printf("dispatcher: delivered reminder %s to user %d", reminderID, userID)
		return
	}
	log.Printf("dispatcher: failed to deliver reminder %s to user %d: %v", reminderID, userID, err)

	if d.sms == nil || d.users == nil {
		return
	}
	u, err := d.users.Get(context.Background(), userID)
	if err != nil || u == nil || u.Phone == "" {
		return
	}
	if err := d.sms.SendSMS(u.Phone, body); err != nil {
		log.Printf("dispatcher: SMS fallback to %s failed: %v", u.Phone, err)
	} else {
		log.Printf("dispatcher: reminder %s delivered to user %d via SMS fallback", reminderID, userID)
	}
}
