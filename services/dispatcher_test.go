package services

import (
	"context"
	"errors"
	"testing"

	"remindbot/models"

	"github.com/google/uuid"
)

type fakeMessenger struct {
	sent []string
	err  error
}

func (m *fakeMessenger) SendText(chatID int64, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, text)
	return nil
}

type fakeUserLookup struct{}

func (fakeUserLookup) Get(ctx context.Context, telegramID int64) (*models.User, error) {
	return &models.User{TelegramID: telegramID}, nil
}

func TestDeliverSendsNotification(t *testing.T) {
	m := &fakeMessenger{}
	d := NewDispatcher(m, fakeUserLookup{}, nil)

	d.Deliver(42, uuid.New(), "buy milk")

	if len(m.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(m.sent))
	}
	if m.sent[0] != "🔔 Reminder: buy milk" {
		t.Errorf("unexpected notification text %q", m.sent[0])
	}
}

func TestDeliverSwallowsTransportFailure(t *testing.T) {
	m := &fakeMessenger{err: errors.New("blocked by user")}
	d := NewDispatcher(m, fakeUserLookup{}, nil)

	// Best-effort: a failed send is logged, never retried, never panics.
	d.Deliver(42, uuid.New(), "buy milk")

	if len(m.sent) != 0 {
		t.Fatalf("expected no successful sends, got %d", len(m.sent))
	}
}
