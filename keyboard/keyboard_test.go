package keyboard

import (
	"testing"
	"time"

	"remindbot/models"

	"github.com/google/uuid"
)

func TestMonthGridDayCount(t *testing.T) {
	kb := MonthGrid(2028, time.February) // leap year

	days := 0
	for _, row := range kb.InlineKeyboard[1 : len(kb.InlineKeyboard)-1] {
		days += len(row)
	}
	if days != 29 {
		t.Errorf("expected 29 day buttons for Feb 2028, got %d", days)
	}
}

func TestTodoListHidesDoneWhenFiltered(t *testing.T) {
	rows := []models.Reminder{
		{ID: uuid.New(), Text: "active", RemindAt: time.Now().Add(time.Hour), Timezone: models.DefaultTimezone},
		{ID: uuid.New(), Text: "finished", Done: true, Timezone: models.DefaultTimezone},
	}

	all := TodoList(rows, true, 1, 1)
	active := TodoList(rows, false, 1, 1)

	// Each rendered reminder adds one row; nav and filter rows are constant.
	if len(all.InlineKeyboard)-len(active.InlineKeyboard) != 1 {
		t.Errorf("filtering should hide exactly the done row: all=%d active=%d",
			len(all.InlineKeyboard), len(active.InlineKeyboard))
	}
}
