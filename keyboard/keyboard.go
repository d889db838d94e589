// Package keyboard builds the inline keyboards the bot renders: date choices,
// the month calendar grid, the timezone region menu and the paginated to-do
// list. Callback payloads are colon-separated, parsed in handlers/callbacks.go.
package keyboard

import (
	"fmt"
	"time"

	"remindbot/models"
	"remindbot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Regions a timezone can be picked from; matched case-insensitively.
var Regions = []string{
	"Africa",
	"America",
	"Asia",
	"Atlantic",
	"Australia",
	"Europe",
	"Indian",
	"Pacific",
}

const (
	CallbackToday    = "today"
	CallbackTomorrow = "tomorrow"
	CallbackOther    = "other"
	CallbackCancel   = "cancel"
	CallbackPrev     = "<"
	CallbackNext     = ">"
	CallbackNoop     = "noop"
	CallbackPageUp   = "page:next"
	CallbackPageDown = "page:prev"
	CallbackShowAll  = "filter:all"
	CallbackActive   = "filter:active"
)

// DateChoice is the first wizard keyboard: today / tomorrow / calendar.
func DateChoice() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("today", CallbackToday),
			tgbotapi.NewInlineKeyboardButtonData("tomorrow", CallbackTomorrow),
			tgbotapi.NewInlineKeyboardButtonData("other", CallbackOther),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("cancel", CallbackCancel),
		),
	)
}

// MonthGrid renders one month of day buttons with </> navigation in the
// header. Day payloads carry the full date so month navigation cannot corrupt
// an earlier pick.
func MonthGrid(year int, month time.Month) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("<", CallbackPrev),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %d", month, year), CallbackNoop),
			tgbotapi.NewInlineKeyboardButtonData(">", CallbackNext),
		),
	}

	days := utils.DaysIn(year, month)
	var row []tgbotapi.InlineKeyboardButton
	for day := 1; day <= days; day++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			fmt.Sprintf("%d", day),
			fmt.Sprintf("day:%d:%d:%d", year, int(month), day),
		))
		if len(row) == 7 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("cancel", CallbackCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// RegionMenu lists the timezone regions plus cancel.
func RegionMenu() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(Regions); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(Regions[i], "region:"+Regions[i]),
		}
		if i+1 < len(Regions) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(Regions[i+1], "region:"+Regions[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("cancel", CallbackCancel),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// TodoList renders one page of reminders. Completed rows are hidden when
// showAll is false; they stay in storage either way.
func TodoList(reminders []models.Reminder, showAll bool, page, totalPages int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, r := range reminders {
		if r.Done && !showAll {
			continue
		}
		label := "🕓 " + r.Text
		done := "0"
		if r.Done {
			label = "✅ " + r.Text
			done = "1"
		} else if loc, err := time.LoadLocation(r.Timezone); err == nil {
			label = fmt.Sprintf("🕓 %s (%s)", r.Text, r.RemindAt.In(loc).Format("02.01 15:04"))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("done:%s:%s", r.ID, done)),
			tgbotapi.NewInlineKeyboardButtonData("🗑", "del:"+r.ID.String()),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("<", CallbackPageDown),
		tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("page %d/%d", page, totalPages), CallbackNoop),
		tgbotapi.NewInlineKeyboardButtonData(">", CallbackPageUp),
	))

	filter := tgbotapi.NewInlineKeyboardButtonData("show all", CallbackShowAll)
	if showAll {
		filter = tgbotapi.NewInlineKeyboardButtonData("only active", CallbackActive)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		filter,
		tgbotapi.NewInlineKeyboardButtonData("close", CallbackCancel),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
