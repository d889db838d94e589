package handlers

import "fmt"

const (
	msgStart = "Hi! I keep your reminders.\n" +
		"/r <text> — create a reminder\n" +
		"/list — show your reminders\n" +
		"/time — set your timezone\n" +
		"/help — all commands"

	msgHelp = "Commands:\n" +
		"/r <text> — start creating a reminder\n" +
		"/list — your reminders, 10 per page\n" +
		"/time — set your timezone (default Europe/Moscow)\n" +
		"/stats — your activity counter\n" +
		"/cancel — abort the current dialog"

	msgEmptyReminder = "A reminder cannot be empty! Usage: /r buy milk"
	msgPickDate      = "Pick a date:"
	msgSendTime      = "Now send the time\n(format: 14:29)"
	msgBadTime       = "Please send the time as HH:MM, e.g. 23:15"
	msgSaveFailed    = "Could not save the reminder, please try again"
	msgStorageError  = "Something went wrong, please try again"

	msgNoTodos         = "You have no reminders yet. Create one with /r"
	msgListClosed      = "List closed. Send /list to open it again."
	msgUseDateKeyboard = "Please pick a date with the buttons or send /cancel"

	msgPickRegion        = "Choose your region:"
	msgUseRegionKeyboard = "Please choose a region with the buttons or send /cancel"
	msgSendCity          = "Now type your city (in English):"
	msgBadCity           = "Please type a valid city name (in English)"

	msgWizardCancelled = "Cancelled. Use /r to create a reminder."
	msgNothingToCancel = "Nothing to cancel."
)

func confirmText(text string, hour, minute, day, month, year int, past bool) string {
	s := fmt.Sprintf("Will remind you about %q at %02d:%02d on %02d.%02d.%d", text, hour, minute, day, month, year)
	if past {
		s = fmt.Sprintf("That moment has already passed — %q was saved as done.", text)
	}
	return s
}

func cityRetryText(region, city string) string {
	return fmt.Sprintf("No timezone found for %s/%s.\nPlease type another city or send /cancel", region, city)
}

func tzSetText(tz string) string {
	return fmt.Sprintf("Timezone %s set!", tz)
}

func listTitle(page, totalPages int) string {
	return fmt.Sprintf("Your reminders (page %d/%d):", page, totalPages)
}

func statsText(total int64) string {
	return fmt.Sprintf("You performed %d actions so far.", total)
}
