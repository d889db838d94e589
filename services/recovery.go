// services/recovery.go
package services

import (
	"context"
	"log"
	"time"

	"remindbot/models"

	"github.com/robfig/cron/v3"
)

// ActiveReminderLister is the slice of the store the recovery pass needs.
type ActiveReminderLister interface {
	ListActive(ctx context.Context) ([]models.Reminder, error)
}

// RestoreTimers rebuilds the scheduler from persisted state. It must finish
// before the transport starts accepting updates. Reminders whose instant has
// already passed are skipped — logged, not delivered, not flipped to done —
// so a restart never causes a delivery storm.
func RestoreTimers(ctx context.Context, reminders ActiveReminderLister, sched *Scheduler) (restored, skipped int, err error) {
	rows, err := reminders.ListActive(ctx)
	if err != nil {
		return 0, 0, err
	}
	if len(rows) == 0 {
		log.Println("recovery: no reminders to restore")
		return 0, 0, nil
	}

	now := time.Now().UTC()
	for _, r := range rows {
		if r.RemindAt.Before(now) {
			log.Printf("recovery: reminder %s (%q) expired, skipping", r.ID, r.Text)
			skipped++
			continue
		}
		sched.Register(r.UserID, r.ID, r.Text, r.RemindAt)
		restored++
	}

	log.Printf("recovery: restored %d timers, skipped %d expired", restored, skipped)
	return restored, skipped, nil
}

// Resync re-arms any persisted future reminder missing from the registry. A
// crash between the database write and timer registration can leave such
// orphans; the sweep narrows that window. It only fills gaps, it never
// supersedes a live timer, so deadlines are not churned.
func Resync(ctx context.Context, reminders ActiveReminderLister, sched *Scheduler) (rearmed int, err error) {
	rows, err := reminders.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	now := time.Now().UTC()
	for _, r := range rows {
		if r.RemindAt.Before(now) || sched.Has(r.UserID, r.ID) {
			continue
		}
		sched.Register(r.UserID, r.ID, r.Text, r.RemindAt)
		rearmed++
	}
	return rearmed, nil
}

// StartResync runs the sweep hourly until the returned cron is stopped.
func StartResync(reminders ActiveReminderLister, sched *Scheduler) *cron.Cron {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		rearmed, err := Resync(context.Background(), reminders, sched)
		if err != nil {
			log.Printf("resync: list reminders failed: %v", err)
			return
		}
		if rearmed > 0 {
			log.Printf("resync: re-armed %d orphaned reminders", rearmed)
		}
	})

	c.Start()
	log.Println("Reminder resync scheduler started")
	return c
}
