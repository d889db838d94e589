// services/scheduler.go
package services

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DeliverFunc is invoked on the timer goroutine when a reminder comes due.
type DeliverFunc func(userID int64, reminderID uuid.UUID, text string)

type timerKey struct {
	userID     int64
	reminderID uuid.UUID
}

type pendingTimer struct {
	timer *time.Timer
	dueAt time.Time
	text  string
}

// Scheduler maps pending reminders to their deferred delivery timers. It is
// purely in-memory; the database stays the source of truth and RestoreTimers
// rebuilds the map after a restart.
//
// At most one live timer exists per (user, reminder) key. Registering over an
// existing key cancels the old timer first, so the last writer wins and a
// reminder can never be delivered twice from the future. A fire already in
// flight when Cancel lands is allowed to complete; delivery is at-most-once,
// best-effort.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[timerKey]*pendingTimer
	deliver DeliverFunc

	now func() time.Time // stubbed in tests
}

func NewScheduler(deliver DeliverFunc) *Scheduler {
	return &Scheduler{
		timers:  make(map[timerKey]*pendingTimer),
		deliver: deliver,
		now:     time.Now,
	}
}

// Register schedules delivery of the reminder at dueAt, superseding any live
// timer for the same key.
func (s *Scheduler) Register(userID int64, reminderID uuid.UUID, text string, dueAt time.Time) {
	key := timerKey{userID: userID, reminderID: reminderID}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.timers[key]; ok {
		prev.timer.Stop()
		log.Printf("scheduler: superseded timer for user %d reminder %s", userID, reminderID)
	}

	entry := &pendingTimer{dueAt: dueAt, text: text}
	entry.timer = time.AfterFunc(dueAt.Sub(s.now()), func() { s.fired(key, entry) })
	s.timers[key] = entry
}

// Cancel stops and removes the timer for the key. It reports whether an entry
// existed; cancelling an unknown or already-fired key is a no-op.
func (s *Scheduler) Cancel(userID int64, reminderID uuid.UUID) bool {
	key := timerKey{userID: userID, reminderID: reminderID}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.timers[key]
	if !ok {
		return false
	}
	entry.timer.Stop()
	delete(s.timers, key)
	return true
}

// Has reports whether a live timer exists for the key. The answer may be stale
// by the time the caller acts on it; it is only used by the resync sweep.
func (s *Scheduler) Has(userID int64, reminderID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[timerKey{userID: userID, reminderID: reminderID}]
	return ok
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending timer. Called on shutdown; recovery re-arms them
// on the next boot.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.timers {
		entry.timer.Stop()
		delete(s.timers, key)
	}
}

// fired runs on the timer goroutine. The entry is removed under the lock; the
// delivery itself happens outside it so a slow transport cannot block the
// registry. If Cancel won the race, or the entry was superseded by a newer
// registration for the same key, nothing is delivered.
func (s *Scheduler) fired(key timerKey, entry *pendingTimer) {
	s.mu.Lock()
	current, ok := s.timers[key]
	if ok && current == entry {
		delete(s.timers, key)
	}
	s.mu.Unlock()

	if !ok || current != entry {
		return
	}
	s.deliver(key.userID, key.reminderID, entry.text)
}
