// Package session holds per-user conversation state: the current wizard step,
// the fields accumulated so far and the listing cursor. State lives in Redis so
// an in-progress wizard survives a process restart.
package session

import "context"

type Step int

const (
	StepIdle Step = iota
	StepPickDate
	StepPickTime
	StepPickRegion
	StepPickCity
)

type Session struct {
	Step Step `json:"step"`

	// Reminder creation wizard.
	Text  string `json:"text,omitempty"`
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
	Day   int    `json:"day,omitempty"`

	// Calendar widget cursor while browsing months.
	CalYear  int `json:"cal_year,omitempty"`
	CalMonth int `json:"cal_month,omitempty"`

	// Timezone wizard.
	Region string `json:"region,omitempty"`

	// Listing cursor.
	Page       int  `json:"page,omitempty"`
	TotalPages int  `json:"total_pages,omitempty"`
	ShowAll    bool `json:"show_all,omitempty"`
}

// ResetWizard drops every field that is only meaningful inside a wizard step,
// keeping the listing cursor. Stale partial fields must never leak into a
// later wizard run.
func (s *Session) ResetWizard() {
	s.Step = StepIdle
	s.Text = ""
	s.Year, s.Month, s.Day = 0, 0, 0
	s.CalYear, s.CalMonth = 0, 0
	s.Region = ""
}

// Store is the session persistence boundary. Get returns a zero session for
// users without one.
type Store interface {
	Get(ctx context.Context, userID int64) (Session, error)
	Put(ctx context.Context, userID int64, s Session) error
	Clear(ctx context.Context, userID int64) error
}
