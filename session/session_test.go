package session

import (
	"context"
	"encoding/json"
	"testing"
)

func TestResetWizardKeepsListingCursor(t *testing.T) {
	s := Session{
		Step:       StepPickTime,
		Text:       "buy milk",
		Year:       2026,
		Month:      3,
		Day:        10,
		CalYear:    2026,
		CalMonth:   3,
		Region:     "Europe",
		Page:       2,
		TotalPages: 3,
		ShowAll:    true,
	}

	s.ResetWizard()

	if s.Step != StepIdle || s.Text != "" || s.Year != 0 || s.Region != "" || s.CalYear != 0 {
		t.Errorf("wizard fields not cleared: %+v", s)
	}
	if s.Page != 2 || s.TotalPages != 3 || !s.ShowAll {
		t.Errorf("listing cursor must survive a wizard reset: %+v", s)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Step != StepIdle {
		t.Errorf("missing session should be zero, got %+v", got)
	}

	want := Session{Step: StepPickDate, Text: "gym", Page: 2}
	if err := s.Put(ctx, 1, want); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, _ = s.Get(ctx, 1)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	if err := s.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	got, _ = s.Get(ctx, 1)
	if got != (Session{}) {
		t.Errorf("cleared session should be zero, got %+v", got)
	}
}

func TestSessionJSONRoundTrip(t *testing.T) {
	want := Session{Step: StepPickCity, Region: "Europe", Page: 1, ShowAll: true}

	raw, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Session
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
