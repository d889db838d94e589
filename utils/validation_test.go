package utils

import "testing"

func TestParseClockTime(t *testing.T) {
	valid := map[string][2]int{
		"09:05": {9, 5},
		"23:59": {23, 59},
		"00:00": {0, 0},
		"14:29": {14, 29},
	}
	for in, want := range valid {
		h, m, ok := ParseClockTime(in)
		if !ok {
			t.Errorf("ParseClockTime(%q) rejected a valid time", in)
			continue
		}
		if h != want[0] || m != want[1] {
			t.Errorf("ParseClockTime(%q) = %d:%d, want %d:%d", in, h, m, want[0], want[1])
		}
	}

	invalid := []string{
		"9:5",    // too short
		"9:05",   // hour not two digits
		"24:00",  // hour out of range
		"25:00",
		"12:60",  // minute out of range
		"ab:cd",
		"abcde",
		"12.30",  // wrong separator
		"+1:30",
		"12:30 ", // trailing junk
		"",
	}
	for _, in := range invalid {
		if _, _, ok := ParseClockTime(in); ok {
			t.Errorf("ParseClockTime(%q) accepted an invalid time", in)
		}
	}
}

func TestValidTimezone(t *testing.T) {
	if !ValidTimezone("Europe", "Moscow") {
		t.Error("Europe/Moscow should be a known zone")
	}
	if !ValidTimezone("America", "New_York") {
		t.Error("America/New_York should be a known zone")
	}
	if ValidTimezone("Europe", "Atlantis") {
		t.Error("Europe/Atlantis should not be a known zone")
	}
}
