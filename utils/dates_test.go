package utils

import (
	"testing"
	"time"
)

func TestDaysIn(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29}, // leap year
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, c := range cases {
		if got := DaysIn(c.year, c.month); got != c.want {
			t.Errorf("DaysIn(%d, %s) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestMonthNavigationWrapsYear(t *testing.T) {
	year, month := NextMonth(2026, time.December)
	if year != 2027 || month != time.January {
		t.Errorf("NextMonth(2026, December) = %d %s", year, month)
	}

	year, month = PrevMonth(2026, time.January)
	if year != 2025 || month != time.December {
		t.Errorf("PrevMonth(2026, January) = %d %s", year, month)
	}

	year, month = NextMonth(2026, time.March)
	if year != 2026 || month != time.April {
		t.Errorf("NextMonth(2026, March) = %d %s", year, month)
	}
}
