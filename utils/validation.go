// utils/validation.go
package utils

import (
	"strconv"
	"time"
)

// ParseClockTime validates manual time entry. The accepted format is exactly
// "HH:MM": five characters, a literal colon at index 2, hour in [0,23] and
// minute in [0,59]. "9:05" and "24:00" are rejected.
func ParseClockTime(s string) (hour, minute int, ok bool) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, false
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, false
		}
	}
	h, _ := strconv.Atoi(s[:2])
	m, _ := strconv.Atoi(s[3:])
	if h > 23 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// ValidTimezone reports whether "Region/City" names a zone in the runtime's
// timezone catalog.
func ValidTimezone(region, city string) bool {
	_, err := time.LoadLocation(region + "/" + city)
	return err == nil
}
