package timezone

import (
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// Offset converts a getTimezoneOffset-style value (minutes, UTC = local +
// offset, so UTC+7 is -420) into a fixed zone.
func Offset(minutes int) *time.Location {
	return time.FixedZone("", -minutes*60)
}

// ParseOffset reads the raw query value; empty or invalid input is UTC.
func ParseOffset(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

// StartOfDay is local midnight of date in the given offset.
func StartOfDay(date string, offsetMinutes int) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(date), Offset(offsetMinutes))
}

// DayRange resolves optional from/to calendar dates into absolute bounds:
// from is inclusive at the start of its day, to is exclusive at the start
// of the following day.
func DayRange(from, to string, offsetMinutes int) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if strings.TrimSpace(from) != "" {
		t, err := StartOfDay(from, offsetMinutes)
		if err != nil {
			return nil, nil, err
		}
		t = t.UTC()
		start = &t
	}

	if strings.TrimSpace(to) != "" {
		t, err := StartOfDay(to, offsetMinutes)
		if err != nil {
			return nil, nil, err
		}
		t = t.AddDate(0, 0, 1).UTC()
		end = &t
	}

	return start, end, nil
}
