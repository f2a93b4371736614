package date_window

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// All date-only comparisons in the application are normalized to UTC and the
// week starts on Monday, consistent with the ISO 8601 week numbering used
// for WeekKey.

// Normalize truncates a timestamp to its calendar date in UTC.
func Normalize(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns the Monday of the week containing the given date.
func StartOfWeek(t time.Time) time.Time {
	t = Normalize(t)
	delta := (int(t.Weekday()) - int(time.Monday) + 7) % 7
	return t.AddDate(0, 0, -delta)
}

// DaysWindow returns count consecutive dates beginning at start, inclusive.
func DaysWindow(start time.Time, count int) []time.Time {
	start = Normalize(start)
	days := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// AddDays shifts a date forward by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// SubDays shifts a date backward by n calendar days.
func SubDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, -n)
}

// IsSameDay compares two timestamps by calendar date only.
func IsSameDay(a, b time.Time) bool {
	return Normalize(a).Equal(Normalize(b))
}

type WeekKey struct {
	Year int
	Week int
}

// WeekKeyFor returns the ISO 8601 week key for the week containing the given
// date. Weeks belong to the year owning their Thursday, so a date at a year
// boundary can be keyed to the adjacent year.
func WeekKeyFor(t time.Time) WeekKey {
	year, week := Normalize(t).ISOWeek()
	return WeekKey{Year: year, Week: week}
}

// ParseWeekKey converts ISO 8601 week format e.g. "2025-W03" to WeekKey
func ParseWeekKey(s string) (WeekKey, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[1]) < 2 || parts[1][0] != 'W' {
		return WeekKey{}, fmt.Errorf("invalid ISO week format: %s", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return WeekKey{}, fmt.Errorf("invalid year: %w", err)
	}
	week, err := strconv.Atoi(parts[1][1:])
	if err != nil {
		return WeekKey{}, fmt.Errorf("invalid week: %w", err)
	}
	if week < 1 || week > 53 {
		return WeekKey{}, fmt.Errorf("week out of range: %d", week)
	}
	return WeekKey{Year: year, Week: week}, nil
}

// Equal returns true when both the year and week match.
func (w WeekKey) Equal(other WeekKey) bool {
	return w.Year == other.Year && w.Week == other.Week
}

// Before reports whether w refers to a week that occurs before other.
func (w WeekKey) Before(other WeekKey) bool {
	if w.Year != other.Year {
		return w.Year < other.Year
	}
	return w.Week < other.Week
}

// After reports whether w refers to a week that occurs after other.
func (w WeekKey) After(other WeekKey) bool {
	if w.Year != other.Year {
		return w.Year > other.Year
	}
	return w.Week > other.Week
}

// String returns the ISO week format ISO 8601 e.g. "2025-W03"
func (w WeekKey) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
