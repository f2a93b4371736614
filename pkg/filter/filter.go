package filter

import (
	"fmt"
	"time"

	"github.com/eventdeck/eventdeck/pkg/date_window"
	"github.com/eventdeck/eventdeck/pkg/event"
	"github.com/eventdeck/eventdeck/pkg/search"
)

type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"   // 05:00 - 11:59
	TimeOfDayAfternoon TimeOfDay = "afternoon" // 12:00 - 16:59
	TimeOfDayEvening   TimeOfDay = "evening"   // 17:00 - 20:59
	TimeOfDayNight     TimeOfDay = "night"     // 21:00 - 04:59
)

// ParseTimeOfDay validates a time-of-day bucket name.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch TimeOfDay(s) {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening, TimeOfDayNight:
		return TimeOfDay(s), nil
	}
	return "", fmt.Errorf("unknown time of day: %s", s)
}

// DateRange is an inclusive calendar-date range.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Spec is a set of independent predicates combined with AND. Optional
// predicates that are absent always pass, so evaluation is total.
type Spec struct {
	// Categories restricts events to the listed categories. Empty means no
	// category restriction.
	Categories []event.Category
	// IncludeClubEvents and IncludeSocialEvents are independent switches for
	// the two event classes.
	IncludeClubEvents   bool
	IncludeSocialEvents bool
	SearchQuery         string
	SearchMode          search.Mode
	DateRange           *DateRange
	// Location is a case-insensitive substring match. Empty means absent.
	Location string
	// TimeOfDay buckets the event start's local hour. Empty means absent.
	TimeOfDay TimeOfDay
	// HasAvailability, when true, keeps only events with open availability.
	HasAvailability bool
}

// NewSpec returns the neutral spec: both event classes included, exact
// search mode, no other predicates.
func NewSpec() Spec {
	return Spec{
		IncludeClubEvents:   true,
		IncludeSocialEvents: true,
		SearchMode:          search.ModeExact,
	}
}

// ActiveCount reports how many filters deviate from the neutral spec. Used
// by browsing surfaces to badge the filter panel.
func (s Spec) ActiveCount() int {
	count := 0
	if len(s.Categories) > 0 {
		count++
	}
	if !s.IncludeClubEvents || !s.IncludeSocialEvents {
		count++
	}
	if s.SearchQuery != "" {
		count++
	}
	if s.DateRange != nil {
		count++
	}
	if s.Location != "" {
		count++
	}
	if s.TimeOfDay != "" {
		count++
	}
	if s.HasAvailability {
		count++
	}
	return count
}

// bucketFor assigns an hour of day to its fixed time-of-day bucket.
func bucketFor(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour <= 11:
		return TimeOfDayMorning
	case hour >= 12 && hour <= 16:
		return TimeOfDayAfternoon
	case hour >= 17 && hour <= 20:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}

// inRange reports whether the event start's calendar date falls within the
// inclusive range, after the normalization from date_window.
func inRange(start time.Time, r DateRange) bool {
	day := date_window.Normalize(start)
	return !day.Before(date_window.Normalize(r.From)) && !day.After(date_window.Normalize(r.To))
}
