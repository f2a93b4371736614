package feed

import (
	"time"

	"github.com/eventdeck/eventdeck/pkg/event"
	log "github.com/sirupsen/logrus"
	"github.com/teambition/rrule-go"
)

// maxOccurrencesPerEvent caps runaway recurrence rules.
const maxOccurrencesPerEvent = 1000

// expand turns parsed feed events into concrete catalog events within the
// inclusive [rangeStart, rangeEnd] window. Cancelled events are dropped;
// everything else is considered to have open availability.
func expand(parsed []parsedEvent, category event.Category, rangeStart, rangeEnd time.Time) []event.Event {
	var events []event.Event
	for _, p := range parsed {
		if p.cancelled {
			continue
		}
		if p.rawRRule == "" {
			if overlaps(p.start, p.end, rangeStart, rangeEnd) {
				events = append(events, toEvent(p, category, p.uid, p.start, p.end))
			}
			continue
		}
		events = append(events, expandRecurring(p, category, rangeStart, rangeEnd)...)
	}
	return events
}

func expandRecurring(p parsedEvent, category event.Category, rangeStart, rangeEnd time.Time) []event.Event {
	rule, err := rrule.StrToRRule(p.rawRRule)
	if err != nil {
		log.Warnf("skipping event %s with unparsable RRULE %q: %v", p.uid, p.rawRRule, err)
		return nil
	}
	rule.DTStart(p.start)

	var set rrule.Set
	set.RRule(rule)
	for _, ex := range p.exDates {
		set.ExDate(ex.In(p.start.Location()))
	}

	starts := set.Between(rangeStart.In(p.start.Location()), rangeEnd.In(p.start.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		log.Warnf("truncating occurrences of event %s at %d", p.uid, maxOccurrencesPerEvent)
		starts = starts[:maxOccurrencesPerEvent]
	}

	duration := p.end.Sub(p.start)
	events := make([]event.Event, 0, len(starts))
	for _, start := range starts {
		// Each occurrence needs its own id so it can be pinned independently.
		id := p.uid + "/" + start.UTC().Format(time.RFC3339)
		events = append(events, toEvent(p, category, id, start, start.Add(duration)))
	}
	return events
}

func toEvent(p parsedEvent, category event.Category, id string, start, end time.Time) event.Event {
	return event.Event{
		ID:              id,
		Title:           p.summary,
		Description:     p.description,
		Category:        category,
		StartTime:       start,
		EndTime:         end,
		Location:        p.location,
		HasAvailability: true,
	}
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}
