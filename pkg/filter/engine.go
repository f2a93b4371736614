package filter

import (
	"sort"
	"strings"

	"github.com/eventdeck/eventdeck/pkg/event"
)

// Engine evaluates a Spec against a candidate event list.
type Engine struct {
	classifier event.Classifier
}

func NewEngine(classifier event.Classifier) *Engine {
	return &Engine{classifier: classifier}
}

// Apply returns the events satisfying every predicate of the spec, in their
// input order.
func (e *Engine) Apply(events []event.Event, spec Spec) []event.Event {
	result := make([]event.Event, 0, len(events))
	for _, candidate := range events {
		if e.matches(candidate, spec) {
			result = append(result, candidate)
		}
	}
	return result
}

func (e *Engine) matches(candidate event.Event, spec Spec) bool {
	if len(spec.Categories) > 0 && !containsCategory(spec.Categories, candidate.Category) {
		return false
	}

	switch e.classifier.Classify(candidate) {
	case event.ClassClub:
		if !spec.IncludeClubEvents {
			return false
		}
	case event.ClassSocial:
		if !spec.IncludeSocialEvents {
			return false
		}
	}

	if spec.DateRange != nil && !inRange(candidate.StartTime, *spec.DateRange) {
		return false
	}

	if spec.Location != "" &&
		!strings.Contains(strings.ToLower(candidate.Location), strings.ToLower(spec.Location)) {
		return false
	}

	if spec.TimeOfDay != "" && bucketFor(candidate.StartTime.Hour()) != spec.TimeOfDay {
		return false
	}

	if spec.HasAvailability && !candidate.HasAvailability {
		return false
	}

	return true
}

func containsCategory(categories []event.Category, c event.Category) bool {
	for _, candidate := range categories {
		if candidate == c {
			return true
		}
	}
	return false
}

// SortByStart orders events by start time ascending. The sort is stable, so
// events starting at the same instant keep their input order.
func SortByStart(events []event.Event) []event.Event {
	sorted := make([]event.Event, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})
	return sorted
}
