package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/eventdeck/eventdeck/pkg/event"
)

type Mode string

const (
	ModeExact    Mode = "exact"
	ModeFuzzy    Mode = "fuzzy"
	ModeSemantic Mode = "semantic"
)

var ErrInvalidMode = errors.New("invalid search mode")
var ErrScorerNotConfigured = errors.New("semantic search scorer is not configured")

// ParseMode validates a search mode name. Unknown modes are an error, never
// silently mapped to a default.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeExact, ModeFuzzy, ModeSemantic:
		return Mode(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidMode, s)
}

// Scorer ranks events by conceptual relevance to a query. The actual scoring
// lives outside this package, e.g. in an embedding service.
type Scorer interface {
	Score(ctx context.Context, events []event.Event, query string) ([]event.Event, error)
}

// Dispatcher resolves a free-text query against an event list under the
// selected mode. It is applied before any structured filtering.
type Dispatcher struct {
	scorer Scorer
}

func NewDispatcher(scorer Scorer) *Dispatcher {
	return &Dispatcher{scorer: scorer}
}

// Search filters events by query. A query that is empty after trimming is a
// pass-through. Fuzzy results are always a superset of exact results for the
// same query.
func (d *Dispatcher) Search(ctx context.Context, events []event.Event, query string, mode Mode) ([]event.Event, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return events, nil
	}

	switch mode {
	case ModeExact:
		return matchEvents(events, query, exactMatch), nil
	case ModeFuzzy:
		return matchEvents(events, query, fuzzyMatch), nil
	case ModeSemantic:
		if d.scorer == nil {
			return nil, ErrScorerNotConfigured
		}
		ranked, err := d.scorer.Score(ctx, events, query)
		if err != nil {
			return nil, fmt.Errorf("semantic scoring failed: %w", err)
		}
		return ranked, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidMode, mode)
}

func matchEvents(events []event.Event, query string, match func(e event.Event, query string) bool) []event.Event {
	matched := make([]event.Event, 0, len(events))
	for _, e := range events {
		if match(e, query) {
			matched = append(matched, e)
		}
	}
	return matched
}

// exactMatch is a case-insensitive substring match over title and description.
func exactMatch(e event.Event, query string) bool {
	query = strings.ToLower(query)
	return strings.Contains(strings.ToLower(e.Title), query) ||
		strings.Contains(strings.ToLower(e.Description), query)
}

// fuzzyMatch accepts everything exactMatch does, plus any event with a title
// or description word within a Levenshtein distance of max(1, len(query)/4)
// of the query.
func fuzzyMatch(e event.Event, query string) bool {
	if exactMatch(e, query) {
		return true
	}
	threshold := len(query) / 4
	if threshold < 1 {
		threshold = 1
	}
	query = strings.ToLower(query)
	for _, word := range strings.Fields(strings.ToLower(e.Title + " " + e.Description)) {
		if levenshtein.ComputeDistance(word, query) <= threshold {
			return true
		}
	}
	return false
}
