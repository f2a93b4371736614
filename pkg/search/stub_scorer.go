package search

import (
	"context"

	"github.com/eventdeck/eventdeck/pkg/event"
)

// StubScorer is a deterministic scorer for tests. It returns the events
// whose ids are listed in Ranking, in that order.
type StubScorer struct {
	Ranking []string
	Err     error

	Calls int
}

func (s *StubScorer) Score(ctx context.Context, events []event.Event, query string) ([]event.Event, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	byId := make(map[string]event.Event, len(events))
	for _, e := range events {
		byId[e.ID] = e
	}
	var ranked []event.Event
	for _, id := range s.Ranking {
		if e, ok := byId[id]; ok {
			ranked = append(ranked, e)
		}
	}
	return ranked, nil
}
