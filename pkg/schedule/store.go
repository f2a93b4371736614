package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/eventdeck/eventdeck/pkg/date_window"
	log "github.com/sirupsen/logrus"
)

// Store tracks which events the user pinned onto which week. The in-memory
// map is authoritative; every mutation is written through to the backend,
// and a failed write never rolls back the in-memory change.
type Store struct {
	backend Backend

	mu     sync.Mutex
	weeks  map[string][]string // week key -> event ids, no duplicates
	loaded bool
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

// load populates the in-memory map from the backend. Missing or malformed
// persisted data degrades to an empty map with a warning; it is never fatal.
// Must be called with the mutex held.
func (s *Store) load(ctx context.Context) {
	if s.loaded {
		return
	}
	s.loaded = true
	s.weeks = make(map[string][]string)

	value, ok, err := s.backend.Read(ctx, storageKey)
	if err != nil {
		log.Warnf("failed to read persisted schedule, starting empty: %v", err)
		return
	}
	if !ok {
		log.Debug("no persisted schedule found, starting empty")
		return
	}

	var weeks map[string][]string
	if err := json.Unmarshal([]byte(value), &weeks); err != nil {
		log.Warnf("persisted schedule is malformed, starting empty: %v", err)
		return
	}
	// Entries may have been persisted with empty id lists; keep them as-is,
	// readers treat empty and absent weeks the same.
	for week, ids := range weeks {
		if ids == nil {
			ids = []string{}
		}
		s.weeks[week] = ids
	}
}

// persist writes the whole map through to the backend. Must be called with
// the mutex held.
func (s *Store) persist(ctx context.Context) error {
	value, err := json.Marshal(s.weeks)
	if err != nil {
		return fmt.Errorf("failed to serialize schedule: %w", err)
	}
	if err := s.backend.Write(ctx, storageKey, string(value)); err != nil {
		log.Errorf("failed to persist schedule: %v", err)
		return fmt.Errorf("failed to persist schedule: %w", err)
	}
	return nil
}

// IsScheduled reports whether the event is pinned onto the given week.
func (s *Store) IsScheduled(ctx context.Context, eventId string, week date_window.WeekKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	for _, id := range s.weeks[week.String()] {
		if id == eventId {
			return true
		}
	}
	return false
}

// Schedule pins the event onto the week. Scheduling an already pinned event
// is a no-op, not an error. The returned error reports a persistence
// failure only; the in-memory change is kept either way.
func (s *Store) Schedule(ctx context.Context, eventId string, week date_window.WeekKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	key := week.String()
	for _, id := range s.weeks[key] {
		if id == eventId {
			return nil
		}
	}
	s.weeks[key] = append(s.weeks[key], eventId)
	log.Debugf("scheduled event %s for week %s", eventId, key)
	return s.persist(ctx)
}

// Unschedule removes the event from the week. Unknown events and weeks are
// a no-op. The emptied week entry is left in place; readers must tolerate
// both an empty and an absent entry.
func (s *Store) Unschedule(ctx context.Context, eventId string, week date_window.WeekKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	key := week.String()
	ids, ok := s.weeks[key]
	if !ok {
		return nil
	}
	for i, id := range ids {
		if id == eventId {
			s.weeks[key] = append(ids[:i:i], ids[i+1:]...)
			log.Debugf("unscheduled event %s from week %s", eventId, key)
			return s.persist(ctx)
		}
	}
	return nil
}

// IDsFor returns the ids pinned onto the week, empty for unknown weeks.
func (s *Store) IDsFor(ctx context.Context, week date_window.WeekKey) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	ids := s.weeks[week.String()]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
