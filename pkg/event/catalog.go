package event

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

type CatalogService interface {
	// Events returns the current snapshot of all known events.
	Events(ctx context.Context) []Event
	// Refresh pulls all sources and replaces the snapshot.
	Refresh(ctx context.Context) error
}

type CatalogServiceImpl struct {
	sources []Source

	mu       sync.RWMutex
	snapshot []Event
}

func NewCatalogService(sources []Source) *CatalogServiceImpl {
	return &CatalogServiceImpl{sources: sources}
}

func (s *CatalogServiceImpl) Events(ctx context.Context) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	events := make([]Event, len(s.snapshot))
	copy(events, s.snapshot)
	return events
}

// Refresh pulls every source and replaces the snapshot with the combined
// result. A failing source does not discard the events of the others; the
// refresh only fails when no source could be read at all.
func (s *CatalogServiceImpl) Refresh(ctx context.Context) error {
	var combined []Event
	var failed int
	for _, src := range s.sources {
		events, err := src.Events(ctx)
		if err != nil {
			failed++
			log.Errorf("failed to load events from source %q: %v", src.Name(), err)
			continue
		}
		log.Debugf("source %q supplied %d events", src.Name(), len(events))
		combined = append(combined, events...)
	}
	if failed > 0 && failed == len(s.sources) {
		return fmt.Errorf("all %d event sources failed", failed)
	}

	s.mu.Lock()
	s.snapshot = combined
	s.mu.Unlock()

	log.Infof("event catalog refreshed: %d events from %d sources", len(combined), len(s.sources)-failed)
	return nil
}
