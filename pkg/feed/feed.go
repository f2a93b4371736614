package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/eventdeck/eventdeck/internal/utils"
	"github.com/eventdeck/eventdeck/pkg/event"
	log "github.com/sirupsen/logrus"
)

const defaultWindowDays = 90

// ICSSource pulls events from a single ICS subscription URL. Recurring
// events are expanded into concrete occurrences within a rolling window
// around the current date.
type ICSSource struct {
	id         string
	url        string
	category   event.Category
	windowDays int
	clock      utils.Clock
	client     *http.Client
}

func NewICSSource(id, url string, category event.Category, windowDays int, clock utils.Clock) *ICSSource {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	return &ICSSource{
		id:         id,
		url:        url,
		category:   category,
		windowDays: windowDays,
		clock:      clock,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *ICSSource) Name() string {
	return "ics:" + s.id
}

// Events fetches the feed and returns its expanded occurrences.
func (s *ICSSource) Events(ctx context.Context) ([]event.Event, error) {
	body, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	parsed, err := parseCalendar(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", s.id, err)
	}

	now := s.clock.Now()
	rangeStart := now.AddDate(0, 0, -7)
	rangeEnd := now.AddDate(0, 0, s.windowDays)

	events := expand(parsed, s.category, rangeStart, rangeEnd)
	log.Debugf("feed %s expanded %d parsed events into %d occurrences", s.id, len(parsed), len(events))
	return events, nil
}

func (s *ICSSource) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", s.id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status: %s", s.id, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
