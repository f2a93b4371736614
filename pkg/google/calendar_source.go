package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/eventdeck/eventdeck/internal/config"
	"github.com/eventdeck/eventdeck/internal/utils"
	"github.com/eventdeck/eventdeck/pkg/event"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const maxResults = 250

// CalendarSource pulls upcoming events from a Google calendar. The OAuth
// token is provisioned out of band (one-time consent) and read from the
// configured token file.
type CalendarSource struct {
	cfg        config.Google
	windowDays int
	clock      utils.Clock
}

func NewCalendarSource(cfg config.Google, windowDays int, clock utils.Clock) *CalendarSource {
	return &CalendarSource{cfg: cfg, windowDays: windowDays, clock: clock}
}

func (s *CalendarSource) Name() string {
	return "google:" + s.cfg.CalendarId
}

func (s *CalendarSource) Events(ctx context.Context) ([]event.Event, error) {
	client, err := s.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	service, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Calendar client: %w", err)
	}

	now := s.clock.Now()
	response, err := service.Events.List(s.cfg.CalendarId).
		SingleEvents(true).
		OrderBy("startTime").
		TimeMin(now.AddDate(0, 0, -7).Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, s.windowDays).Format(time.RFC3339)).
		MaxResults(maxResults).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events from Google Calendar: %w", err)
	}

	category, err := event.ParseCategory(s.cfg.Category)
	if err != nil {
		log.Warnf("invalid category configured for Google calendar, using Other: %v", err)
		category = event.CategoryOther
	}

	events := make([]event.Event, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Status == "cancelled" {
			continue
		}
		start, err := parseEventTime(item.Start)
		if err != nil {
			log.Warnf("skipping Google event %s with unparsable start: %v", item.Id, err)
			continue
		}
		end, err := parseEventTime(item.End)
		if err != nil {
			end = start.Add(time.Hour)
		}
		events = append(events, event.Event{
			ID:              item.Id,
			Title:           item.Summary,
			Description:     item.Description,
			Category:        category,
			StartTime:       start,
			EndTime:         end,
			Location:        item.Location,
			HasAvailability: true,
		})
	}
	return events, nil
}

// httpClient builds an authenticated HTTP client from the configured OAuth
// credentials and the stored token.
func (s *CalendarSource) httpClient(ctx context.Context) (*http.Client, error) {
	if s.cfg.ClientId == "" || s.cfg.ClientSecret == "" {
		return nil, fmt.Errorf("google calendar source requires client credentials")
	}
	token, err := s.loadToken()
	if err != nil {
		return nil, err
	}

	conf := &oauth2.Config{
		ClientID:     s.cfg.ClientId,
		ClientSecret: s.cfg.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarReadonlyScope},
	}
	return conf.Client(ctx, token), nil
}

func (s *CalendarSource) loadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.cfg.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read Google token file: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("unable to parse Google token file: %w", err)
	}
	return &token, nil
}

func parseEventTime(t *gcal.EventDateTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, fmt.Errorf("missing event time")
	}
	if t.DateTime != "" {
		return time.Parse(time.RFC3339, t.DateTime)
	}
	return time.Parse(time.DateOnly, t.Date)
}
