package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eventdeck/eventdeck/pkg/event"
	log "github.com/sirupsen/logrus"
)

// HTTPScorer delegates semantic ranking to a remote scoring endpoint. The
// endpoint receives the query plus the candidate events and responds with
// event ids ordered by relevance; ids the catalog does not know are dropped.
type HTTPScorer struct {
	url    string
	client *http.Client
}

func NewHTTPScorer(url string) *HTTPScorer {
	return &HTTPScorer{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type scoreRequest struct {
	Query  string           `json:"query"`
	Events []scoreCandidate `json:"events"`
}

type scoreCandidate struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type scoreResponse struct {
	Ids []string `json:"ids"`
}

func (s *HTTPScorer) Score(ctx context.Context, events []event.Event, query string) ([]event.Event, error) {
	candidates := make([]scoreCandidate, 0, len(events))
	byId := make(map[string]event.Event, len(events))
	for _, e := range events {
		candidates = append(candidates, scoreCandidate{Id: e.ID, Title: e.Title, Description: e.Description})
		byId[e.ID] = e
	}

	body, err := json.Marshal(scoreRequest{Query: query, Events: candidates})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scoring request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.url, bytes.NewReader(body))
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Errorf("Failed to execute scoring request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scoring endpoint returned status: %d", resp.StatusCode)
	}

	var scored scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&scored); err != nil {
		return nil, fmt.Errorf("failed to decode scoring response: %w", err)
	}

	ranked := make([]event.Event, 0, len(scored.Ids))
	for _, id := range scored.Ids {
		e, ok := byId[id]
		if !ok {
			log.Debugf("scorer returned unknown event id: %s", id)
			continue
		}
		ranked = append(ranked, e)
	}
	return ranked, nil
}
