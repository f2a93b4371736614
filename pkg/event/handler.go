package event

import (
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type EventDTO struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Location        string    `json:"location,omitempty"`
	HasAvailability bool      `json:"hasAvailability"`
}

func ToDTO(e Event) EventDTO {
	return EventDTO{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        string(e.Category),
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		Location:        e.Location,
		HasAvailability: e.HasAvailability,
	}
}

type Handler struct {
	catalog CatalogService
}

func NewHandler(catalog CatalogService) *Handler {
	return &Handler{catalog: catalog}
}

// RefreshCatalog re-pulls all configured event sources.
func (h *Handler) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	log.Debug("Manual catalog refresh requested")
	if err := h.catalog.Refresh(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListAll returns the unfiltered catalog snapshot.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	events := h.catalog.Events(r.Context())
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, ToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
