package filter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/eventdeck/eventdeck/pkg/event"
	"github.com/eventdeck/eventdeck/pkg/search"
	log "github.com/sirupsen/logrus"
)

type BrowseResponseDTO struct {
	Events        []event.EventDTO `json:"events"`
	ActiveFilters int              `json:"activeFilters"`
}

// Handler exposes filtered browsing of the event catalog. Each request
// builds a fresh spec from query parameters; the stateful Controller is for
// embedded/rendering use, the HTTP surface is stateless.
type Handler struct {
	catalog    event.CatalogService
	engine     *Engine
	dispatcher *search.Dispatcher
}

func NewHandler(catalog event.CatalogService, engine *Engine, dispatcher *search.Dispatcher) *Handler {
	return &Handler{catalog: catalog, engine: engine, dispatcher: dispatcher}
}

// Browse returns the catalog filtered by the request's query parameters and
// sorted by start date.
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	spec, err := specFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events := h.catalog.Events(r.Context())
	searched, err := h.dispatcher.Search(r.Context(), events, spec.SearchQuery, spec.SearchMode)
	if err != nil {
		if errors.Is(err, search.ErrInvalidMode) || errors.Is(err, search.ErrScorerNotConfigured) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("search failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	filtered := SortByStart(h.engine.Apply(searched, spec))

	dtos := make([]event.EventDTO, 0, len(filtered))
	for _, e := range filtered {
		dtos = append(dtos, event.ToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(BrowseResponseDTO{Events: dtos, ActiveFilters: spec.ActiveCount()}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func specFromQuery(r *http.Request) (Spec, error) {
	spec := NewSpec()
	query := r.URL.Query()

	for _, name := range query["category"] {
		category, err := event.ParseCategory(name)
		if err != nil {
			return Spec{}, err
		}
		spec.Categories = append(spec.Categories, category)
	}

	if v := query.Get("clubEvents"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return Spec{}, err
		}
		spec.IncludeClubEvents = include
	}
	if v := query.Get("socialEvents"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return Spec{}, err
		}
		spec.IncludeSocialEvents = include
	}

	spec.SearchQuery = query.Get("q")
	if v := query.Get("mode"); v != "" {
		mode, err := search.ParseMode(v)
		if err != nil {
			return Spec{}, err
		}
		spec.SearchMode = mode
	}

	from, to := query.Get("from"), query.Get("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return Spec{}, errors.New("from and to must be provided together")
		}
		fromDate, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return Spec{}, err
		}
		toDate, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return Spec{}, err
		}
		spec.DateRange = &DateRange{From: fromDate, To: toDate}
	}

	spec.Location = query.Get("location")

	if v := query.Get("timeOfDay"); v != "" {
		timeOfDay, err := ParseTimeOfDay(v)
		if err != nil {
			return Spec{}, err
		}
		spec.TimeOfDay = timeOfDay
	}

	if v := query.Get("hasAvailability"); v != "" {
		hasAvailability, err := strconv.ParseBool(v)
		if err != nil {
			return Spec{}, err
		}
		spec.HasAvailability = hasAvailability
	}

	return spec, nil
}
