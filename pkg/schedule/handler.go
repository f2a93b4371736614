package schedule

import (
	"encoding/json"
	"net/http"

	"github.com/eventdeck/eventdeck/pkg/date_window"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type WeekScheduleDTO struct {
	Week     string   `json:"week"`
	EventIds []string `json:"eventIds"`
}

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func weekFromRequest(w http.ResponseWriter, r *http.Request) (date_window.WeekKey, bool) {
	week, err := date_window.ParseWeekKey(mux.Vars(r)["week"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return date_window.WeekKey{}, false
	}
	return week, true
}

// GetWeek returns the event ids pinned onto a week.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	week, ok := weekFromRequest(w, r)
	if !ok {
		return
	}

	ids := h.store.IDsFor(r.Context(), week)
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(WeekScheduleDTO{Week: week.String(), EventIds: ids}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// ScheduleEvent pins an event onto a week. Repeating the call is a no-op.
func (h *Handler) ScheduleEvent(w http.ResponseWriter, r *http.Request) {
	week, ok := weekFromRequest(w, r)
	if !ok {
		return
	}
	eventId := mux.Vars(r)["eventId"]

	if err := h.store.Schedule(r.Context(), eventId, week); err != nil {
		// The pin is applied in memory; the client only needs to know the
		// write-through did not land.
		log.Warnf("schedule applied but not persisted: %v", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnscheduleEvent removes an event from a week. Unknown ids are a no-op.
func (h *Handler) UnscheduleEvent(w http.ResponseWriter, r *http.Request) {
	week, ok := weekFromRequest(w, r)
	if !ok {
		return
	}
	eventId := mux.Vars(r)["eventId"]

	if err := h.store.Unschedule(r.Context(), eventId, week); err != nil {
		log.Warnf("unschedule applied but not persisted: %v", err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
