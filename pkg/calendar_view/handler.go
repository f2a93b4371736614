package calendar_view

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/eventdeck/eventdeck/internal/utils"
	"github.com/eventdeck/eventdeck/pkg/schedule"
)

type WindowDTO struct {
	CurrentDate string          `json:"currentDate"`
	ViewDays    int             `json:"viewDays"`
	Days        []string        `json:"days"`
	Weeks       []WindowWeekDTO `json:"weeks"`
}

// WindowWeekDTO pairs a visible week with the event ids pinned onto it.
type WindowWeekDTO struct {
	Week     string   `json:"week"`
	EventIds []string `json:"eventIds"`
}

type Handler struct {
	clock utils.Clock
	store *schedule.Store
}

func NewHandler(clock utils.Clock, store *schedule.Store) *Handler {
	return &Handler{clock: clock, store: store}
}

// GetWindow returns the day window anchored at the requested date (today by
// default) together with the scheduled event ids of each visible week.
func (h *Handler) GetWindow(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	navigator := NewNavigator(h.clock)
	query := r.URL.Query()

	if v := query.Get("date"); v != "" {
		date, err := time.Parse(time.DateOnly, v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		navigator.Goto(date)
	}
	if v := query.Get("viewDays"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// Out-of-range values keep the default, matching navigator semantics.
		navigator.SetViewDays(days)
	}

	days := navigator.DisplayDays()
	dayStrings := make([]string, 0, len(days))
	for _, day := range days {
		dayStrings = append(dayStrings, day.Format(time.DateOnly))
	}

	weekKeys := navigator.VisibleWeekKeys()
	weeks := make([]WindowWeekDTO, 0, len(weekKeys))
	for _, key := range weekKeys {
		weeks = append(weeks, WindowWeekDTO{
			Week:     key.String(),
			EventIds: h.store.IDsFor(r.Context(), key),
		})
	}

	dto := WindowDTO{
		CurrentDate: navigator.CurrentDate().Format(time.DateOnly),
		ViewDays:    navigator.ViewDays(),
		Days:        dayStrings,
		Weeks:       weeks,
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
