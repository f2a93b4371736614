package app

import (
	"github.com/eventdeck/eventdeck/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Event browsing
	r.HandleFunc("/api/event", deps.BrowseHandler.Browse).Methods("GET")
	r.HandleFunc("/api/event/all", deps.EventHandler.ListAll).Methods("GET")
	r.HandleFunc("/api/event/refresh", deps.EventHandler.RefreshCatalog).Methods("POST")

	// Calendar window
	r.HandleFunc("/api/calendar/window", deps.CalendarHandler.GetWindow).Methods("GET")

	// Weekly schedule
	r.HandleFunc("/api/schedule/{week}", deps.ScheduleHandler.GetWeek).Methods("GET")
	r.HandleFunc("/api/schedule/{week}/event/{eventId}", deps.ScheduleHandler.ScheduleEvent).Methods("PUT")
	r.HandleFunc("/api/schedule/{week}/event/{eventId}", deps.ScheduleHandler.UnscheduleEvent).Methods("DELETE")
}
