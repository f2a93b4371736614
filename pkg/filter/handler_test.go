package filter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventdeck/eventdeck/pkg/event"
	"github.com/eventdeck/eventdeck/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBrowseHandler(t *testing.T, events []event.Event) *Handler {
	t.Helper()
	catalog := event.NewCatalogService([]event.Source{&event.StubSource{Items: events}})
	require.NoError(t, catalog.Refresh(context.Background()))
	return NewHandler(catalog, NewEngine(event.CategoryClassifier{}), search.NewDispatcher(nil))
}

func browse(t *testing.T, handler *Handler, url string) (*httptest.ResponseRecorder, BrowseResponseDTO) {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	recorder := httptest.NewRecorder()
	handler.Browse(recorder, req)

	var response BrowseResponseDTO
	if recorder.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	}
	return recorder, response
}

func TestHandler_Browse(t *testing.T) {
	events := []event.Event{
		{
			ID:        "a",
			Title:     "Board Game Night",
			Category:  event.CategorySocial,
			StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:        "b",
			Title:     "Robotics Workshop",
			Category:  event.CategoryAcademic,
			StartTime: time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC),
			Location:  "Engineering Hall",
		},
	}

	t.Run("returns all events sorted by date without filters", func(t *testing.T) {
		handler := newBrowseHandler(t, events)

		recorder, response := browse(t, handler, "/api/event")

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, response.Events, 2)
		assert.Equal(t, "a", response.Events[0].ID)
		assert.Equal(t, 0, response.ActiveFilters)
	})

	t.Run("applies category filter from query parameters", func(t *testing.T) {
		handler := newBrowseHandler(t, events)

		recorder, response := browse(t, handler, "/api/event?category=Social")

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, response.Events, 1)
		assert.Equal(t, "a", response.Events[0].ID)
		assert.Equal(t, 1, response.ActiveFilters)
	})

	t.Run("combines search and location filters", func(t *testing.T) {
		handler := newBrowseHandler(t, events)

		recorder, response := browse(t, handler, "/api/event?q=robotics&mode=exact&location=engineering")

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, response.Events, 1)
		assert.Equal(t, "b", response.Events[0].ID)
		assert.Equal(t, 2, response.ActiveFilters)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		handler := newBrowseHandler(t, events)

		recorder, _ := browse(t, handler, "/api/event?category=Karaoke")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects unknown search mode", func(t *testing.T) {
		handler := newBrowseHandler(t, events)

		recorder, _ := browse(t, handler, "/api/event?q=jazz&mode=regex")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("rejects half-open date range", func(t *testing.T) {
		handler := newBrowseHandler(t, events)

		recorder, _ := browse(t, handler, "/api/event?from=2025-03-10")
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("applies an inclusive date range", func(t *testing.T) {
		handler := newBrowseHandler(t, events)

		recorder, response := browse(t, handler, "/api/event?from=2025-03-10&to=2025-03-10")

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Len(t, response.Events, 1)
		assert.Equal(t, "a", response.Events[0].ID)
	})
}
