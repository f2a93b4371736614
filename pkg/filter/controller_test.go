package filter

import (
	"context"
	"testing"
	"time"

	"github.com/eventdeck/eventdeck/pkg/event"
	"github.com/eventdeck/eventdeck/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func newTestController(scorer search.Scorer) *Controller {
	return NewController(NewEngine(event.CategoryClassifier{}), search.NewDispatcher(scorer))
}

func TestController_Results(t *testing.T) {
	events := []event.Event{
		{
			ID:        "b",
			Title:     "Robotics Workshop",
			Category:  event.CategoryAcademic,
			StartTime: time.Date(2025, 3, 12, 18, 0, 0, 0, time.UTC),
		},
		{
			ID:        "a",
			Title:     "Board Game Night",
			Category:  event.CategorySocial,
			StartTime: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		},
	}

	t.Run("returns events sorted by start date", func(t *testing.T) {
		controller := newTestController(nil)
		controller.SetEvents(events)

		result, err := controller.Results(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, ids(result))
	})

	t.Run("memoizes until a state change", func(t *testing.T) {
		controller := newTestController(nil)
		controller.SetEvents(events)

		first, err := controller.Results(ctx)
		require.NoError(t, err)
		second, err := controller.Results(ctx)
		require.NoError(t, err)
		// Same backing array: the second call did not recompute.
		assert.Same(t, &first[0], &second[0])

		controller.SetLocation("hall")
		third, err := controller.Results(ctx)
		require.NoError(t, err)
		assert.Empty(t, third)
	})

	t.Run("search runs before the structured filters", func(t *testing.T) {
		controller := newTestController(nil)
		controller.SetEvents(events)
		controller.SetSearch("robotics", search.ModeExact)
		controller.SetEventTypes(true, false)

		result, err := controller.Results(ctx)

		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, ids(result))
	})

	t.Run("semantic mode consults the injected scorer", func(t *testing.T) {
		scorer := &search.StubScorer{Ranking: []string{"b", "a"}}
		controller := newTestController(scorer)
		controller.SetEvents(events)
		controller.SetSearch("technology", search.ModeSemantic)

		result, err := controller.Results(ctx)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, 1, scorer.Calls)
	})

	t.Run("invalid mode surfaces as an error", func(t *testing.T) {
		controller := newTestController(nil)
		controller.SetEvents(events)
		controller.SetSearch("robotics", search.Mode("vibes"))

		_, err := controller.Results(ctx)
		assert.ErrorIs(t, err, search.ErrInvalidMode)
	})

	t.Run("Reset restores the neutral spec but keeps events", func(t *testing.T) {
		controller := newTestController(nil)
		controller.SetEvents(events)
		controller.SetCategories([]event.Category{event.CategorySports})

		result, err := controller.Results(ctx)
		require.NoError(t, err)
		require.Empty(t, result)
		require.Equal(t, 1, controller.ActiveFilterCount())

		controller.Reset()
		result, err = controller.Results(ctx)
		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, 0, controller.ActiveFilterCount())
	})
}
