package calendar_view

import (
	"testing"
	"time"

	"github.com/eventdeck/eventdeck/internal/utils"
	"github.com/eventdeck/eventdeck/pkg/date_window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNavigator() (*Navigator, *utils.MockClock) {
	// Wednesday 2025-03-12
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 12, 14, 30, 0, 0, time.UTC)}
	return NewNavigator(clock), clock
}

func TestNavigator_DisplayDays(t *testing.T) {
	t.Run("starts at the Monday of the anchor's week", func(t *testing.T) {
		navigator, _ := newTestNavigator()

		days := navigator.DisplayDays()

		require.Len(t, days, 7)
		assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), days[0])
		assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), days[6])
	})

	t.Run("is recomputed after every state change", func(t *testing.T) {
		navigator, _ := newTestNavigator()

		navigator.SetViewDays(3)
		assert.Len(t, navigator.DisplayDays(), 3)

		navigator.Goto(time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC))
		days := navigator.DisplayDays()
		assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), days[0])
	})
}

func TestNavigator_Paging(t *testing.T) {
	t.Run("Next and Previous shift by the window length", func(t *testing.T) {
		navigator, _ := newTestNavigator()
		navigator.SetViewDays(5)

		navigator.Next()
		assert.Equal(t, time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), navigator.CurrentDate())

		navigator.Previous()
		navigator.Previous()
		assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), navigator.CurrentDate())
	})

	t.Run("Today returns to the clock date without touching the selection", func(t *testing.T) {
		navigator, clock := newTestNavigator()
		selected := time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)
		navigator.Select(selected)
		navigator.Next()

		clock.SetNow(time.Date(2025, 3, 13, 9, 0, 0, 0, time.UTC))
		navigator.Today()

		assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), navigator.CurrentDate())
		got, ok := navigator.Selected()
		require.True(t, ok)
		assert.Equal(t, selected, got)
	})
}

func TestNavigator_SetViewDays(t *testing.T) {
	t.Run("accepts the whole 1..15 range", func(t *testing.T) {
		navigator, _ := newTestNavigator()

		navigator.SetViewDays(1)
		assert.Equal(t, 1, navigator.ViewDays())
		navigator.SetViewDays(15)
		assert.Equal(t, 15, navigator.ViewDays())
	})

	t.Run("silently ignores out-of-range values", func(t *testing.T) {
		navigator, _ := newTestNavigator()
		navigator.SetViewDays(10)

		for _, days := range []int{0, -1, 16, 100} {
			navigator.SetViewDays(days)
			assert.Equal(t, 10, navigator.ViewDays(), "viewDays=%d", days)
		}
	})
}

func TestNavigator_Selection(t *testing.T) {
	navigator, _ := newTestNavigator()

	_, ok := navigator.Selected()
	assert.False(t, ok)

	navigator.Select(time.Date(2025, 5, 1, 16, 0, 0, 0, time.UTC))
	selected, ok := navigator.Selected()
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), selected)

	navigator.ClearSelection()
	_, ok = navigator.Selected()
	assert.False(t, ok)
}

func TestNavigator_VisibleWeekKeys(t *testing.T) {
	t.Run("single week for a 7-day window starting Monday", func(t *testing.T) {
		navigator, _ := newTestNavigator()

		keys := navigator.VisibleWeekKeys()

		require.Len(t, keys, 1)
		assert.Equal(t, "2025-W11", keys[0].String())
	})

	t.Run("two weeks for a window spanning a week boundary", func(t *testing.T) {
		navigator, _ := newTestNavigator()
		navigator.SetViewDays(10)

		keys := navigator.VisibleWeekKeys()

		require.Len(t, keys, 2)
		assert.Equal(t, date_window.WeekKey{Year: 2025, Week: 11}, keys[0])
		assert.Equal(t, date_window.WeekKey{Year: 2025, Week: 12}, keys[1])
	})
}
