package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventdeck/eventdeck/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func searchableEvent(id, title, description string) event.Event {
	return event.Event{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    event.CategorySocial,
		StartTime:   time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func eventIds(events []event.Event) []string {
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	return ids
}

func TestDispatcher_Search(t *testing.T) {
	events := []event.Event{
		searchableEvent("a", "Jazz Night", "Live jazz at the student club"),
		searchableEvent("b", "Career Fair", "Meet employers on campus"),
		searchableEvent("c", "Jass Tournament", "Swiss card game evening"),
	}

	t.Run("empty query is a pass-through", func(t *testing.T) {
		dispatcher := NewDispatcher(nil)
		for _, query := range []string{"", "   ", "\t\n"} {
			result, err := dispatcher.Search(ctx, events, query, ModeExact)
			require.NoError(t, err)
			assert.Equal(t, events, result)
		}
	})

	t.Run("exact matches case-insensitive substrings of title and description", func(t *testing.T) {
		dispatcher := NewDispatcher(nil)

		result, err := dispatcher.Search(ctx, events, "JAZZ", ModeExact)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, eventIds(result))

		result, err = dispatcher.Search(ctx, events, "campus", ModeExact)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, eventIds(result))
	})

	t.Run("fuzzy tolerates small typos", func(t *testing.T) {
		dispatcher := NewDispatcher(nil)

		result, err := dispatcher.Search(ctx, events, "jazz", ModeFuzzy)
		require.NoError(t, err)
		// "Jass" is within edit distance 1 of "jazz".
		assert.Equal(t, []string{"a", "c"}, eventIds(result))
	})

	t.Run("fuzzy results are a superset of exact results", func(t *testing.T) {
		dispatcher := NewDispatcher(nil)
		for _, query := range []string{"jazz", "career", "club", "evening", "xyz"} {
			exact, err := dispatcher.Search(ctx, events, query, ModeExact)
			require.NoError(t, err)
			fuzzy, err := dispatcher.Search(ctx, events, query, ModeFuzzy)
			require.NoError(t, err)

			fuzzyIds := eventIds(fuzzy)
			for _, id := range eventIds(exact) {
				assert.Contains(t, fuzzyIds, id, "query %q", query)
			}
		}
	})

	t.Run("semantic delegates to the injected scorer once", func(t *testing.T) {
		scorer := &StubScorer{Ranking: []string{"c", "a"}}
		dispatcher := NewDispatcher(scorer)

		result, err := dispatcher.Search(ctx, events, "music", ModeSemantic)

		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, eventIds(result))
		assert.Equal(t, 1, scorer.Calls)
	})

	t.Run("semantic propagates scorer errors", func(t *testing.T) {
		dispatcher := NewDispatcher(&StubScorer{Err: errors.New("ranking service down")})

		_, err := dispatcher.Search(ctx, events, "music", ModeSemantic)
		assert.Error(t, err)
	})

	t.Run("semantic without a scorer fails", func(t *testing.T) {
		dispatcher := NewDispatcher(nil)

		_, err := dispatcher.Search(ctx, events, "music", ModeSemantic)
		assert.ErrorIs(t, err, ErrScorerNotConfigured)
	})

	t.Run("unknown mode fails instead of falling back", func(t *testing.T) {
		dispatcher := NewDispatcher(nil)

		_, err := dispatcher.Search(ctx, events, "jazz", Mode("regex"))
		assert.ErrorIs(t, err, ErrInvalidMode)
	})
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"exact", "fuzzy", "semantic"} {
		mode, err := ParseMode(valid)
		require.NoError(t, err)
		assert.Equal(t, Mode(valid), mode)
	}

	_, err := ParseMode("Exact")
	assert.ErrorIs(t, err, ErrInvalidMode)
}
