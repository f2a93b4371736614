package filter

import (
	"context"

	"github.com/eventdeck/eventdeck/pkg/event"
	"github.com/eventdeck/eventdeck/pkg/search"
	log "github.com/sirupsen/logrus"
)

// Controller holds the browsing state of one filter surface: the candidate
// events, the current spec, and a memoized filtered-and-sorted view. All
// state transitions are explicit methods, so they are testable without any
// rendering surface attached.
type Controller struct {
	engine     *Engine
	dispatcher *search.Dispatcher

	events []event.Event
	spec   Spec

	memo      []event.Event
	memoValid bool
}

func NewController(engine *Engine, dispatcher *search.Dispatcher) *Controller {
	return &Controller{
		engine:     engine,
		dispatcher: dispatcher,
		spec:       NewSpec(),
	}
}

// SetEvents replaces the candidate list, e.g. after a catalog refresh.
func (c *Controller) SetEvents(events []event.Event) {
	c.events = events
	c.invalidate()
}

func (c *Controller) SetCategories(categories []event.Category) {
	c.spec.Categories = categories
	c.invalidate()
}

func (c *Controller) SetEventTypes(includeClub, includeSocial bool) {
	c.spec.IncludeClubEvents = includeClub
	c.spec.IncludeSocialEvents = includeSocial
	c.invalidate()
}

func (c *Controller) SetSearch(query string, mode search.Mode) {
	c.spec.SearchQuery = query
	c.spec.SearchMode = mode
	c.invalidate()
}

func (c *Controller) SetDateRange(dateRange *DateRange) {
	c.spec.DateRange = dateRange
	c.invalidate()
}

func (c *Controller) SetLocation(location string) {
	c.spec.Location = location
	c.invalidate()
}

func (c *Controller) SetTimeOfDay(timeOfDay TimeOfDay) {
	c.spec.TimeOfDay = timeOfDay
	c.invalidate()
}

func (c *Controller) SetHasAvailability(hasAvailability bool) {
	c.spec.HasAvailability = hasAvailability
	c.invalidate()
}

// Reset restores the neutral spec but keeps the candidate events.
func (c *Controller) Reset() {
	c.spec = NewSpec()
	c.invalidate()
}

func (c *Controller) Spec() Spec {
	return c.spec
}

func (c *Controller) ActiveFilterCount() int {
	return c.spec.ActiveCount()
}

// Results runs search, then the filter engine, then the stable date sort.
// The result is memoized until the next state change.
func (c *Controller) Results(ctx context.Context) ([]event.Event, error) {
	if c.memoValid {
		log.Trace("returning memoized filter results")
		return c.memo, nil
	}

	searched, err := c.dispatcher.Search(ctx, c.events, c.spec.SearchQuery, c.spec.SearchMode)
	if err != nil {
		return nil, err
	}
	filtered := c.engine.Apply(searched, c.spec)
	c.memo = SortByStart(filtered)
	c.memoValid = true
	return c.memo, nil
}

func (c *Controller) invalidate() {
	c.memoValid = false
}
