package calendar_view

import (
	"time"

	"github.com/eventdeck/eventdeck/internal/utils"
	"github.com/eventdeck/eventdeck/pkg/date_window"
	log "github.com/sirupsen/logrus"
)

const (
	minViewDays     = 1
	maxViewDays     = 15
	defaultViewDays = 7
)

// Navigator is the state machine behind a calendar surface: an anchor date,
// a window length and an independent selection. The visible window is always
// derived from the anchor, never stored.
type Navigator struct {
	clock utils.Clock

	current     time.Time
	viewDays    int
	selected    time.Time
	hasSelected bool
}

func NewNavigator(clock utils.Clock) *Navigator {
	return &Navigator{
		clock:    clock,
		current:  date_window.Normalize(clock.Now()),
		viewDays: defaultViewDays,
	}
}

// Today moves the anchor to the current date. The selection is untouched.
func (n *Navigator) Today() {
	n.current = date_window.Normalize(n.clock.Now())
}

// Goto moves the anchor to the given date.
func (n *Navigator) Goto(date time.Time) {
	n.current = date_window.Normalize(date)
}

// Next pages the window forward by its own length.
func (n *Navigator) Next() {
	n.current = date_window.AddDays(n.current, n.viewDays)
}

// Previous pages the window backward by its own length.
func (n *Navigator) Previous() {
	n.current = date_window.SubDays(n.current, n.viewDays)
}

// SetViewDays changes the window length. Values outside 1..15 are ignored
// and the previous length is retained.
func (n *Navigator) SetViewDays(days int) {
	if days < minViewDays || days > maxViewDays {
		log.Debugf("ignoring view days out of range: %d", days)
		return
	}
	n.viewDays = days
}

// Select marks a date independently of the visible window.
func (n *Navigator) Select(date time.Time) {
	n.selected = date_window.Normalize(date)
	n.hasSelected = true
}

func (n *Navigator) ClearSelection() {
	n.selected = time.Time{}
	n.hasSelected = false
}

func (n *Navigator) Selected() (time.Time, bool) {
	return n.selected, n.hasSelected
}

func (n *Navigator) CurrentDate() time.Time {
	return n.current
}

func (n *Navigator) ViewDays() int {
	return n.viewDays
}

// DisplayDays recomputes the visible window: viewDays consecutive dates
// starting at the Monday of the week containing the anchor.
func (n *Navigator) DisplayDays() []time.Time {
	return date_window.DaysWindow(date_window.StartOfWeek(n.current), n.viewDays)
}

// VisibleWeekKeys returns the distinct week keys covered by the visible
// window, in display order.
func (n *Navigator) VisibleWeekKeys() []date_window.WeekKey {
	var keys []date_window.WeekKey
	for _, day := range n.DisplayDays() {
		key := date_window.WeekKeyFor(day)
		if len(keys) == 0 || !keys[len(keys)-1].Equal(key) {
			keys = append(keys, key)
		}
	}
	return keys
}
