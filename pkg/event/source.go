package event

import "context"

// Source supplies a flat list of events, e.g. an ICS feed or a remote
// calendar. Sources are read-only collaborators of the catalog.
type Source interface {
	// Name identifies the source in logs.
	Name() string
	Events(ctx context.Context) ([]Event, error)
}
