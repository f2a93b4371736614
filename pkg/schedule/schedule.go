package schedule

import "context"

// Backend is a string-keyed persistence store for the scheduled-event map.
// The backing medium (Postgres, a file, device storage) is the backend's
// concern; the Store only ever reads and writes one JSON document.
type Backend interface {
	// Read returns the stored value for key. ok is false when the key does
	// not exist, which is not an error.
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key string, value string) error
}

// storageKey is the single document key holding the serialized week map,
// shaped as {"2025-W10": ["eventId", ...], ...}.
const storageKey = "eventdeck.schedule"
