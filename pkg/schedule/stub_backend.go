package schedule

import (
	"context"
	"sync"
)

// StubBackend is an in-memory Backend for tests, with injectable failures.
type StubBackend struct {
	mu     sync.Mutex
	values map[string]string

	ReadErr  error
	WriteErr error
	Writes   int
}

func NewStubBackend() *StubBackend {
	return &StubBackend{values: make(map[string]string)}
}

func (b *StubBackend) Read(ctx context.Context, key string) (string, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ReadErr != nil {
		return "", false, b.ReadErr
	}
	value, ok := b.values[key]
	return value, ok, nil
}

func (b *StubBackend) Write(ctx context.Context, key string, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Writes++
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.values[key] = value
	return nil
}

// Seed stores a raw value, bypassing error injection.
func (b *StubBackend) Seed(key, value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
}

// Stored returns the raw persisted value for assertions.
func (b *StubBackend) Stored(key string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	value, ok := b.values[key]
	return value, ok
}
