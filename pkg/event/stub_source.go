package event

import "context"

// StubSource is an in-memory event source for tests.
type StubSource struct {
	SourceName string
	Items      []Event
	Err        error
}

func (s *StubSource) Name() string {
	if s.SourceName != "" {
		return s.SourceName
	}
	return "stub"
}

func (s *StubSource) Events(ctx context.Context) ([]Event, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items, nil
}
