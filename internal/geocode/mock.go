package geocode

import (
	"context"
	"sync"
)

// MockSearcher is a test implementation of Searcher.
// It records every query it receives.
type MockSearcher struct {
	SearchFunc func(ctx context.Context, query string) ([]Candidate, error)

	mu      sync.Mutex
	queries []string
}

// NewMockSearcher creates a mock that returns the given candidates for every query.
func NewMockSearcher(candidates ...Candidate) *MockSearcher {
	return &MockSearcher{
		SearchFunc: func(ctx context.Context, query string) ([]Candidate, error) {
			return candidates, nil
		},
	}
}

// Search delegates to the configured function or returns no candidates.
func (m *MockSearcher) Search(ctx context.Context, query string) ([]Candidate, error) {
	m.mu.Lock()
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []Candidate{}, nil
}

// Queries returns the queries received so far, in call order.
func (m *MockSearcher) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}
