package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests. Queued responses are
// served first, then Handler answers if set. Content is returned as given,
// without schema validation.
type MockProvider struct {
	// Handler answers requests once the queue is drained.
	Handler func(Request) MockResponse

	mu       sync.Mutex
	queue    []MockResponse
	requests []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	var (
		next MockResponse
		ok   bool
	)
	if len(m.queue) > 0 {
		next, m.queue, ok = m.queue[0], m.queue[1:], true
	}
	handler := m.Handler
	m.mu.Unlock()

	if !ok {
		if handler == nil {
			return nil, &ErrProviderUnavailable{}
		}
		next = handler(req)
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// Enqueue appends canned responses.
func (m *MockProvider) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, responses...)
}

// Requests returns a copy of every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
