package jadlog

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Call records one request the mock received.
type Call struct {
	URL     string
	Request *FreteRequest
}

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnGetFreight func(ctx context.Context, url string, req *FreteRequest, token string) (*FreteResponse, error)

	mu    sync.Mutex
	calls []Call
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// GetFreight returns a mock rate quote.
func (m *MockAPIClient) GetFreight(ctx context.Context, url string, req *FreteRequest, token string) (*FreteResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{URL: url, Request: req})
	m.mu.Unlock()

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, errors.New("simulated API error")
	}

	if m.OnGetFreight != nil {
		return m.OnGetFreight(ctx, url, req, token)
	}

	total := CommaDecimal(27.93)
	return &FreteResponse{
		Frete: []FreteQuote{
			{VlTotal: &total, Prazo: 4},
		},
	}, nil
}

// Calls returns every request the mock has received.
func (m *MockAPIClient) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]Call, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of requests the mock has received.
func (m *MockAPIClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

var _ APIClient = (*MockAPIClient)(nil)
