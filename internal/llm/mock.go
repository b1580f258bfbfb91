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

// MockGroundedResponse is a canned grounded response.
type MockGroundedResponse struct {
	Text    string
	Sources []Source
	Err     error
}

// MockProvider is a deterministic Provider for testing. It returns
// canned responses in FIFO order and records all requests. It also
// implements GroundedGenerator and Synthesizer so capability-dependent
// paths can be exercised without a real backend.
type MockProvider struct {
	mu            sync.Mutex
	responses     []MockResponse
	grounded      []MockGroundedResponse
	Calls         []Request
	GroundedCalls []Request
	SpokenTexts   []string
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// GenerateGrounded returns the next canned grounded response or
// ErrProviderUnavailable if the queue is empty.
func (m *MockProvider) GenerateGrounded(_ context.Context, req Request) (*GroundedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GroundedCalls = append(m.GroundedCalls, req)

	if len(m.grounded) == 0 {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	resp := m.grounded[0]
	m.grounded = m.grounded[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &GroundedResponse{
		Text:    resp.Text,
		Sources: resp.Sources,
		Model:   "mock",
	}, nil
}

// Synthesize records the text and returns a short burst of silence.
func (m *MockProvider) Synthesize(_ context.Context, text string) (*SpeechResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SpokenTexts = append(m.SpokenTexts, text)

	return &SpeechResponse{
		Audio:      make([]byte, 4800),
		SampleRate: 24000,
		Channels:   1,
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// AddGroundedResponse appends a canned grounded response to the queue.
func (m *MockProvider) AddGroundedResponse(resp MockGroundedResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grounded = append(m.grounded, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
