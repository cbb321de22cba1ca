package mock

import (
	"context"
	"sync"

	"github.com/poiesic/menukb/ai"
)

// GenerateCall records the arguments of one Generate call.
type GenerateCall struct {
	Docs     []ai.ContextDocument
	Question string
}

// MockGenerator is a test double for ai.Generator.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, Generate returns Answer.
	GenerateFunc func(ctx context.Context, docs []ai.ContextDocument, question string) (string, error)

	// Answer is returned when GenerateFunc is nil.
	Answer string

	mu    sync.Mutex
	calls []GenerateCall
}

// NewMockGenerator creates a mock generator that always returns answer.
func NewMockGenerator(answer string) *MockGenerator {
	return &MockGenerator{Answer: answer}
}

// Generate records the call and returns the configured answer.
func (m *MockGenerator) Generate(ctx context.Context, docs []ai.ContextDocument, question string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, GenerateCall{Docs: docs, Question: question})
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, docs, question)
	}
	return m.Answer, nil
}

// CallCount returns the number of Generate calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Calls returns a copy of the recorded calls.
func (m *MockGenerator) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerateCall(nil), m.calls...)
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.GenerateFunc = nil
}
