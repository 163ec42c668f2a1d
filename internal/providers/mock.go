package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockName = "mock"

// MockGenerator is a Generator for testing.
type MockGenerator struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailAfter    int // fail after N requests (0 = never)
	ResponseText string

	// Respond overrides ResponseText when set, letting tests shape the
	// reply from the request.
	Respond func(req *GenerateRequest) string

	requestCount atomic.Int64
}

var _ Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a mock with sensible defaults.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		ResponseText: "mock explanation",
	}
}

// Name returns the backend identifier.
func (g *MockGenerator) Name() string { return MockName }

// Model returns the mock model identifier.
func (g *MockGenerator) Model() string { return "mock-model" }

// Requests returns how many generate calls have been made.
func (g *MockGenerator) Requests() int {
	return int(g.requestCount.Load())
}

// Generate returns the configured response or error.
func (g *MockGenerator) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	start := time.Now()
	count := g.requestCount.Add(1)

	if g.ShouldFail {
		return nil, fmt.Errorf("mock generator configured to fail")
	}
	if g.FailAfter > 0 && int(count) > g.FailAfter {
		return nil, fmt.Errorf("mock generator failed after %d requests", g.FailAfter)
	}

	if g.Latency > 0 {
		select {
		case <-time.After(g.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	content := g.ResponseText
	if g.Respond != nil {
		content = g.Respond(req)
	}

	return &GenerateResult{
		Content:          content,
		PromptTokens:     len(req.Prompt) / 4,
		CompletionTokens: len(content) / 4,
		TotalTokens:      (len(req.Prompt) + len(content)) / 4,
		Provider:         MockName,
		ModelUsed:        "mock-model",
		RequestID:        fmt.Sprintf("mock-%d", count),
		Attempts:         1,
		TotalTime:        time.Since(start),
	}, nil
}
