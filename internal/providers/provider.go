// Package providers wraps text-generation model backends behind a
// small Generator interface. Which backend (and which model) serves a
// process is decided once at construction time; callers never branch on
// provider capability per request.
package providers

import (
	"context"
	"time"
)

// Generator produces natural-language text for an assembled prompt.
type Generator interface {
	// Generate sends the request and returns the generated text.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)

	// Name returns the backend identifier (e.g. "openai").
	Name() string

	// Model returns the model the backend was constructed with.
	Model() string
}

// GenerateRequest is one generation call.
type GenerateRequest struct {
	// System primes the model's role. Optional.
	System string `json:"system,omitempty"`

	// Prompt is the user-facing prompt text.
	Prompt string `json:"prompt"`

	// Generation parameters. Zero values select backend defaults.
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`

	// RequestID correlates logs across retries.
	RequestID string `json:"-"`
}

// GenerateResult is the response from one generation call.
type GenerateResult struct {
	Content string `json:"content"`

	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`

	Provider  string        `json:"provider"`
	ModelUsed string        `json:"model_used"`
	RequestID string        `json:"request_id"`
	Attempts  int           `json:"attempts"`
	TotalTime time.Duration `json:"total_time"`
}
