// Package metrics provides usage tracking for generation calls.
// Every call to the generation backend is recorded with its token
// counts and timing, and aggregated in memory for the stats endpoint.
package metrics

// Metric represents a single recorded generation call.
type Metric struct {
	// Provider info
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	// Token usage
	PromptTokens     int `json:"prompt_tokens,omitempty"`
	CompletionTokens int `json:"completion_tokens,omitempty"`
	TotalTokens      int `json:"total_tokens,omitempty"`

	// Timing
	Seconds float64 `json:"seconds,omitempty"`

	// Status
	Success bool `json:"success"`
}
