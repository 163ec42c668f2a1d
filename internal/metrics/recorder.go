package metrics

import "sync"

// ModelStats aggregates calls for one model.
type ModelStats struct {
	Calls        int     `json:"calls"`
	Failures     int     `json:"failures"`
	TotalTokens  int     `json:"total_tokens"`
	TotalSeconds float64 `json:"total_seconds"`
}

// Snapshot is a point-in-time aggregate of all recorded calls.
type Snapshot struct {
	Calls            int                   `json:"calls"`
	Failures         int                   `json:"failures"`
	PromptTokens     int                   `json:"prompt_tokens"`
	CompletionTokens int                   `json:"completion_tokens"`
	TotalTokens      int                   `json:"total_tokens"`
	TotalSeconds     float64               `json:"total_seconds"`
	ByModel          map[string]ModelStats `json:"by_model,omitempty"`
}

// Recorder aggregates generation call metrics in memory. Safe for
// concurrent use.
type Recorder struct {
	mu      sync.Mutex
	totals  Snapshot
	byModel map[string]ModelStats
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{byModel: make(map[string]ModelStats)}
}

// Record folds one call into the aggregates.
func (r *Recorder) Record(m Metric) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.totals.Calls++
	if !m.Success {
		r.totals.Failures++
	}
	r.totals.PromptTokens += m.PromptTokens
	r.totals.CompletionTokens += m.CompletionTokens
	r.totals.TotalTokens += m.TotalTokens
	r.totals.TotalSeconds += m.Seconds

	key := m.Model
	if key == "" {
		key = m.Provider
	}
	stats := r.byModel[key]
	stats.Calls++
	if !m.Success {
		stats.Failures++
	}
	stats.TotalTokens += m.TotalTokens
	stats.TotalSeconds += m.Seconds
	r.byModel[key] = stats
}

// Snapshot returns a copy of the current aggregates.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.totals
	if len(r.byModel) > 0 {
		snap.ByModel = make(map[string]ModelStats, len(r.byModel))
		for k, v := range r.byModel {
			snap.ByModel[k] = v
		}
	}
	return snap
}
