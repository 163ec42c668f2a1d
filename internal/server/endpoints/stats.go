package endpoints

import (
	"net/http"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/metrics"
)

// StatsEndpoint handles GET /api/stats: aggregate generation usage.
type StatsEndpoint struct {
	// Stats returns the current usage snapshot. Nil means no recorder
	// was configured.
	Stats func() metrics.Snapshot
}

var _ api.Endpoint = (*StatsEndpoint)(nil)

func (e *StatsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/stats", e.handler
}

func (e *StatsEndpoint) RequiresInit() bool { return false }

// StatsResponse wraps the usage snapshot.
type StatsResponse struct {
	Success bool             `json:"success"`
	Usage   metrics.Snapshot `json:"usage"`
}

func (e *StatsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var snap metrics.Snapshot
	if e.Stats != nil {
		snap = e.Stats()
	}
	api.WriteJSON(w, http.StatusOK, StatsResponse{Success: true, Usage: snap})
}
