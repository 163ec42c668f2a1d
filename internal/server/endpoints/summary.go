package endpoints

import (
	"net/http"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/extract"
	"github.com/labdecoder/labdecoder/internal/svcctx"
)

// SummaryEndpoint handles GET /api/summary: an overall summary of the
// session's results plus status counts.
type SummaryEndpoint struct{}

var _ api.Endpoint = (*SummaryEndpoint)(nil)

func (e *SummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/summary", e.handler
}

func (e *SummaryEndpoint) RequiresInit() bool { return true }

// SummaryStats counts results per status.
type SummaryStats struct {
	Total   int `json:"total"`
	Normal  int `json:"normal"`
	High    int `json:"high"`
	Low     int `json:"low"`
	Unknown int `json:"unknown"`
}

// SummaryResponse is the generated summary with aggregate counts.
type SummaryResponse struct {
	Success bool         `json:"success"`
	Summary string       `json:"summary"`
	Stats   SummaryStats `json:"stats"`
}

func (e *SummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	results, _, ok := sessionResults(w, r)
	if !ok {
		return
	}

	summary := svcctx.RAGFrom(r.Context()).Summarize(r.Context(), results)

	stats := SummaryStats{Total: len(results)}
	for _, res := range results {
		switch res.Status {
		case extract.StatusNormal:
			stats.Normal++
		case extract.StatusHigh:
			stats.High++
		case extract.StatusLow:
			stats.Low++
		default:
			stats.Unknown++
		}
	}

	api.WriteJSON(w, http.StatusOK, SummaryResponse{
		Success: true,
		Summary: summary,
		Stats:   stats,
	})
}
