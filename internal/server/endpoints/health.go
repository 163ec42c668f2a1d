package endpoints

import (
	"context"
	"net/http"

	"github.com/labdecoder/labdecoder/internal/api"
)

// HealthEndpoint handles GET /health: basic liveness.
type HealthEndpoint struct{}

var _ api.Endpoint = (*HealthEndpoint)(nil)

func (e *HealthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/health", e.handler
}

func (e *HealthEndpoint) RequiresInit() bool { return false }

// HealthResponse reports server and knowledge-store status.
type HealthResponse struct {
	Status    string `json:"status"`
	Knowledge string `json:"knowledge,omitempty"`
}

func (e *HealthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ReadyEndpoint handles GET /ready: readiness including the knowledge
// store. The store is allowed to be degraded (the RAG layer substitutes
// sentinel context), so a missing index reports degraded, not down.
type ReadyEndpoint struct {
	// PingKnowledge probes the knowledge store. Nil means no store was
	// configured.
	PingKnowledge func(ctx context.Context) error
}

var _ api.Endpoint = (*ReadyEndpoint)(nil)

func (e *ReadyEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/ready", e.handler
}

func (e *ReadyEndpoint) RequiresInit() bool { return false }

func (e *ReadyEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Knowledge: "ok"}
	if e.PingKnowledge == nil {
		resp.Status = "degraded"
		resp.Knowledge = "not_configured"
	} else if err := e.PingKnowledge(r.Context()); err != nil {
		resp.Status = "degraded"
		resp.Knowledge = "unavailable"
	}
	api.WriteJSON(w, http.StatusOK, resp)
}
