package endpoints

import (
	"net/http"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/svcctx"
)

// ClearEndpoint handles POST /api/clear: drop the caller's session.
type ClearEndpoint struct{}

var _ api.Endpoint = (*ClearEndpoint)(nil)

func (e *ClearEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/clear", e.handler
}

func (e *ClearEndpoint) RequiresInit() bool { return true }

// ClearResponse acknowledges the clear.
type ClearResponse struct {
	Success bool `json:"success"`
}

func (e *ClearEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	if id := r.Header.Get(sessionHeader); id != "" {
		svcctx.SessionsFrom(r.Context()).Delete(id)
	}
	api.WriteJSON(w, http.StatusOK, ClearResponse{Success: true})
}
