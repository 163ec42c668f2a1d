package endpoints

import (
	"net/http"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/svcctx"
)

// ExplainEndpoint handles POST /api/explain: plain-language
// explanations for every result in the caller's session.
type ExplainEndpoint struct{}

var _ api.Endpoint = (*ExplainEndpoint)(nil)

func (e *ExplainEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/explain", e.handler
}

func (e *ExplainEndpoint) RequiresInit() bool { return true }

// ExplainResponse maps test name to generated explanation.
type ExplainResponse struct {
	Success      bool              `json:"success"`
	Explanations map[string]string `json:"explanations"`
}

func (e *ExplainEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	results, _, ok := sessionResults(w, r)
	if !ok {
		return
	}

	explanations := svcctx.RAGFrom(r.Context()).ExplainAll(r.Context(), results)
	api.WriteJSON(w, http.StatusOK, ExplainResponse{
		Success:      true,
		Explanations: explanations,
	})
}
