package endpoints

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/svcctx"
)

// AskEndpoint handles POST /api/ask: follow-up questions about the
// session's results.
type AskEndpoint struct{}

var _ api.Endpoint = (*AskEndpoint)(nil)

func (e *AskEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/ask", e.handler
}

func (e *AskEndpoint) RequiresInit() bool { return true }

// AskRequest is the question payload.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse echoes the question with its generated answer.
type AskResponse struct {
	Success  bool   `json:"success"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (e *AskEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		api.WriteError(w, http.StatusBadRequest, "no question provided")
		return
	}

	results, _, ok := sessionResults(w, r)
	if !ok {
		return
	}

	answer := svcctx.RAGFrom(r.Context()).Answer(r.Context(), req.Question, results)
	api.WriteJSON(w, http.StatusOK, AskResponse{
		Success:  true,
		Question: req.Question,
		Answer:   answer,
	})
}
