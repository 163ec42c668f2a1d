package endpoints

import (
	"net/http"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/extract"
	"github.com/labdecoder/labdecoder/internal/svcctx"
)

// sessionHeader carries the session ID issued at upload time.
const sessionHeader = "X-Session-ID"

// sessionResults resolves the caller's session to its extracted
// results. Writes the error response and returns false when the header
// is missing or the session is unknown/expired.
func sessionResults(w http.ResponseWriter, r *http.Request) ([]extract.LabResult, string, bool) {
	id := r.Header.Get(sessionHeader)
	if id == "" {
		api.WriteError(w, http.StatusBadRequest, "missing "+sessionHeader+" header")
		return nil, "", false
	}

	results, ok := svcctx.SessionsFrom(r.Context()).Get(id)
	if !ok {
		api.WriteError(w, http.StatusBadRequest, "no results found, please upload a PDF first")
		return nil, "", false
	}
	return results, id, true
}
