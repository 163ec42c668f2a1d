package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labdecoder/labdecoder/internal/api"
	"github.com/labdecoder/labdecoder/internal/extract"
	"github.com/labdecoder/labdecoder/internal/pdf"
	"github.com/labdecoder/labdecoder/internal/svcctx"
)

// maxUploadBytes caps report uploads at 16MB.
const maxUploadBytes = 16 << 20

// UploadEndpoint handles POST /api/upload with a multipart PDF.
type UploadEndpoint struct{}

var _ api.Endpoint = (*UploadEndpoint)(nil)

func (e *UploadEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/upload", e.handler
}

func (e *UploadEndpoint) RequiresInit() bool { return true }

// UploadResponse is the body for a successful upload.
type UploadResponse struct {
	Success   bool                `json:"success"`
	SessionID string              `json:"session_id"`
	Results   []extract.LabResult `json:"results"`
	Count     int                 `json:"count"`
}

func (e *UploadEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		api.WriteError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse form: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		api.WriteError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		api.WriteError(w, http.StatusBadRequest, "only PDF files are allowed")
		return
	}

	// Spool to a temp file; the reader works from disk.
	tmp, err := os.CreateTemp("", "labdecoder-upload-*.pdf")
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		api.WriteError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	tmp.Close()

	logger := svcctx.LoggerFrom(r.Context())
	logger.Info("processing upload", "file", filepath.Base(header.Filename))

	doc, err := pdf.Open(tmpPath)
	if err != nil {
		if errors.Is(err, extract.ErrDocumentUnreadable) {
			api.WriteError(w, http.StatusBadRequest, "could not read PDF file")
			return
		}
		api.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	results, err := svcctx.ExtractorFrom(r.Context()).Extract(r.Context(), doc)
	if err != nil {
		api.WriteError(w, http.StatusInternalServerError, fmt.Sprintf("extraction failed: %v", err))
		return
	}
	if len(results) == 0 {
		api.WriteError(w, http.StatusBadRequest, "no lab results found in PDF")
		return
	}

	sessionID := svcctx.SessionsFrom(r.Context()).Put(results)
	logger.Info("upload extracted", "results", len(results), "session", sessionID)

	api.WriteJSON(w, http.StatusOK, UploadResponse{
		Success:   true,
		SessionID: sessionID,
		Results:   results,
		Count:     len(results),
	})
}
