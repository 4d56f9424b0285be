package httpapi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"assistd/internal/orchestrator"
	"assistd/pkg/types"
)

// handleHealth implements GET /api/health. The daemon answers as soon as
// it is listening; readiness of the individual services is reported, not
// required.
func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := types.HealthResponse{
		Status:   "healthy",
		Services: map[string]bool{},
		Version:  s.version,
	}
	if s.models != nil {
		resp.Services = s.models.Health()
		if !s.models.Healthy() {
			resp.Status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleModelStatus implements GET /api/models/status.
func (s *server) handleModelStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.models.Status())
}

// handleDownloadStatus implements GET /api/models/download-status.
func (s *server) handleDownloadStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, s.models.DownloadStatus(ctx))
}

// handleDownload implements POST /api/models/download/{service}. Install
// failures are reported in the body, not the status code, so the client
// can surface the message as-is and retry.
func (s *server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "service")

	ctx, cancel := requestContext(r)
	defer cancel()

	err := s.models.Download(ctx, name)
	if orchestrator.IsUnknownService(err) {
		writeJSONError(w, http.StatusNotFound, err.Error())
		return
	}
	observeInstall(name, err)
	if err != nil {
		logRequestError(r, http.StatusOK, err)
		writeJSON(w, http.StatusOK, types.DownloadResponse{
			Success: false,
			Message: fmt.Sprintf("Model %s installation failed: %v", name, err),
		})
		return
	}
	writeJSON(w, http.StatusOK, types.DownloadResponse{
		Success: true,
		Message: fmt.Sprintf("Model %s installed successfully", name),
	})
}
