package httpapi

import (
	"net/http"
	"time"

	"assistd/pkg/types"
)

// handleTranscribe implements POST /api/stt/transcribe.
func (s *server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var req types.TranscribeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	requestDebugf(r, "transcribe samples=%d rate=%d lang=%q", len(req.AudioData), req.SampleRate, req.Language)

	ctx, cancel := requestContext(r)
	defer cancel()

	start := time.Now()
	res, err := s.stt.Transcribe(ctx, req.AudioData, req.SampleRate, req.Language)
	observeInference(types.ServiceSTT, start, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
