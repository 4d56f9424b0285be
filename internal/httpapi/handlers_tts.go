package httpapi

import (
	"net/http"
	"time"

	"assistd/pkg/types"
)

// handleSynthesize implements POST /api/tts/synthesize. On success the
// response body is the finished WAV file, not JSON.
func (s *server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req types.SynthesizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	requestDebugf(r, "synthesize chars=%d voice=%q", len(req.Text), req.Voice)

	ctx, cancel := requestContext(r)
	defer cancel()

	start := time.Now()
	wav, err := s.tts.Synthesize(ctx, req.Text, req.Voice)
	observeInference(types.ServiceTTS, start, err)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Disposition", `attachment; filename="speech.wav"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(wav)
}

// handleVoices implements GET /api/tts/voices.
func (s *server) handleVoices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tts.Voices())
}

// handleTTSTest implements POST /api/tts/test.
func (s *server) handleTTSTest(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	writeJSON(w, http.StatusOK, s.tts.Test(ctx))
}
