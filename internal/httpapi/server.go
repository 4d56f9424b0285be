// Package httpapi exposes the capability services over HTTP to the
// desktop client. Application routes live under /api; operational
// endpoints (healthz, readyz, metrics, swagger) sit at the root.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"assistd/pkg/types"
)

// STT is the speech-to-text surface the API layer requires.
type STT interface {
	Ready() bool
	Info() types.ServiceInfo
	Transcribe(ctx context.Context, samples []float32, sampleRate int, language string) (types.Transcription, error)
}

// TTS is the text-to-speech surface the API layer requires.
type TTS interface {
	Ready() bool
	Info() types.ServiceInfo
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	Voices() map[string]types.VoiceInfo
	Test(ctx context.Context) types.TTSTestResult
}

// Embeddings is the embeddings surface the API layer requires.
type Embeddings interface {
	Ready() bool
	Info() types.ServiceInfo
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Similarity(e1, e2 []float32) (float64, error)
	Search(query []float32, candidates [][]float32, topK *int) ([]types.SearchResult, error)
	Test(ctx context.Context) types.EmbeddingTestResult
}

// Models aggregates service state for the model management endpoints.
type Models interface {
	Health() map[string]bool
	Healthy() bool
	Status() map[string]types.ServiceInfo
	DownloadStatus(ctx context.Context) map[string]types.DownloadState
	Download(ctx context.Context, name string) error
}

// Options carries the services to expose. A nil capability leaves its
// routes unmounted, so a disabled service 404s instead of 503ing.
type Options struct {
	Version    string
	STT        STT
	TTS        TTS
	Embeddings Embeddings
	Models     Models
}

type server struct {
	version string
	stt     STT
	tts     TTS
	emb     Embeddings
	models  Models
}

// NewMux builds the HTTP handler for the daemon.
func NewMux(opts Options) http.Handler {
	s := &server{
		version: opts.Version,
		stt:     opts.STT,
		tts:     opts.TTS,
		emb:     opts.Embeddings,
		models:  opts.Models,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)
	if corsEnabled && len(corsAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsAllowedOrigins,
			AllowedMethods:   corsAllowedMethods,
			AllowedHeaders:   corsAllowedHeaders,
			AllowCredentials: true,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		if s.models != nil {
			r.Route("/models", func(r chi.Router) {
				r.Get("/status", s.handleModelStatus)
				r.Get("/download-status", s.handleDownloadStatus)
				r.Post("/download/{service}", s.handleDownload)
			})
		}

		if s.stt != nil {
			r.Route("/stt", func(r chi.Router) {
				r.Post("/transcribe", s.handleTranscribe)
				r.Get("/ready", readyHandler(s.stt))
				r.Get("/info", infoHandler(s.stt))
			})
		}

		if s.tts != nil {
			r.Route("/tts", func(r chi.Router) {
				r.Post("/synthesize", s.handleSynthesize)
				r.Get("/voices", s.handleVoices)
				r.Post("/test", s.handleTTSTest)
				r.Get("/ready", readyHandler(s.tts))
				r.Get("/info", infoHandler(s.tts))
			})
		}

		if s.emb != nil {
			r.Route("/embeddings", func(r chi.Router) {
				r.Post("/generate", s.handleEmbed)
				r.Post("/generate-batch", s.handleEmbedBatch)
				r.Post("/similarity", s.handleSimilarity)
				r.Post("/search", s.handleSearch)
				r.Post("/test", s.handleEmbeddingsTest)
				r.Get("/ready", readyHandler(s.emb))
				r.Get("/info", infoHandler(s.emb))
			})
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if s.models != nil && s.models.Healthy() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)

	return r
}

// readier and informer are satisfied by every capability service.
type readier interface{ Ready() bool }
type informer interface{ Info() types.ServiceInfo }

func readyHandler(svc readier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.ReadyResponse{Ready: svc.Ready()})
	}
}

func infoHandler(svc informer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Info())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON request body into dst. It rejects non-JSON
// content types and bodies over the configured size limit, writing the
// error response itself; callers stop on false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
