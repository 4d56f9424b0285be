package e2e

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"assistd/internal/embedding"
	"assistd/internal/httpapi"
	"assistd/internal/installer"
	"assistd/internal/orchestrator"
	"assistd/internal/registry"
	"assistd/internal/stt"
	"assistd/internal/tts"
	"assistd/pkg/types"
)

// okRunner satisfies every install and import-probe command, so the
// installer believes all Python dependencies are present.
type okRunner struct{}

func (okRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return nil, nil, nil
}

// Deterministic in-process backends replacing the Python workers.

type fakeSTTBackend struct{}

func (fakeSTTBackend) Start(ctx context.Context) error { return nil }

func (fakeSTTBackend) Transcribe(ctx context.Context, samples []float32, sampleRate int, language string) (types.Transcription, error) {
	dur := float64(len(samples)) / float64(sampleRate)
	lang := language
	if lang == "" {
		lang = "en"
	}
	return types.Transcription{
		Text:                "hello world",
		Language:            lang,
		LanguageProbability: 0.99,
		Duration:            dur,
		Segments: []types.Segment{
			{Start: 0, End: dur, Text: "hello world", Words: []types.Word{}},
		},
	}, nil
}

func (fakeSTTBackend) Describe() stt.BackendInfo {
	return stt.BackendInfo{Device: "cpu", ComputeType: "int8"}
}

func (fakeSTTBackend) Stop() error { return nil }

type fakeTTSBackend struct{}

func (fakeTTSBackend) Start(ctx context.Context) error { return nil }

func (fakeTTSBackend) Synthesize(ctx context.Context, text, voice string) ([]float32, int, error) {
	samples := make([]float32, 2400)
	for i := range samples {
		samples[i] = float32(i%100)/100 - 0.5
	}
	return samples, 24000, nil
}

func (fakeTTSBackend) Describe() tts.BackendInfo {
	return tts.BackendInfo{Device: "cpu", Quantization: "fp16"}
}

func (fakeTTSBackend) Stop() error { return nil }

type fakeEmbeddingBackend struct{ dim int }

func (f *fakeEmbeddingBackend) Start(ctx context.Context) error { return nil }

// Embed derives a deterministic vector from each text so identical
// texts map to identical embeddings.
func (f *fakeEmbeddingBackend) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, f.dim)
		for j := range vec {
			vec[j] = float32((len(text)+j)%7) + 1
		}
		out[i] = vec
	}
	return out, nil
}

func (f *fakeEmbeddingBackend) Describe() embedding.BackendInfo {
	return embedding.BackendInfo{Device: "cpu", Dimension: f.dim, MaxSequenceLength: 512}
}

func (f *fakeEmbeddingBackend) Stop() error { return nil }

// stack bundles a fully wired server with handles to its parts.
type stack struct {
	srv  *httptest.Server
	orch *orchestrator.Orchestrator
	stt  *stt.Service
	tts  *tts.Service
	emb  *embedding.Service
}

func buildStack(t *testing.T) *stack {
	t.Helper()
	inst := installer.New(installer.Config{Python: "python3", Runner: okRunner{}})
	orch := orchestrator.New(inst)

	cacheDir := t.TempDir()
	sttSvc := stt.New(stt.Config{
		ModelSize: "small", Device: "cpu", ComputeType: "int8",
		CacheDir: cacheDir, MaxWorkers: 2,
		Installer: inst, Backend: fakeSTTBackend{},
	})
	ttsSvc := tts.New(tts.Config{
		Voice: "af_bella", Device: "cpu", Quantization: "fp16",
		CacheDir: cacheDir, Voices: registry.BuiltinVoices(), MaxWorkers: 2,
		Installer: inst, Backend: fakeTTSBackend{},
	})
	embSvc := embedding.New(embedding.Config{
		Model: "test-model", Device: "cpu",
		CacheDir: cacheDir, MaxWorkers: 2,
		Installer: inst, Backend: &fakeEmbeddingBackend{dim: 8},
	})
	orch.Register(sttSvc)
	orch.Register(ttsSvc)
	orch.Register(embSvc)

	mux := httpapi.NewMux(httpapi.Options{
		Version: "test", STT: sttSvc, TTS: ttsSvc, Embeddings: embSvc, Models: orch,
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { orch.Shutdown(context.Background()) })
	return &stack{srv: srv, orch: orch, stt: sttSvc, tts: ttsSvc, emb: embSvc}
}

// newStack builds the stack and waits for every service to come up.
func newStack(t *testing.T) *stack {
	t.Helper()
	st := buildStack(t)
	st.orch.Startup(context.Background())
	return st
}

func httpGet(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}

func httpPostJSON(t *testing.T, url string, payload []byte) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("new req: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do req: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return resp, body
}
