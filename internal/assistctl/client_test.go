package assistctl

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"assistd/pkg/types"
)

// fakeDaemon serves the subset of the assistd API the CLI talks to.
type fakeDaemon struct {
	mu   sync.Mutex
	hits map[string]int

	health  types.HealthResponse
	status  map[string]types.ServiceInfo
	dl      map[string]types.DownloadState
	ready   map[string]bool
	ttsTest types.TTSTestResult
	embTest types.EmbeddingTestResult

	// when set, failPath responds with failStatus and failBody
	failPath   string
	failStatus int
	failBody   string
}

func newFakeDaemon() *fakeDaemon {
	return &fakeDaemon{
		hits: make(map[string]int),
		health: types.HealthResponse{
			Status:   "healthy",
			Services: map[string]bool{"stt": true, "tts": true, "embeddings": true},
			Version:  "1.0.0",
		},
		status: map[string]types.ServiceInfo{
			"stt":        {Status: "ready", ModelSize: "small"},
			"tts":        {Status: "ready", Voice: "af_bella"},
			"embeddings": {Status: "ready"},
		},
		dl: map[string]types.DownloadState{
			"stt":        {Installed: true},
			"tts":        {Installed: true},
			"embeddings": {Installed: true},
		},
		ready:   map[string]bool{"stt": true, "tts": true, "embeddings": true},
		ttsTest: types.TTSTestResult{Success: true, AudioLengthBytes: 42, TestText: "test"},
		embTest: types.EmbeddingTestResult{Success: true, EmbeddingDimension: 8, TestText: "test"},
	}
}

func (d *fakeDaemon) server(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(d.handle))
	t.Cleanup(ts.Close)
	return ts
}

func (d *fakeDaemon) handle(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	d.hits[r.URL.Path]++
	d.mu.Unlock()

	if d.failPath != "" && r.URL.Path == d.failPath {
		w.WriteHeader(d.failStatus)
		io.WriteString(w, d.failBody)
		return
	}

	path := r.URL.Path
	switch {
	case path == "/healthz":
		io.WriteString(w, "ok")
	case path == "/api/health":
		json.NewEncoder(w).Encode(d.health)
	case path == "/api/models/status":
		json.NewEncoder(w).Encode(d.status)
	case path == "/api/models/download-status":
		json.NewEncoder(w).Encode(d.dl)
	case strings.HasPrefix(path, "/api/models/download/"):
		name := strings.TrimPrefix(path, "/api/models/download/")
		json.NewEncoder(w).Encode(types.DownloadResponse{Success: true, Message: "Model " + name + " installed successfully"})
	case path == "/api/tts/voices":
		json.NewEncoder(w).Encode(map[string]types.VoiceInfo{"af_bella": {LangCode: "a", Description: "American English - Bella"}})
	case path == "/api/tts/test":
		json.NewEncoder(w).Encode(d.ttsTest)
	case path == "/api/embeddings/test":
		json.NewEncoder(w).Encode(d.embTest)
	case strings.HasSuffix(path, "/ready"):
		svc := strings.TrimSuffix(strings.TrimPrefix(path, "/api/"), "/ready")
		json.NewEncoder(w).Encode(types.ReadyResponse{Ready: d.ready[svc]})
	case strings.HasSuffix(path, "/info"):
		svc := strings.TrimSuffix(strings.TrimPrefix(path, "/api/"), "/info")
		json.NewEncoder(w).Encode(d.status[svc])
	default:
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(types.ErrorResponse{Error: "not found", Code: 404})
	}
}

func (d *fakeDaemon) hitCount(path string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hits[path]
}

func newTestClient(t *testing.T, d *fakeDaemon) *Client {
	t.Helper()
	return NewClient(d.server(t).URL, 5*time.Second)
}

func TestClientHealth(t *testing.T) {
	c := newTestClient(t, newFakeDaemon())
	health, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "healthy" || !health.Services["stt"] || health.Version != "1.0.0" {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestClientStatusAndDownloadStatus(t *testing.T) {
	c := newTestClient(t, newFakeDaemon())
	status, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status["stt"].ModelSize != "small" || status["tts"].Voice != "af_bella" {
		t.Fatalf("unexpected status: %+v", status)
	}
	dl, err := c.DownloadStatus(context.Background())
	if err != nil {
		t.Fatalf("DownloadStatus: %v", err)
	}
	if !dl["embeddings"].Installed {
		t.Fatalf("unexpected download status: %+v", dl)
	}
}

func TestClientDownload(t *testing.T) {
	c := newTestClient(t, newFakeDaemon())
	resp, err := c.Download(context.Background(), "stt")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if !resp.Success || resp.Message != "Model stt installed successfully" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestClientReadyAndInfo(t *testing.T) {
	d := newFakeDaemon()
	d.ready["tts"] = false
	c := newTestClient(t, d)

	ready, err := c.Ready(context.Background(), "tts")
	if err != nil {
		t.Fatalf("Ready: %v", err)
	}
	if ready.Ready {
		t.Fatalf("expected tts not ready")
	}
	inf, err := c.Info(context.Background(), "stt")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if inf.Status != "ready" || inf.ModelSize != "small" {
		t.Fatalf("unexpected info: %+v", inf)
	}
}

func TestClientVoicesAndSelfTests(t *testing.T) {
	c := newTestClient(t, newFakeDaemon())

	voices, err := c.Voices(context.Background())
	if err != nil {
		t.Fatalf("Voices: %v", err)
	}
	if voices["af_bella"].LangCode != "a" {
		t.Fatalf("unexpected voices: %+v", voices)
	}
	tt, err := c.TTSTest(context.Background())
	if err != nil || !tt.Success || tt.AudioLengthBytes != 42 {
		t.Fatalf("TTSTest: %+v err=%v", tt, err)
	}
	et, err := c.EmbeddingsTest(context.Background())
	if err != nil || !et.Success || et.EmbeddingDimension != 8 {
		t.Fatalf("EmbeddingsTest: %+v err=%v", et, err)
	}
}

func TestClientDecodesAPIError(t *testing.T) {
	d := newFakeDaemon()
	d.failPath = "/api/health"
	d.failStatus = http.StatusServiceUnavailable
	d.failBody = `{"error":"stt service not ready","code":503}`
	c := newTestClient(t, d)

	_, err := c.Health(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "stt service not ready") || !strings.Contains(err.Error(), "503") {
		t.Fatalf("error does not carry API detail: %v", err)
	}
}

func TestClientUnexpectedStatus(t *testing.T) {
	d := newFakeDaemon()
	d.failPath = "/api/health"
	d.failStatus = http.StatusInternalServerError
	d.failBody = "not json"
	c := newTestClient(t, d)

	_, err := c.Health(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected status 500") {
		t.Fatalf("err = %v", err)
	}
}

func TestClientHealthz(t *testing.T) {
	c := newTestClient(t, newFakeDaemon())
	if err := c.Healthz(context.Background()); err != nil {
		t.Fatalf("Healthz: %v", err)
	}
}
