package tts

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"assistd/internal/pyproc"
)

//go:embed worker_tts.py
var workerScript []byte

// PythonBackendConfig configures the Kokoro worker.
type PythonBackendConfig struct {
	Python       string
	CacheDir     string // model weights and worker scripts live here
	Voice        string
	LangCode     string // Kokoro pipeline language, derived from the voice
	Device       string
	Quantization string
	// StartTimeout bounds worker startup including model download.
	StartTimeout time.Duration
}

type pythonBackend struct {
	cfg PythonBackendConfig

	mu     sync.Mutex
	worker *pyproc.Worker
	info   BackendInfo
}

// NewPythonBackend returns a Backend that spawns a Kokoro worker on
// Start.
func NewPythonBackend(cfg PythonBackendConfig) Backend {
	return &pythonBackend{cfg: cfg}
}

func (b *pythonBackend) Start(ctx context.Context) error {
	script, err := pyproc.MaterializeScript(filepath.Join(b.cfg.CacheDir, "workers"), "worker_tts.py", workerScript)
	if err != nil {
		return err
	}
	w := pyproc.NewWorker(pyproc.WorkerConfig{
		Name:   "tts",
		Python: b.cfg.Python,
		Script: script,
		Args: []string{
			"--voice", b.cfg.Voice,
			"--lang-code", b.cfg.LangCode,
			"--device", b.cfg.Device,
			"--quantization", b.cfg.Quantization,
			"--cache-dir", b.cfg.CacheDir,
		},
		Env:          []string{"HUGGINGFACE_HUB_CACHE=" + b.cfg.CacheDir},
		StartTimeout: b.cfg.StartTimeout,
	})
	if err := w.Start(ctx); err != nil {
		return err
	}

	// The worker resolves "auto" device at load time.
	var info struct {
		Device       string `json:"device"`
		Quantization string `json:"quantization"`
	}
	if err := w.GetJSON(ctx, "/info", &info); err != nil {
		_ = w.Stop()
		return fmt.Errorf("tts worker info: %w", err)
	}

	b.mu.Lock()
	b.worker = w
	b.info = BackendInfo{Device: info.Device, Quantization: info.Quantization}
	b.mu.Unlock()
	return nil
}

func (b *pythonBackend) Synthesize(ctx context.Context, text, voice string) ([]float32, int, error) {
	w := b.getWorker()
	if w == nil {
		return nil, 0, fmt.Errorf("tts worker not running")
	}
	req := struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}{Text: text, Voice: voice}
	var out struct {
		AudioB64   string `json:"audio_b64"`
		SampleRate int    `json:"sample_rate"`
	}
	if err := w.PostJSON(ctx, "/synthesize", req, &out); err != nil {
		return nil, 0, err
	}
	samples, err := pyproc.DecodeSamples(out.AudioB64)
	if err != nil {
		return nil, 0, fmt.Errorf("tts worker audio: %w", err)
	}
	return samples, out.SampleRate, nil
}

func (b *pythonBackend) Describe() BackendInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.info
}

func (b *pythonBackend) Stop() error {
	w := b.getWorker()
	if w == nil {
		return nil
	}
	b.mu.Lock()
	b.worker = nil
	b.mu.Unlock()
	return w.Stop()
}

func (b *pythonBackend) getWorker() *pyproc.Worker {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.worker
}
