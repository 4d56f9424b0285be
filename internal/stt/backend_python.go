package stt

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"assistd/internal/pyproc"
	"assistd/pkg/types"
)

//go:embed worker_stt.py
var workerScript []byte

// PythonBackendConfig configures the faster-whisper worker.
type PythonBackendConfig struct {
	Python      string
	CacheDir    string // model weights and worker scripts live here
	ModelSize   string
	Device      string
	ComputeType string
	// StartTimeout bounds worker startup including model download.
	StartTimeout time.Duration
}

type pythonBackend struct {
	cfg PythonBackendConfig

	mu     sync.Mutex
	worker *pyproc.Worker
	info   BackendInfo
}

// NewPythonBackend returns a Backend that spawns a faster-whisper
// worker on Start.
func NewPythonBackend(cfg PythonBackendConfig) Backend {
	return &pythonBackend{cfg: cfg}
}

func (b *pythonBackend) Start(ctx context.Context) error {
	script, err := pyproc.MaterializeScript(filepath.Join(b.cfg.CacheDir, "workers"), "worker_stt.py", workerScript)
	if err != nil {
		return err
	}
	w := pyproc.NewWorker(pyproc.WorkerConfig{
		Name:   "stt",
		Python: b.cfg.Python,
		Script: script,
		Args: []string{
			"--model-size", b.cfg.ModelSize,
			"--device", b.cfg.Device,
			"--compute-type", b.cfg.ComputeType,
			"--cache-dir", b.cfg.CacheDir,
		},
		Env:          []string{"HUGGINGFACE_HUB_CACHE=" + b.cfg.CacheDir},
		StartTimeout: b.cfg.StartTimeout,
	})
	if err := w.Start(ctx); err != nil {
		return err
	}

	// The worker resolves "auto" device/compute at load time.
	var info struct {
		Device      string `json:"device"`
		ComputeType string `json:"compute_type"`
	}
	if err := w.GetJSON(ctx, "/info", &info); err != nil {
		_ = w.Stop()
		return fmt.Errorf("stt worker info: %w", err)
	}

	b.mu.Lock()
	b.worker = w
	b.info = BackendInfo{Device: info.Device, ComputeType: info.ComputeType}
	b.mu.Unlock()
	return nil
}

func (b *pythonBackend) Transcribe(ctx context.Context, samples []float32, sampleRate int, language string) (types.Transcription, error) {
	w := b.getWorker()
	if w == nil {
		return types.Transcription{}, fmt.Errorf("stt worker not running")
	}
	req := struct {
		AudioB64   string `json:"audio_b64"`
		SampleRate int    `json:"sample_rate"`
		Language   string `json:"language,omitempty"`
	}{
		AudioB64:   pyproc.EncodeSamples(samples),
		SampleRate: sampleRate,
		Language:   language,
	}
	var out types.Transcription
	if err := w.PostJSON(ctx, "/transcribe", req, &out); err != nil {
		return types.Transcription{}, err
	}
	return out, nil
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
