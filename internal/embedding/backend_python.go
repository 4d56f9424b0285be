package embedding

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"assistd/internal/pyproc"
)

//go:embed worker_embedding.py
var workerScript []byte

// PythonBackendConfig configures the sentence-transformers worker.
type PythonBackendConfig struct {
	Python   string
	CacheDir string // model weights and worker scripts live here
	Model    string
	Device   string
	// StartTimeout bounds worker startup including model download.
	StartTimeout time.Duration
}

type pythonBackend struct {
	cfg PythonBackendConfig

	mu     sync.Mutex
	worker *pyproc.Worker
	info   BackendInfo
}

// NewPythonBackend returns a Backend that spawns a
// sentence-transformers worker on Start.
func NewPythonBackend(cfg PythonBackendConfig) Backend {
	return &pythonBackend{cfg: cfg}
}

func (b *pythonBackend) Start(ctx context.Context) error {
	script, err := pyproc.MaterializeScript(filepath.Join(b.cfg.CacheDir, "workers"), "worker_embedding.py", workerScript)
	if err != nil {
		return err
	}
	w := pyproc.NewWorker(pyproc.WorkerConfig{
		Name:   "embeddings",
		Python: b.cfg.Python,
		Script: script,
		Args: []string{
			"--model", b.cfg.Model,
			"--device", b.cfg.Device,
			"--cache-dir", b.cfg.CacheDir,
		},
		Env: []string{
			"TRANSFORMERS_CACHE=" + b.cfg.CacheDir,
			"SENTENCE_TRANSFORMERS_HOME=" + b.cfg.CacheDir,
		},
		StartTimeout: b.cfg.StartTimeout,
	})
	if err := w.Start(ctx); err != nil {
		return err
	}

	// The worker resolves "auto" device and model shape at load time.
	var info struct {
		Device            string `json:"device"`
		Dimension         int    `json:"embedding_dimension"`
		MaxSequenceLength int    `json:"max_sequence_length"`
	}
	if err := w.GetJSON(ctx, "/info", &info); err != nil {
		_ = w.Stop()
		return fmt.Errorf("embeddings worker info: %w", err)
	}

	b.mu.Lock()
	b.worker = w
	b.info = BackendInfo{
		Device:            info.Device,
		Dimension:         info.Dimension,
		MaxSequenceLength: info.MaxSequenceLength,
	}
	b.mu.Unlock()
	return nil
}

func (b *pythonBackend) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	w := b.getWorker()
	if w == nil {
		return nil, fmt.Errorf("embeddings worker not running")
	}
	req := struct {
		Texts []string `json:"texts"`
	}{Texts: texts}
	var out struct {
		EmbeddingsB64 []string `json:"embeddings_b64"`
	}
	if err := w.PostJSON(ctx, "/embed", req, &out); err != nil {
		return nil, err
	}
	if len(out.EmbeddingsB64) != len(texts) {
		return nil, fmt.Errorf("embeddings worker returned %d vectors for %d texts", len(out.EmbeddingsB64), len(texts))
	}
	vectors := make([][]float32, len(out.EmbeddingsB64))
	for i, enc := range out.EmbeddingsB64 {
		v, err := pyproc.DecodeSamples(enc)
		if err != nil {
			return nil, fmt.Errorf("embeddings worker vector %d: %w", i, err)
		}
		vectors[i] = v
	}
	return vectors, nil
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
