//go:build llama

package embedding

import (
	"context"
	"fmt"
	"strings"
	"sync"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// LlamaBackendConfig configures the in-process GGUF backend.
type LlamaBackendConfig struct {
	ModelPath string
	CtxSize   int
	Threads   int
}

type llamaBackend struct {
	cfg LlamaBackendConfig

	mu    sync.Mutex
	model *llama.LLama
	info  BackendInfo

	// llama.cpp contexts are not safe for concurrent use.
	embedMu sync.Mutex
}

// NewLlamaBackend returns a Backend that loads a GGUF model in
// process through llama.cpp.
func NewLlamaBackend(cfg LlamaBackendConfig) Backend {
	if cfg.CtxSize <= 0 {
		cfg.CtxSize = 2048
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 4
	}
	return &llamaBackend{cfg: cfg}
}

func (b *llamaBackend) Start(ctx context.Context) error {
	if strings.TrimSpace(b.cfg.ModelPath) == "" {
		return fmt.Errorf("gguf model path is empty")
	}
	m, err := llama.New(
		b.cfg.ModelPath,
		llama.SetContext(b.cfg.CtxSize),
		llama.EnableEmbeddings,
	)
	if err != nil {
		return err
	}
	// llama.cpp exposes no metadata call for the dimension; probe it.
	probe, err := m.Embeddings("dimension probe", llama.SetThreads(b.cfg.Threads))
	if err != nil {
		m.Free()
		return fmt.Errorf("embedding probe: %w", err)
	}

	b.mu.Lock()
	b.model = m
	b.info = BackendInfo{Device: "cpu", Dimension: len(probe), MaxSequenceLength: b.cfg.CtxSize}
	b.mu.Unlock()
	return nil
}

func (b *llamaBackend) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	b.mu.Lock()
	m := b.model
	b.mu.Unlock()
	if m == nil {
		return nil, fmt.Errorf("llama model not loaded")
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b.embedMu.Lock()
		v, err := m.Embeddings(text, llama.SetThreads(b.cfg.Threads))
		b.embedMu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = Normalize(v)
	}
	return out, nil
}

func (b *llamaBackend) Describe() BackendInfo {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.info
}

func (b *llamaBackend) Stop() error {
	b.mu.Lock()
	m := b.model
	b.model = nil
	b.mu.Unlock()
	if m != nil {
		m.Free()
	}
	return nil
}
