//go:build !llama

package embedding

// This file provides a no-CGO stub for the llama backend. It is
// compiled when the 'llama' build tag is NOT set, keeping default
// builds and CI CGO-free. The real backend lives in backend_llama.go
// (tagged 'llama').

import (
	"context"

	"assistd/internal/installer"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// LlamaBackendConfig configures the in-process GGUF backend.
type LlamaBackendConfig struct {
	ModelPath string
	CtxSize   int
	Threads   int
}

type llamaBackend struct{}

// NewLlamaBackend returns a stub that refuses to start without the
// 'llama' build tag. This avoids any mocked behavior in production
// binaries built without CGO support.
func NewLlamaBackend(cfg LlamaBackendConfig) Backend {
	return &llamaBackend{}
}

func (b *llamaBackend) Start(ctx context.Context) error {
	return installer.ErrDependencyUnavailable("llama", "llama support not built (missing 'llama' build tag)")
}

func (b *llamaBackend) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return nil, installer.ErrDependencyUnavailable("llama", "llama support not built (missing 'llama' build tag)")
}

func (b *llamaBackend) Describe() BackendInfo { return BackendInfo{} }

func (b *llamaBackend) Stop() error { return nil }
