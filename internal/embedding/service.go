package embedding

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assistd/internal/installer"
	"assistd/internal/service"
	"assistd/pkg/types"
)

const (
	// Pip distribution and import name of the runtime dependency.
	pipPackage = "sentence-transformers"
	importName = "sentence_transformers"

	// EnginePython embeds through the sentence-transformers worker.
	EnginePython = "python"
	// EngineLlama embeds a GGUF model in process through llama.cpp.
	EngineLlama = "llama"

	defaultTopK = 5

	testText = "This is a test sentence for embedding generation."
)

// LlamaSupported reports whether this binary carries the in-process
// llama backend.
func LlamaSupported() bool { return llamaBuilt }

// Config configures the embeddings service.
type Config struct {
	Model    string
	Device   string
	CacheDir string
	Python   string

	// Engine selects the backend; empty means EnginePython.
	Engine string
	// GGUFPath locates the model file for EngineLlama.
	GGUFPath string

	// MaxWorkers bounds concurrent embedding generations.
	MaxWorkers int
	// MaxWait bounds the time a request may wait for a worker slot.
	MaxWait time.Duration
	// InitTimeout bounds backend startup including model download.
	InitTimeout time.Duration

	// Installer acquires the runtime dependency; nil skips installation.
	Installer *installer.Installer
	// Backend overrides the engine selection (tests).
	Backend Backend
	// Publisher receives lifecycle events; nil drops them.
	Publisher service.EventPublisher
}

// Service is the text-embeddings capability.
type Service struct {
	lc   *service.Lifecycle
	pool *service.Pool

	inst    *installer.Installer
	backend Backend

	model    string
	device   string
	cacheDir string
	engine   string
}

// New constructs the service; it becomes usable after Initialize.
func New(cfg Config) *Service {
	engine := cfg.Engine
	if engine == "" {
		engine = EnginePython
	}
	backend := cfg.Backend
	if backend == nil {
		switch engine {
		case EngineLlama:
			backend = NewLlamaBackend(LlamaBackendConfig{ModelPath: cfg.GGUFPath})
		default:
			backend = NewPythonBackend(PythonBackendConfig{
				Python:       cfg.Python,
				CacheDir:     cfg.CacheDir,
				Model:        cfg.Model,
				Device:       cfg.Device,
				StartTimeout: cfg.InitTimeout,
			})
		}
	}
	lc := service.NewLifecycle(types.ServiceEmbeddings)
	lc.SetPublisher(cfg.Publisher)
	return &Service{
		lc:       lc,
		pool:     service.NewPool(types.ServiceEmbeddings, cfg.MaxWorkers, cfg.MaxWait),
		inst:     cfg.Installer,
		backend:  backend,
		model:    cfg.Model,
		device:   cfg.Device,
		cacheDir: cfg.CacheDir,
		engine:   engine,
	}
}

func (s *Service) Name() string    { return types.ServiceEmbeddings }
func (s *Service) Package() string { return pipPackage }

// Installed reports whether the runtime dependency imports. The llama
// engine has no pip dependency and always counts as installed.
func (s *Service) Installed(ctx context.Context) bool {
	if s.inst == nil || s.engine == EngineLlama {
		return true
	}
	return s.inst.Check(ctx, pipPackage, s.inst.ImportProbe(importName))
}

// Initialize installs sentence-transformers if needed and starts the
// backend.
func (s *Service) Initialize(ctx context.Context) error {
	return s.lc.RunInit(ctx, s.install, s.construct)
}

func (s *Service) install(ctx context.Context) error {
	// The llama engine loads a local GGUF file; nothing to install.
	if s.inst == nil || s.engine == EngineLlama {
		return nil
	}
	return s.inst.EnsureInstalled(ctx, pipPackage, s.inst.ImportProbe(importName))
}

func (s *Service) construct(ctx context.Context) error {
	if err := s.backend.Start(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if installer.IsDependencyUnavailable(err) {
			return err
		}
		return service.ErrInitFailed(types.ServiceEmbeddings, err.Error())
	}
	return nil
}

// Ready reports whether embedding generation is available right now.
func (s *Service) Ready() bool { return s.lc.Ready() }

// Info describes the service for the status endpoints. Every
// non-ready state reports not_initialized; install progress is
// exposed separately through the download-status endpoint.
func (s *Service) Info() types.ServiceInfo {
	state := s.lc.State()
	if state != service.StateReady {
		return types.ServiceInfo{Status: string(service.StateUninitialized), Error: s.lc.LastError()}
	}
	info := types.ServiceInfo{
		Status:    string(state),
		ModelName: s.model,
		Device:    s.device,
		CacheDir:  s.cacheDir,
	}
	bi := s.backend.Describe()
	if bi.Device != "" {
		info.Device = bi.Device
	}
	info.EmbeddingDimension = bi.Dimension
	info.MaxSequenceLength = bi.MaxSequenceLength
	return info
}

// Embed returns one unit-length vector for text.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, service.ErrValidation("text is required")
	}
	if err := s.lc.CheckReady(); err != nil {
		return nil, err
	}

	var out []float32
	err := s.pool.Do(ctx, func() error {
		vectors, err := s.backend.Embed(ctx, []string{text})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return service.ErrInferenceFailed(types.ServiceEmbeddings, err.Error())
		}
		if len(vectors) == 0 || len(vectors[0]) == 0 {
			return service.ErrInferenceFailed(types.ServiceEmbeddings, "no embedding generated")
		}
		out = vectors[0]
		return nil
	})
	return out, err
}

// EmbedBatch returns one vector per text, in order.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if !hasText(texts) {
		return nil, service.ErrValidation("at least one non-empty text is required")
	}
	if err := s.lc.CheckReady(); err != nil {
		return nil, err
	}

	var out [][]float32
	err := s.pool.Do(ctx, func() error {
		vectors, err := s.backend.Embed(ctx, texts)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return service.ErrInferenceFailed(types.ServiceEmbeddings, err.Error())
		}
		if len(vectors) == 0 {
			return service.ErrInferenceFailed(types.ServiceEmbeddings, "no embeddings generated")
		}
		out = vectors
		return nil
	})
	return out, err
}

// Similarity returns the cosine similarity of two embeddings.
func (s *Service) Similarity(e1, e2 []float32) (float64, error) {
	if len(e1) == 0 || len(e2) == 0 {
		return 0, service.ErrValidation("both embeddings are required")
	}
	if len(e1) != len(e2) {
		return 0, service.ErrValidation("embeddings must have the same dimension")
	}
	if err := s.lc.CheckReady(); err != nil {
		return 0, err
	}
	return Cosine(e1, e2), nil
}

// Search ranks candidates by similarity to query and returns the top
// k, highest first. A nil topK selects the default of 5.
func (s *Service) Search(query []float32, candidates [][]float32, topK *int) ([]types.SearchResult, error) {
	if len(query) == 0 || len(candidates) == 0 {
		return nil, service.ErrValidation("query and candidate embeddings are required")
	}
	k := defaultTopK
	if topK != nil {
		k = *topK
	}
	if k <= 0 {
		return nil, service.ErrValidation("top_k must be positive")
	}
	for i, c := range candidates {
		if len(c) != len(query) {
			return nil, service.ErrValidation(fmt.Sprintf("candidate embedding %d has different dimension than query", i))
		}
	}
	if err := s.lc.CheckReady(); err != nil {
		return nil, err
	}
	return SearchTopK(query, candidates, k), nil
}

// Test embeds a fixed sentence to verify the pipeline end to end.
func (s *Service) Test(ctx context.Context) types.EmbeddingTestResult {
	vector, err := s.Embed(ctx, testText)
	if err != nil {
		return types.EmbeddingTestResult{Success: false, Error: err.Error()}
	}
	samples := vector
	if len(samples) > 5 {
		samples = samples[:5]
	}
	return types.EmbeddingTestResult{
		Success:            true,
		EmbeddingDimension: len(vector),
		SampleValues:       samples,
		TestText:           testText,
	}
}

// Cleanup stops the backend and makes the service terminal.
func (s *Service) Cleanup(ctx context.Context) error {
	return s.lc.RunCleanup(ctx, func(context.Context) error {
		return s.backend.Stop()
	})
}

func hasText(texts []string) bool {
	for _, t := range texts {
		if strings.TrimSpace(t) != "" {
			return true
		}
	}
	return false
}
