package stt

import (
	"context"
	"time"

	"assistd/internal/installer"
	"assistd/internal/service"
	"assistd/pkg/types"
)

const (
	// Pip distribution and import name of the runtime dependency.
	pipPackage = "faster-whisper"
	importName = "faster_whisper"

	defaultSampleRate = 16000
)

// Config configures the speech-to-text service.
type Config struct {
	ModelSize   string
	Device      string
	ComputeType string
	CacheDir    string
	Python      string

	// MaxWorkers bounds concurrent transcriptions.
	MaxWorkers int
	// MaxWait bounds the time a request may wait for a worker slot.
	MaxWait time.Duration
	// InitTimeout bounds backend startup including model download.
	InitTimeout time.Duration

	// Installer acquires the runtime dependency; nil skips installation.
	Installer *installer.Installer
	// Backend overrides the default Python worker backend (tests).
	Backend Backend
	// Publisher receives lifecycle events; nil drops them.
	Publisher service.EventPublisher
}

// Service is the speech-to-text capability.
type Service struct {
	lc   *service.Lifecycle
	pool *service.Pool

	inst    *installer.Installer
	backend Backend

	modelSize   string
	device      string
	computeType string
	cacheDir    string
}

// New constructs the service; it becomes usable after Initialize.
func New(cfg Config) *Service {
	backend := cfg.Backend
	if backend == nil {
		backend = NewPythonBackend(PythonBackendConfig{
			Python:       cfg.Python,
			CacheDir:     cfg.CacheDir,
			ModelSize:    cfg.ModelSize,
			Device:       cfg.Device,
			ComputeType:  cfg.ComputeType,
			StartTimeout: cfg.InitTimeout,
		})
	}
	lc := service.NewLifecycle(types.ServiceSTT)
	lc.SetPublisher(cfg.Publisher)
	return &Service{
		lc:          lc,
		pool:        service.NewPool(types.ServiceSTT, cfg.MaxWorkers, cfg.MaxWait),
		inst:        cfg.Installer,
		backend:     backend,
		modelSize:   cfg.ModelSize,
		device:      cfg.Device,
		computeType: cfg.ComputeType,
		cacheDir:    cfg.CacheDir,
	}
}

func (s *Service) Name() string    { return types.ServiceSTT }
func (s *Service) Package() string { return pipPackage }

// Installed reports whether the runtime dependency imports.
func (s *Service) Installed(ctx context.Context) bool {
	if s.inst == nil {
		return true
	}
	return s.inst.Check(ctx, pipPackage, s.inst.ImportProbe(importName))
}

// Initialize installs faster-whisper if needed and starts the worker.
func (s *Service) Initialize(ctx context.Context) error {
	return s.lc.RunInit(ctx, s.install, s.construct)
}

func (s *Service) install(ctx context.Context) error {
	if s.inst == nil {
		return nil
	}
	return s.inst.EnsureInstalled(ctx, pipPackage, s.inst.ImportProbe(importName))
}

func (s *Service) construct(ctx context.Context) error {
	if err := s.backend.Start(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return service.ErrInitFailed(types.ServiceSTT, err.Error())
	}
	return nil
}

// Ready reports whether transcription is available right now.
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
		Status:      string(state),
		ModelSize:   s.modelSize,
		Device:      s.device,
		ComputeType: s.computeType,
		CacheDir:    s.cacheDir,
	}
	if bi := s.backend.Describe(); bi.Device != "" {
		info.Device = bi.Device
		info.ComputeType = bi.ComputeType
	}
	return info
}

// Transcribe converts audio samples to text. samples are mono float32
// in [-1, 1]; sampleRate at or below zero selects 16000.
func (s *Service) Transcribe(ctx context.Context, samples []float32, sampleRate int, language string) (types.Transcription, error) {
	if len(samples) == 0 {
		return types.Transcription{}, service.ErrValidation("audio_data is required")
	}
	if sampleRate <= 0 {
		sampleRate = defaultSampleRate
	}
	if err := s.lc.CheckReady(); err != nil {
		return types.Transcription{}, err
	}

	var out types.Transcription
	err := s.pool.Do(ctx, func() error {
		res, err := s.backend.Transcribe(ctx, samples, sampleRate, language)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return service.ErrInferenceFailed(types.ServiceSTT, err.Error())
		}
		out = res
		return nil
	})
	return out, err
}

// Cleanup stops the worker and makes the service terminal.
func (s *Service) Cleanup(ctx context.Context) error {
	return s.lc.RunCleanup(ctx, func(context.Context) error {
		return s.backend.Stop()
	})
}
