package tts

import (
	"context"
	"log"
	"strings"
	"time"

	"assistd/internal/installer"
	"assistd/internal/registry"
	"assistd/internal/service"
	"assistd/internal/wavio"
	"assistd/pkg/types"
)

const (
	// Pip distribution and import name of the runtime dependency.
	pipPackage = "kokoro"
	importName = "kokoro"

	// Kokoro always renders at 24 kHz; used when a backend does not
	// report a rate.
	defaultSampleRate = 24000

	testText = "Hello, this is a test of the Kokoro text to speech system."
)

// Config configures the text-to-speech service.
type Config struct {
	Voice        string
	Device       string
	Quantization string
	CacheDir     string
	Python       string

	// Voices is the catalog of selectable voices; nil selects the
	// built-in catalog.
	Voices map[string]types.VoiceInfo

	// MaxWorkers bounds concurrent syntheses.
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

// Service is the text-to-speech capability.
type Service struct {
	lc   *service.Lifecycle
	pool *service.Pool

	inst    *installer.Installer
	backend Backend

	voice        string
	device       string
	quantization string
	cacheDir     string
	voices       map[string]types.VoiceInfo
}

// New constructs the service; it becomes usable after Initialize.
func New(cfg Config) *Service {
	voices := cfg.Voices
	if voices == nil {
		voices = registry.BuiltinVoices()
	}
	backend := cfg.Backend
	if backend == nil {
		backend = NewPythonBackend(PythonBackendConfig{
			Python:       cfg.Python,
			CacheDir:     cfg.CacheDir,
			Voice:        cfg.Voice,
			LangCode:     registry.LangCode(voices, cfg.Voice),
			Device:       cfg.Device,
			Quantization: cfg.Quantization,
			StartTimeout: cfg.InitTimeout,
		})
	}
	lc := service.NewLifecycle(types.ServiceTTS)
	lc.SetPublisher(cfg.Publisher)
	return &Service{
		lc:           lc,
		pool:         service.NewPool(types.ServiceTTS, cfg.MaxWorkers, cfg.MaxWait),
		inst:         cfg.Installer,
		backend:      backend,
		voice:        cfg.Voice,
		device:       cfg.Device,
		quantization: cfg.Quantization,
		cacheDir:     cfg.CacheDir,
		voices:       voices,
	}
}

func (s *Service) Name() string    { return types.ServiceTTS }
func (s *Service) Package() string { return pipPackage }

// Installed reports whether the runtime dependency imports.
func (s *Service) Installed(ctx context.Context) bool {
	if s.inst == nil {
		return true
	}
	return s.inst.Check(ctx, pipPackage, s.inst.ImportProbe(importName))
}

// Initialize installs kokoro if needed and starts the worker.
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
		return service.ErrInitFailed(types.ServiceTTS, err.Error())
	}
	return nil
}

// Ready reports whether synthesis is available right now.
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
		Status:          string(state),
		Voice:           s.voice,
		Device:          s.device,
		Quantization:    s.quantization,
		CacheDir:        s.cacheDir,
		AvailableVoices: s.Voices(),
	}
	if bi := s.backend.Describe(); bi.Device != "" {
		info.Device = bi.Device
		info.Quantization = bi.Quantization
	}
	return info
}

// Voices returns a copy of the voice catalog.
func (s *Service) Voices() map[string]types.VoiceInfo {
	out := make(map[string]types.VoiceInfo, len(s.voices))
	for id, v := range s.voices {
		out[id] = v
	}
	return out
}

// Synthesize renders text as a 16-bit mono WAV file. An empty voice
// selects the configured default; an unknown voice falls back to it.
func (s *Service) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, service.ErrValidation("text is required")
	}
	if err := s.lc.CheckReady(); err != nil {
		return nil, err
	}
	voice = s.resolveVoice(voice)

	var out []byte
	err := s.pool.Do(ctx, func() error {
		samples, rate, err := s.backend.Synthesize(ctx, text, voice)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return service.ErrInferenceFailed(types.ServiceTTS, err.Error())
		}
		if len(samples) == 0 {
			return service.ErrInferenceFailed(types.ServiceTTS, "no audio generated")
		}
		if rate <= 0 {
			rate = defaultSampleRate
		}
		wav, err := wavio.Encode(samples, rate)
		if err != nil {
			return service.ErrInferenceFailed(types.ServiceTTS, err.Error())
		}
		out = wav
		return nil
	})
	return out, err
}

// Test synthesizes a fixed phrase to verify the pipeline end to end.
func (s *Service) Test(ctx context.Context) types.TTSTestResult {
	wav, err := s.Synthesize(ctx, testText, "")
	if err != nil {
		return types.TTSTestResult{Success: false, Error: err.Error()}
	}
	return types.TTSTestResult{
		Success:          true,
		AudioLengthBytes: len(wav),
		TestText:         testText,
	}
}

func (s *Service) resolveVoice(voice string) string {
	if voice == "" {
		return s.voice
	}
	if _, ok := s.voices[voice]; !ok {
		log.Printf("service=%s event=voice_fallback requested=%q voice=%q", types.ServiceTTS, voice, s.voice)
		return s.voice
	}
	return voice
}

// Cleanup stops the worker and makes the service terminal.
func (s *Service) Cleanup(ctx context.Context) error {
	return s.lc.RunCleanup(ctx, func(context.Context) error {
		return s.backend.Stop()
	})
}
