package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"assistd/internal/config"
	"assistd/internal/embedding"
	"assistd/internal/httpapi"
	"assistd/internal/installer"
	"assistd/internal/orchestrator"
	"assistd/internal/registry"
	"assistd/internal/stt"
	"assistd/internal/tts"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	// Flags override ASSISTD_* environment variables, which override the
	// optional config file, which overrides built-in defaults.
	configPath := flag.String("config", os.Getenv("ASSISTD_CONFIG"), "Path to a yaml/json/toml config file")
	host := flag.String("host", "", "Bind host (default 127.0.0.1)")
	port := flag.Int("port", 0, "Listen port (default 8765)")
	cacheDir := flag.String("cache-dir", "", "Cache directory for models and worker scripts")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error, off")
	corsOrigins := flag.String("cors-origins", "", "Comma-separated allowed CORS origins")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *host != "" {
		cfg.Host = *host
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *cacheDir != "" {
		cfg.CacheDir = *cacheDir
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if v := splitCSV(*corsOrigins); v != nil {
		cfg.CORSOrigins = v
	}
	if err := cfg.Finalize(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	httpapi.SetLogger(logger)

	voices, err := registry.LoadVoices(cfg.VoicesFile)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.VoicesFile).Msg("load voices")
	}

	inst := installer.New(installer.Config{
		Python:    cfg.Python,
		SpecsFile: cfg.PackagesFile,
	})

	var pub httpapi.MetricsPublisher
	orch := orchestrator.New(inst)

	var (
		sttSvc *stt.Service
		ttsSvc *tts.Service
		embSvc *embedding.Service
	)
	if cfg.EnableSTT {
		sttSvc = stt.New(stt.Config{
			ModelSize:   cfg.STTModelSize,
			Device:      cfg.STTDevice,
			ComputeType: cfg.STTComputeType,
			CacheDir:    cfg.ModelsCacheDir,
			Python:      cfg.Python,
			MaxWorkers:  cfg.MaxWorkers,
			Installer:   inst,
			Publisher:   pub,
		})
		orch.Register(sttSvc)
	}
	if cfg.EnableTTS {
		ttsSvc = tts.New(tts.Config{
			Voice:        cfg.TTSVoice,
			Device:       cfg.TTSDevice,
			Quantization: cfg.TTSQuantization,
			CacheDir:     cfg.ModelsCacheDir,
			Python:       cfg.Python,
			Voices:       voices,
			MaxWorkers:   cfg.MaxWorkers,
			Installer:    inst,
			Publisher:    pub,
		})
		orch.Register(ttsSvc)
	}
	if cfg.EnableEmbeddings {
		if cfg.EmbeddingsBackend == config.BackendLlama && !embedding.LlamaSupported() {
			logger.Warn().Msg("embeddings backend llama requested but this binary was built without the llama tag")
		}
		embSvc = embedding.New(embedding.Config{
			Model:      cfg.EmbeddingsModel,
			Device:     cfg.EmbeddingsDevice,
			CacheDir:   cfg.ModelsCacheDir,
			Python:     cfg.Python,
			Engine:     cfg.EmbeddingsBackend,
			GGUFPath:   cfg.EmbeddingsGGUF,
			MaxWorkers: cfg.MaxWorkers,
			Installer:  inst,
			Publisher:  pub,
		})
		orch.Register(embSvc)
	}

	httpapi.SetRequestTimeoutSeconds(int64(cfg.RequestTimeoutSeconds))
	httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins, []string{"GET", "POST"}, []string{"*"})

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)

	opts := httpapi.Options{Version: version, Models: orch}
	if sttSvc != nil {
		opts.STT = sttSvc
	}
	if ttsSvc != nil {
		opts.TTS = ttsSvc
	}
	if embSvc != nil {
		opts.Embeddings = embSvc
	}
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpapi.NewMux(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The HTTP surface comes up immediately; services initialize in the
	// background and report progress through /api/models endpoints.
	go orch.Startup(baseCtx)

	go func() {
		logger.Info().Str("addr", cfg.Addr()).Str("cache_dir", cfg.CacheDir).Msg("assistd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	cancelBase()
	for _, cerr := range orch.Shutdown(ctx) {
		logger.Error().Err(cerr).Msg("service cleanup error")
	}
}

func newLogger(level string) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().Timestamp().Str("service", "assistd").Logger()
	if level == "off" {
		level = "disabled"
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		logger = logger.Level(lvl)
	}
	return logger
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
