package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"assistd/internal/common/fsutil"
)

// Defaults for the daemon. Kept here so flags, env and file resolution
// all agree on a single source of truth.
const (
	DefaultHost           = "127.0.0.1"
	DefaultPort           = 8765
	DefaultLogLevel       = "info"
	DefaultSTTModelSize   = "small"
	DefaultTTSVoice       = "af_bella"
	DefaultTTSQuant       = "fp16"
	DefaultEmbeddingModel = "Qwen/Qwen3-Embedding-0.6B"
	DefaultCacheDir       = "~/.cache/assistd"
	DefaultMaxWorkers     = 4
	DefaultTimeoutSecs    = 30
	DefaultPython         = "python3"

	// BackendPython runs inference through a managed Python worker process.
	BackendPython = "python"
	// BackendLlama runs embeddings in-process through llama.cpp bindings.
	BackendLlama = "llama"
)

// Config holds the resolved runtime parameters for the daemon.
// Resolution order: defaults, then an optional config file, then
// ASSISTD_* environment variables, then command line flags.
type Config struct {
	Host     string
	Port     int
	LogLevel string

	EnableSTT        bool
	EnableTTS        bool
	EnableEmbeddings bool

	STTModelSize   string
	STTDevice      string
	STTComputeType string

	TTSVoice        string
	TTSDevice       string
	TTSQuantization string

	EmbeddingsModel   string
	EmbeddingsDevice  string
	EmbeddingsBackend string
	EmbeddingsGGUF    string

	CacheDir       string
	ModelsCacheDir string

	MaxWorkers            int
	RequestTimeoutSeconds int

	Python       string
	PackagesFile string
	VoicesFile   string

	CORSOrigins []string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host:                  DefaultHost,
		Port:                  DefaultPort,
		LogLevel:              DefaultLogLevel,
		EnableSTT:             true,
		EnableTTS:             true,
		EnableEmbeddings:      true,
		STTModelSize:          DefaultSTTModelSize,
		STTDevice:             "auto",
		STTComputeType:        "auto",
		TTSVoice:              DefaultTTSVoice,
		TTSDevice:             "auto",
		TTSQuantization:       DefaultTTSQuant,
		EmbeddingsModel:       DefaultEmbeddingModel,
		EmbeddingsDevice:      "auto",
		EmbeddingsBackend:     BackendPython,
		CacheDir:              DefaultCacheDir,
		MaxWorkers:            DefaultMaxWorkers,
		RequestTimeoutSeconds: DefaultTimeoutSecs,
		Python:                DefaultPython,
		CORSOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
			"http://localhost:8080",
			"http://127.0.0.1:5173",
			"http://127.0.0.1:3000",
			"http://127.0.0.1:8080",
		},
	}
}

// ApplyEnv overlays ASSISTD_* environment variables onto c.
// Unset variables leave the current value untouched.
func (c *Config) ApplyEnv() {
	c.Host = envStr("ASSISTD_HOST", c.Host)
	c.Port = envInt("ASSISTD_PORT", c.Port)
	c.LogLevel = envStr("ASSISTD_LOG_LEVEL", c.LogLevel)

	c.EnableSTT = envBool("ASSISTD_ENABLE_STT", c.EnableSTT)
	c.EnableTTS = envBool("ASSISTD_ENABLE_TTS", c.EnableTTS)
	c.EnableEmbeddings = envBool("ASSISTD_ENABLE_EMBEDDINGS", c.EnableEmbeddings)

	c.STTModelSize = envStr("ASSISTD_STT_MODEL_SIZE", c.STTModelSize)
	c.STTDevice = envStr("ASSISTD_STT_DEVICE", c.STTDevice)
	c.STTComputeType = envStr("ASSISTD_STT_COMPUTE_TYPE", c.STTComputeType)

	c.TTSVoice = envStr("ASSISTD_TTS_VOICE", c.TTSVoice)
	c.TTSDevice = envStr("ASSISTD_TTS_DEVICE", c.TTSDevice)
	c.TTSQuantization = envStr("ASSISTD_TTS_QUANTIZATION", c.TTSQuantization)

	c.EmbeddingsModel = envStr("ASSISTD_EMBEDDINGS_MODEL", c.EmbeddingsModel)
	c.EmbeddingsDevice = envStr("ASSISTD_EMBEDDINGS_DEVICE", c.EmbeddingsDevice)
	c.EmbeddingsBackend = envStr("ASSISTD_EMBEDDINGS_BACKEND", c.EmbeddingsBackend)
	c.EmbeddingsGGUF = envStr("ASSISTD_EMBEDDINGS_GGUF", c.EmbeddingsGGUF)

	c.CacheDir = envStr("ASSISTD_CACHE_DIR", c.CacheDir)
	c.ModelsCacheDir = envStr("ASSISTD_MODELS_CACHE_DIR", c.ModelsCacheDir)

	c.MaxWorkers = envInt("ASSISTD_MAX_WORKERS", c.MaxWorkers)
	c.RequestTimeoutSeconds = envInt("ASSISTD_REQUEST_TIMEOUT", c.RequestTimeoutSeconds)

	c.Python = envStr("ASSISTD_PYTHON", c.Python)
	c.PackagesFile = envStr("ASSISTD_PACKAGES_FILE", c.PackagesFile)
	c.VoicesFile = envStr("ASSISTD_VOICES_FILE", c.VoicesFile)

	if v := os.Getenv("ASSISTD_CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitCSV(v)
	}
}

// Finalize expands home-relative paths, derives the models cache dir and
// creates both cache directories. Call once after all overlays.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	dir, err := fsutil.ExpandHome(c.CacheDir)
	if err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	c.CacheDir = dir
	if c.ModelsCacheDir == "" {
		c.ModelsCacheDir = filepath.Join(c.CacheDir, "models")
	} else {
		mdir, err := fsutil.ExpandHome(c.ModelsCacheDir)
		if err != nil {
			return fmt.Errorf("models cache dir: %w", err)
		}
		c.ModelsCacheDir = mdir
	}
	if err := fsutil.EnsureDir(c.CacheDir); err != nil {
		return err
	}
	return fsutil.EnsureDir(c.ModelsCacheDir)
}

// Validate reports the first invalid field, if any.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.MaxWorkers < 1 {
		return fmt.Errorf("max workers must be at least 1, got %d", c.MaxWorkers)
	}
	if c.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("request timeout must be at least 1s, got %d", c.RequestTimeoutSeconds)
	}
	switch c.EmbeddingsBackend {
	case BackendPython, BackendLlama:
	default:
		return fmt.Errorf("unknown embeddings backend: %q", c.EmbeddingsBackend)
	}
	if c.EmbeddingsBackend == BackendLlama && c.EmbeddingsGGUF == "" {
		return fmt.Errorf("embeddings backend %q requires a gguf model path", BackendLlama)
	}
	if c.CacheDir == "" {
		return fmt.Errorf("cache dir must not be empty")
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Env helpers
func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	s := strings.ToLower(v)
	return s == "1" || s == "true" || s == "yes"
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, err := fmt.Sscanf(v, "%d", &n)
		if err == nil {
			return n
		}
	}
	return def
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
