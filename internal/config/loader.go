package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the on-disk form of Config. Pointer fields distinguish
// "absent" from a zero value so a file can flip booleans off without
// clobbering fields it does not mention.
type File struct {
	Host     *string `json:"host" yaml:"host" toml:"host"`
	Port     *int    `json:"port" yaml:"port" toml:"port"`
	LogLevel *string `json:"log_level" yaml:"log_level" toml:"log_level"`

	EnableSTT        *bool `json:"enable_stt" yaml:"enable_stt" toml:"enable_stt"`
	EnableTTS        *bool `json:"enable_tts" yaml:"enable_tts" toml:"enable_tts"`
	EnableEmbeddings *bool `json:"enable_embeddings" yaml:"enable_embeddings" toml:"enable_embeddings"`

	STTModelSize   *string `json:"stt_model_size" yaml:"stt_model_size" toml:"stt_model_size"`
	STTDevice      *string `json:"stt_device" yaml:"stt_device" toml:"stt_device"`
	STTComputeType *string `json:"stt_compute_type" yaml:"stt_compute_type" toml:"stt_compute_type"`

	TTSVoice        *string `json:"tts_voice" yaml:"tts_voice" toml:"tts_voice"`
	TTSDevice       *string `json:"tts_device" yaml:"tts_device" toml:"tts_device"`
	TTSQuantization *string `json:"tts_quantization" yaml:"tts_quantization" toml:"tts_quantization"`

	EmbeddingsModel   *string `json:"embeddings_model" yaml:"embeddings_model" toml:"embeddings_model"`
	EmbeddingsDevice  *string `json:"embeddings_device" yaml:"embeddings_device" toml:"embeddings_device"`
	EmbeddingsBackend *string `json:"embeddings_backend" yaml:"embeddings_backend" toml:"embeddings_backend"`
	EmbeddingsGGUF    *string `json:"embeddings_gguf" yaml:"embeddings_gguf" toml:"embeddings_gguf"`

	CacheDir       *string `json:"cache_dir" yaml:"cache_dir" toml:"cache_dir"`
	ModelsCacheDir *string `json:"models_cache_dir" yaml:"models_cache_dir" toml:"models_cache_dir"`

	MaxWorkers            *int `json:"max_workers" yaml:"max_workers" toml:"max_workers"`
	RequestTimeoutSeconds *int `json:"request_timeout" yaml:"request_timeout" toml:"request_timeout"`

	Python       *string `json:"python" yaml:"python" toml:"python"`
	PackagesFile *string `json:"packages_file" yaml:"packages_file" toml:"packages_file"`
	VoicesFile   *string `json:"voices_file" yaml:"voices_file" toml:"voices_file"`

	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (File, error) {
	var f File
	if path == "" {
		return f, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &f); err != nil {
			return f, err
		}
	case ".json":
		if err := json.Unmarshal(b, &f); err != nil {
			return f, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &f); err != nil {
			return f, err
		}
	default:
		return f, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return f, nil
}

// Apply overlays every field the file mentions onto c.
func (f File) Apply(c *Config) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}

	setStr(&c.Host, f.Host)
	setInt(&c.Port, f.Port)
	setStr(&c.LogLevel, f.LogLevel)

	setBool(&c.EnableSTT, f.EnableSTT)
	setBool(&c.EnableTTS, f.EnableTTS)
	setBool(&c.EnableEmbeddings, f.EnableEmbeddings)

	setStr(&c.STTModelSize, f.STTModelSize)
	setStr(&c.STTDevice, f.STTDevice)
	setStr(&c.STTComputeType, f.STTComputeType)

	setStr(&c.TTSVoice, f.TTSVoice)
	setStr(&c.TTSDevice, f.TTSDevice)
	setStr(&c.TTSQuantization, f.TTSQuantization)

	setStr(&c.EmbeddingsModel, f.EmbeddingsModel)
	setStr(&c.EmbeddingsDevice, f.EmbeddingsDevice)
	setStr(&c.EmbeddingsBackend, f.EmbeddingsBackend)
	setStr(&c.EmbeddingsGGUF, f.EmbeddingsGGUF)

	setStr(&c.CacheDir, f.CacheDir)
	setStr(&c.ModelsCacheDir, f.ModelsCacheDir)

	setInt(&c.MaxWorkers, f.MaxWorkers)
	setInt(&c.RequestTimeoutSeconds, f.RequestTimeoutSeconds)

	setStr(&c.Python, f.Python)
	setStr(&c.PackagesFile, f.PackagesFile)
	setStr(&c.VoicesFile, f.VoicesFile)

	if f.CORSOrigins != nil {
		c.CORSOrigins = f.CORSOrigins
	}
}

// Resolve builds the effective configuration: defaults, then the optional
// file at path, then environment variables.
func Resolve(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		f.Apply(&cfg)
	}
	cfg.ApplyEnv()
	return cfg, nil
}
