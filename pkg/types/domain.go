package types

// Capability names, used as route prefixes, installer keys and health map keys.
const (
	ServiceSTT        = "stt"
	ServiceTTS        = "tts"
	ServiceEmbeddings = "embeddings"
)

// VoiceInfo describes one synthesizer voice.
type VoiceInfo struct {
	// Language code of the voice ("a" = American English, "b" = British).
	// example: a
	LangCode string `json:"lang_code" example:"a"`
	// Human-friendly description.
	// example: American English - Bella
	Description string `json:"description" example:"American English - Bella"`
}

// ServiceInfo is the self-description a capability reports on
// GET /api/models/status and its own /info endpoint. Fields that do not
// apply to a given capability are omitted.
type ServiceInfo struct {
	// Lifecycle state: not_initialized, installing, initializing, ready,
	// failed, cleaned_up or error.
	// example: ready
	Status string `json:"status" example:"ready"`
	// example: cuda
	Device string `json:"device,omitempty" example:"cuda"`
	// example: /home/user/.cache/assistd/models
	CacheDir string `json:"cache_dir,omitempty"`
	// Error detail when Status is "error" or "failed".
	Error string `json:"error,omitempty"`

	// Speech to text.
	// example: small
	ModelSize string `json:"model_size,omitempty" example:"small"`
	// example: float16
	ComputeType string `json:"compute_type,omitempty" example:"float16"`

	// Text to speech.
	// example: af_bella
	Voice string `json:"voice,omitempty" example:"af_bella"`
	// example: fp16
	Quantization    string               `json:"quantization,omitempty" example:"fp16"`
	AvailableVoices map[string]VoiceInfo `json:"available_voices,omitempty"`

	// Embeddings.
	// example: Qwen/Qwen3-Embedding-0.6B
	ModelName string `json:"model_name,omitempty" example:"Qwen/Qwen3-Embedding-0.6B"`
	// example: 1024
	EmbeddingDimension int `json:"embedding_dimension,omitempty" example:"1024"`
	// example: 32768
	MaxSequenceLength int `json:"max_sequence_length,omitempty" example:"32768"`
}
