package types

// TranscribeRequest is the payload for POST /api/stt/transcribe.
type TranscribeRequest struct {
	// Raw mono audio samples in [-1, 1], as produced by a Float32Array.
	AudioData []float32 `json:"audio_data"`
	// Sample rate of the provided audio. Defaults to 16000.
	// example: 16000
	SampleRate int `json:"sample_rate,omitempty" example:"16000"`
	// Optional language hint (e.g., "en"). Empty means auto-detect.
	// example: en
	Language string `json:"language,omitempty" example:"en"`
}

// Word is a single word with timing inside a transcription segment.
type Word struct {
	Word        string  `json:"word" example:"hello"`
	Start       float64 `json:"start" example:"0.12"`
	End         float64 `json:"end" example:"0.48"`
	Probability float64 `json:"probability" example:"0.97"`
}

// Segment is a timed slice of a transcription.
type Segment struct {
	Start float64 `json:"start" example:"0.0"`
	End   float64 `json:"end" example:"2.4"`
	Text  string  `json:"text" example:"hello world"`
	Words []Word  `json:"words"`
}

// Transcription is the result of a speech-to-text call.
type Transcription struct {
	// Full transcribed text.
	// example: hello world
	Text string `json:"text" example:"hello world"`
	// Detected (or requested) language code.
	// example: en
	Language string `json:"language" example:"en"`
	// Confidence of the language detection in [0, 1].
	// example: 0.99
	LanguageProbability float64 `json:"language_probability" example:"0.99"`
	// Duration of the decoded audio in seconds.
	// example: 2.4
	Duration float64 `json:"duration" example:"2.4"`
	// Timed segments with word-level detail; empty for silent input.
	Segments []Segment `json:"segments"`
}

// SynthesizeRequest is the payload for POST /api/tts/synthesize.
type SynthesizeRequest struct {
	// Text to speak.
	// example: Hello from the local speech service.
	Text string `json:"text" example:"Hello from the local speech service."`
	// Optional voice id; unknown values fall back to the configured default.
	// example: af_bella
	Voice string `json:"voice,omitempty" example:"af_bella"`
}

// TTSTestResult is returned by POST /api/tts/test.
type TTSTestResult struct {
	Success          bool   `json:"success"`
	AudioLengthBytes int    `json:"audio_length_bytes,omitempty"`
	TestText         string `json:"test_text,omitempty"`
	Error            string `json:"error,omitempty"`
}

// EmbedRequest is the payload for POST /api/embeddings/generate.
type EmbedRequest struct {
	// Text to embed.
	// example: What is the capital of France?
	Text string `json:"text" example:"What is the capital of France?"`
}

// EmbedResponse carries a single normalized embedding.
type EmbedResponse struct {
	Embedding []float32 `json:"embedding"`
	// example: 1024
	Dimension int `json:"dimension" example:"1024"`
}

// EmbedBatchRequest is the payload for POST /api/embeddings/generate-batch.
type EmbedBatchRequest struct {
	Texts []string `json:"texts"`
}

// EmbedBatchResponse carries one embedding per input text, in order.
type EmbedBatchResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	// example: 1024
	Dimension int `json:"dimension" example:"1024"`
	// example: 3
	Count int `json:"count" example:"3"`
}

// SimilarityRequest is the payload for POST /api/embeddings/similarity.
type SimilarityRequest struct {
	Embedding1 []float32 `json:"embedding1"`
	Embedding2 []float32 `json:"embedding2"`
}

// SimilarityResponse carries a cosine similarity in [-1, 1].
type SimilarityResponse struct {
	// example: 0.83
	Similarity float64 `json:"similarity" example:"0.83"`
}

// SearchRequest is the payload for POST /api/embeddings/search.
type SearchRequest struct {
	QueryEmbedding      []float32   `json:"query_embedding"`
	CandidateEmbeddings [][]float32 `json:"candidate_embeddings"`
	// Number of results to return; omitted means 5.
	// example: 5
	TopK *int `json:"top_k,omitempty" example:"5"`
}

// SearchResult pairs a candidate index with its similarity to the query.
type SearchResult struct {
	// Index into the candidate list of the request.
	// example: 2
	Index int `json:"index" example:"2"`
	// example: 0.91
	Similarity float64 `json:"similarity" example:"0.91"`
}

// SearchResponse is the ordered result list of a similarity search.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// EmbeddingTestResult is returned by POST /api/embeddings/test.
type EmbeddingTestResult struct {
	Success            bool      `json:"success"`
	EmbeddingDimension int       `json:"embedding_dimension,omitempty"`
	SampleValues       []float32 `json:"sample_values,omitempty"`
	TestText           string    `json:"test_text,omitempty"`
	Error              string    `json:"error,omitempty"`
}

// ReadyResponse is returned by the per-capability /ready endpoints.
type ReadyResponse struct {
	// example: true
	Ready bool `json:"ready" example:"true"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	// "healthy" when every enabled service is ready, else "degraded".
	// example: healthy
	Status string `json:"status" example:"healthy"`
	// Readiness per enabled capability; disabled capabilities are absent.
	Services map[string]bool `json:"services"`
	// example: 1.0.0
	Version string `json:"version" example:"1.0.0"`
}

// DownloadState reports installer progress for one capability.
type DownloadState struct {
	// example: true
	Installed bool `json:"installed" example:"true"`
	// example: false
	Downloading bool `json:"downloading" example:"false"`
}

// DownloadResponse is returned by POST /api/models/download/{service}.
type DownloadResponse struct {
	// example: true
	Success bool `json:"success" example:"true"`
	// example: Model stt installed successfully
	Message string `json:"message" example:"Model stt installed successfully"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}
