// Package embedding provides the text-embeddings capability. The
// default backend runs sentence-transformers in a managed Python
// worker; an in-process llama.cpp backend is available behind the
// llama build tag for GGUF models.
package embedding

import "context"

// Backend produces embedding vectors. Implementations return one
// unit-length vector per input text, in order.
type Backend interface {
	// Start makes the backend ready to embed. It may download model
	// weights on first run.
	Start(ctx context.Context) error
	// Embed returns one vector per text.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	// Describe reports details resolved at start, such as the device
	// actually selected and the model dimension. Zero value before
	// Start.
	Describe() BackendInfo
	// Stop releases the backend. Idempotent.
	Stop() error
}

// BackendInfo carries backend details for status reporting.
type BackendInfo struct {
	Device            string
	Dimension         int
	MaxSequenceLength int
}
