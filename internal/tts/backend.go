// Package tts provides the text-to-speech capability backed by
// Kokoro running in a managed Python worker.
package tts

import "context"

// Backend turns text into audio samples. The production
// implementation proxies to a Kokoro worker process; tests use fakes.
type Backend interface {
	// Start makes the backend ready to synthesize. It may download
	// model weights on first run.
	Start(ctx context.Context) error
	// Synthesize renders text with the given voice and returns mono
	// samples in [-1, 1] plus their sample rate.
	Synthesize(ctx context.Context, text, voice string) ([]float32, int, error)
	// Describe reports details resolved at start, such as the device
	// actually selected. Zero value before Start.
	Describe() BackendInfo
	// Stop releases the backend. Idempotent.
	Stop() error
}

// BackendInfo carries backend details for status reporting.
type BackendInfo struct {
	Device       string
	Quantization string
}
