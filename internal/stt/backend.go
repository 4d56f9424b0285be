// Package stt provides the speech-to-text capability backed by
// faster-whisper running in a managed Python worker.
package stt

import (
	"context"

	"assistd/pkg/types"
)

// Backend produces transcriptions. The production implementation
// proxies to a faster-whisper worker process; tests use fakes.
type Backend interface {
	// Start makes the backend ready to transcribe. It may download
	// model weights on first run.
	Start(ctx context.Context) error
	// Transcribe converts samples in [-1, 1] at sampleRate to text.
	// language is a hint; empty means auto-detect.
	Transcribe(ctx context.Context, samples []float32, sampleRate int, language string) (types.Transcription, error)
	// Describe reports details resolved at start, such as the device
	// actually selected. Zero value before Start.
	Describe() BackendInfo
	// Stop releases the backend. Idempotent.
	Stop() error
}

// BackendInfo carries backend details for status reporting.
type BackendInfo struct {
	Device      string
	ComputeType string
}
