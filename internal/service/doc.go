// Package service provides the shared lifecycle machinery every AI
// capability (speech to text, text to speech, embeddings) is built on.
// It is structured into small files by concern:
//
//   - service.go: the Service contract and lifecycle State constants.
//   - lifecycle.go: single-flight initialization and teardown template.
//   - pool.go: bounded worker pool limiting concurrent inference.
//   - errors.go: error types and helpers (IsNotReady, IsBusy, ...).
//   - events.go: lifecycle event publishing contract.
//   - eventpub_memory.go: in-memory publisher for tests.
//
// Capability packages embed Lifecycle and Pool and supply the install,
// construct and release steps; everything else (state transitions,
// concurrent callers, retry after failure, terminal cleanup) lives here.
// External packages should treat services as opaque Service values and
// use the interface only.
package service
