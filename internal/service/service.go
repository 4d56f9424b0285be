package service

import (
	"context"

	"assistd/pkg/types"
)

// State is the lifecycle phase of a capability service. The string
// values are wire-visible through the status endpoints.
type State string

const (
	StateUninitialized State = "not_initialized"
	StateInstalling    State = "installing"
	StateInitializing  State = "initializing"
	StateReady         State = "ready"
	StateFailed        State = "failed"
	StateCleanedUp     State = "cleaned_up"
)

// Service is the contract every capability implements. Implementations
// must keep Ready and Info non-blocking even while Initialize runs.
type Service interface {
	// Name is the capability name used in routes and status maps.
	Name() string
	// Package is the pip distribution this capability depends on.
	Package() string
	// Initialize makes the service ready, installing dependencies and
	// constructing the model as needed. Safe to call concurrently and
	// repeatedly; only one caller does the work.
	Initialize(ctx context.Context) error
	// Ready reports whether the service can serve inference right now.
	Ready() bool
	// Info describes the service and its model for status endpoints.
	// It never fails; problems are reported inside the value.
	Info() types.ServiceInfo
	// Cleanup releases the model and any worker process. Idempotent.
	Cleanup(ctx context.Context) error
}
