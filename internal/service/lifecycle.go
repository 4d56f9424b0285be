package service

import (
	"context"
	"log"
	"sync"
)

// Lifecycle implements the shared state machine capability services
// embed. Initialization is single-flight: concurrent callers block on
// initMu while the first does the work, then observe the result.
// State reads go through a separate RWMutex so Ready and State never
// block behind an initialization in progress.
//
// Transitions: not_initialized -> installing -> initializing -> ready.
// A failure during install or construct moves to failed, which stays
// retryable. Cleanup moves to cleaned_up, which is terminal.
type Lifecycle struct {
	name      string
	publisher EventPublisher

	initMu sync.Mutex // serializes Initialize and Cleanup

	stateMu sync.RWMutex
	state   State
	lastErr string
}

// NewLifecycle returns a Lifecycle in the not_initialized state.
func NewLifecycle(name string) *Lifecycle {
	return &Lifecycle{name: name, publisher: noopPublisher{}, state: StateUninitialized}
}

// SetPublisher installs an event publisher. Call before first use;
// nil restores the no-op publisher.
func (l *Lifecycle) SetPublisher(p EventPublisher) {
	if p == nil {
		p = noopPublisher{}
	}
	l.publisher = p
}

// Name returns the capability name.
func (l *Lifecycle) Name() string { return l.name }

// State returns the current lifecycle state without blocking.
func (l *Lifecycle) State() State {
	l.stateMu.RLock()
	defer l.stateMu.RUnlock()
	return l.state
}

// Ready reports whether the service reached the ready state.
func (l *Lifecycle) Ready() bool { return l.State() == StateReady }

// LastError returns the message of the most recent failure, or "".
func (l *Lifecycle) LastError() string {
	l.stateMu.RLock()
	defer l.stateMu.RUnlock()
	return l.lastErr
}

// CheckReady returns nil when ready and a not-ready error otherwise.
func (l *Lifecycle) CheckReady() error {
	if l.Ready() {
		return nil
	}
	return ErrNotReady(l.name)
}

// RunInit executes initialization exactly once. install acquires runtime
// dependencies and construct builds the model; either may be nil. Repeat
// calls on a ready service return immediately, a failed service may be
// retried, and a cleaned up service reports not ready.
func (l *Lifecycle) RunInit(ctx context.Context, install, construct func(ctx context.Context) error) error {
	if l.Ready() {
		return nil
	}

	l.initMu.Lock()
	defer l.initMu.Unlock()

	// Re-check under the lock; a concurrent caller may have finished.
	switch l.State() {
	case StateReady:
		return nil
	case StateCleanedUp:
		return ErrNotReady(l.name)
	}

	if install != nil {
		l.transition(StateInstalling, "")
		if err := install(ctx); err != nil {
			l.transition(StateFailed, err.Error())
			return err
		}
	}

	l.transition(StateInitializing, "")
	if construct != nil {
		if err := construct(ctx); err != nil {
			l.transition(StateFailed, err.Error())
			return err
		}
	}

	l.transition(StateReady, "")
	return nil
}

// RunCleanup tears the service down and makes it terminal. release
// frees the model and may be nil; its error is returned but the state
// moves to cleaned_up regardless. Idempotent.
func (l *Lifecycle) RunCleanup(ctx context.Context, release func(ctx context.Context) error) error {
	l.initMu.Lock()
	defer l.initMu.Unlock()

	if l.State() == StateCleanedUp {
		return nil
	}

	var err error
	if release != nil {
		err = release(ctx)
	}
	if err != nil {
		l.transition(StateCleanedUp, err.Error())
		return err
	}
	l.transition(StateCleanedUp, "")
	return nil
}

func (l *Lifecycle) transition(s State, errMsg string) {
	l.stateMu.Lock()
	l.state = s
	l.lastErr = errMsg
	l.stateMu.Unlock()

	if errMsg != "" {
		log.Printf("service=%s event=state state=%s err=%q", l.name, s, errMsg)
		l.publisher.Publish(Event{Name: "state", Service: l.name, Fields: map[string]any{"state": string(s), "error": errMsg}})
		return
	}
	log.Printf("service=%s event=state state=%s", l.name, s)
	l.publisher.Publish(Event{Name: "state", Service: l.name, Fields: map[string]any{"state": string(s)}})
}
