package service

import (
	"context"
	"time"
)

const defaultPoolWait = 30 * time.Second

// Pool bounds concurrent inference per service the way a fixed worker
// pool would. Acquisition respects the caller's context and reports
// busy when no slot frees up within the wait budget.
type Pool struct {
	name    string
	slots   chan struct{}
	maxWait time.Duration
}

// NewPool returns a pool with the given number of slots. size below 1
// is clamped to 1; maxWait at or below zero selects the default.
func NewPool(name string, size int, maxWait time.Duration) *Pool {
	if size < 1 {
		size = 1
	}
	if maxWait <= 0 {
		maxWait = defaultPoolWait
	}
	return &Pool{name: name, slots: make(chan struct{}, size), maxWait: maxWait}
}

// Do runs fn while holding a pool slot.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	// Fast path: respect an already-canceled context.
	if err := ctx.Err(); err != nil {
		return err
	}

	timer := time.NewTimer(p.maxWait)
	defer timer.Stop()
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrBusy(p.name)
	}
	defer func() { <-p.slots }()

	return fn()
}

// Inflight returns the number of slots currently held.
func (p *Pool) Inflight() int { return len(p.slots) }

// Size returns the pool capacity.
func (p *Pool) Size() int { return cap(p.slots) }
