// Package orchestrator owns the set of enabled capability services:
// startup and shutdown sequencing, aggregated health and status, and
// user-initiated model downloads.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"sync"

	"assistd/internal/installer"
	"assistd/pkg/types"
)

// Service is the lifecycle contract every capability implements.
type Service interface {
	Name() string
	Package() string
	Installed(ctx context.Context) bool
	Initialize(ctx context.Context) error
	Ready() bool
	Info() types.ServiceInfo
	Cleanup(ctx context.Context) error
}

// Orchestrator drives registered services through their lifecycle. It
// holds services by name only; each service owns its own state.
type Orchestrator struct {
	inst *installer.Installer

	mu       sync.RWMutex
	names    []string // registration order
	services map[string]Service
}

// New returns an empty Orchestrator. inst may be nil when dependency
// installation is handled elsewhere.
func New(inst *installer.Installer) *Orchestrator {
	return &Orchestrator{inst: inst, services: make(map[string]Service)}
}

// Register adds svc. Registration order is the shutdown order. A name
// registered twice keeps the first service.
func (o *Orchestrator) Register(svc Service) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.services[svc.Name()]; ok {
		return
	}
	o.names = append(o.names, svc.Name())
	o.services[svc.Name()] = svc
}

// Startup initializes every registered service concurrently and waits
// for all of them. A failed initialization is logged, not propagated;
// the process reports a degraded health status instead of refusing to
// start. Callers wanting to serve traffic during model loads run
// Startup itself in a goroutine.
func (o *Orchestrator) Startup(ctx context.Context) {
	o.bulkInstall(ctx)

	var wg sync.WaitGroup
	for _, svc := range o.all() {
		wg.Add(1)
		go func(svc Service) {
			defer wg.Done()
			if err := svc.Initialize(ctx); err != nil {
				log.Printf("orchestrator event=init_failed service=%s err=%v", svc.Name(), err)
				return
			}
			log.Printf("orchestrator event=service_ready service=%s", svc.Name())
		}(svc)
	}
	wg.Wait()
}

// bulkInstall runs one combined pip install on first-time setup, when
// no registered capability's package imports yet. A failure here is
// not fatal; each service retries its own dependency during init.
func (o *Orchestrator) bulkInstall(ctx context.Context) {
	if o.inst == nil {
		return
	}
	services := o.all()
	if len(services) == 0 {
		return
	}
	for _, svc := range services {
		if svc.Installed(ctx) {
			return
		}
	}
	log.Printf("orchestrator event=bulk_install_start")
	if err := o.inst.InstallAll(ctx); err != nil {
		log.Printf("orchestrator event=bulk_install_fail err=%v", err)
	}
}

// Shutdown cleans up every service in registration order, collecting
// errors instead of stopping on them. Shutdown always completes.
func (o *Orchestrator) Shutdown(ctx context.Context) []error {
	var errs []error
	for _, svc := range o.all() {
		if err := svc.Cleanup(ctx); err != nil {
			log.Printf("orchestrator event=cleanup_failed service=%s err=%v", svc.Name(), err)
			errs = append(errs, fmt.Errorf("%s: %w", svc.Name(), err))
		}
	}
	return errs
}

// Health reports readiness per registered service. It never fails: a
// panicking Ready is reported as not ready.
func (o *Orchestrator) Health() map[string]bool {
	out := make(map[string]bool, len(o.names))
	for _, svc := range o.all() {
		out[svc.Name()] = safeReady(svc)
	}
	return out
}

// Healthy reports whether every registered service is ready.
func (o *Orchestrator) Healthy() bool {
	for _, ready := range o.Health() {
		if !ready {
			return false
		}
	}
	return true
}

// Status reports every service's Info keyed by name.
func (o *Orchestrator) Status() map[string]types.ServiceInfo {
	out := make(map[string]types.ServiceInfo, len(o.names))
	for _, svc := range o.all() {
		out[svc.Name()] = svc.Info()
	}
	return out
}

// DownloadStatus reports dependency install state per service.
func (o *Orchestrator) DownloadStatus(ctx context.Context) map[string]types.DownloadState {
	out := make(map[string]types.DownloadState, len(o.names))
	for _, svc := range o.all() {
		state := types.DownloadState{Installed: svc.Installed(ctx)}
		if o.inst != nil {
			state.Downloading = o.inst.Downloading(svc.Package())
		}
		out[svc.Name()] = state
	}
	return out
}

// Download installs the named service's dependency and initializes it.
// It runs under the same per-service lock as automatic initialization,
// so a concurrent automatic and manual attempt cannot race. An already
// ready service is a no-op success.
func (o *Orchestrator) Download(ctx context.Context, name string) error {
	svc := o.Service(name)
	if svc == nil {
		return ErrUnknownService(name)
	}
	return svc.Initialize(ctx)
}

// Service returns the named service, or nil.
func (o *Orchestrator) Service(name string) Service {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.services[name]
}

// Names returns the registered service names in registration order.
func (o *Orchestrator) Names() []string {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]string, len(o.names))
	copy(out, o.names)
	return out
}

func (o *Orchestrator) all() []Service {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]Service, 0, len(o.names))
	for _, name := range o.names {
		out = append(out, o.services[name])
	}
	return out
}

func safeReady(svc Service) (ready bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("orchestrator event=ready_panic service=%s err=%v", svc.Name(), r)
			ready = false
		}
	}()
	return svc.Ready()
}
