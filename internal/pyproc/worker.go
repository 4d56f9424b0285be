// Package pyproc runs Python inference workers as child processes.
// Each worker loads its model, then serves HTTP on a loopback port:
// GET /healthz for readiness, GET /info for model metadata and one or
// more POST endpoints for inference. The parent owns the process for
// its whole lifetime and kills it on cleanup.
package pyproc

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"syscall"
	"time"
)

const (
	workerHost = "127.0.0.1"

	// Model construction may download weights on first run.
	defaultStartTimeout = 5 * time.Minute
)

// WorkerConfig configures a Worker.
type WorkerConfig struct {
	// Name is the capability name, used in logs and error messages.
	Name string
	// Python is the interpreter; empty selects "python3".
	Python string
	// Script is the path of the worker script to run.
	Script string
	// Args are extra arguments appended after --host/--port.
	Args []string
	// Env are extra KEY=VALUE entries appended to the inherited environment.
	Env []string
	// StartTimeout bounds the wait for readiness; zero selects the default.
	StartTimeout time.Duration
}

// Worker manages one Python worker process.
type Worker struct {
	name         string
	python       string
	script       string
	args         []string
	env          []string
	startTimeout time.Duration

	httpClient *http.Client

	mu      sync.Mutex
	cmd     *exec.Cmd
	baseURL string
	ready   bool
	pid     int
	stderr  *bytes.Buffer
	waitErr chan error
}

// NewWorker constructs a Worker; the process starts on Start.
func NewWorker(cfg WorkerConfig) *Worker {
	if cfg.Python == "" {
		cfg.Python = "python3"
	}
	if cfg.StartTimeout <= 0 {
		cfg.StartTimeout = defaultStartTimeout
	}
	// Timeout stays 0: every call carries a context with its own deadline.
	cli := &http.Client{Timeout: 0}
	return &Worker{
		name:         cfg.Name,
		python:       cfg.Python,
		script:       cfg.Script,
		args:         cfg.Args,
		env:          cfg.Env,
		startTimeout: cfg.StartTimeout,
		httpClient:   cli,
	}
}

// Start spawns the worker and waits for it to become healthy. Calling
// Start on a healthy worker is a no-op; an unhealthy one is restarted.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.cmd != nil {
		base, ready := w.baseURL, w.ready
		w.mu.Unlock()
		if ready && w.healthz(base, time.Second) {
			return nil
		}
		_ = w.Stop()
	} else {
		w.mu.Unlock()
	}

	port, err := pickFreePort(workerHost)
	if err != nil {
		return fmt.Errorf("%s worker: %w", w.name, err)
	}
	baseURL := fmt.Sprintf("http://%s:%d", workerHost, port)

	args := append([]string{w.script, "--host", workerHost, "--port", strconv.Itoa(port)}, w.args...)
	cmd := exec.Command(w.python, args...)
	cmd.Env = append(os.Environ(), w.env...)
	// Capture stderr for diagnostics; the tail is included on failure.
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s worker: %w", w.name, err)
	}
	log.Printf("pyproc worker=%s event=start pid=%d port=%d", w.name, cmd.Process.Pid, port)

	waitErrCh := make(chan error, 1)
	go func() { waitErrCh <- cmd.Wait() }()

	w.mu.Lock()
	w.cmd = cmd
	w.baseURL = baseURL
	w.ready = false
	w.pid = cmd.Process.Pid
	w.stderr = &stderr
	w.waitErr = waitErrCh
	w.mu.Unlock()

	deadline := time.Now().Add(w.startTimeout)
	for {
		if err := ctx.Err(); err != nil {
			_ = w.Stop()
			return err
		}
		if time.Now().After(deadline) {
			// Stop first so the process is reaped and stderr is quiescent.
			_ = w.Stop()
			log.Printf("pyproc worker=%s event=timeout pid=%d", w.name, cmd.Process.Pid)
			return fmt.Errorf("%s worker not ready in time: %s; stderr tail: %s", w.name, baseURL, tailBuf(&stderr))
		}

		// Surface a crash before readiness instead of polling until the deadline.
		select {
		case werr := <-waitErrCh:
			w.clear()
			tail := tailBuf(&stderr)
			log.Printf("pyproc worker=%s event=exit_early pid=%d err=%v", w.name, cmd.Process.Pid, werr)
			if werr != nil {
				return fmt.Errorf("%s worker exited early: %v; stderr tail: %s", w.name, werr, tail)
			}
			return fmt.Errorf("%s worker exited before ready; stderr tail: %s", w.name, tail)
		default:
		}

		if w.healthz(baseURL, time.Second) {
			break
		}
		time.Sleep(200 * time.Millisecond)
	}

	w.mu.Lock()
	w.ready = true
	w.mu.Unlock()
	log.Printf("pyproc worker=%s event=ready pid=%d url=%s", w.name, cmd.Process.Pid, baseURL)
	return nil
}

// Stop terminates the worker process if present. Best effort: SIGTERM,
// then kill after a short grace period. Idempotent.
func (w *Worker) Stop() error {
	w.mu.Lock()
	cmd, waitCh := w.cmd, w.waitErr
	pid := w.pid
	w.cmd = nil
	w.baseURL = ""
	w.ready = false
	w.waitErr = nil
	w.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)
	if waitCh == nil {
		_ = cmd.Process.Kill()
		return nil
	}
	select {
	case <-waitCh:
	case <-time.After(2 * time.Second):
		_ = cmd.Process.Kill()
		<-waitCh
	}
	log.Printf("pyproc worker=%s event=stop pid=%d", w.name, pid)
	return nil
}

// BaseURL returns the worker's address, or "" before Start.
func (w *Worker) BaseURL() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.baseURL
}

// PID returns the worker's process id, or 0 before Start.
func (w *Worker) PID() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cmd == nil {
		return 0
	}
	return w.pid
}

// Running reports whether a started worker passed its readiness check.
func (w *Worker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cmd != nil && w.ready
}

// Healthy probes the worker's /healthz endpoint.
func (w *Worker) Healthy(timeout time.Duration) bool {
	base := w.BaseURL()
	if base == "" {
		return false
	}
	return w.healthz(base, timeout)
}

func (w *Worker) clear() {
	w.mu.Lock()
	w.cmd = nil
	w.baseURL = ""
	w.ready = false
	w.waitErr = nil
	w.mu.Unlock()
}

func (w *Worker) healthz(baseURL string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func pickFreePort(host string) (int, error) {
	l, err := net.Listen("tcp", host+":0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	addr, ok := l.Addr().(*net.TCPAddr)
	if !ok {
		return 0, fmt.Errorf("unexpected addr: %s", l.Addr())
	}
	return addr.Port, nil
}

func tailBuf(b *bytes.Buffer) string {
	s := b.String()
	if len(s) > 4096 {
		s = s[len(s)-4096:]
	}
	return s
}
