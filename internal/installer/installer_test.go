package installer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeRunner records every invocation and returns scripted results.
type fakeRunner struct {
	mu     sync.Mutex
	calls  [][]string
	err    error
	stderr string
	block  chan struct{} // when non-nil, Run waits for close or ctx
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	f.mu.Unlock()
	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}
	return nil, []byte(f.stderr), f.err
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRunner) pipCalls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out [][]string
	for _, c := range f.calls {
		if len(c) > 2 && c[1] == "-m" && c[2] == "pip" {
			out = append(out, c)
		}
	}
	return out
}

func newTestInstaller(r CommandRunner) *Installer {
	return New(Config{Python: "python3", Runner: r})
}

func TestEnsureInstalled_ProbeSucceedsWithoutInstall(t *testing.T) {
	fr := &fakeRunner{}
	inst := newTestInstaller(fr)
	probe := func(ctx context.Context) error { return nil }
	if err := inst.EnsureInstalled(context.Background(), "faster-whisper", probe); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if !inst.Installed("faster-whisper") {
		t.Fatalf("expected installed")
	}
	if got := fr.pipCalls(); len(got) != 0 {
		t.Fatalf("expected no pip calls, got %v", got)
	}
}

func TestEnsureInstalled_InstallsAndVerifies(t *testing.T) {
	fr := &fakeRunner{}
	inst := newTestInstaller(fr)
	n := 0
	probe := func(ctx context.Context) error {
		n++
		if n == 1 {
			return errors.New("no module named faster_whisper")
		}
		return nil
	}
	if err := inst.EnsureInstalled(context.Background(), "faster-whisper", probe); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	pip := fr.pipCalls()
	if len(pip) != 1 {
		t.Fatalf("expected one pip call, got %v", pip)
	}
	spec := pip[0][len(pip[0])-1]
	if !strings.HasPrefix(spec, "faster-whisper>=") {
		t.Fatalf("expected pinned spec, got %q", spec)
	}
	if n != 2 {
		t.Fatalf("probe called %d times, want 2", n)
	}
	if !inst.Installed("faster-whisper") {
		t.Fatalf("expected installed")
	}
}

func TestEnsureInstalled_FastPathSkipsRunner(t *testing.T) {
	fr := &fakeRunner{}
	inst := newTestInstaller(fr)
	if err := inst.EnsureInstalled(context.Background(), "torch", nil); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	before := fr.callCount()
	if err := inst.EnsureInstalled(context.Background(), "torch", nil); err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if fr.callCount() != before {
		t.Fatalf("expected no extra subprocess calls on fast path")
	}
}

func TestEnsureInstalled_PipFailure(t *testing.T) {
	fr := &fakeRunner{err: errors.New("exit status 1"), stderr: "No matching distribution"}
	inst := newTestInstaller(fr)
	probe := func(ctx context.Context) error { return errors.New("missing") }
	err := inst.EnsureInstalled(context.Background(), "kokoro", probe)
	if !IsDependencyUnavailable(err) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if inst.Installed("kokoro") {
		t.Fatalf("failed install must not mark installed")
	}
	if inst.Downloading("kokoro") {
		t.Fatalf("downloading flag leaked")
	}
	if !strings.Contains(err.Error(), "No matching distribution") {
		t.Fatalf("stderr tail missing from error: %v", err)
	}
}

func TestEnsureInstalled_ImportFailsAfterInstall(t *testing.T) {
	fr := &fakeRunner{}
	inst := newTestInstaller(fr)
	probe := func(ctx context.Context) error { return errors.New("broken wheel") }
	err := inst.EnsureInstalled(context.Background(), "kokoro", probe)
	if !IsImportFailed(err) {
		t.Fatalf("expected import failure, got %v", err)
	}
	if inst.Installed("kokoro") {
		t.Fatalf("must not be marked installed")
	}
	// retryable: a second attempt runs pip again
	if err := inst.EnsureInstalled(context.Background(), "kokoro", probe); !IsImportFailed(err) {
		t.Fatalf("expected import failure on retry, got %v", err)
	}
	if got := len(fr.pipCalls()); got != 2 {
		t.Fatalf("expected 2 pip attempts, got %d", got)
	}
}

func TestEnsureInstalled_SingleFlight(t *testing.T) {
	fr := &fakeRunner{}
	inst := newTestInstaller(fr)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := inst.EnsureInstalled(context.Background(), "soundfile", nil); err != nil {
				t.Errorf("ensure: %v", err)
			}
		}()
	}
	wg.Wait()
	if got := len(fr.pipCalls()); got != 1 {
		t.Fatalf("expected exactly one pip install, got %d", got)
	}
}

func TestDownloadingVisibleDuringInstall(t *testing.T) {
	fr := &fakeRunner{block: make(chan struct{})}
	inst := newTestInstaller(fr)
	done := make(chan error, 1)
	go func() { done <- inst.EnsureInstalled(context.Background(), "librosa", nil) }()

	deadline := time.Now().Add(2 * time.Second)
	for !inst.Downloading("librosa") {
		if time.Now().After(deadline) {
			t.Fatalf("downloading flag never set")
		}
		time.Sleep(time.Millisecond)
	}
	close(fr.block)
	if err := <-done; err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if inst.Downloading("librosa") {
		t.Fatalf("downloading flag not cleared")
	}
	if !inst.Installed("librosa") {
		t.Fatalf("expected installed")
	}
}

func TestEnsureInstalled_ContextCanceled(t *testing.T) {
	fr := &fakeRunner{block: make(chan struct{})}
	inst := newTestInstaller(fr)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- inst.EnsureInstalled(ctx, "torch", nil) }()
	cancel()
	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if IsDependencyUnavailable(err) {
		t.Fatalf("cancellation must not map to dependency unavailable")
	}
}

func TestEnsureInstalled_UnknownPackageUsesBareName(t *testing.T) {
	fr := &fakeRunner{}
	inst := newTestInstaller(fr)
	if err := inst.EnsureInstalled(context.Background(), "weird-pkg", nil); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	pip := fr.pipCalls()
	if len(pip) != 1 || pip[0][len(pip[0])-1] != "weird-pkg" {
		t.Fatalf("expected bare name install, got %v", pip)
	}
}

func TestInstallAll_BuiltinSpecs(t *testing.T) {
	fr := &fakeRunner{}
	inst := newTestInstaller(fr)
	if err := inst.InstallAll(context.Background()); err != nil {
		t.Fatalf("install all: %v", err)
	}
	pip := fr.pipCalls()
	if len(pip) != 1 {
		t.Fatalf("expected one bulk pip call, got %d", len(pip))
	}
	joined := strings.Join(pip[0], " ")
	for _, pkg := range []string{"faster-whisper", "kokoro", "sentence-transformers", "torch", "soundfile", "librosa", "transformers"} {
		if !strings.Contains(joined, pkg) {
			t.Fatalf("bulk install missing %s: %s", pkg, joined)
		}
		if !inst.Installed(pkg) {
			t.Fatalf("%s not marked installed", pkg)
		}
	}
}

func TestInstallAll_RequirementsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSpecFile(t, dir, "faster-whisper==1.0.3\nkokoro>=0.9.2\n")
	fr := &fakeRunner{}
	inst := New(Config{Python: "python3", SpecsFile: path, Runner: fr})
	if err := inst.InstallAll(context.Background()); err != nil {
		t.Fatalf("install all: %v", err)
	}
	pip := fr.pipCalls()
	if len(pip) != 1 {
		t.Fatalf("expected one pip call, got %d", len(pip))
	}
	joined := strings.Join(pip[0], " ")
	if !strings.Contains(joined, "-r "+path) {
		t.Fatalf("expected -r %s in %s", path, joined)
	}
	if !inst.Installed("faster-whisper") || !inst.Installed("kokoro") {
		t.Fatalf("file packages not marked installed")
	}
	if inst.Installed("torch") {
		t.Fatalf("unlisted package must not be marked installed")
	}
}

func TestInstallAll_Failure(t *testing.T) {
	fr := &fakeRunner{err: errors.New("exit status 1"), stderr: "resolver error"}
	inst := newTestInstaller(fr)
	err := inst.InstallAll(context.Background())
	if !IsDependencyUnavailable(err) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if inst.Installed("torch") || inst.Downloading("torch") {
		t.Fatalf("failed bulk install leaked state")
	}
}

func TestImportProbe(t *testing.T) {
	fr := &fakeRunner{}
	inst := newTestInstaller(fr)
	if err := inst.ImportProbe("faster_whisper")(context.Background()); err != nil {
		t.Fatalf("probe: %v", err)
	}
	fr.mu.Lock()
	call := fr.calls[0]
	fr.mu.Unlock()
	if call[0] != "python3" || call[1] != "-c" || call[2] != "import faster_whisper" {
		t.Fatalf("unexpected probe call: %v", call)
	}

	frFail := &fakeRunner{err: errors.New("exit status 1"), stderr: "ModuleNotFoundError: faster_whisper"}
	err := New(Config{Runner: frFail}).ImportProbe("faster_whisper")(context.Background())
	if err == nil || !strings.Contains(err.Error(), "ModuleNotFoundError") {
		t.Fatalf("expected stderr in probe error, got %v", err)
	}
}
