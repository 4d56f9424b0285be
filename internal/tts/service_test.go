package tts

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"assistd/internal/installer"
	"assistd/internal/service"
	"assistd/internal/wavio"
	"assistd/pkg/types"
)

type fakeBackend struct {
	mu        sync.Mutex
	startErr  error
	started   int
	stopped   int
	samples   []float32
	rate      int
	err       error
	lastText  string
	lastVoice string
	block     chan struct{}
}

func (f *fakeBackend) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.started++
	return nil
}

func (f *fakeBackend) Synthesize(ctx context.Context, text, voice string) ([]float32, int, error) {
	f.mu.Lock()
	f.lastText, f.lastVoice = text, voice
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		}
	}
	return f.samples, f.rate, f.err
}

func (f *fakeBackend) Describe() BackendInfo { return BackendInfo{Device: "cpu", Quantization: "fp16"} }

func (f *fakeBackend) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped++
	return nil
}

// okRunner makes every subprocess the installer launches succeed.
type okRunner struct{}

func (okRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return nil, nil, nil
}

func newService(t *testing.T, fb *fakeBackend) *Service {
	t.Helper()
	return New(Config{
		Voice:        "af_bella",
		Device:       "auto",
		Quantization: "fp16",
		CacheDir:     t.TempDir(),
		MaxWorkers:   2,
		MaxWait:      time.Second,
		Installer:    installer.New(installer.Config{Runner: okRunner{}}),
		Backend:      fb,
	})
}

func TestInitializeAndSynthesize(t *testing.T) {
	fb := &fakeBackend{samples: []float32{0.5, -0.5, 0.25}}
	s := newService(t, fb)

	if s.Ready() {
		t.Fatalf("ready before initialize")
	}
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !s.Ready() {
		t.Fatalf("not ready after initialize")
	}

	wav, err := s.Synthesize(context.Background(), "Hello there.", "")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	samples, rate, err := wavio.Decode(wav)
	if err != nil {
		t.Fatalf("decode wav: %v", err)
	}
	if rate != defaultSampleRate {
		t.Fatalf("rate=%d want %d", rate, defaultSampleRate)
	}
	if len(samples) != 3 {
		t.Fatalf("samples=%d want 3", len(samples))
	}
	if fb.lastText != "Hello there." || fb.lastVoice != "af_bella" {
		t.Fatalf("args: text=%q voice=%q", fb.lastText, fb.lastVoice)
	}
}

func TestSynthesizeBackendRate(t *testing.T) {
	fb := &fakeBackend{samples: []float32{0.1}, rate: 22050}
	s := newService(t, fb)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	wav, err := s.Synthesize(context.Background(), "hi", "")
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if _, rate, _ := wavio.Decode(wav); rate != 22050 {
		t.Fatalf("rate=%d want 22050", rate)
	}
}

func TestSynthesizeVoiceOverride(t *testing.T) {
	fb := &fakeBackend{samples: []float32{0.1}}
	s := newService(t, fb)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := s.Synthesize(context.Background(), "hi", "bf_alloy"); err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if fb.lastVoice != "bf_alloy" {
		t.Fatalf("voice=%q want bf_alloy", fb.lastVoice)
	}
}

func TestSynthesizeUnknownVoiceFallsBack(t *testing.T) {
	fb := &fakeBackend{samples: []float32{0.1}}
	s := newService(t, fb)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := s.Synthesize(context.Background(), "hi", "xx_nope"); err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if fb.lastVoice != "af_bella" {
		t.Fatalf("voice=%q want default af_bella", fb.lastVoice)
	}
}

func TestSynthesizeCustomCatalog(t *testing.T) {
	fb := &fakeBackend{samples: []float32{0.1}}
	s := New(Config{
		Voice:    "zz_custom",
		CacheDir: t.TempDir(),
		Voices: map[string]types.VoiceInfo{
			"zz_custom": {LangCode: "z", Description: "Test voice"},
		},
		Backend: fb,
	})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := s.Synthesize(context.Background(), "hi", "zz_custom"); err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if fb.lastVoice != "zz_custom" {
		t.Fatalf("voice=%q", fb.lastVoice)
	}
	// a stock voice is unknown to this catalog and falls back
	if _, err := s.Synthesize(context.Background(), "hi", "af_bella"); err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if fb.lastVoice != "zz_custom" {
		t.Fatalf("voice=%q want fallback zz_custom", fb.lastVoice)
	}
}

func TestSynthesizeValidation(t *testing.T) {
	s := newService(t, &fakeBackend{samples: []float32{0.1}})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := s.Synthesize(context.Background(), text, ""); !service.IsValidation(err) {
			t.Fatalf("text=%q: expected validation error, got %v", text, err)
		}
	}
}

func TestSynthesizeBeforeInitialize(t *testing.T) {
	s := newService(t, &fakeBackend{samples: []float32{0.1}})
	_, err := s.Synthesize(context.Background(), "hi", "")
	if !service.IsNotReady(err) {
		t.Fatalf("expected not ready, got %v", err)
	}
}

func TestSynthesizeBackendFailure(t *testing.T) {
	fb := &fakeBackend{err: errors.New("phonemizer blew up")}
	s := newService(t, fb)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	_, err := s.Synthesize(context.Background(), "hi", "")
	if !service.IsInferenceFailed(err) {
		t.Fatalf("expected inference failure, got %v", err)
	}
	// a failed request must not change readiness
	if !s.Ready() {
		t.Fatalf("service lost readiness after inference error")
	}
}

func TestSynthesizeNoAudio(t *testing.T) {
	s := newService(t, &fakeBackend{})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	_, err := s.Synthesize(context.Background(), "hi", "")
	if !service.IsInferenceFailed(err) {
		t.Fatalf("expected inference failure on empty audio, got %v", err)
	}
}

func TestSynthesizeBusy(t *testing.T) {
	fb := &fakeBackend{samples: []float32{0.1}, block: make(chan struct{})}
	s := New(Config{
		Voice:      "af_bella",
		CacheDir:   t.TempDir(),
		MaxWorkers: 1,
		MaxWait:    20 * time.Millisecond,
		Backend:    fb,
	})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Synthesize(context.Background(), "first", "")
	}()
	// wait for the first request to hold the only slot
	deadline := time.Now().Add(2 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatalf("first request never started")
		}
		fb.mu.Lock()
		started := fb.lastText != ""
		fb.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := s.Synthesize(context.Background(), "second", "")
	if !service.IsBusy(err) {
		t.Fatalf("expected busy, got %v", err)
	}
	close(fb.block)
	<-done
}

func TestServiceTest(t *testing.T) {
	fb := &fakeBackend{samples: []float32{0.5, -0.5}}
	s := newService(t, fb)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	res := s.Test(context.Background())
	if !res.Success || res.AudioLengthBytes == 0 || res.TestText != testText {
		t.Fatalf("result=%+v", res)
	}
	if fb.lastText != testText {
		t.Fatalf("test text not synthesized: %q", fb.lastText)
	}
}

func TestServiceTestFailure(t *testing.T) {
	s := newService(t, &fakeBackend{err: errors.New("no model")})
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	res := s.Test(context.Background())
	if res.Success || res.Error == "" {
		t.Fatalf("result=%+v", res)
	}
}

func TestVoicesCopy(t *testing.T) {
	s := newService(t, &fakeBackend{})
	voices := s.Voices()
	if len(voices) != 8 {
		t.Fatalf("voices=%d want 8", len(voices))
	}
	delete(voices, "af_bella")
	if len(s.Voices()) != 8 {
		t.Fatalf("catalog mutated through copy")
	}
}

func TestInfoStates(t *testing.T) {
	fb := &fakeBackend{}
	s := newService(t, fb)
	if got := s.Info(); got.Status != "not_initialized" {
		t.Fatalf("info=%+v", got)
	}
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	got := s.Info()
	if got.Status != "ready" || got.Voice != "af_bella" || got.CacheDir == "" {
		t.Fatalf("info=%+v", got)
	}
	if len(got.AvailableVoices) != 8 {
		t.Fatalf("voices=%d want 8", len(got.AvailableVoices))
	}
	// resolved device from the backend wins over the configured "auto"
	if got.Device != "cpu" || got.Quantization != "fp16" {
		t.Fatalf("info=%+v", got)
	}
}

func TestCleanup(t *testing.T) {
	fb := &fakeBackend{samples: []float32{0.1}}
	s := newService(t, fb)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := s.Cleanup(context.Background()); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if fb.stopped != 1 {
		t.Fatalf("backend stopped %d times, want 1", fb.stopped)
	}
	if _, err := s.Synthesize(context.Background(), "hi", ""); !service.IsNotReady(err) {
		t.Fatalf("expected not ready after cleanup, got %v", err)
	}
	if err := s.Initialize(context.Background()); !service.IsNotReady(err) {
		t.Fatalf("initialize after cleanup: %v", err)
	}
}

func TestNameAndPackage(t *testing.T) {
	s := newService(t, &fakeBackend{})
	if s.Name() != "tts" || s.Package() != "kokoro" {
		t.Fatalf("name=%q package=%q", s.Name(), s.Package())
	}
}
