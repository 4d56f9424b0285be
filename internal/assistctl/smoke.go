package assistctl

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// runSmoke walks the daemon's read-only surface and runs the self-test
// endpoints of whichever services report ready. Nothing is installed
// and no daemon state changes, so it is safe against a live install.
func runSmoke(ctx context.Context, c *Client) error {
	if host, port, ok := localPort(c.base); ok {
		if busy, _ := isPortBusy(port); !busy {
			return fmt.Errorf("nothing listening on %s:%d; is assistd running?", host, port)
		}
	}

	if err := c.Healthz(ctx); err != nil {
		return fmt.Errorf("daemon not reachable: %w", err)
	}
	info("[smoke] healthz ok")

	health, err := c.Health(ctx)
	if err != nil {
		return err
	}
	info("[smoke] health status=%s version=%s services=%d", health.Status, health.Version, len(health.Services))

	status, err := c.Status(ctx)
	if err != nil {
		return err
	}
	if _, err := c.DownloadStatus(ctx); err != nil {
		return err
	}

	names := make([]string, 0, len(health.Services))
	for name := range health.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		ready, err := c.Ready(ctx, name)
		if err != nil {
			return err
		}
		inf, err := c.Info(ctx, name)
		if err != nil {
			return err
		}
		info("[smoke] %s ready=%v status=%s", name, ready.Ready, inf.Status)
		if !ready.Ready {
			warn("[smoke] %s not ready; skipping its self-test", name)
		}
		if ready.Ready != health.Services[name] {
			return fmt.Errorf("%s: /ready reports %v but /health reports %v", name, ready.Ready, health.Services[name])
		}
		if svc, ok := status[name]; ok && ready.Ready && svc.Status != "ready" {
			return fmt.Errorf("%s: ready but model status is %q", name, svc.Status)
		}
	}

	if health.Services["tts"] {
		voices, err := c.Voices(ctx)
		if err != nil {
			return err
		}
		info("[smoke] tts voices=%d", len(voices))
		res, err := c.TTSTest(ctx)
		if err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("tts self-test failed: %s", res.Error)
		}
		info("[smoke] tts self-test ok (%d bytes)", res.AudioLengthBytes)
	}

	if health.Services["embeddings"] {
		res, err := c.EmbeddingsTest(ctx)
		if err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("embeddings self-test failed: %s", res.Error)
		}
		info("[smoke] embeddings self-test ok (dimension %d)", res.EmbeddingDimension)
	}

	info("[smoke] all checks passed")
	return nil
}

// localPort extracts the port from base when it points at this host,
// so smoke can fail fast instead of waiting out an HTTP timeout.
func localPort(base string) (string, int, bool) {
	u, err := url.Parse(base)
	if err != nil {
		return "", 0, false
	}
	host := u.Hostname()
	if host != "127.0.0.1" && host != "localhost" {
		return "", 0, false
	}
	p := u.Port()
	if p == "" {
		return "", 0, false
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, false
	}
	return host, n, true
}
