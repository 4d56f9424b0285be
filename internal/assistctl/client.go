package assistctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assistd/pkg/types"
)

// Client is a thin HTTP client for a running assistd daemon. It speaks
// the /api surface and decodes responses into pkg/types.
type Client struct {
	base string
	http *http.Client
}

// NewClient wraps addr (scheme://host:port, no trailing slash required)
// with a per-request timeout.
func NewClient(addr string, timeout time.Duration) *Client {
	return &Client{
		base: strings.TrimRight(addr, "/"),
		http: &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path string, dst any) error {
	url := c.base + path
	debug("[client] %s %s", method, url)
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr types.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	return c.do(ctx, http.MethodGet, path, dst)
}

func (c *Client) postJSON(ctx context.Context, path string, dst any) error {
	return c.do(ctx, http.MethodPost, path, dst)
}

// Healthz hits the liveness probe and succeeds on any 2xx.
func (c *Client) Healthz(ctx context.Context) error {
	return c.getJSON(ctx, "/healthz", nil)
}

// Health reports the aggregate daemon health and per-service readiness.
func (c *Client) Health(ctx context.Context) (types.HealthResponse, error) {
	var out types.HealthResponse
	err := c.getJSON(ctx, "/api/health", &out)
	return out, err
}

// Status returns the detailed per-service model status.
func (c *Client) Status(ctx context.Context) (map[string]types.ServiceInfo, error) {
	out := make(map[string]types.ServiceInfo)
	err := c.getJSON(ctx, "/api/models/status", &out)
	return out, err
}

// DownloadStatus reports installed/downloading flags per service.
func (c *Client) DownloadStatus(ctx context.Context) (map[string]types.DownloadState, error) {
	out := make(map[string]types.DownloadState)
	err := c.getJSON(ctx, "/api/models/download-status", &out)
	return out, err
}

// Download asks the daemon to install the named service's runtime
// dependencies. The daemon reports per-service failure in the body
// rather than the status code, so callers must check Success.
func (c *Client) Download(ctx context.Context, service string) (types.DownloadResponse, error) {
	var out types.DownloadResponse
	err := c.postJSON(ctx, "/api/models/download/"+service, &out)
	return out, err
}

// Ready reports whether the named service has finished initializing.
func (c *Client) Ready(ctx context.Context, service string) (types.ReadyResponse, error) {
	var out types.ReadyResponse
	err := c.getJSON(ctx, "/api/"+service+"/ready", &out)
	return out, err
}

// Info returns the named service's self-description.
func (c *Client) Info(ctx context.Context, service string) (types.ServiceInfo, error) {
	var out types.ServiceInfo
	err := c.getJSON(ctx, "/api/"+service+"/info", &out)
	return out, err
}

// Voices lists the voices the speech synthesizer can use.
func (c *Client) Voices(ctx context.Context) (map[string]types.VoiceInfo, error) {
	out := make(map[string]types.VoiceInfo)
	err := c.getJSON(ctx, "/api/tts/voices", &out)
	return out, err
}

// TTSTest runs the daemon's built-in synthesis self-test.
func (c *Client) TTSTest(ctx context.Context) (types.TTSTestResult, error) {
	var out types.TTSTestResult
	err := c.postJSON(ctx, "/api/tts/test", &out)
	return out, err
}

// EmbeddingsTest runs the daemon's built-in embedding self-test.
func (c *Client) EmbeddingsTest(ctx context.Context) (types.EmbeddingTestResult, error) {
	var out types.EmbeddingTestResult
	err := c.postJSON(ctx, "/api/embeddings/test", &out)
	return out, err
}
