package httpapi

import (
	"log"
	"net/http"
	"os"

	"github.com/rs/zerolog"
)

// zlog is an optional structured logger. If unset, falls back to log.Printf.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog = &l }

// logRequestError records a server-side request failure. 5xx responses
// are logged regardless of the request log level.
func logRequestError(r *http.Request, status int, err error) {
	if zlog != nil {
		zlog.Error().
			Int("status", status).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Err(err).
			Msg("request failed")
		return
	}
	log.Printf("httpapi status=%d method=%s path=%s err=%v", status, r.Method, r.URL.Path, err)
}

// requestDebugf emits a per-request trace line when the request (or the
// process) asks for debug logging.
func requestDebugf(r *http.Request, format string, args ...any) {
	if requestLogLevel(r) < LevelDebug {
		return
	}
	if zlog != nil {
		zlog.Debug().Str("path", r.URL.Path).Msgf(format, args...)
		return
	}
	log.Printf("httpapi path=%s "+format, append([]any{r.URL.Path}, args...)...)
}

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// global default, read once
var defaultLogLevel = parseLevel(os.Getenv("ASSISTD_LOG_LEVEL"))

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}
