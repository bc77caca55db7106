package slogx

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akashm011/Auth/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, parseLevel("warning"))
	require.Equal(t, slog.LevelError, parseLevel("error"))
	require.Equal(t, slog.LevelInfo, parseLevel(""))
}

func TestNewWritesToFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "auth.log")
	logger, closer := New(Config{Service: "auth", Env: "test", File: path})
	logger.Info("hello")
	require.NoError(t, closer.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"msg":"hello"`)
	require.Contains(t, string(raw), `"service":"auth"`)
}

func TestHTTPMiddlewareAttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var (
		fromCtx *slog.Logger
		reqID   string
	)
	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = FromContext(r.Context())
		reqID = RequestID(r.Context())
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("taken"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/v1/tenants", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.NotNil(t, fromCtx)
	require.NotSame(t, slog.Default(), fromCtx)
	require.Equal(t, "req-1", reqID)
	require.Equal(t, "req-1", rec.Header().Get(RequestIDHeader))

	out := buf.String()
	require.Contains(t, out, `"req_id":"req-1"`)
	require.Contains(t, out, `"status":409`)
	require.Contains(t, out, `"bytes":5`)
	require.Contains(t, out, `"level":"WARN"`)

	require.Same(t, slog.Default(), FromContext(context.Background()))
	require.Empty(t, RequestID(context.Background()))
}

func TestHTTPMiddlewareRequestIDs(t *testing.T) {
	h := HTTPMiddleware(slog.New(slog.DiscardHandler))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(RequestID(r.Context())))
	}))

	cases := map[string]string{
		"missing":   "",
		"oversized": strings.Repeat("a", maxRequestIDLen+1),
		"newline":   "abc\ninjected",
		"space":     "has space",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users/count", nil)
			if header != "" {
				req.Header.Set(RequestIDHeader, header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			id := rec.Header().Get(RequestIDHeader)
			require.NotEqual(t, header, id)
			_, err := idx.Parse(id)
			require.NoError(t, err, "replacement id is a ULID")
			require.Equal(t, id, rec.Body.String())
		})
	}
}

func TestHTTPMiddlewareHealthChecksLogAtDebug(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/readyz" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/livez", nil))
	require.Empty(t, buf.String())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Contains(t, buf.String(), `"level":"ERROR"`)
	require.Contains(t, buf.String(), `"status":503`)
}
