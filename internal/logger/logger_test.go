// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr points os.Stderr at a pipe while fn runs and returns what was written.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	orig := os.Stderr
	os.Stderr = w
	t.Cleanup(func() { os.Stderr = orig })

	fn()
	require.NoError(t, w.Close())
	os.Stderr = orig

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestNewLogger_WritesToStderr(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "")
		t.Setenv("LOG_LEVEL", "")

		out := captureStderr(t, func() {
			NewLogger().Info("Scan complete", "hosts", 254)
		})

		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rec))
		assert.Equal(t, "Scan complete", rec["msg"])
		assert.Equal(t, "INFO", rec["level"])
		assert.InDelta(t, 254, rec["hosts"], 0)
		assert.Contains(t, rec, "source")
	})

	for _, format := range []string{"TEXT", "text", "Text"} {
		t.Run("text format "+format, func(t *testing.T) {
			t.Setenv("LOG_FORMAT", format)
			t.Setenv("LOG_LEVEL", "")

			out := captureStderr(t, func() {
				NewLogger().Warn("Scan canceled")
			})
			assert.Contains(t, out, `level=WARN`)
			assert.Contains(t, out, `msg="Scan canceled"`)
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level    string
		enabled  slog.Level
		disabled slog.Level
	}{
		{level: "", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		{level: "debug", enabled: slog.LevelDebug, disabled: slog.LevelDebug - 1},
		{level: "Warning", enabled: slog.LevelWarn, disabled: slog.LevelInfo},
		{level: "ERROR", enabled: slog.LevelError, disabled: slog.LevelWarn},
		{level: "verbose", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.level)
			log := NewLogger()
			assert.True(t, log.Enabled(t.Context(), tt.enabled))
			assert.False(t, log.Enabled(t.Context(), tt.disabled))
		})
	}
}

func TestNewLogger_CustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, nil)

	log := NewLogger(h)
	assert.Same(t, h, log.Handler())

	log.Info("Exported scan results")
	assert.Contains(t, buf.String(), "Exported scan results")
}

func TestContextPlumbing(t *testing.T) {
	log := NewLogger(slog.NewTextHandler(io.Discard, nil))

	t.Run("round trip", func(t *testing.T) {
		ctx := IntoContext(t.Context(), log)
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("fallback without logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(t.Context()))
		//nolint:staticcheck // a nil context must not panic
		assert.NotNil(t, FromContext(nil))
	})

	t.Run("child context inherits the logger", func(t *testing.T) {
		parent := IntoContext(t.Context(), log)
		ctx, cancel := NewContextWithLogger(parent)

		assert.Same(t, log, FromContext(ctx))
		cancel()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
		assert.NoError(t, parent.Err())
	})
}

func TestMiddleware(t *testing.T) {
	var buf bytes.Buffer
	ctx := IntoContext(t.Context(), NewLogger(slog.NewJSONHandler(&buf, nil)))

	handler := Middleware(ctx)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).InfoContext(r.Context(), "Serving scan progress", "path", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/scan/progress", http.NoBody))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Serving scan progress", entry["msg"])
	assert.Equal(t, "/v1/scan/progress", entry["path"])
}
