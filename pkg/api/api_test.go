// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		wantErr bool
	}{
		{name: "disabled", addr: ""},
		{name: "port only", addr: ":8080"},
		{name: "host and port", addr: "127.0.0.1:9090"},
		{name: "ipv6", addr: "[::1]:9090"},
		{name: "missing port", addr: "localhost", wantErr: true},
		{name: "bare port", addr: "8080", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Config{ListeningAddress: tt.addr}).Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestAPI_RegisterRoutes(t *testing.T) {
	a := New(Config{ListeningAddress: ":0"})
	err := a.RegisterRoutes(t.Context(),
		Route{Path: "/v1/ping", Method: http.MethodGet, Handler: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("pong"))
		}},
		Route{Path: "/v1/panic", Method: http.MethodGet, Handler: func(http.ResponseWriter, *http.Request) {
			panic("handler failed")
		}},
	)
	require.NoError(t, err)

	router := a.(*api).router
	tests := []struct {
		path string
		code int
		body string
	}{
		{path: "/", code: http.StatusOK, body: "ok"},
		{path: "/v1/ping", code: http.StatusOK, body: "pong"},
		{path: "/v1/panic", code: http.StatusInternalServerError},
		{path: "/v1/unknown", code: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequestWithContext(t.Context(), http.MethodGet, tt.path, http.NoBody))
			assert.Equal(t, tt.code, rec.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestAPI_RegisterRoutes_InvalidMethod(t *testing.T) {
	a := New(Config{ListeningAddress: ":0"})
	err := a.RegisterRoutes(t.Context(), Route{Path: "/v1/scan", Method: http.MethodPost, Handler: okHandler})

	var mErr ErrInvalidMethod
	require.ErrorAs(t, err, &mErr)
	assert.Equal(t, http.MethodPost, mErr.Method)
}

func TestAPI_Run(t *testing.T) {
	addr := freeAddr(t)
	a := New(Config{ListeningAddress: addr})
	require.NoError(t, a.RegisterRoutes(t.Context()))

	ctx, cancel := context.WithCancel(t.Context())
	cErr := make(chan error, 1)
	go func() { cErr <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		req, err := http.NewRequestWithContext(t.Context(), http.MethodGet, "http://"+addr+"/", http.NoBody)
		if err != nil {
			return false
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-cErr:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.NoError(t, a.Shutdown(t.Context()), "a second shutdown is a no-op")
}

func TestAPI_Run_AddressInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	a := New(Config{ListeningAddress: l.Addr().String()})
	err = a.Run(t.Context())
	assert.ErrorIs(t, err, ErrServeApi)
}

func TestAPI_ShutdownWithoutRun(t *testing.T) {
	assert.NoError(t, New(Config{ListeningAddress: ":0"}).Shutdown(t.Context()))
}

func TestErrCreateOpenapiSchema(t *testing.T) {
	cause := assert.AnError
	err := NewErrCreateOpenapiSchema("scan results", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "scan results")
}

// freeAddr returns a loopback address that was free a moment ago.
func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}
