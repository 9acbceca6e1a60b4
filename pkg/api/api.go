// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/telekom/lanscan/internal/logger"
)

//go:generate go tool moq -out api_moq.go . API
type API interface {
	// Run starts the api server and blocks until it is shut down
	Run(ctx context.Context) error
	// Shutdown gracefully stops the api server
	Shutdown(ctx context.Context) error
	// RegisterRoutes adds routes to the router. It must be called before Run.
	RegisterRoutes(ctx context.Context, routes ...Route) error
}

// Config is the configuration of the api server
type Config struct {
	// ListeningAddress is the address the server listens on, e.g. ":8080".
	// Empty disables the server.
	ListeningAddress string `yaml:"address" mapstructure:"address"`
}

// Validate checks that the listening address is a host:port pair
func (c *Config) Validate() error {
	if c.ListeningAddress == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(c.ListeningAddress); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return nil
}

// Route is a single endpoint of the api
type Route struct {
	Path    string
	Method  string
	Handler http.HandlerFunc
}

type api struct {
	server *http.Server
	router chi.Router

	mu      sync.Mutex
	running bool
}

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// New creates a new api server
func New(cfg Config) API {
	r := chi.NewRouter()
	return &api{
		server: &http.Server{Addr: cfg.ListeningAddress, Handler: r, ReadHeaderTimeout: readHeaderTimeout},
		router: r,
	}
}

// Run serves the registered routes until the context is done or the
// server is shut down.
func (a *api) Run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	a.mu.Lock()
	a.running = true
	a.mu.Unlock()

	cErr := make(chan error, 1)
	go func() {
		log.InfoContext(ctx, "Serving api", "addr", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "Failed to serve api", "error", err)
			cErr <- fmt.Errorf("%w: %w", ErrServeApi, err)
			return
		}
		cErr <- nil
	}()

	select {
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := a.Shutdown(sctx); err != nil {
			return err
		}
		return <-cErr
	case err := <-cErr:
		return err
	}
}

// Shutdown gracefully stops the server. Calling it on a server that
// never ran is a no-op.
func (a *api) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	running := a.running
	a.running = false
	a.mu.Unlock()
	if !running {
		return nil
	}

	if err := a.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.FromContext(ctx).ErrorContext(ctx, "Failed to shutdown api server", "error", err)
		return fmt.Errorf("failed to shutdown api server: %w", err)
	}
	return nil
}

// RegisterRoutes sets up the middleware and the given routes
func (a *api) RegisterRoutes(ctx context.Context, routes ...Route) error {
	a.router.Use(logger.Middleware(ctx), middleware.Recoverer)
	a.router.Get("/", okHandler)

	for _, route := range routes {
		switch route.Method {
		case http.MethodGet:
			a.router.Get(route.Path, route.Handler)
		case http.MethodHead:
			a.router.Head(route.Path, route.Handler)
		default:
			return ErrInvalidMethod{Method: route.Method, Path: route.Path}
		}
	}
	return nil
}

// okHandler answers the root path to signal that the server is up
func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
