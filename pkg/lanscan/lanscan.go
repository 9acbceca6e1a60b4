// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package lanscan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/lanscan/internal/logger"
	"github.com/telekom/lanscan/internal/probe"
	"github.com/telekom/lanscan/internal/traceroute"
	"github.com/telekom/lanscan/pkg"
	"github.com/telekom/lanscan/pkg/api"
	"github.com/telekom/lanscan/pkg/config"
	"github.com/telekom/lanscan/pkg/export"
	"github.com/telekom/lanscan/pkg/metrics"
	"github.com/telekom/lanscan/pkg/scan"
)

const shutdownTimeout = time.Second * 30

// sessionRunner runs a single scan session
type sessionRunner interface {
	Run(ctx context.Context, sess *scan.Session) error
	GetMetricCollectors() []prometheus.Collector
}

// Lanscan wires the scanner, the tracer, the api and the telemetry
// together for a single command invocation.
type Lanscan struct {
	// config is the startup configuration
	config *config.Config
	// api serves metrics and the live scan state if enabled
	api api.API
	// metrics holds the prometheus registry and the tracer provider
	metrics metrics.Provider
	// scanner runs scan sessions
	scanner sessionRunner
	// tracer traces routes
	tracer traceroute.Client
	// render writes the human readable output
	render *Renderer

	// mu guards session
	mu sync.Mutex
	// session is the current scan session, nil before the first scan
	session *scan.Session
	// shutOnce ensures that the components are only shut down once
	shutOnce sync.Once
}

// New creates lanscan from the given config, writing its output to out
// and the progress indicator to progress.
func New(cfg *config.Config, out, progress io.Writer) *Lanscan {
	m := metrics.New(cfg.Telemetry)
	return &Lanscan{
		config:  cfg,
		api:     api.New(cfg.Api),
		metrics: m,
		scanner: scan.NewScanner(scan.NewHostProber(probe.New(cfg.Scan.Probe))),
		tracer:  traceroute.NewClient(),
		render:  NewRenderer(out, progress),
	}
}

// Scan runs one scan with the configured request, renders its event stream
// and exports the results if an output file is configured. If the api is
// enabled it keeps serving the finished scan until ctx is canceled.
func (l *Lanscan) Scan(ctx context.Context) (err error) {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	log := logger.FromContext(ctx)
	defer cancel()

	if err = l.start(ctx); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, l.shutdown(ctx))
	}()

	cErr := make(chan error, 1)
	if l.config.HasApi() {
		go func() {
			cErr <- l.startupAPI(ctx)
		}()
	}

	sess := scan.NewSession(l.config.Scan.Request())
	l.setSession(sess)

	sctx := ctx
	if l.config.Scan.Timeout > 0 {
		var scancel context.CancelFunc
		sctx, scancel = context.WithTimeout(ctx, l.config.Scan.Timeout)
		defer scancel()
	}

	cDone := make(chan error, 1)
	go func() {
		cDone <- l.scanner.Run(sctx, sess)
	}()
	l.render.Scan(sess.Events())
	scanErr := <-cDone

	switch {
	case errors.Is(scanErr, scan.ErrInvalidSubnet), errors.Is(scanErr, scan.ErrInvalidRequest):
		return scanErr
	case scanErr != nil:
		log.WarnContext(ctx, "Scan did not finish", "error", scanErr)
	}

	if l.config.Scan.HasExport() {
		path := l.config.Scan.Output
		eErr := export.WriteFile(ctx, path, l.config.Scan.ExportFormat(), sess.Results())
		l.render.Line(export.Message(path, eErr))
		if eErr != nil {
			return eErr
		}
	}

	if !l.config.HasApi() {
		return nil
	}

	log.InfoContext(ctx, "Scan finished, serving results until interrupted", "addr", l.config.Api.ListeningAddress)
	select {
	case <-ctx.Done():
		return nil
	case apiErr := <-cErr:
		if apiErr != nil {
			log.ErrorContext(ctx, "Non-recoverable error in api", "error", apiErr)
		}
		return apiErr
	}
}

// Trace traces the route to target and renders the hops in the configured format.
func (l *Lanscan) Trace(ctx context.Context, target string) (err error) {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()

	if err = l.start(ctx); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, l.shutdown(ctx))
	}()

	res := l.tracer.Trace(ctx, target, l.config.Trace.Options(), l.render.TraceProgress)
	return l.render.Trace(res, l.config.Trace.Format)
}

// start initializes tracing and registers the metric collectors.
func (l *Lanscan) start(ctx context.Context) error {
	if err := l.metrics.InitTracing(ctx); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	registry := l.metrics.GetRegistry()
	for _, c := range append(l.scanner.GetMetricCollectors(), l.tracer.GetMetricCollectors()...) {
		if err := registry.Register(c); err != nil {
			return fmt.Errorf("failed to register metrics: %w", err)
		}
	}
	if err := metrics.RegisterBuildInfo(registry, pkg.Version); err != nil {
		return fmt.Errorf("failed to register build info: %w", err)
	}
	return nil
}

// startupAPI registers the lanscan routes and runs the api
func (l *Lanscan) startupAPI(ctx context.Context) error {
	routes := []api.Route{
		{Path: "/metrics", Method: http.MethodGet, Handler: l.handleMetrics},
		{Path: "/v1/scan/progress", Method: http.MethodGet, Handler: l.handleProgress},
		{Path: "/v1/scan/results", Method: http.MethodGet, Handler: l.handleResults},
		{Path: "/openapi", Method: http.MethodGet, Handler: l.handleOpenAPI},
	}
	if err := l.api.RegisterRoutes(ctx, routes...); err != nil {
		logger.FromContext(ctx).ErrorContext(ctx, "Error while registering routes", "error", err)
		return err
	}
	return l.api.Run(ctx)
}

// Session returns the current scan session, nil if no scan was started
func (l *Lanscan) Session() *scan.Session {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.session
}

func (l *Lanscan) setSession(sess *scan.Session) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.session = sess
}

// shutdown shuts down all managed components gracefully.
func (l *Lanscan) shutdown(ctx context.Context) (err error) {
	errC := ctx.Err()
	log := logger.FromContext(ctx)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	l.shutOnce.Do(func() {
		log.DebugContext(ctx, "Shutting down lanscan")
		var sErrs ErrShutdown
		if l.config.HasApi() {
			sErrs.errAPI = l.api.Shutdown(ctx)
		}
		sErrs.errMetrics = l.metrics.Shutdown(ctx)

		if sErrs.HasError() {
			log.ErrorContext(ctx, "Failed to shutdown gracefully", "contextError", errC, "errors", sErrs)
			err = sErrs
		}
	})
	return err
}
