// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/lanscan/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

// Status messages emitted on the event stream.
const (
	MessageScanning      = "Scanning..."
	MessageComplete      = "Scan complete."
	MessageInvalidSubnet = "Invalid subnet."
	MessageCanceled      = "Scan canceled."
)

// Scanner runs scan sessions.
type Scanner struct {
	prober  HostProber
	newGate func(limit int) Gate
	metrics metrics
	tracer  trace.Tracer
}

// NewScanner creates a [Scanner] probing hosts with p.
func NewScanner(p HostProber) *Scanner {
	return &Scanner{
		prober:  p,
		newGate: NewGate,
		metrics: newMetrics(),
		tracer:  otel.Tracer("scan"),
	}
}

// GetMetricCollectors returns the prometheus collectors of the scanner
func (s *Scanner) GetMetricCollectors() []prometheus.Collector {
	return s.metrics.GetCollectors()
}

// Run scans every host of the session's request and blocks until all of them
// have been processed. At most Request.Concurrency hosts are probed at once.
// The session's event stream is closed when Run returns.
//
// An empty subnet aborts before any host is touched and returns [ErrInvalidSubnet].
// If ctx is canceled, hosts that were not admitted yet are counted as processed
// without being probed and the context error is returned.
func (s *Scanner) Run(ctx context.Context, sess *Session) error {
	if !sess.start() {
		return ErrSessionUsed
	}
	defer sess.close()

	log := logger.FromContext(ctx)
	req := sess.Request()
	if err := req.Validate(); err != nil {
		if errors.Is(err, ErrInvalidSubnet) {
			sess.message(MessageInvalidSubnet)
		} else {
			sess.message(err.Error())
		}
		log.WarnContext(ctx, "Refusing to scan", "error", err)
		return err
	}

	ctx, span := s.tracer.Start(ctx, "scan.Run", trace.WithAttributes(
		attribute.String("scan.prefix", req.Prefix),
		attribute.Int("scan.start_host", req.StartHost),
		attribute.Int("scan.end_host", req.EndHost),
		attribute.IntSlice("scan.ports", req.Ports),
		attribute.Int("scan.concurrency", req.Concurrency),
	))
	defer span.End()

	total := req.Total()
	log.InfoContext(ctx, "Starting scan", "prefix", req.Prefix, "start", req.StartHost, "end", req.EndHost, "hosts", total, "concurrency", req.Concurrency)
	sess.message(MessageScanning)
	s.metrics.progress.Set(0)
	sess.observe(func(p Progress) { s.metrics.progress.Set(p.Fraction) })

	gate := s.newGate(req.Concurrency)
	var limiter *rate.Limiter
	if req.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(req.Rate), 1)
	}

	var wg sync.WaitGroup
	for host := req.StartHost; host <= req.EndHost; host++ {
		addr := req.Address(host)
		if err := admit(ctx, gate, limiter); err != nil {
			log.DebugContext(ctx, "Host not admitted", "ip", addr, "error", err)
			sess.complete(nil)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.probeHost(ctx, sess, gate, addr, req.Ports)
		}()
	}
	wg.Wait()

	if total == 0 {
		sess.completeEmpty()
	}

	if err := ctx.Err(); err != nil {
		sess.message(MessageCanceled)
		span.SetStatus(codes.Error, "scan canceled")
		span.RecordError(err)
		log.WarnContext(ctx, "Scan canceled", "error", err)
		return err
	}

	sess.message(MessageComplete)
	log.InfoContext(ctx, "Scan complete", "hosts", total, "up", len(sess.Results()))
	return nil
}

// admit waits for the rate limiter, if any, and then for a free gate slot.
func admit(ctx context.Context, gate Gate, limiter *rate.Limiter) error {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}
	return gate.Acquire(ctx)
}

// probeHost runs the host prober for addr. The deferred block always records
// the host as processed and then frees its gate slot, even if probing panics.
func (s *Scanner) probeHost(ctx context.Context, sess *Session, gate Gate, addr string, ports []int) {
	log := logger.FromContext(ctx)
	start := time.Now()
	var res *HostResult

	defer func() {
		if r := recover(); r != nil {
			log.ErrorContext(ctx, "Probing host panicked", "ip", addr, "panic", r)
			res = nil
		}
		sess.complete(res)
		s.metrics.observe(res, time.Since(start))
		gate.Release()
	}()

	ctx, span := s.tracer.Start(ctx, "scan.probeHost", trace.WithAttributes(
		attribute.String("scan.host.ip", addr),
	))
	defer span.End()

	if r, ok := s.prober.Probe(ctx, addr, ports); ok {
		res = &r
		span.SetAttributes(
			attribute.Bool("scan.host.reachable", true),
			attribute.IntSlice("scan.host.open_ports", r.OpenPorts),
		)
		return
	}
	span.SetAttributes(attribute.Bool("scan.host.reachable", false))
}
