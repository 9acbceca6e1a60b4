// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telekom/lanscan/internal/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var _ Client = (*client)(nil)

// Client is able to trace the route to a target.
//
//go:generate go tool moq -out client_moq.go . Client
type Client interface {
	// Trace walks the route to target and reports each TTL to onProgress
	// before it is probed. It never fails: problems are reported through the
	// status and the diagnostic line of the returned [Result].
	Trace(ctx context.Context, target string, opts *Options, onProgress ProgressFunc) Result
	// GetMetricCollectors returns the prometheus collectors of the client.
	GetMetricCollectors() []prometheus.Collector
}

// ProgressFunc receives the TTL about to be probed and the maximum TTL.
type ProgressFunc func(ttl, maxTTL int)

// Resolver performs the forward and reverse lookups of a trace.
// [net.DefaultResolver] satisfies it.
//
//go:generate go tool moq -out resolver_moq.go . Resolver
type Resolver interface {
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

type client struct {
	resolver  Resolver
	newProber func(ctx context.Context) (hopProber, error)
	metrics   metrics
	tracer    trace.Tracer
}

// Option configures a [Client].
type Option func(*client)

// WithResolver replaces the system resolver.
func WithResolver(r Resolver) Option {
	return func(c *client) {
		c.resolver = r
	}
}

// NewClient creates a [Client] sending ICMP echo requests.
func NewClient(opts ...Option) Client {
	c := &client{
		resolver:  net.DefaultResolver,
		newProber: newHopProber,
		metrics:   newMetrics(),
		tracer:    otel.Tracer("traceroute"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GetMetricCollectors returns the prometheus collectors of the client.
func (c *client) GetMetricCollectors() []prometheus.Collector {
	return c.metrics.GetCollectors()
}

func (c *client) Trace(ctx context.Context, target string, opts *Options, onProgress ProgressFunc) (res Result) {
	o := opts.withDefaults()
	target = strings.TrimSpace(target)
	res = Result{Target: target, Hops: []Hop{}}

	ctx, span := c.tracer.Start(ctx, "traceroute.Trace", trace.WithAttributes(
		attribute.String("traceroute.target", target),
		attribute.Int("traceroute.options.max_hops", o.MaxTTL),
		attribute.Stringer("traceroute.options.timeout", o.Timeout),
	))
	defer span.End()
	log := logger.FromContext(ctx).With("target", target)

	defer func() {
		if r := recover(); r != nil {
			res.Status = StatusFailed
			res.Err = wrapError(ctx, fmt.Errorf("%v", r), "trace panicked")
		}
	}()

	if target == "" {
		res.Status = StatusInvalidTarget
		span.SetStatus(codes.Error, "empty target")
		return res
	}

	dst, err := c.resolve(ctx, target, o.Timeout)
	switch {
	case errors.Is(err, errIPv6Unsupported):
		res.Status = StatusFailed
		res.Err = wrapError(ctx, err, "cannot trace %s", target)
		return res
	case err != nil:
		res.Status = StatusResolutionFailed
		res.Err = wrapError(ctx, err, "failed to resolve %s", target)
		return res
	}
	res.Destination = dst
	span.SetAttributes(attribute.Stringer("traceroute.destination", dst))

	hp, err := c.newProber(ctx)
	if err != nil {
		res.Status = StatusFailed
		res.Err = wrapError(ctx, err, "failed to open ICMP socket")
		return res
	}
	defer func() { _ = hp.Close() }()

	log.InfoContext(ctx, "Tracing route", "destination", dst, "maxHops", o.MaxTTL, "timeout", o.Timeout)
	start := time.Now()
	h := &hopper{
		prober:     hp,
		resolver:   c.resolver,
		otelTracer: c.tracer,
		dst:        dst,
		opts:       o,
		onProgress: onProgress,
	}
	res.Hops, res.Status, res.Err = h.run(ctx)
	c.metrics.set(&res, time.Since(start))
	logHops(ctx, res.Hops)

	log.InfoContext(ctx, "Trace finished", "status", res.Status.String(), "hops", len(res.Hops))
	span.SetAttributes(
		attribute.Int("traceroute.hops", len(res.Hops)),
		attribute.Stringer("traceroute.status", res.Status),
	)
	return res
}

// resolve parses target as an address literal or resolves it through DNS,
// taking the first IPv4 address.
func (c *client) resolve(ctx context.Context, target string, timeout time.Duration) (net.IP, error) {
	if ip := net.ParseIP(target); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			return v4, nil
		}
		return nil, errIPv6Unsupported
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	addrs, err := c.resolver.LookupIPAddr(ctx, target)
	if err != nil {
		return nil, err
	}
	for _, a := range addrs {
		if v4 := a.IP.To4(); v4 != nil {
			return v4, nil
		}
	}
	return nil, errNoIPv4
}
