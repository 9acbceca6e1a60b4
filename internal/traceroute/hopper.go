// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"net"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// hopper walks the TTLs of a single trace, one hop after another.
type hopper struct {
	prober     hopProber
	resolver   Resolver
	otelTracer trace.Tracer
	dst        net.IP
	opts       Options
	onProgress ProgressFunc
}

// run probes TTL 1 to opts.MaxTTL and stops at the first echo reply.
// An error ends the walk and is returned together with the hops recorded so far.
func (h *hopper) run(ctx context.Context) ([]Hop, Status, error) {
	hops := make([]Hop, 0, h.opts.MaxTTL)
	for ttl := 1; ttl <= h.opts.MaxTTL; ttl++ {
		if h.onProgress != nil {
			h.onProgress(ttl, h.opts.MaxTTL)
		}

		hop, err := h.hop(ctx, ttl)
		if err != nil {
			return hops, StatusFailed, err
		}
		hops = append(hops, hop)
		if hop.Reached {
			return hops, StatusSucceeded, nil
		}
	}
	return hops, StatusMaxTTLExceeded, nil
}

// hop probes a single TTL and classifies the reply.
func (h *hopper) hop(ctx context.Context, ttl int) (Hop, error) {
	ctx, span := h.otelTracer.Start(ctx, "traceroute.hop", trace.WithAttributes(
		attribute.Stringer("traceroute.target.address", h.dst),
		attribute.Int("traceroute.target.ttl", ttl),
	))
	defer span.End()

	start := time.Now()
	reply, err := h.prober.probe(ctx, h.dst, ttl, h.opts.Timeout)
	if err != nil {
		return Hop{}, wrapError(ctx, err, "failed to probe hop %d", ttl)
	}
	latency := time.Since(start)

	switch reply.kind {
	case replyTimeExceeded, replyEcho:
		hop := Hop{
			TTL:     ttl,
			Addr:    reply.addr,
			Name:    resolveName(ctx, h.resolver, reply.addr, h.opts.Timeout),
			Reached: reply.kind == replyEcho,
			Latency: latency,
		}
		span.AddEvent("ICMP message received", trace.WithAttributes(
			attribute.Bool("traceroute.target.reached", hop.Reached),
			attribute.Stringer("traceroute.target.hop", hop),
		))
		return hop, nil
	default:
		hop := Hop{
			TTL:      ttl,
			TimedOut: true,
			Latency:  latency,
		}
		span.AddEvent("No usable reply received", trace.WithAttributes(
			attribute.Bool("traceroute.target.reached", false),
			attribute.Stringer("traceroute.target.hop", hop),
		))
		return hop, nil
	}
}
