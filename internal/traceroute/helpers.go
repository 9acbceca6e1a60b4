// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/telekom/lanscan/internal/logger"
	"github.com/telekom/lanscan/internal/probe"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ipFromAddr extracts the IP address from a [net.Addr].
func ipFromAddr(addr net.Addr) net.IP {
	switch a := addr.(type) {
	case *net.UDPAddr:
		return a.IP
	case *net.TCPAddr:
		return a.IP
	case *net.IPAddr:
		return a.IP
	}
	return nil
}

// resolveName performs a reverse DNS lookup for the responder of a hop.
// A missing address is reported as not found, a failed or empty lookup as failed.
func resolveName(ctx context.Context, r Resolver, ip net.IP, timeout time.Duration) probe.Outcome {
	if ip == nil {
		return probe.NotFound()
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	names, err := r.LookupAddr(ctx, ip.String())
	if err != nil {
		logger.FromContext(ctx).DebugContext(ctx, "Reverse lookup of hop failed", "ip", ip, "error", err)
		return probe.Failed(err)
	}
	for _, n := range names {
		if n = strings.TrimSuffix(n, "."); n != "" {
			return probe.Resolved(n)
		}
	}
	return probe.Failed(errNoPTR)
}

// logHops logs the hops in a structured format.
func logHops(ctx context.Context, hops []Hop) {
	log := logger.FromContext(ctx)
	for _, hop := range hops {
		log.DebugContext(ctx, hop.String(), "latency", hop.Latency)
	}
}

// wrapError wraps an error with a message and logs it.
// It also records the error in the current OpenTelemetry span.
func wrapError(ctx context.Context, err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)
	caser := cases.Title(language.English)

	text := fmt.Sprintf(msg, args...)
	log.ErrorContext(ctx, caser.String(text), "error", err)
	span.SetStatus(codes.Error, text)
	span.RecordError(err)
	return fmt.Errorf("%s: %w", text, err)
}
