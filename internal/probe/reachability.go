// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"net"
	"strconv"

	probing "github.com/prometheus-community/pro-bing"
	"github.com/telekom/lanscan/internal/logger"
)

// Reachable sends exactly one echo request and waits at most PingTimeout for the reply.
// A timed out probe is final; there are no retries.
func (p *prober) Reachable(ctx context.Context, ip string) bool {
	log := logger.FromContext(ctx).With("ip", ip)

	pinger, err := probing.NewPinger(ip)
	if err != nil {
		log.DebugContext(ctx, "Failed to create pinger", "error", err)
		return false
	}
	pinger.SetLogger(probing.NoopLogger{})
	pinger.SetPrivileged(p.opts.Privileged)
	pinger.Count = 1
	pinger.Timeout = p.opts.PingTimeout

	if err := pinger.RunWithContext(ctx); err != nil {
		log.DebugContext(ctx, "Echo request failed", "error", err)
		return false
	}

	stats := pinger.Statistics()
	return stats != nil && stats.PacketsRecv > 0
}

// PortOpen dials ip:port over TCP. A refused, timed out or otherwise failed
// connect are all reported as closed.
func (p *prober) PortOpen(ctx context.Context, ip string, port int) bool {
	d := net.Dialer{Timeout: p.opts.ConnectTimeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(ip, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
