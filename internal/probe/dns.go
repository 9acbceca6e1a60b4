// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"net"
	"strings"

	"github.com/telekom/lanscan/internal/logger"
)

//go:generate go tool moq -out resolver_moq.go . Resolver
type Resolver interface {
	LookupAddr(ctx context.Context, addr string) ([]string, error)
}

// NewResolver returns the system resolver.
func NewResolver() Resolver {
	return net.DefaultResolver
}

// ReverseDNS performs a PTR lookup bounded by DNSTimeout.
//
// A lookup that succeeds without a usable name yields [StatusNotFound],
// while any resolver error (including NXDOMAIN and timeouts) yields [StatusFailed].
func (p *prober) ReverseDNS(ctx context.Context, ip string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.opts.DNSTimeout)
	defer cancel()

	names, err := p.resolver.LookupAddr(ctx, ip)
	if err != nil {
		logger.FromContext(ctx).DebugContext(ctx, "Reverse lookup failed", "ip", ip, "error", err)
		return Failed(err)
	}

	for _, name := range names {
		if name = strings.TrimSuffix(name, "."); name != "" {
			return Resolved(name)
		}
	}
	return NotFound()
}
