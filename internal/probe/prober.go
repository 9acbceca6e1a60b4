// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"time"
)

// Default timeouts of the probe primitives.
const (
	DefaultPingTimeout    = 300 * time.Millisecond
	DefaultConnectTimeout = 300 * time.Millisecond
	DefaultDNSTimeout     = time.Second
	DefaultSSDPTimeout    = time.Second
	DefaultMACTimeout     = time.Second
	// SSDPPort is the well-known SSDP port.
	SSDPPort = 1900
)

var _ Prober = (*prober)(nil)

// Prober bundles the per-address probe primitives.
// None of the methods return errors: every failure is folded into a
// negative answer or a non-resolved [Outcome].
//
//go:generate go tool moq -out prober_moq.go . Prober
type Prober interface {
	// Reachable sends a single ICMP echo and reports whether a reply arrived in time.
	Reachable(ctx context.Context, ip string) bool
	// PortOpen reports whether a TCP connection to ip:port completes in time.
	PortOpen(ctx context.Context, ip string, port int) bool
	// ReverseDNS performs a PTR lookup for ip.
	ReverseDNS(ctx context.Context, ip string) Outcome
	// LinkLayer resolves the hardware address of an on-link ip.
	LinkLayer(ctx context.Context, ip string) Outcome
	// SSDP sends a unicast M-SEARCH to ip and returns the first SERVER or LOCATION header line.
	SSDP(ctx context.Context, ip string) Outcome
}

// Options configures the probe primitives.
type Options struct {
	// PingTimeout bounds the ICMP echo of the reachability probe.
	PingTimeout time.Duration `json:"pingTimeout" yaml:"pingTimeout" mapstructure:"pingTimeout"`
	// ConnectTimeout bounds each TCP connect of the port probe.
	ConnectTimeout time.Duration `json:"connectTimeout" yaml:"connectTimeout" mapstructure:"connectTimeout"`
	// DNSTimeout bounds the PTR lookup.
	DNSTimeout time.Duration `json:"dnsTimeout" yaml:"dnsTimeout" mapstructure:"dnsTimeout"`
	// SSDPTimeout bounds sending the M-SEARCH request and waiting for the reply.
	SSDPTimeout time.Duration `json:"ssdpTimeout" yaml:"ssdpTimeout" mapstructure:"ssdpTimeout"`
	// MACTimeout bounds reading the neighbour table.
	MACTimeout time.Duration `json:"macTimeout" yaml:"macTimeout" mapstructure:"macTimeout"`
	// Privileged sends echo requests over a raw socket instead of an unprivileged datagram socket.
	Privileged bool `json:"privileged" yaml:"privileged" mapstructure:"privileged"`
}

// DefaultOptions returns the options with the default timeouts.
func DefaultOptions() Options {
	return Options{
		PingTimeout:    DefaultPingTimeout,
		ConnectTimeout: DefaultConnectTimeout,
		DNSTimeout:     DefaultDNSTimeout,
		SSDPTimeout:    DefaultSSDPTimeout,
		MACTimeout:     DefaultMACTimeout,
	}
}

// withDefaults replaces unset timeouts with their defaults.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.PingTimeout <= 0 {
		o.PingTimeout = d.PingTimeout
	}
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = d.ConnectTimeout
	}
	if o.DNSTimeout <= 0 {
		o.DNSTimeout = d.DNSTimeout
	}
	if o.SSDPTimeout <= 0 {
		o.SSDPTimeout = d.SSDPTimeout
	}
	if o.MACTimeout <= 0 {
		o.MACTimeout = d.MACTimeout
	}
	return o
}

type prober struct {
	opts      Options
	resolver  Resolver
	linkLayer LinkLayerResolver
	// ssdpPort is the destination port of the M-SEARCH request.
	ssdpPort int
}

// New creates a [Prober] using the system resolver and the
// link-layer capability of the current platform.
func New(opts Options) Prober {
	return &prober{
		opts:      opts.withDefaults(),
		resolver:  NewResolver(),
		linkLayer: NewLinkLayerResolver(),
		ssdpPort:  SSDPPort,
	}
}

// LinkLayer delegates to the platform's [LinkLayerResolver], bounded by MACTimeout.
func (p *prober) LinkLayer(ctx context.Context, ip string) Outcome {
	ctx, cancel := context.WithTimeout(ctx, p.opts.MACTimeout)
	defer cancel()
	return p.linkLayer.ResolveLinkLayerAddress(ctx, ip)
}
