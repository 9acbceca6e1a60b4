// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"context"

	"github.com/telekom/lanscan/internal/logger"
	"github.com/telekom/lanscan/internal/probe"
)

var _ HostProber = (*hostProber)(nil)

// HostProber probes a single address.
//
//go:generate go tool moq -out hostprober_moq.go . HostProber
type HostProber interface {
	// Probe returns the result for ip and true if the host is reachable.
	// Unreachable hosts yield false and no result.
	Probe(ctx context.Context, ip string, ports []int) (HostResult, bool)
}

type hostProber struct {
	probes probe.Prober
}

// NewHostProber composes the given probe primitives into a [HostProber].
func NewHostProber(p probe.Prober) HostProber {
	return &hostProber{probes: p}
}

// Probe checks reachability first. For reachable hosts the name, hardware
// address and SSDP banner are looked up, then every port is tried in order.
// Repeated ports are probed once.
func (h *hostProber) Probe(ctx context.Context, ip string, ports []int) (HostResult, bool) {
	log := logger.FromContext(ctx).With("ip", ip)
	if !h.probes.Reachable(ctx, ip) {
		return HostResult{}, false
	}
	log.DebugContext(ctx, "Host is reachable")

	res := HostResult{
		IP:        ip,
		FQDN:      h.probes.ReverseDNS(ctx, ip),
		MAC:       h.probes.LinkLayer(ctx, ip),
		SSDP:      h.probes.SSDP(ctx, ip),
		OpenPorts: []int{},
	}

	seen := make(map[int]struct{}, len(ports))
	for _, port := range ports {
		if _, ok := seen[port]; ok {
			continue
		}
		seen[port] = struct{}{}
		if h.probes.PortOpen(ctx, ip, port) {
			res.OpenPorts = append(res.OpenPorts, port)
		}
	}

	log.DebugContext(ctx, "Host probed", "fqdn", res.FQDN.Status.String(), "mac", res.MAC.Status.String(), "openPorts", res.OpenPorts)
	return res, true
}
