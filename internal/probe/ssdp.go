// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/telekom/lanscan/internal/logger"
)

// ssdpBufSize is large enough for any single SSDP response datagram.
const ssdpBufSize = 2048

// ssdpRequest returns the unicast M-SEARCH payload for ip.
// The HOST header always names the well-known port.
func ssdpRequest(ip string) []byte {
	return fmt.Appendf(nil,
		"M-SEARCH * HTTP/1.1\r\nHOST: %s:%d\r\nMAN: \"ssdp:discover\"\r\nMX: 1\r\nST: ssdp:all\r\n\r\n",
		ip, SSDPPort)
}

// parseSSDPResponse returns the first line starting with SERVER: or LOCATION:,
// compared case-insensitively.
func parseSSDPResponse(b []byte) (string, bool) {
	for line := range strings.SplitSeq(string(b), "\r\n") {
		upper := strings.ToUpper(line)
		if strings.HasPrefix(upper, "SERVER:") || strings.HasPrefix(upper, "LOCATION:") {
			return line, true
		}
	}
	return "", false
}

// SSDP sends one M-SEARCH request to ip and consults only the first reply
// that comes back from that address. Replies from other addresses are ignored.
func (p *prober) SSDP(ctx context.Context, ip string) Outcome {
	log := logger.FromContext(ctx).With("ip", ip)
	dst := &net.UDPAddr{IP: net.ParseIP(ip), Port: p.ssdpPort}
	if dst.IP == nil {
		return Failed(fmt.Errorf("invalid address %q", ip))
	}

	var lc net.ListenConfig
	conn, err := lc.ListenPacket(ctx, "udp4", ":0")
	if err != nil {
		log.DebugContext(ctx, "Failed to open SSDP socket", "error", err)
		return Failed(err)
	}
	defer func() { _ = conn.Close() }()

	deadline := time.Now().Add(p.opts.SSDPTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err = conn.SetDeadline(deadline); err != nil {
		return Failed(err)
	}

	if _, err = conn.WriteTo(ssdpRequest(ip), dst); err != nil {
		log.DebugContext(ctx, "Failed to send M-SEARCH", "error", err)
		return Failed(err)
	}

	buf := make([]byte, ssdpBufSize)
	for {
		n, from, rErr := conn.ReadFrom(buf)
		if rErr != nil {
			log.DebugContext(ctx, "No SSDP reply", "error", rErr)
			return Failed(rErr)
		}
		if ua, ok := from.(*net.UDPAddr); ok && !ua.IP.Equal(dst.IP) {
			continue
		}

		if line, ok := parseSSDPResponse(buf[:n]); ok {
			return Resolved(line)
		}
		return NotFound()
	}
}
