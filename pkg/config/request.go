// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/telekom/lanscan/pkg/export"
	"github.com/telekom/lanscan/pkg/scan"
)

// Request builds the scan request. Malformed numbers fall back to the
// defaults. Invalid port items are skipped and an empty port list falls
// back to the default ports.
func (c *ScanConfig) Request() scan.Request {
	return scan.Request{
		Prefix:      NormalizeSubnet(c.Subnet),
		StartHost:   parseInt(c.Start, scan.DefaultStartHost),
		EndHost:     parseInt(c.End, scan.DefaultEndHost),
		Ports:       ParsePorts(c.Ports),
		Concurrency: parseThreads(c.Threads),
		HideClosed:  c.HideClosed,
		Rate:        c.Rate,
	}
}

// ExportFormat returns the configured export format or the one
// derived from the output file extension.
func (c *ScanConfig) ExportFormat() export.Format {
	if f := strings.TrimSpace(c.Format); f != "" {
		return export.Format(strings.ToLower(f))
	}
	return export.FormatFromPath(c.Output)
}

// NormalizeSubnet reduces the subnet input to its first three octets.
// Input that does not look like an IPv4 subnet is returned trimmed so
// that validation can report it.
func NormalizeSubnet(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	if p, err := netip.ParsePrefix(s); err == nil {
		if p.Addr().Is4() && p.Bits() == 24 {
			return octets(p.Masked().Addr())
		}
		return s
	}

	s = strings.TrimSuffix(s, ".")
	if a, err := netip.ParseAddr(s); err == nil && a.Is4() {
		return octets(a)
	}
	return s
}

// ParsePorts parses a comma separated port list.
func ParsePorts(s string) []int {
	var ports []int
	for item := range strings.SplitSeq(s, ",") {
		p, err := strconv.Atoi(strings.TrimSpace(item))
		if err != nil || p < 1 || p > 65535 {
			continue
		}
		ports = append(ports, p)
	}
	if len(ports) == 0 {
		return scan.DefaultPorts()
	}
	return ports
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return v
}

func parseThreads(s string) int {
	v := parseInt(s, scan.DefaultConcurrency)
	if v < 1 {
		return scan.DefaultConcurrency
	}
	return v
}

func octets(a netip.Addr) string {
	b := a.As4()
	return strconv.Itoa(int(b[0])) + "." + strconv.Itoa(int(b[1])) + "." + strconv.Itoa(int(b[2]))
}

// isPrefix reports whether s consists of exactly three decimal octets.
func isPrefix(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 || p != strconv.Itoa(v) {
			return false
		}
	}
	return true
}
