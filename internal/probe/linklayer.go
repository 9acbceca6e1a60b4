// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/telekom/lanscan/internal/logger"
)

// ErrUnsupportedPlatform is returned when link-layer resolution is not available on the current platform.
var ErrUnsupportedPlatform = errors.New("link-layer address resolution is not supported on this platform")

// LinkLayerResolver maps an IPv4 address on the local broadcast domain to its hardware address.
//
//go:generate go tool moq -out linklayer_moq.go . LinkLayerResolver
type LinkLayerResolver interface {
	ResolveLinkLayerAddress(ctx context.Context, ip string) Outcome
}

// arpTable maps IPv4 addresses to hardware addresses.
type arpTable map[string]net.HardwareAddr

// tableResolver resolves hardware addresses from a snapshot of the
// operating system's neighbour table, read on every lookup.
type tableResolver struct {
	read func(ctx context.Context) (arpTable, error)
}

// ResolveLinkLayerAddress returns Failed with the context error once ctx is done,
// even if the table reader does not observe ctx.
func (r *tableResolver) ResolveLinkLayerAddress(ctx context.Context, ip string) Outcome {
	type snapshot struct {
		table arpTable
		err   error
	}
	done := make(chan snapshot, 1)
	go func() {
		table, err := r.read(ctx)
		done <- snapshot{table, err}
	}()

	var table arpTable
	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case snap := <-done:
		table, err = snap.table, snap.err
	}
	if err != nil {
		logger.FromContext(ctx).DebugContext(ctx, "Failed to read ARP table", "ip", ip, "error", err)
		return Failed(err)
	}

	mac, ok := table[ip]
	if !ok {
		return NotFound()
	}
	return Resolved(mac.String())
}

// unsupportedResolver is used on platforms without a neighbour table reader.
type unsupportedResolver struct{}

func (unsupportedResolver) ResolveLinkLayerAddress(context.Context, string) Outcome {
	return Failed(ErrUnsupportedPlatform)
}

// parseProcNetARP parses the Linux /proc/net/arp format:
//
//	IP address       HW type     Flags       HW address            Mask     Device
//	192.168.1.1      0x1         0x2         aa:bb:cc:dd:ee:ff     *        eth0
func parseProcNetARP(r io.Reader) (arpTable, error) {
	table := arpTable{}
	scanner := bufio.NewScanner(r)

	// Skip header line
	if !scanner.Scan() {
		return table, scanner.Err()
	}

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 6 {
			continue
		}
		// Flags 0x0 marks an incomplete entry
		if fields[2] == "0x0" {
			continue
		}
		addEntry(table, fields[0], fields[3])
	}
	return table, scanner.Err()
}

// parseBSDArp parses the output of `arp -an` on macOS and the BSDs:
//
//	? (192.168.1.1) at aa:bb:cc:dd:ee:ff on en0 ifscope [ethernet]
func parseBSDArp(r io.Reader) (arpTable, error) {
	table := arpTable{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		open, closing := strings.Index(line, "("), strings.Index(line, ")")
		if open == -1 || closing <= open {
			continue
		}
		_, rest, ok := strings.Cut(line[closing:], " at ")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		addEntry(table, line[open+1:closing], fields[0])
	}
	return table, scanner.Err()
}

// parseWindowsArp parses the output of `arp -a` on Windows:
//
//	Interface: 192.168.1.100 --- 0xa
//	  Internet Address      Physical Address      Type
//	  192.168.1.1           aa-bb-cc-dd-ee-ff     dynamic
func parseWindowsArp(r io.Reader) (arpTable, error) {
	table := arpTable{}
	scanner := bufio.NewScanner(r)
	inTable := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "Interface:"):
			inTable = false
			continue
		case strings.Contains(line, "Internet Address") && strings.Contains(line, "Physical Address"):
			inTable = true
			continue
		case !inTable:
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		addEntry(table, fields[0], fields[1])
	}
	return table, scanner.Err()
}

// addEntry stores a parsed entry, skipping incomplete, broadcast and non-IPv4 ones.
func addEntry(table arpTable, ipStr, macStr string) {
	ip := net.ParseIP(ipStr)
	if ip == nil || ip.To4() == nil {
		return
	}
	mac, err := normalizeMAC(macStr)
	if err != nil {
		return
	}
	if isZeroMAC(mac) || isBroadcastMAC(mac) {
		return
	}
	table[ip.To4().String()] = mac
}

// normalizeMAC parses hardware addresses written with either ':' or '-'
// separators and with or without leading zeros per octet (macOS prints "0:1b:...").
func normalizeMAC(s string) (net.HardwareAddr, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == '-' })
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid hardware address %q", s)
	}
	for i, p := range parts {
		if len(p) == 1 {
			parts[i] = "0" + p
		}
	}
	return net.ParseMAC(strings.Join(parts, ":"))
}

func isZeroMAC(mac net.HardwareAddr) bool {
	for _, b := range mac {
		if b != 0 {
			return false
		}
	}
	return true
}

func isBroadcastMAC(mac net.HardwareAddr) bool {
	for _, b := range mac {
		if b != 0xff {
			return false
		}
	}
	return true
}
