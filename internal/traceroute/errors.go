// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import "errors"

var (
	// errICMPNotAvailable is returned when neither a raw nor an unprivileged
	// ICMP socket can be opened. This typically occurs without NET_RAW
	// capabilities on hosts that restrict ping sockets (net.ipv4.ping_group_range).
	errICMPNotAvailable = errors.New("no NET_RAW capabilities, ICMP not available")
	// errNoIPv4 is returned when a target resolves only to non IPv4 addresses.
	errNoIPv4 = errors.New("no IPv4 address found")
	// errNoPTR is returned when a reverse lookup succeeds without any name.
	errNoPTR = errors.New("no PTR record")
	// errIPv6Unsupported is returned for IPv6 address literals.
	errIPv6Unsupported = errors.New("IPv6 targets are not supported")
)
