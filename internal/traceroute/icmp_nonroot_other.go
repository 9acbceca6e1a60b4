// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package traceroute

import "errors"

// newDgramProber is only implemented on linux, where time exceeded messages
// for unprivileged ICMP sockets are read from the socket error queue.
func newDgramProber() (hopProber, error) {
	return nil, errors.New("unprivileged ICMP tracing is only supported on linux")
}
