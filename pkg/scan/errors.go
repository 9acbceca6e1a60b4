// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scan

import "errors"

var (
	// ErrInvalidSubnet is returned when the subnet prefix is empty
	ErrInvalidSubnet = errors.New("invalid subnet")
	// ErrInvalidRequest is returned when a scan request cannot be scanned
	ErrInvalidRequest = errors.New("invalid scan request")
	// ErrSessionUsed is returned when a session is run a second time
	ErrSessionUsed = errors.New("scan session has already been run")
)
