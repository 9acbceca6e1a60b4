// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOutputFormat is returned when the export or trace output format is unknown
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

// ErrInvalidConfig is returned when a single configuration field is invalid
type ErrInvalidConfig struct {
	// Section is the configuration section of the field, e.g. "scan"
	Section string
	// Field is the name of the invalid field
	Field string
	// Reason describes why the value was rejected
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return fmt.Sprintf("invalid %s.%s: %s", e.Section, e.Field, e.Reason)
}
