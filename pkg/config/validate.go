// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/telekom/lanscan/internal/logger"
)

// Trace output formats
const (
	TraceFormatText = "text"
	TraceFormatJSON = "json"
)

// Validate validates the startup config
func (c *Config) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)

	if vErr := c.Scan.Validate(ctx); vErr != nil {
		log.Error("The scan configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if vErr := c.Trace.Validate(ctx); vErr != nil {
		log.Error("The trace configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if vErr := c.Telemetry.Validate(ctx); vErr != nil {
		log.Error("The telemetry configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if vErr := c.Api.Validate(); vErr != nil {
		log.Error("The api configuration is invalid")
		err = errors.Join(err, vErr)
	}

	if err != nil {
		return fmt.Errorf("validation of configuration failed: %w", err)
	}
	return nil
}

// Validate validates the scan configuration. Malformed numbers are not
// reported since they fall back to defaults. An empty subnet is left to
// the scanner, which reports it to the user.
func (c *ScanConfig) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)
	req := c.Request()

	if req.Prefix != "" && !isPrefix(req.Prefix) {
		log.Error("The subnet must consist of three octets", "subnet", c.Subnet)
		err = errors.Join(err, ErrInvalidConfig{Section: "scan", Field: "subnet", Reason: fmt.Sprintf("%q is not an IPv4 /24 prefix", c.Subnet)})
	}

	hosts := []struct {
		field string
		host  int
	}{{"start", req.StartHost}, {"end", req.EndHost}}
	for _, h := range hosts {
		if h.host < 0 || h.host > 255 {
			log.Error("The host number must be an octet", "field", h.field, "host", h.host)
			err = errors.Join(err, ErrInvalidConfig{Section: "scan", Field: h.field, Reason: fmt.Sprintf("host number %d is out of range", h.host)})
		}
	}

	if c.Timeout < 0 {
		log.Error("The scan timeout must not be negative", "timeout", c.Timeout)
		err = errors.Join(err, ErrInvalidConfig{Section: "scan", Field: "timeout", Reason: "must not be negative"})
	}

	if c.Rate < 0 {
		log.Error("The scan rate must not be negative", "rate", c.Rate)
		err = errors.Join(err, ErrInvalidConfig{Section: "scan", Field: "rate", Reason: "must not be negative"})
	}

	if (c.HasExport() || c.Format != "") && !c.ExportFormat().IsValid() {
		log.Error("The export format is not supported", "format", c.Format)
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Format))
	}

	return err
}

// Validate validates the trace configuration
func (c *TraceConfig) Validate(ctx context.Context) (err error) {
	log := logger.FromContext(ctx)

	if c.MaxHops < 0 || c.MaxHops > 255 {
		log.Error("The maximum hop count must be between 0 and 255", "maxHops", c.MaxHops)
		err = errors.Join(err, ErrInvalidConfig{Section: "trace", Field: "maxHops", Reason: fmt.Sprintf("%d is not a valid TTL", c.MaxHops)})
	}

	if c.HopTimeout < 0 {
		log.Error("The hop timeout must not be negative", "hopTimeout", c.HopTimeout)
		err = errors.Join(err, ErrInvalidConfig{Section: "trace", Field: "hopTimeout", Reason: "must not be negative"})
	}

	if c.Format != "" && !slices.Contains([]string{TraceFormatText, TraceFormatJSON}, c.Format) {
		log.Error("The trace output format is not supported", "format", c.Format)
		err = errors.Join(err, fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Format))
	}

	return err
}
