// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"

	"github.com/telekom/lanscan/internal/probe"
	"github.com/telekom/lanscan/internal/traceroute"
	"github.com/telekom/lanscan/pkg/api"
	"github.com/telekom/lanscan/pkg/metrics"
)

type Config struct {
	// Scan is the configuration of the subnet scan
	Scan ScanConfig `yaml:"scan" mapstructure:"scan"`
	// Trace is the configuration of the route tracer
	Trace TraceConfig `yaml:"trace" mapstructure:"trace"`
	// Api is the configuration for the api server
	Api api.Config `yaml:"api" mapstructure:"api"`
	// Telemetry is the configuration for the telemetry
	Telemetry metrics.Config `yaml:"telemetry" mapstructure:"telemetry"`
}

// ScanConfig is the configuration of a subnet scan.
// The numeric inputs are kept as strings so that malformed input
// can fall back to the defaults instead of failing the scan.
type ScanConfig struct {
	// Subnet is the first three octets of the scanned /24, e.g. "192.168.1".
	// A trailing dot, a full address or an a.b.c.0/24 prefix are accepted too.
	Subnet string `yaml:"subnet" mapstructure:"subnet"`
	// Start is the first host number
	Start string `yaml:"start" mapstructure:"start"`
	// End is the last host number
	End string `yaml:"end" mapstructure:"end"`
	// Ports is a comma separated list of TCP ports
	Ports string `yaml:"ports" mapstructure:"ports"`
	// Threads is the maximum number of hosts probed at the same time
	Threads string `yaml:"threads" mapstructure:"threads"`
	// HideClosed hides hosts without an open port from the output
	HideClosed bool `yaml:"hideClosed" mapstructure:"hideClosed"`
	// Output is the path of the export file. Empty disables the export.
	Output string `yaml:"output" mapstructure:"output"`
	// Format is the export format. Empty derives it from the output file extension.
	Format string `yaml:"format" mapstructure:"format"`
	// Timeout bounds the whole scan. Zero disables the deadline.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// Rate is the maximum number of hosts started per second. Zero disables the limit.
	Rate float64 `yaml:"rate" mapstructure:"rate"`
	// Probe holds the timeouts of the probe primitives
	Probe probe.Options `yaml:"probe" mapstructure:"probe"`
}

// TraceConfig is the configuration of the route tracer
type TraceConfig struct {
	// MaxHops is the highest TTL probed
	MaxHops int `yaml:"maxHops" mapstructure:"maxHops"`
	// HopTimeout bounds the wait for the reply of a single hop
	HopTimeout time.Duration `yaml:"hopTimeout" mapstructure:"hopTimeout"`
	// Format is the output format of the trace, either text or json
	Format string `yaml:"format" mapstructure:"format"`
}

// Options returns the tracer options. Unset values take the tracer defaults.
func (c *TraceConfig) Options() *traceroute.Options {
	return &traceroute.Options{
		MaxTTL:  c.MaxHops,
		Timeout: c.HopTimeout,
	}
}

// HasApi returns true if the api server should be started
func (c *Config) HasApi() bool {
	return c.Api.ListeningAddress != ""
}

// HasExport returns true if the scan results should be exported
func (c *ScanConfig) HasExport() bool {
	return c.Output != ""
}
