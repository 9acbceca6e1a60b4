// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/lanscan/internal/traceroute"
	"github.com/telekom/lanscan/pkg/api"
	"github.com/telekom/lanscan/pkg/export"
	"github.com/telekom/lanscan/pkg/metrics"
	"github.com/telekom/lanscan/pkg/scan"
	"gopkg.in/yaml.v3"
)

func TestScanConfig_Request(t *testing.T) {
	tests := []struct {
		name string
		cfg  ScanConfig
		want scan.Request
	}{
		{
			name: "empty input falls back to defaults",
			cfg:  ScanConfig{Subnet: "192.168.1"},
			want: scan.Request{Prefix: "192.168.1", StartHost: 1, EndHost: 254, Ports: []int{22, 80, 443}, Concurrency: 16},
		},
		{
			name: "numbers are trimmed",
			cfg:  ScanConfig{Subnet: " 10.0.0 ", Start: " 5", End: "9 ", Ports: " 8080 ", Threads: " 2 ", HideClosed: true, Rate: 3},
			want: scan.Request{Prefix: "10.0.0", StartHost: 5, EndHost: 9, Ports: []int{8080}, Concurrency: 2, HideClosed: true, Rate: 3},
		},
		{
			name: "non-numeric input falls back",
			cfg:  ScanConfig{Subnet: "10.0.0", Start: "one", End: "x", Threads: "many"},
			want: scan.Request{Prefix: "10.0.0", StartHost: 1, EndHost: 254, Ports: []int{22, 80, 443}, Concurrency: 16},
		},
		{
			name: "non-positive threads fall back",
			cfg:  ScanConfig{Subnet: "10.0.0", Threads: "0"},
			want: scan.Request{Prefix: "10.0.0", StartHost: 1, EndHost: 254, Ports: []int{22, 80, 443}, Concurrency: 16},
		},
		{
			name: "start after end is kept",
			cfg:  ScanConfig{Subnet: "10.0.0", Start: "20", End: "10"},
			want: scan.Request{Prefix: "10.0.0", StartHost: 20, EndHost: 10, Ports: []int{22, 80, 443}, Concurrency: 16},
		},
		{
			name: "empty subnet is passed on",
			cfg:  ScanConfig{Subnet: "   "},
			want: scan.Request{Prefix: "", StartHost: 1, EndHost: 254, Ports: []int{22, 80, 443}, Concurrency: 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Request())
		})
	}
}

func TestParsePorts(t *testing.T) {
	tests := map[string][]int{
		"":                {22, 80, 443},
		"   ":             {22, 80, 443},
		"80":              {80},
		"80,443":          {80, 443},
		" 80 , 8080 ,":    {80, 8080},
		"http,ssh":        {22, 80, 443},
		"22,abc,443":      {22, 443},
		"0,65536,-1,1":    {1},
		"443,80,443":      {443, 80, 443},
		"65535":           {65535},
		"1.5,2":           {2},
		",,,":             {22, 80, 443},
		"99999999999999":  {22, 80, 443},
		"21, 22, 23, 25 ": {21, 22, 23, 25},
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParsePorts(in))
		})
	}
}

func TestNormalizeSubnet(t *testing.T) {
	tests := map[string]string{
		"192.168.1":       "192.168.1",
		"192.168.1.":      "192.168.1",
		" 192.168.1. ":    "192.168.1",
		"192.168.1.0/24":  "192.168.1",
		"192.168.1.77/24": "192.168.1",
		"192.168.1.77":    "192.168.1",
		"10.0.0.0/16":     "10.0.0.0/16",
		"lan":             "lan",
		"":                "",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, NormalizeSubnet(in))
		})
	}
}

func TestScanConfig_ExportFormat(t *testing.T) {
	assert.Equal(t, export.FormatCSV, (&ScanConfig{Output: "scan_results.csv"}).ExportFormat())
	assert.Equal(t, export.FormatJSON, (&ScanConfig{Output: "out.json"}).ExportFormat())
	assert.Equal(t, export.FormatYAML, (&ScanConfig{Output: "out.json", Format: "YAML"}).ExportFormat())
}

func TestTraceConfig_Options(t *testing.T) {
	assert.Equal(t, &traceroute.Options{MaxTTL: 12, Timeout: time.Second}, (&TraceConfig{MaxHops: 12, HopTimeout: time.Second}).Options())
	assert.Equal(t, &traceroute.Options{}, (&TraceConfig{}).Options())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr []error
		fields  []string
	}{
		{
			name: "valid",
			cfg: Config{
				Scan:      ScanConfig{Subnet: "192.168.1", Output: "scan.csv"},
				Trace:     TraceConfig{MaxHops: 30, Format: TraceFormatJSON},
				Api:       api.Config{ListeningAddress: ":8080"},
				Telemetry: metrics.Config{Exporter: metrics.STDOUT},
			},
		},
		{
			name: "empty config is valid",
			cfg:  Config{},
		},
		{
			name:   "subnet that is not a /24 prefix",
			cfg:    Config{Scan: ScanConfig{Subnet: "10.0.0.0/16"}},
			fields: []string{"subnet"},
		},
		{
			name:   "host number out of range",
			cfg:    Config{Scan: ScanConfig{Subnet: "10.0.0", Start: "-1", End: "300"}},
			fields: []string{"start", "end"},
		},
		{
			name:   "negative timeout and rate",
			cfg:    Config{Scan: ScanConfig{Subnet: "10.0.0", Timeout: -time.Second, Rate: -1}},
			fields: []string{"timeout", "rate"},
		},
		{
			name:    "unknown export format",
			cfg:     Config{Scan: ScanConfig{Subnet: "10.0.0", Output: "scan.xml", Format: "xml"}},
			wantErr: []error{ErrInvalidOutputFormat},
		},
		{
			name:    "unknown trace format",
			cfg:     Config{Trace: TraceConfig{Format: "html"}},
			wantErr: []error{ErrInvalidOutputFormat},
		},
		{
			name:   "ttl out of range",
			cfg:    Config{Trace: TraceConfig{MaxHops: 256, HopTimeout: -1}},
			fields: []string{"maxHops", "hopTimeout"},
		},
		{
			name:    "invalid api address",
			cfg:     Config{Api: api.Config{ListeningAddress: "8080"}},
			wantErr: []error{api.ErrInvalidAddress},
		},
		{
			name: "errors of all sections are joined",
			cfg: Config{
				Scan:  ScanConfig{Format: "xml"},
				Trace: TraceConfig{MaxHops: -1},
				Api:   api.Config{ListeningAddress: "nope"},
			},
			wantErr: []error{ErrInvalidOutputFormat, api.ErrInvalidAddress},
			fields:  []string{"maxHops"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(t.Context())
			if len(tt.wantErr) == 0 && len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
			for _, field := range tt.fields {
				assert.True(t, hasInvalidField(err, field), "expected an error for field %q in %v", field, err)
			}
		})
	}
}

// hasInvalidField walks the joined errors for an [ErrInvalidConfig] of field.
func hasInvalidField(err error, field string) bool {
	var cfgErr ErrInvalidConfig
	if errors.As(err, &cfgErr) && cfgErr.Field == field {
		return true
	}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if hasInvalidField(inner, field) {
				return true
			}
		}
	case interface{ Unwrap() error }:
		return hasInvalidField(e.Unwrap(), field)
	}
	return false
}

func TestErrInvalidConfig_Error(t *testing.T) {
	err := ErrInvalidConfig{Section: "scan", Field: "end", Reason: "host number 300 is out of range"}
	assert.Equal(t, "invalid scan.end: host number 300 is out of range", err.Error())
}

func TestConfig_YAML(t *testing.T) {
	in := `
scan:
  subnet: 192.168.178
  ports: "80,443"
  hideClosed: true
  output: scan.yaml
  timeout: 2m
  probe:
    pingTimeout: 250ms
trace:
  maxHops: 20
api:
  address: ":8080"
telemetry:
  exporter: grpc
  url: http://collector:4317
`
	var cfg Config
	require.NoError(t, yaml.Unmarshal([]byte(in), &cfg))
	assert.Equal(t, "192.168.178", cfg.Scan.Request().Prefix)
	assert.Equal(t, []int{80, 443}, cfg.Scan.Request().Ports)
	assert.True(t, cfg.Scan.HideClosed)
	assert.Equal(t, 2*time.Minute, cfg.Scan.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Scan.Probe.PingTimeout)
	assert.Equal(t, 20, cfg.Trace.MaxHops)
	assert.True(t, cfg.HasApi())
	assert.True(t, cfg.Scan.HasExport())
	assert.NoError(t, cfg.Validate(t.Context()))
}
