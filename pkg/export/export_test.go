// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/lanscan/internal/probe"
	"github.com/telekom/lanscan/pkg/scan"
	"gopkg.in/yaml.v3"
)

func testResults() []scan.HostResult {
	return []scan.HostResult{
		{
			IP:        "192.168.1.20",
			FQDN:      probe.Resolved("host, one"),
			MAC:       probe.Resolved("aa:bb:cc:dd:ee:01"),
			OpenPorts: []int{22, 80},
			SSDP:      probe.Resolved(`SERVER: Linux UPnP/1.0 "tv"`),
		},
		{
			IP:        "192.168.1.3",
			FQDN:      probe.NotFound(),
			MAC:       probe.Failed(probe.ErrUnsupportedPlatform),
			OpenPorts: []int{},
			SSDP:      probe.NotFound(),
		},
	}
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, testResults()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "IP,FQDN,MAC,OpenPorts,SSDP,MDNS,SNMP", lines[0])
	assert.Equal(t, "192.168.1.3,Unknown Host,Unknown MAC,,-,,", lines[1])
	assert.Equal(t, `192.168.1.20,"host, one",aa:bb:cc:dd:ee:01,22;80,"SERVER: Linux UPnP/1.0 ""tv""",,`, lines[2])

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, "host, one", rows[2][1])
	assert.Equal(t, `SERVER: Linux UPnP/1.0 "tv"`, rows[2][4])
}

func TestWrite_CSVNoResults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, nil))
	assert.Equal(t, "IP,FQDN,MAC,OpenPorts,SSDP,MDNS,SNMP\n", buf.String())
}

func TestWrite_Structured(t *testing.T) {
	want := []scan.Record{
		{IP: "192.168.1.3", FQDN: "Unknown Host", MAC: "Unknown MAC", OpenPorts: []int{}, SSDP: "-"},
		{IP: "192.168.1.20", FQDN: "host, one", MAC: "aa:bb:cc:dd:ee:01", OpenPorts: []int{22, 80}, SSDP: `SERVER: Linux UPnP/1.0 "tv"`},
	}

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatYAML, testResults()))
		var got []scan.Record
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("yaml export mismatch (-want +got):\n%s", diff)
		}
		assert.Contains(t, buf.String(), "openPorts:")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSON, testResults()))
		var got []scan.Record
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("json export mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, Format("xml"), testResults())
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("writes the file", func(t *testing.T) {
		path := filepath.Join(dir, "scan.csv")
		require.NoError(t, WriteFile(t.Context(), path, FormatCSV, testResults()))
		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(b), "IP,FQDN,MAC,OpenPorts,SSDP,MDNS,SNMP\n"))
	})

	t.Run("missing directory", func(t *testing.T) {
		err := WriteFile(t.Context(), filepath.Join(dir, "missing", "scan.csv"), FormatCSV, testResults())
		assert.Error(t, err)
	})

	t.Run("unsupported format creates no file", func(t *testing.T) {
		path := filepath.Join(dir, "scan.xml")
		err := WriteFile(t.Context(), path, Format("xml"), testResults())
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"scan.csv":        FormatCSV,
		"scan":            FormatCSV,
		"scan.YAML":       FormatYAML,
		"out/scan.yml":    FormatYAML,
		"/tmp/scan.json":  FormatJSON,
		"scan_results.gz": FormatCSV,
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, FormatFromPath(path))
		})
	}
}

func TestRecords_Order(t *testing.T) {
	results := []scan.HostResult{
		{IP: "bogus"},
		{IP: "10.0.0.10"},
		{IP: "10.0.0.9"},
		{IP: "1.2.3"},
		{IP: "10.0.0.100"},
		{IP: "9.0.0.1"},
	}

	var got []string
	for _, r := range Records(results) {
		got = append(got, r.IP)
	}
	assert.Equal(t, []string{"9.0.0.1", "10.0.0.9", "10.0.0.10", "10.0.0.100", "1.2.3", "bogus"}, got)

	slices.Reverse(results)
	var reversed []string
	for _, r := range Records(results) {
		reversed = append(reversed, r.IP)
	}
	assert.Equal(t, got, reversed, "ordering must not depend on input order")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Exported to /tmp/scan_results.csv", Message("/tmp/scan_results.csv", nil))
	assert.Equal(t, "Error exporting: disk full", Message("x", errors.New("disk full")))
}
