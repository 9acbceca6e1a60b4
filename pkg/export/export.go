// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/telekom/lanscan/internal/logger"
	"github.com/telekom/lanscan/pkg/scan"
	"gopkg.in/yaml.v3"
)

// Format is the file format of an export.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrUnsupportedFormat is returned for unknown export formats
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Header is the fixed first row of a CSV export.
var Header = []string{"IP", "FQDN", "MAC", "OpenPorts", "SSDP", "MDNS", "SNMP"}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return slices.Contains([]Format{FormatCSV, FormatYAML, FormatJSON}, f)
}

// FormatFromPath derives the format from the file extension of path.
// Unknown extensions export as CSV.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatCSV
	}
}

// Write renders results in the given format. Results are written in
// address order regardless of the order they were collected in.
func Write(w io.Writer, f Format, results []scan.HostResult) error {
	records := Records(results)

	switch f {
	case FormatCSV:
		return writeCSV(w, records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
}

// WriteFile writes results to the file at path, replacing its content.
func WriteFile(ctx context.Context, path string, f Format, results []scan.HostResult) (err error) {
	log := logger.FromContext(ctx).With("path", path, "format", f)
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}

	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		log.Error("Failed to create export file", "error", err)
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		cerr := file.Close()
		if cerr != nil {
			log.Error("Failed to close export file", "error", cerr)
		}
		err = errors.Join(err, cerr)
	}()

	if err = Write(file, f, results); err != nil {
		log.Error("Failed to write export file", "error", err)
		return err
	}
	log.Info("Exported scan results", "hosts", len(results))
	return nil
}

// Message returns the user-facing outcome of an export.
func Message(path string, err error) string {
	if err != nil {
		return fmt.Sprintf("Error exporting: %v", err)
	}
	return fmt.Sprintf("Exported to %s", path)
}

func writeCSV(w io.Writer, records []scan.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{r.IP, r.FQDN, r.MAC, r.PortsText(), r.SSDP, r.MDNS, r.SNMP}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", r.IP, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Records renders results and orders them by address.
// Entries whose IP does not parse follow all valid addresses, ordered by text.
func Records(results []scan.HostResult) []scan.Record {
	records := make([]scan.Record, 0, len(results))
	for _, r := range results {
		records = append(records, r.Record())
	}
	slices.SortStableFunc(records, compareIP)
	return records
}

func compareIP(a, b scan.Record) int {
	aa, aErr := netip.ParseAddr(a.IP)
	ba, bErr := netip.ParseAddr(b.IP)
	switch {
	case aErr == nil && bErr == nil:
		return aa.Compare(ba)
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a.IP, b.IP)
	}
}
