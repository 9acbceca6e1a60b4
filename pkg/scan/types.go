// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/telekom/lanscan/internal/probe"
)

// Defaults applied by the configuration layer when input is missing or malformed.
const (
	DefaultStartHost   = 1
	DefaultEndHost     = 254
	DefaultConcurrency = 16
)

// DefaultPorts returns the ports probed when no valid port list is configured.
func DefaultPorts() []int {
	return []int{22, 80, 443}
}

// Placeholders rendered for outcomes without a value.
const (
	UnknownHost = "Unknown Host"
	NoDNSName   = "No Dns Name"
	UnknownMAC  = "Unknown MAC"
	NoSSDP      = "-"
)

// separator closes every host block in the display stream.
const separator = "---------------------------------"

// Request describes a single scan. It is immutable for the duration of the scan.
type Request struct {
	// Prefix holds the first three octets of the subnet, e.g. "192.168.1".
	Prefix string `json:"prefix" yaml:"prefix"`
	// StartHost is the first host number of the inclusive range.
	StartHost int `json:"startHost" yaml:"startHost"`
	// EndHost is the last host number of the inclusive range.
	EndHost int `json:"endHost" yaml:"endHost"`
	// Ports are probed in order on every reachable host.
	Ports []int `json:"ports" yaml:"ports"`
	// Concurrency is the maximum number of hosts probed at the same time.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
	// HideClosed suppresses the display event of hosts without an open port.
	// Such hosts are still part of the results.
	HideClosed bool `json:"hideClosed" yaml:"hideClosed"`
	// Rate limits how many host probes are started per second. Zero disables the limit.
	Rate float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
}

// Total returns the number of host numbers in range.
func (r *Request) Total() int {
	if r.EndHost < r.StartHost {
		return 0
	}
	return r.EndHost - r.StartHost + 1
}

// Address returns the IPv4 address of the given host number.
func (r *Request) Address(host int) string {
	return fmt.Sprintf("%s.%d", r.Prefix, host)
}

// Validate checks that the request can be scanned.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Prefix) == "" {
		return ErrInvalidSubnet
	}
	if r.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidRequest, r.Concurrency)
	}
	if len(r.Ports) == 0 {
		return fmt.Errorf("%w: at least one port is required", ErrInvalidRequest)
	}
	for _, p := range r.Ports {
		if p < 1 || p > 65535 {
			return fmt.Errorf("%w: port %d out of range", ErrInvalidRequest, p)
		}
	}
	if r.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", ErrInvalidRequest)
	}
	return nil
}

// HostResult is the outcome of probing one reachable host.
type HostResult struct {
	IP        string
	FQDN      probe.Outcome
	MAC       probe.Outcome
	OpenPorts []int
	SSDP      probe.Outcome
	// MDNS and SNMP are reserved for future discovery probes and never set.
	MDNS probe.Outcome
	SNMP probe.Outcome
}

// FQDNText renders the reverse lookup, keeping "no usable name" and
// "lookup failed" apart.
func (h HostResult) FQDNText() string {
	return h.FQDN.Render(UnknownHost, NoDNSName)
}

// MACText renders the hardware address.
func (h HostResult) MACText() string {
	return h.MAC.Render(UnknownMAC, UnknownMAC)
}

// SSDPText renders the SSDP banner line.
func (h HostResult) SSDPText() string {
	return h.SSDP.Render(NoSSDP, NoSSDP)
}

// Record flattens the result into its rendered form.
func (h HostResult) Record() Record {
	ports := make([]int, len(h.OpenPorts))
	copy(ports, h.OpenPorts)
	return Record{
		IP:        h.IP,
		FQDN:      h.FQDNText(),
		MAC:       h.MACText(),
		OpenPorts: ports,
		SSDP:      h.SSDPText(),
		MDNS:      h.MDNS.Render("", ""),
		SNMP:      h.SNMP.Render("", ""),
	}
}

// DisplayLines returns the lines shown for the host: one block per open port,
// or a single block stating that no common port is open.
func (h HostResult) DisplayLines() []string {
	head := []string{
		"IP: " + h.IP,
		"FQDN: " + h.FQDNText(),
		"MAC: " + h.MACText(),
	}

	if len(h.OpenPorts) == 0 {
		return append(head, "No common ports open", separator)
	}

	var lines []string
	for _, p := range h.OpenPorts {
		lines = append(lines, head...)
		lines = append(lines, fmt.Sprintf("Port %d open", p))
		switch p {
		case 80:
			lines = append(lines, fmt.Sprintf("Open http://%s/", h.IP))
		case 443:
			lines = append(lines, fmt.Sprintf("Open https://%s/", h.IP))
		}
		lines = append(lines, separator)
	}
	return lines
}

// Record is the rendered form of a [HostResult] used by exporters and the API.
type Record struct {
	IP        string `json:"ip" yaml:"ip"`
	FQDN      string `json:"fqdn" yaml:"fqdn"`
	MAC       string `json:"mac" yaml:"mac"`
	OpenPorts []int  `json:"openPorts" yaml:"openPorts"`
	SSDP      string `json:"ssdp" yaml:"ssdp"`
	MDNS      string `json:"mdns" yaml:"mdns"`
	SNMP      string `json:"snmp" yaml:"snmp"`
}

// PortsText joins the open ports with ";".
func (r Record) PortsText() string {
	s := make([]string, len(r.OpenPorts))
	for i, p := range r.OpenPorts {
		s[i] = strconv.Itoa(p)
	}
	return strings.Join(s, ";")
}
