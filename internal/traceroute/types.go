// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/telekom/lanscan/internal/probe"
)

const (
	// DefaultMaxTTL is the highest TTL probed when none is configured.
	DefaultMaxTTL = 30
	// DefaultTimeout is the time to wait for the reply of a single hop.
	DefaultTimeout = 3 * time.Second
)

// Sentinels rendered for the name of a hop.
const (
	// UnknownName is shown when the reply carried no responder address.
	UnknownName = "(unknown)"
	// NoDNSName is shown when the reverse lookup of the responder failed.
	NoDNSName = "(no DNS)"
)

// Diagnostic lines of a trace.
const (
	lineComplete      = "Trace complete."
	lineInvalidTarget = "Invalid IP/Host."
	lineUnresolvable  = "Could not resolve '%s'."
	lineError         = "TraceRoute error: %s"
)

// Options contains the optional configuration for the traceroute.
type Options struct {
	// MaxTTL is the maximum TTL to use for the traceroute.
	MaxTTL int `json:"maxHops" yaml:"maxHops" mapstructure:"maxHops"`
	// Timeout is the timeout for each hop in the traceroute.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// DefaultOptions returns options with a maximum of 30 hops and 3 seconds per hop.
func DefaultOptions() *Options {
	return &Options{MaxTTL: DefaultMaxTTL, Timeout: DefaultTimeout}
}

// withDefaults returns a copy of o with unset fields replaced by their defaults.
func (o *Options) withDefaults() Options {
	opts := *DefaultOptions()
	if o == nil {
		return opts
	}
	if o.MaxTTL > 0 {
		opts.MaxTTL = o.MaxTTL
	}
	if o.Timeout > 0 {
		opts.Timeout = o.Timeout
	}
	return opts
}

// Status is the terminal state of a trace.
type Status int

const (
	// StatusMaxTTLExceeded means every TTL up to the maximum was probed
	// without an echo reply from the destination.
	StatusMaxTTLExceeded Status = iota
	// StatusSucceeded means the destination answered the echo request.
	StatusSucceeded
	// StatusInvalidTarget means the target was empty.
	StatusInvalidTarget
	// StatusResolutionFailed means the target did not resolve to an IPv4 address.
	StatusResolutionFailed
	// StatusFailed means probing failed and the hop sequence ended early.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusMaxTTLExceeded:
		return "max_ttl_exceeded"
	case StatusSucceeded:
		return "succeeded"
	case StatusInvalidTarget:
		return "invalid_target"
	case StatusResolutionFailed:
		return "resolution_failed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Hop is the outcome of probing a single TTL.
type Hop struct {
	// TTL is the 1-based ordinal of the hop.
	TTL int `json:"ttl" yaml:"ttl"`
	// Addr is the responder, nil if the hop timed out.
	Addr net.IP `json:"addr,omitempty" yaml:"addr,omitempty"`
	// Name is the reverse DNS name of the responder.
	Name probe.Outcome `json:"-" yaml:"-"`
	// Reached marks the hop that answered from the destination.
	Reached bool `json:"reached" yaml:"reached"`
	// TimedOut is set if no usable reply arrived for this TTL.
	TimedOut bool          `json:"timedOut" yaml:"timedOut"`
	Latency  time.Duration `json:"-" yaml:"-"`
}

// NameText renders the reverse DNS name of the hop.
func (h Hop) NameText() string {
	return h.Name.Render(UnknownName, NoDNSName)
}

func (h Hop) MarshalJSON() ([]byte, error) {
	type alias Hop
	return json.Marshal(&struct {
		Name    string `json:"name,omitempty"`
		Latency string `json:"latency"`
		alias
	}{
		Name:    h.nameIfAnswered(),
		Latency: h.Latency.String(),
		alias:   alias(h),
	})
}

func (h Hop) nameIfAnswered() string {
	if h.TimedOut {
		return ""
	}
	return h.NameText()
}

func (h Hop) String() string {
	if h.TimedOut {
		return fmt.Sprintf("Hop %d: Request timed out.", h.TTL)
	}
	addr := "No IP"
	if h.Addr != nil {
		addr = h.Addr.String()
	}
	return fmt.Sprintf("Hop %d: %s [%s]", h.TTL, addr, h.NameText())
}

// Result is the outcome of one trace.
type Result struct {
	// Target is the trimmed input of the trace.
	Target string `json:"target" yaml:"target"`
	// Destination is the resolved address, nil if resolution failed.
	Destination net.IP `json:"destination,omitempty" yaml:"destination,omitempty"`
	// Hops are ordered by TTL, starting at 1 without gaps.
	Hops   []Hop  `json:"hops" yaml:"hops"`
	Status Status `json:"status" yaml:"status"`
	// Err holds the cause of [StatusFailed] and [StatusResolutionFailed].
	Err error `json:"-" yaml:"-"`
}

// Lines renders the result the way it is shown to the user: one line per hop
// followed by a closing line, or a single diagnostic line if the trace could
// not start.
func (r *Result) Lines() []string {
	switch r.Status {
	case StatusInvalidTarget:
		return []string{lineInvalidTarget}
	case StatusResolutionFailed:
		return []string{fmt.Sprintf(lineUnresolvable, r.Target)}
	}

	lines := make([]string, 0, len(r.Hops)+1)
	for _, h := range r.Hops {
		lines = append(lines, h.String())
	}
	switch r.Status {
	case StatusSucceeded:
		lines = append(lines, lineComplete)
	case StatusFailed:
		lines = append(lines, fmt.Sprintf(lineError, r.Err))
	}
	return lines
}

// Reached reports whether the destination answered.
func (r *Result) Reached() bool {
	return r.Status == StatusSucceeded
}
