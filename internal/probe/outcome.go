// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package probe

// Status classifies the outcome of a lookup probe.
type Status int

const (
	// StatusNone marks a capability that was never probed.
	StatusNone Status = iota
	// StatusResolved means the probe produced a usable value.
	StatusResolved
	// StatusNotFound means the probe completed but there was nothing to report,
	// e.g. a PTR lookup without a usable name or an ARP table without an entry.
	StatusNotFound
	// StatusFailed means the probe itself failed (timeout, resolver error, unsupported platform).
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusNotFound:
		return "not_found"
	case StatusFailed:
		return "failed"
	default:
		return "none"
	}
}

// Outcome is the tagged result of a lookup probe.
// Err carries the failure cause for logging; callers branch on Status only.
type Outcome struct {
	Status Status `json:"status" yaml:"status"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Err    error  `json:"-" yaml:"-"`
}

// Resolved returns a successful [Outcome] carrying v.
func Resolved(v string) Outcome {
	return Outcome{Status: StatusResolved, Value: v}
}

// NotFound returns an [Outcome] for a lookup that completed without a value.
func NotFound() Outcome {
	return Outcome{Status: StatusNotFound}
}

// Failed returns an [Outcome] for a lookup that failed with err.
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err}
}

// IsResolved reports whether the outcome carries a value.
func (o Outcome) IsResolved() bool {
	return o.Status == StatusResolved
}

// Render returns the resolved value, or the given placeholder for the
// not-found and failed cases. An outcome that was never probed renders empty.
func (o Outcome) Render(notFound, failed string) string {
	switch o.Status {
	case StatusResolved:
		return o.Value
	case StatusNotFound:
		return notFound
	case StatusFailed:
		return failed
	default:
		return ""
	}
}
