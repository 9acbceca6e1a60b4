// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"sync"
)

// EventKind identifies the payload of an [Event].
type EventKind int

const (
	// EventMessage carries a user-visible status message.
	EventMessage EventKind = iota
	// EventHost carries the result of a reachable host.
	EventHost
	// EventProgress carries the progress after a host has been processed.
	EventProgress
)

func (k EventKind) String() string {
	switch k {
	case EventMessage:
		return "message"
	case EventHost:
		return "host"
	case EventProgress:
		return "progress"
	default:
		return "unknown"
	}
}

// Event is emitted by a running scan.
type Event struct {
	Kind EventKind
	// Message is set for [EventMessage].
	Message string
	// Host is set for [EventHost].
	Host HostResult
	// Display is false for hosts hidden from the display stream by [Request.HideClosed].
	Display bool
	// Progress is set for [EventProgress].
	Progress Progress
}

// Progress is the share of processed hosts.
type Progress struct {
	Done     int     `json:"done" yaml:"done"`
	Total    int     `json:"total" yaml:"total"`
	Fraction float64 `json:"fraction" yaml:"fraction"`
}

// messages emitted by a scan besides host and progress events
const maxMessages = 3

// Session holds the state of a single scan: its request, the collected results
// and the progress counter. Events are buffered so that emitting never blocks
// a probing unit; the channel is closed once the scan has finished.
type Session struct {
	req Request

	mu       sync.Mutex
	results  []HostResult
	progress Progress
	started  bool
	finished bool
	events   chan Event
	// observer receives every progress update while s.mu is held
	observer func(Progress)
}

// NewSession creates the session for req.
func NewSession(req Request) *Session {
	total := req.Total()
	return &Session{
		req:      req,
		progress: Progress{Total: total},
		// one host and one progress event per host, one final progress event and the messages
		events: make(chan Event, 2*total+1+maxMessages),
	}
}

// Request returns the scanned request.
func (s *Session) Request() Request {
	return s.req
}

// Events returns the event stream of the session.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Results returns a snapshot of the collected results.
// The order of the results follows completion, not host number.
func (s *Session) Results() []HostResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := make([]HostResult, len(s.results))
	copy(res, s.results)
	return res
}

// Progress returns the current progress.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

// Finished reports whether the scan has finished.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// start marks the session as running. It returns false if it was started before.
func (s *Session) start() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return false
	}
	s.started = true
	return true
}

// observe registers fn to receive every progress update in order.
func (s *Session) observe(fn func(Progress)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// message emits a status message.
func (s *Session) message(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emit(Event{Kind: EventMessage, Message: text})
}

// complete records one processed host. res is nil for unreachable hosts.
// Appending the result and advancing the counter happen under the same lock,
// so progress events leave the session in non-decreasing order.
func (s *Session) complete(res *HostResult) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	if res != nil {
		s.results = append(s.results, *res)
		display := !s.req.HideClosed || len(res.OpenPorts) > 0
		s.emit(Event{Kind: EventHost, Host: *res, Display: display})
	}

	s.progress.Done++
	s.progress.Fraction = float64(s.progress.Done) / float64(s.progress.Total)
	s.advance()
	return s.progress
}

// completeEmpty finishes a scan without work items at full progress.
func (s *Session) completeEmpty() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress.Fraction = 1
	s.advance()
}

// advance publishes the current progress. Callers must hold s.mu.
func (s *Session) advance() {
	if s.observer != nil {
		s.observer(s.progress)
	}
	s.emit(Event{Kind: EventProgress, Progress: s.progress})
}

// close marks the session as finished and closes the event stream.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
	close(s.events)
}

// emit sends ev without blocking. Callers must hold s.mu.
func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}
