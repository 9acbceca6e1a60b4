// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package lanscan

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/telekom/lanscan/internal/traceroute"
	"github.com/telekom/lanscan/pkg/config"
	"github.com/telekom/lanscan/pkg/scan"
)

// Renderer writes scan and trace output as plain text. Result lines go to
// out, the progress indicator is redrawn in place on progress.
type Renderer struct {
	mu       sync.Mutex
	out      io.Writer
	progress io.Writer
	// drawn is set while a progress line is on screen
	drawn bool
	// percent is the last drawn scan percentage
	percent int
}

// NewRenderer creates a renderer. A nil progress writer disables the indicator.
func NewRenderer(out, progress io.Writer) *Renderer {
	if progress == nil {
		progress = io.Discard
	}
	return &Renderer{out: out, progress: progress, percent: -1}
}

// Scan drains the event stream of a session until it is closed.
func (r *Renderer) Scan(events <-chan scan.Event) {
	for ev := range events {
		switch ev.Kind {
		case scan.EventMessage:
			r.Line(ev.Message)
		case scan.EventHost:
			if ev.Display {
				r.Line(ev.Host.DisplayLines()...)
			}
		case scan.EventProgress:
			r.scanProgress(ev.Progress)
		}
	}
	r.endProgress()
}

// Line writes lines to the output, clearing the progress indicator first.
func (r *Renderer) Line(lines ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
	for _, l := range lines {
		_, _ = fmt.Fprintln(r.out, l)
	}
}

// TraceProgress draws the hop about to be probed.
func (r *Renderer) TraceProgress(ttl, maxTTL int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintf(r.progress, "\rTracing: hop %d/%d", ttl, maxTTL)
	r.drawn = true
}

// Trace writes the result of a trace as text lines or as JSON.
func (r *Renderer) Trace(res traceroute.Result, format string) error {
	r.endProgress()

	if format != config.TraceFormatJSON {
		r.Line(res.Lines()...)
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(traceOutput{Result: res, Lines: res.Lines()}); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}
	return nil
}

// traceOutput is the JSON form of a trace
type traceOutput struct {
	traceroute.Result
	Lines []string `json:"lines"`
}

func (r *Renderer) scanProgress(p scan.Progress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	percent := int(math.Floor(p.Fraction * 100))
	if percent == r.percent {
		return
	}
	r.percent = percent
	_, _ = fmt.Fprintf(r.progress, "\rProgress: %3d%% (%d/%d)", percent, p.Done, p.Total)
	r.drawn = true
}

// endProgress terminates the progress line so later output starts on a new line.
func (r *Renderer) endProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drawn {
		_, _ = fmt.Fprintln(r.progress)
		r.drawn = false
	}
	r.percent = -1
}

// clearLocked erases the progress line. Callers must hold r.mu.
func (r *Renderer) clearLocked() {
	if r.drawn {
		_, _ = fmt.Fprint(r.progress, "\r\033[K")
		r.drawn = false
		r.percent = -1
	}
}
