// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"context"
	"fmt"
	"net/netip"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/lanscan/internal/probe"
)

// countingGate wraps a real gate and records the highest number of concurrent holders.
type countingGate struct {
	Gate
	inFlight atomic.Int32
	max      atomic.Int32
	acquired atomic.Int32
	released atomic.Int32
}

func (g *countingGate) Acquire(ctx context.Context) error {
	if err := g.Gate.Acquire(ctx); err != nil {
		return err
	}
	g.acquired.Add(1)
	n := g.inFlight.Add(1)
	for {
		m := g.max.Load()
		if n <= m || g.max.CompareAndSwap(m, n) {
			break
		}
	}
	return nil
}

func (g *countingGate) Release() {
	g.inFlight.Add(-1)
	g.released.Add(1)
	g.Gate.Release()
}

// hostNumber returns the last octet of ip, or -1 if ip is not an IPv4 address.
// It is called from probing goroutines and therefore must not fail the test itself.
func hostNumber(ip string) int {
	addr, err := netip.ParseAddr(ip)
	if err != nil || !addr.Is4() {
		return -1
	}
	return int(addr.As4()[3])
}

// recordingGauge keeps every value written to the gauge.
type recordingGauge struct {
	prometheus.Gauge
	mu     sync.Mutex
	values []float64
}

func (g *recordingGauge) Set(v float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values = append(g.values, v)
	g.Gauge.Set(v)
}

func (g *recordingGauge) written() []float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.values)
}

func newTestScanner(p HostProber) *Scanner {
	return NewScanner(p)
}

func drain(sess *Session) []Event {
	var events []Event
	for ev := range sess.Events() {
		events = append(events, ev)
	}
	return events
}

func progressEvents(events []Event) []Progress {
	var p []Progress
	for _, ev := range events {
		if ev.Kind == EventProgress {
			p = append(p, ev.Progress)
		}
	}
	return p
}

func messages(events []Event) []string {
	var m []string
	for _, ev := range events {
		if ev.Kind == EventMessage {
			m = append(m, ev.Message)
		}
	}
	return m
}

func TestScanner_Run_Progress(t *testing.T) {
	tests := []struct {
		name  string
		start int
		end   int
	}{
		{name: "single host", start: 7, end: 7},
		{name: "small range", start: 1, end: 20},
		{name: "full range", start: 1, end: 254},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen sync.Map
			hp := &HostProberMock{
				ProbeFunc: func(ctx context.Context, ip string, ports []int) (HostResult, bool) {
					_, dup := seen.LoadOrStore(ip, true)
					assert.False(t, dup, "host %s visited twice", ip)
					if hostNumber(ip)%2 == 0 {
						return HostResult{IP: ip, OpenPorts: []int{22}}, true
					}
					return HostResult{}, false
				},
			}
			req := Request{Prefix: "10.1.2", StartHost: tt.start, EndHost: tt.end, Ports: []int{22}, Concurrency: 8}
			sess := NewSession(req)

			require.NoError(t, newTestScanner(hp).Run(t.Context(), sess))
			events := drain(sess)

			total := tt.end - tt.start + 1
			progress := progressEvents(events)
			require.Len(t, progress, total)
			assert.Len(t, hp.ProbeCalls(), total)

			complete := 0
			for i, p := range progress {
				assert.Equal(t, i+1, p.Done)
				assert.Equal(t, total, p.Total)
				assert.LessOrEqual(t, p.Fraction, 1.0)
				if i > 0 {
					assert.GreaterOrEqual(t, p.Fraction, progress[i-1].Fraction)
				}
				if p.Fraction == 1.0 {
					complete++
				}
			}
			assert.Equal(t, 1, complete, "progress must reach 1.0 exactly once")
			assert.Equal(t, 1.0, sess.Progress().Fraction)

			for _, r := range sess.Results() {
				assert.Equal(t, 0, hostNumber(r.IP)%2, "unreachable host %s must not produce a result", r.IP)
			}
			assert.Equal(t, []string{MessageScanning, MessageComplete}, messages(events))
			assert.True(t, sess.Finished())
		})
	}
}

func TestScanner_Run_ProgressGaugeNeverDecreases(t *testing.T) {
	hp := &HostProberMock{
		ProbeFunc: func(ctx context.Context, ip string, ports []int) (HostResult, bool) {
			runtime.Gosched()
			if hostNumber(ip)%3 == 0 {
				return HostResult{IP: ip}, true
			}
			return HostResult{}, false
		},
	}

	for run := range 50 {
		s := newTestScanner(hp)
		gauge := &recordingGauge{Gauge: prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_progress"})}
		s.metrics.progress = gauge

		req := Request{Prefix: "10.1.2", StartHost: 1, EndHost: 254, Ports: []int{22}, Concurrency: 254}
		sess := NewSession(req)
		require.NoError(t, s.Run(t.Context(), sess))

		values := gauge.written()
		require.NotEmpty(t, values)
		for i := 1; i < len(values); i++ {
			if values[i] < values[i-1] {
				t.Fatalf("run %d: gauge went from %v to %v", run, values[i-1], values[i])
			}
		}
		assert.InDelta(t, 1.0, values[len(values)-1], 1e-9)
		assert.Len(t, values, 254+1, "one reset and one update per host")
	}
}

func TestScanner_Run_ConcurrencyLimit(t *testing.T) {
	for _, limit := range []int{1, 3, 8, 32} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			hp := &HostProberMock{
				ProbeFunc: func(ctx context.Context, ip string, ports []int) (HostResult, bool) {
					time.Sleep(2 * time.Millisecond)
					return HostResult{IP: ip, OpenPorts: []int{}}, true
				},
			}
			gate := &countingGate{}
			s := newTestScanner(hp)
			s.newGate = func(n int) Gate {
				assert.Equal(t, limit, n)
				gate.Gate = NewGate(n)
				return gate
			}

			req := Request{Prefix: "192.168.0", StartHost: 1, EndHost: 60, Ports: []int{80}, Concurrency: limit}
			sess := NewSession(req)
			require.NoError(t, s.Run(t.Context(), sess))

			assert.LessOrEqual(t, int(gate.max.Load()), limit)
			assert.Equal(t, int32(60), gate.acquired.Load())
			assert.Equal(t, gate.acquired.Load(), gate.released.Load())
			assert.Equal(t, int32(0), gate.inFlight.Load())
			assert.Len(t, sess.Results(), 60)
		})
	}
}

func TestScanner_Run_EmptySubnet(t *testing.T) {
	hp := &HostProberMock{}
	sess := NewSession(Request{Prefix: "  ", StartHost: 1, EndHost: 254, Ports: []int{22}, Concurrency: 16})

	err := newTestScanner(hp).Run(t.Context(), sess)
	require.ErrorIs(t, err, ErrInvalidSubnet)

	events := drain(sess)
	require.Len(t, events, 1)
	assert.Equal(t, EventMessage, events[0].Kind)
	assert.Equal(t, MessageInvalidSubnet, events[0].Message)
	assert.Empty(t, hp.ProbeCalls())
	assert.Empty(t, sess.Results())
}

func TestScanner_Run_InvalidRequest(t *testing.T) {
	hp := &HostProberMock{}
	sess := NewSession(Request{Prefix: "10.0.0", StartHost: 1, EndHost: 2, Ports: []int{22}, Concurrency: 0})

	err := newTestScanner(hp).Run(t.Context(), sess)
	require.ErrorIs(t, err, ErrInvalidRequest)
	events := drain(sess)
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Message, "concurrency")
	assert.Empty(t, hp.ProbeCalls())
}

func TestScanner_Run_StartAfterEnd(t *testing.T) {
	hp := &HostProberMock{}
	sess := NewSession(Request{Prefix: "10.0.0", StartHost: 10, EndHost: 5, Ports: []int{22}, Concurrency: 4})

	require.NoError(t, newTestScanner(hp).Run(t.Context(), sess))
	events := drain(sess)

	progress := progressEvents(events)
	require.Len(t, progress, 1)
	assert.Equal(t, Progress{Done: 0, Total: 0, Fraction: 1}, progress[0])
	assert.Empty(t, hp.ProbeCalls())
	assert.Empty(t, sess.Results())
	assert.Equal(t, []string{MessageScanning, MessageComplete}, messages(events))
}

func TestScanner_Run_HideClosed(t *testing.T) {
	hp := &HostProberMock{
		ProbeFunc: func(ctx context.Context, ip string, ports []int) (HostResult, bool) {
			if strings.HasSuffix(ip, ".1") {
				return HostResult{IP: ip, OpenPorts: []int{443}}, true
			}
			return HostResult{IP: ip, OpenPorts: []int{}}, true
		},
	}
	sess := NewSession(Request{Prefix: "10.0.0", StartHost: 1, EndHost: 2, Ports: []int{443}, Concurrency: 2, HideClosed: true})
	require.NoError(t, newTestScanner(hp).Run(t.Context(), sess))

	display := map[string]bool{}
	for _, ev := range drain(sess) {
		if ev.Kind == EventHost {
			display[ev.Host.IP] = ev.Display
		}
	}
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": false}, display)
	assert.Len(t, sess.Results(), 2, "hidden hosts stay in the results")
}

func TestScanner_Run_PanicStillCounts(t *testing.T) {
	hp := &HostProberMock{
		ProbeFunc: func(ctx context.Context, ip string, ports []int) (HostResult, bool) {
			if ip == "10.0.0.2" {
				panic("probe exploded")
			}
			return HostResult{IP: ip, OpenPorts: []int{}}, true
		},
	}
	gate := &countingGate{}
	s := newTestScanner(hp)
	s.newGate = func(n int) Gate {
		gate.Gate = NewGate(n)
		return gate
	}

	sess := NewSession(Request{Prefix: "10.0.0", StartHost: 1, EndHost: 4, Ports: []int{22}, Concurrency: 1})
	require.NoError(t, s.Run(t.Context(), sess))

	assert.Equal(t, 1.0, sess.Progress().Fraction)
	assert.Equal(t, gate.acquired.Load(), gate.released.Load())
	ips := make([]string, 0)
	for _, r := range sess.Results() {
		ips = append(ips, r.IP)
	}
	slices.Sort(ips)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.3", "10.0.0.4"}, ips)
}

func TestScanner_Run_Canceled(t *testing.T) {
	hp := &HostProberMock{
		ProbeFunc: func(ctx context.Context, ip string, ports []int) (HostResult, bool) {
			return HostResult{IP: ip}, true
		},
	}
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	sess := NewSession(Request{Prefix: "10.0.0", StartHost: 1, EndHost: 10, Ports: []int{22}, Concurrency: 2})
	err := newTestScanner(hp).Run(ctx, sess)
	require.ErrorIs(t, err, context.Canceled)

	events := drain(sess)
	assert.Empty(t, hp.ProbeCalls())
	assert.Len(t, progressEvents(events), 10)
	assert.Equal(t, 1.0, sess.Progress().Fraction)
	assert.Equal(t, []string{MessageScanning, MessageCanceled}, messages(events))
}

func TestScanner_Run_RateLimited(t *testing.T) {
	hp := &HostProberMock{
		ProbeFunc: func(ctx context.Context, ip string, ports []int) (HostResult, bool) {
			return HostResult{}, false
		},
	}
	sess := NewSession(Request{Prefix: "10.0.0", StartHost: 1, EndHost: 3, Ports: []int{22}, Concurrency: 3, Rate: 20})

	start := time.Now()
	require.NoError(t, newTestScanner(hp).Run(t.Context(), sess))
	// the first host starts immediately, the other two wait for a token each
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
	assert.Len(t, hp.ProbeCalls(), 3)
}

func TestScanner_Run_SessionReuse(t *testing.T) {
	hp := &HostProberMock{
		ProbeFunc: func(ctx context.Context, ip string, ports []int) (HostResult, bool) {
			return HostResult{}, false
		},
	}
	s := newTestScanner(hp)
	sess := NewSession(Request{Prefix: "10.0.0", StartHost: 1, EndHost: 1, Ports: []int{22}, Concurrency: 1})
	require.NoError(t, s.Run(t.Context(), sess))
	assert.ErrorIs(t, s.Run(t.Context(), sess), ErrSessionUsed)
}

func TestHostProber_Probe(t *testing.T) {
	tests := []struct {
		name      string
		reachable bool
		open      map[int]bool
		ports     []int
		wantOk    bool
		wantPorts []int
		wantCalls int
	}{
		{
			name:      "unreachable host is not probed further",
			reachable: false,
			ports:     []int{22, 80},
			wantOk:    false,
			wantCalls: 0,
		},
		{
			name:      "port 80 open and 81 closed",
			reachable: true,
			open:      map[int]bool{80: true},
			ports:     []int{80, 81},
			wantOk:    true,
			wantPorts: []int{80},
			wantCalls: 2,
		},
		{
			name:      "probe order is kept",
			reachable: true,
			open:      map[int]bool{22: true, 443: true},
			ports:     []int{443, 80, 22},
			wantOk:    true,
			wantPorts: []int{443, 22},
			wantCalls: 3,
		},
		{
			name:      "repeated ports are probed once",
			reachable: true,
			open:      map[int]bool{22: true},
			ports:     []int{22, 22, 80},
			wantOk:    true,
			wantPorts: []int{22},
			wantCalls: 2,
		},
		{
			name:      "no open port",
			reachable: true,
			ports:     []int{22},
			wantOk:    true,
			wantPorts: []int{},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := &probe.ProberMock{
				ReachableFunc: func(ctx context.Context, ip string) bool { return tt.reachable },
				PortOpenFunc:  func(ctx context.Context, ip string, port int) bool { return tt.open[port] },
				ReverseDNSFunc: func(ctx context.Context, ip string) probe.Outcome {
					return probe.Resolved("host.lan")
				},
				LinkLayerFunc: func(ctx context.Context, ip string) probe.Outcome { return probe.NotFound() },
				SSDPFunc:      func(ctx context.Context, ip string) probe.Outcome { return probe.Failed(context.DeadlineExceeded) },
			}

			res, ok := NewHostProber(pm).Probe(t.Context(), "10.0.0.5", tt.ports)
			require.Equal(t, tt.wantOk, ok)
			assert.Len(t, pm.PortOpenCalls(), tt.wantCalls)
			if !ok {
				assert.Empty(t, pm.ReverseDNSCalls())
				assert.Empty(t, pm.LinkLayerCalls())
				assert.Empty(t, pm.SSDPCalls())
				return
			}

			assert.Equal(t, "10.0.0.5", res.IP)
			assert.Equal(t, tt.wantPorts, res.OpenPorts)
			for _, p := range res.OpenPorts {
				assert.Contains(t, tt.ports, p)
			}
			assert.Equal(t, "host.lan", res.FQDNText())
			assert.Equal(t, UnknownMAC, res.MACText())
			assert.Equal(t, NoSSDP, res.SSDPText())
		})
	}
}
