// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics defines the metric collectors of the scanner
type metrics struct {
	scanned   prometheus.Counter
	up        prometheus.Counter
	openPorts *prometheus.CounterVec
	progress  prometheus.Gauge
	duration  prometheus.Histogram
}

// newMetrics initializes metric collectors of the scanner
func newMetrics() metrics {
	return metrics{
		scanned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "lanscan_hosts_scanned_total",
				Help: "Total number of host addresses processed, reachable or not.",
			},
		),
		up: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "lanscan_hosts_up_total",
				Help: "Total number of hosts that answered the echo request.",
			},
		),
		openPorts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lanscan_open_ports_total",
				Help: "Total number of open ports found, by port.",
			},
			[]string{"port"},
		),
		progress: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "lanscan_scan_progress_ratio",
				Help: "Share of processed hosts of the current scan.",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lanscan_host_probe_duration_seconds",
				Help:    "Histogram of the time spent probing a single host in seconds.",
				Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
			},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.scanned,
		m.up,
		m.openPorts,
		m.progress,
		m.duration,
	}
}

// observe records one processed host. res is nil for unreachable hosts.
// The progress gauge is fed by the session, which orders its updates.
func (m *metrics) observe(res *HostResult, d time.Duration) {
	m.scanned.Inc()
	m.duration.Observe(d.Seconds())
	if res == nil {
		return
	}
	m.up.Inc()
	for _, p := range res.OpenPorts {
		m.openPorts.WithLabelValues(strconv.Itoa(p)).Inc()
	}
}
