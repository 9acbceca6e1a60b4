// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// metrics defines the metric collectors of the route tracer
type metrics struct {
	hops     *prometheus.GaugeVec
	duration *prometheus.GaugeVec
	reached  *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of the route tracer
func newMetrics() metrics {
	return metrics{
		hops: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lanscan_traceroute_hops",
				Help: "Number of hops recorded by the last trace to the target.",
			},
			[]string{"target"},
		),
		duration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lanscan_traceroute_duration_seconds",
				Help: "Duration of the last trace to the target in seconds.",
			},
			[]string{"target"},
		),
		reached: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lanscan_traceroute_reached",
				Help: "Specifies if the last trace reached the target.",
			},
			[]string{"target"},
		),
	}
}

// GetCollectors returns all metric collectors
func (m *metrics) GetCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.hops,
		m.duration,
		m.reached,
	}
}

// set records the result of one trace
func (m *metrics) set(res *Result, d time.Duration) {
	reached := 0.0
	if res.Reached() {
		reached = 1
	}
	m.hops.WithLabelValues(res.Target).Set(float64(len(res.Hops)))
	m.duration.WithLabelValues(res.Target).Set(d.Seconds())
	m.reached.WithLabelValues(res.Target).Set(reached)
}
