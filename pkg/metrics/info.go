// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	buildInfoMetricName = "lanscan_build_info"
	buildInfoHelp       = "Build metadata of the running lanscan binary. Always 1."
)

// RegisterBuildInfo registers the lanscan_build_info info-style metric on the given registry.
// The gauge is set to 1 with the labels version, go_version and platform.
func RegisterBuildInfo(registry prometheus.Registerer, version string) error {
	if version == "" {
		version = "dev"
	}
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: buildInfoMetricName,
			Help: buildInfoHelp,
		},
		[]string{"version", "go_version", "platform"},
	)
	info.WithLabelValues(version, runtime.Version(), runtime.GOOS+"/"+runtime.GOARCH).Set(1)
	return registry.Register(info)
}
