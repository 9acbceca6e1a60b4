// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/lanscan/internal/logger"
	"github.com/telekom/lanscan/internal/probe"
	"github.com/telekom/lanscan/pkg/config"
	"github.com/telekom/lanscan/pkg/lanscan"
)

// NewCmdScan creates the scan command
func NewCmdScan() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a /24 subnet",
		Long: "Scan probes every host number of a /24 subnet: reachability, reverse DNS,\n" +
			"hardware address, SSDP and the configured TCP ports. Malformed numbers fall back to the defaults.",
		Example:      "  lanscan scan --subnet 192.168.1 --start 1 --end 254 --ports 22,80,443 --output scan.csv",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runScan,
	}

	fs := cmd.Flags()
	NewFlag("scan.subnet", "subnet").String().Bind(fs, "", "first three octets of the subnet, e.g. 192.168.1")
	NewFlag("scan.start", "start").String().Bind(fs, "1", "first host number")
	NewFlag("scan.end", "end").String().Bind(fs, "254", "last host number")
	NewFlag("scan.ports", "ports").String().Bind(fs, "22,80,443", "comma separated TCP ports")
	NewFlag("scan.threads", "threads").String().Bind(fs, "16", "maximum number of hosts probed at once")
	NewFlag("scan.hideClosed", "hide-closed").Bool().Bind(fs, false, "hide hosts without an open port")
	NewFlag("scan.output", "output").String().Bind(fs, "", "export the results to this file")
	NewFlag("scan.format", "format").String().Bind(fs, "", "export format: csv, yaml or json (default derived from the file extension)")
	NewFlag("scan.timeout", "timeout").Duration().Bind(fs, 0, "deadline of the whole scan, 0 disables it")
	NewFlag("scan.rate", "rate").Float().Bind(fs, 0, "maximum hosts started per second, 0 disables the limit")
	NewFlag("scan.probe.privileged", "privileged").Bool().Bind(fs, false, "send echo requests over a raw socket")
	NewFlag("scan.probe.pingTimeout", "ping-timeout").Duration().Bind(fs, probe.DefaultPingTimeout, "timeout of the reachability probe")
	NewFlag("scan.probe.connectTimeout", "connect-timeout").Duration().Bind(fs, probe.DefaultConnectTimeout, "timeout of each port probe")
	NewFlag("scan.probe.dnsTimeout", "dns-timeout").Duration().Bind(fs, probe.DefaultDNSTimeout, "timeout of the reverse lookup")
	NewFlag("scan.probe.ssdpTimeout", "ssdp-timeout").Duration().Bind(fs, probe.DefaultSSDPTimeout, "timeout of the SSDP probe")
	NewFlag("scan.probe.macTimeout", "mac-timeout").Duration().Bind(fs, probe.DefaultMACTimeout, "timeout of the MAC address lookup")
	NewFlag("api.address", "listen").String().Bind(fs, "", "serve metrics and scan results on this address, e.g. :8080")

	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	ctx, cancel, cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	return lanscan.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Scan(ctx)
}

// setup loads and validates the config and returns a context that is
// canceled on interrupt.
func setup(cmd *cobra.Command) (context.Context, context.CancelFunc, *config.Config, error) {
	ctx, cancelLog := logger.NewContextWithLogger(cmd.Context())
	log := logger.FromContext(ctx)

	cfg := &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		cancelLog()
		log.Error("Failed to parse config", "error", err)
		return nil, nil, nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(ctx); err != nil {
		cancelLog()
		return nil, nil, nil, err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	return ctx, func() {
		stop()
		cancelLog()
	}, cfg, nil
}
