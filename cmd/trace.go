// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/telekom/lanscan/internal/traceroute"
	"github.com/telekom/lanscan/pkg/config"
	"github.com/telekom/lanscan/pkg/lanscan"
)

// NewCmdTrace creates the trace command
func NewCmdTrace() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <host>",
		Short: "Trace the route to a host",
		Long: "Trace sends ICMP echo requests with increasing TTL to the host and lists\n" +
			"every router that answers. Raw sockets are used if permitted, unprivileged ICMP sockets otherwise.",
		Example:      "  lanscan trace example.com --max-hops 20",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runTrace,
	}

	fs := cmd.Flags()
	NewFlag("trace.maxHops", "max-hops").Int().Bind(fs, traceroute.DefaultMaxTTL, "highest TTL probed")
	NewFlag("trace.hopTimeout", "hop-timeout").Duration().Bind(fs, traceroute.DefaultTimeout, "timeout of a single hop")
	NewFlag("trace.format", "format").String().Bind(fs, config.TraceFormatText, "output format: text or json")

	return cmd
}

func runTrace(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	return lanscan.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Trace(ctx, args[0])
}
