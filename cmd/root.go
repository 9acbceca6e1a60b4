// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/telekom/lanscan/pkg"
)

// NewCmdRoot creates a new root command
func NewCmdRoot(version string) *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "lanscan",
		Short: "lanscan, the LAN subnet scanner and route tracer",
		Long: "lanscan sweeps a /24 subnet for reachable hosts and reports their names,\n" +
			"hardware addresses, SSDP banners and open TCP ports. It also traces the route to a host.",
		Version: version,
	}

	cobra.OnInitialize(func() {
		initConfig(rootCmd, cfgFile)
	})

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.lanscan.yaml)")
	NewFlag("telemetry.exporter", "otel-exporter").String().Bind(rootCmd.PersistentFlags(), "noop", "span exporter: noop, stdout, http or grpc")
	NewFlag("telemetry.url", "otel-url").String().Bind(rootCmd.PersistentFlags(), "", "url of the otlp collector")
	NewFlag("telemetry.token", "otel-token").String().Bind(rootCmd.PersistentFlags(), "", "bearer token for the otlp collector")
	NewFlag("telemetry.tls.enabled", "otel-tls").Bool().Bind(rootCmd.PersistentFlags(), false, "use tls to connect to the otlp collector")
	NewFlag("telemetry.tls.certPath", "otel-tls-cert").String().Bind(rootCmd.PersistentFlags(), "", "custom ca certificate of the otlp collector")

	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	pkg.Version = version
	cmd := BuildCmd(version)

	if err := cmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func BuildCmd(version string) *cobra.Command {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdScan())
	cmd.AddCommand(NewCmdTrace())
	cmd.AddCommand(NewCmdVersion())
	return cmd
}

func initConfig(cmd *cobra.Command, cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".lanscan" (without an extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".lanscan")
	}

	viper.SetOptions(viper.ExperimentalBindStruct())
	viper.SetEnvPrefix("lanscan")
	dotreplacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(dotreplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Using config file:", viper.ConfigFileUsed())
	}
}
