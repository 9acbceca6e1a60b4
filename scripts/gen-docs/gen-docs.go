// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

//go:generate go run gen-docs.go gen-docs --path ../../docs

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
	lanscancmd "github.com/telekom/lanscan/cmd"
)

// header is prepended to every generated page
const header = `<!--
SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH

SPDX-License-Identifier: Apache-2.0

Generated by scripts/gen-docs. Do not edit.
-->

`

func main() {
	execute()
}

func execute() {
	rootCmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generates the cli docs of lanscan",
	}
	rootCmd.AddCommand(NewCmdGenDocs())

	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewCmdGenDocs creates a new gen-docs command
func NewCmdGenDocs() *cobra.Command {
	var docPath, version string

	cmd := &cobra.Command{
		Use:   "gen-docs",
		Short: "Generate markdown documentation",
		Long: `Generate one markdown page per lanscan command (lanscan.md, lanscan_scan.md,
lanscan_trace.md, lanscan_version.md) listing its flags and usage examples`,
		RunE: runGenDocs(&docPath, &version),
	}

	cmd.PersistentFlags().StringVar(&docPath, "path", "docs", "directory path where the markdown files will be created")
	cmd.PersistentFlags().StringVar(&version, "version", "", "version shown in the generated root page")

	return cmd
}

// runGenDocs generates the markdown files for the flag documentation.
// The target directory is created if it does not exist.
func runGenDocs(path, version *string) func(cmd *cobra.Command, args []string) error {
	return func(_ *cobra.Command, _ []string) error {
		return generate(*path, *version)
	}
}

func generate(path, version string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return fmt.Errorf("failed to create docs directory: %w", err)
	}

	c := lanscancmd.BuildCmd(version)
	disableAutoGenTag(c)
	prepend := func(string) string { return header }
	link := func(name string) string { return name }
	if err := doc.GenMarkdownTreeCustom(c, path, prepend, link); err != nil {
		return fmt.Errorf("failed to generate docs: %w", err)
	}
	return nil
}

func disableAutoGenTag(c *cobra.Command) {
	c.DisableAutoGenTag = true
	for _, sub := range c.Commands() {
		disableAutoGenTag(sub)
	}
}
