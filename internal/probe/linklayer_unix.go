// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

//go:build !windows

package probe

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	osutils "github.com/projectdiscovery/utils/os"
)

// procNetARP is the kernel's IPv4 neighbour table on Linux.
const procNetARP = "/proc/net/arp"

// NewLinkLayerResolver returns the [LinkLayerResolver] for the current platform:
// /proc/net/arp on Linux, `arp -an` on macOS, and an always-failing resolver elsewhere.
func NewLinkLayerResolver() LinkLayerResolver {
	switch {
	case osutils.IsLinux():
		return &tableResolver{read: readProcNetARP}
	case osutils.IsOSX():
		return &tableResolver{read: readBSDArp}
	default:
		return unsupportedResolver{}
	}
}

func readProcNetARP(_ context.Context) (arpTable, error) {
	f, err := os.Open(procNetARP)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return parseProcNetARP(f)
}

func readBSDArp(ctx context.Context) (arpTable, error) {
	out, err := exec.CommandContext(ctx, "arp", "-an").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute arp -an: %w", err)
	}
	return parseBSDArp(bytes.NewReader(out))
}
