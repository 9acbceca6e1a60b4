// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

//go:build windows

package probe

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// NewLinkLayerResolver returns a [LinkLayerResolver] reading the output of `arp -a`.
func NewLinkLayerResolver() LinkLayerResolver {
	return &tableResolver{read: readWindowsArp}
}

func readWindowsArp(ctx context.Context) (arpTable, error) {
	out, err := exec.CommandContext(ctx, "arp", "-a").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to execute arp -a: %w", err)
	}
	return parseWindowsArp(bytes.NewReader(out))
}
