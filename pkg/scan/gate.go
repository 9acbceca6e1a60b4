// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package scan

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Gate admits a bounded number of concurrently running host probes.
// Every successful Acquire must be paired with exactly one Release.
type Gate interface {
	Acquire(ctx context.Context) error
	Release()
}

type weightedGate struct {
	sem *semaphore.Weighted
}

// NewGate returns a [Gate] admitting at most limit holders at a time.
func NewGate(limit int) Gate {
	return &weightedGate{sem: semaphore.NewWeighted(int64(limit))}
}

func (g *weightedGate) Acquire(ctx context.Context) error {
	return g.sem.Acquire(ctx, 1)
}

func (g *weightedGate) Release() {
	g.sem.Release(1)
}
