// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package metasetup

import (
	"context"

	"github.com/z5labs/metasetup/internal/try"

	"golang.org/x/sync/errgroup"
)

// MultiRuntime takes inspiration from the io.Multiwriter
// to allow users to run multiple runtimes concurrently.
// The first Runtime to fail cancels the others.
type MultiRuntime struct {
	rs []Runtime
}

// NewMultiRuntime returns a MultiRuntime which runs every given Runtime.
func NewMultiRuntime(rs ...Runtime) *MultiRuntime {
	return &MultiRuntime{rs: rs}
}

// Run implements the Runtime interface.
func (mr *MultiRuntime) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, r := range mr.rs {
		g.Go(func() (err error) {
			defer try.Recover(&err)
			return r.Run(gctx)
		})
	}
	return g.Wait()
}
