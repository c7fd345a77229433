// Package parallel splits per-row image work across goroutines.
//
// Work is partitioned into contiguous row bands. Each band writes only the
// output rows it owns, so the result is identical to a sequential loop
// regardless of scheduling.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinRowsPerBand is the smallest band handed to a goroutine. Inputs with
// fewer rows than this run inline on the calling goroutine.
const MinRowsPerBand = 64

// Rows calls fn(y0, y1) for disjoint half-open bands covering [0, n).
// It returns after every band has completed.
func Rows(n int, fn func(y0, y1 int)) {
	if n <= 0 {
		return
	}
	workers := Workers(n)
	if workers == 1 {
		fn(0, n)
		return
	}

	band := (n + workers - 1) / workers
	var g errgroup.Group
	g.SetLimit(workers)
	for y0 := 0; y0 < n; y0 += band {
		y1 := min(y0+band, n)
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = g.Wait()
}

// Each runs fn(i) for every i in [0, n) concurrently and returns the first
// error. All calls run to completion even when one fails.
func Each(n int, fn func(i int) error) error {
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range n {
		g.Go(func() error {
			return fn(i)
		})
	}
	return g.Wait()
}

// Workers returns the number of bands Rows uses for n rows.
func Workers(n int) int {
	procs := runtime.GOMAXPROCS(0)
	bands := n / MinRowsPerBand
	if bands < 1 {
		return 1
	}
	return min(bands, procs)
}
