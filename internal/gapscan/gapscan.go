// Package gapscan implements a parallel gap scanner: over a sorted slice
// of values, search in parallel for the smallest index violating
// left(values[x+1]) > right(values[x]) + 1.
//
// Slabs are scanned with golang.org/x/sync/errgroup: each slab runs inside
// g.Go(...), g.SetLimit bounds concurrency to the caller's worker count,
// and g.Wait() forms the join barrier before results are reduced.
package gapscan

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/width"
)

// Values is the subset of smoothset.Set[T] the scanner needs.
type Values[T numeric.Num[T]] interface {
	Len() int
	Get(i int) T
}

// Scan searches for the smallest index x >= cur with
// left(values[x+1]) > right(values[x])+1. One call inspects workers slabs
// of stepWidth indices each, starting at cur (so at most
// workers*stepWidth indices, clipped to values.Len()-1), scanned
// concurrently; the caller advances cur to cover the rest. It returns the
// globally smallest violating index found among the slabs it inspected,
// and false if none of the inspected slabs contained a violation.
//
// Slabs beyond the first violating one may be only partially scanned; the
// minimum index among what *was* inspected is still correct because every
// slab reports its own first violation (or none), and the result is the
// minimum across all of them.
func Scan[T numeric.Num[T]](ring numeric.Ring[T], w width.Func, values Values[T], cur, stepWidth, workers int) (int, bool) {
	n := values.Len()
	if cur >= n-1 {
		return 0, false
	}
	numSlabs := workers
	if numSlabs < 1 {
		numSlabs = 1
	}

	results := make([]int, numSlabs)
	found := make([]bool, numSlabs)

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(numSlabs)
	for s := 0; s < numSlabs; s++ {
		s := s
		start := cur + s*stepWidth
		if start >= n-1 {
			continue
		}
		stop := start + stepWidth
		if stop > n-1 {
			stop = n - 1
		}
		g.Go(func() error {
			for x := start; x < stop; x++ {
				_, right := width.Interval[T](ring, w, values.Get(x))
				left, _ := width.Interval[T](ring, w, values.Get(x+1))
				if left.Cmp(right.AddSat(ring.FromUint64(1))) > 0 {
					results[s] = x
					found[s] = true
					return nil
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	best := -1
	for s := 0; s < numSlabs; s++ {
		if found[s] && (best == -1 || results[s] < best) {
			best = results[s]
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}
