// Package fixedprime implements the fixed-prime generator: given (L, U, k),
// it produces every value in (L, U] whose largest prime factor is exactly
// primes[k].
//
// Work is fanned out across internal/concurrent's Dispatcher, one task per
// admissible exponent of primes[k] — each distinct exponent is independent
// and can run on any worker. Tasks are pulled from a shared queue rather
// than given one dedicated goroutine each, so exponents with very different
// enumeration counts (small e covers far more composites than large e)
// load-balance across whatever parallelism is available.
package fixedprime

import (
	"context"
	"runtime"
	"sort"

	"github.com/bfix/gensmooth/internal/composite"
	"github.com/bfix/gensmooth/internal/concurrent"
	"github.com/bfix/gensmooth/internal/numeric"
)

func newDispatcher[T numeric.Num[T]](ctx context.Context, workers int, g *gen[T]) *concurrent.Dispatcher[task, result[T]] {
	return concurrent.NewDispatcher[task, result[T]](ctx, workers, g)
}

// Source is the subset of primetable.Table[T] the generator needs.
type Source[T numeric.Num[T]] interface {
	Prime(i int) T
}

type task struct{ exponent uint8 }

type result[T numeric.Num[T]] struct{ values []T }

// Generate returns every value in (lower, upper] whose largest prime factor
// is primes[k], sorted ascending: each per-exponent shard is gathered and
// the concatenation is sorted once at the end.
func Generate[T numeric.Num[T]](primes Source[T], ring numeric.Ring[T], lower, upper T, k int) []T {
	one := ring.FromUint64(1)
	p := primes.Prime(k)

	maxExp := uint8(0)
	for v := p; v.Cmp(upper) <= 0; {
		maxExp++
		if maxExp == 255 {
			break
		}
		nv := v.Mul(p)
		if nv.Cmp(v) <= 0 { // overflow guard, defensive
			break
		}
		v = nv
	}
	if maxExp == 0 {
		return nil
	}

	g := &gen[T]{
		primes: primes, ring: ring, lower: lower, upper: upper, k: k, one: one,
		want: int(maxExp),
		done: make(chan struct{}),
	}
	ctx := context.Background()
	workers := runtime.GOMAXPROCS(0)
	if workers > g.want {
		workers = g.want
	}
	if workers < 1 {
		workers = 1
	}
	d := newDispatcher(ctx, workers, g)
	for e := uint8(1); e <= maxExp; e++ {
		d.Process(task{exponent: e})
	}
	<-g.done

	sort.Slice(g.out, func(i, j int) bool { return g.out[i].Cmp(g.out[j]) < 0 })
	return g.out
}

type gen[T numeric.Num[T]] struct {
	primes Source[T]
	ring   numeric.Ring[T]
	lower  T
	upper  T
	k      int
	one    T

	want int
	got  int
	out  []T
	done chan struct{}
}

func (g *gen[T]) Worker(ctx context.Context, n int, taskCh chan task, resCh chan result[T]) {
	for {
		select {
		case <-ctx.Done():
			return
		case t, ok := <-taskCh:
			if !ok {
				return
			}
			resCh <- result[T]{values: g.enumerate(t.exponent)}
		}
	}
}

func (g *gen[T]) Eval(r result[T]) bool {
	g.out = append(g.out, r.values...)
	g.got++
	if g.got >= g.want {
		close(g.done)
		return true
	}
	return false
}

// enumerate runs the per-exponent procedure: start a composite with
// es[k] = e, emit values > lower, and walk IncrementWithBound(upper) until
// the odometer carries into index k (the exponent there changes) or wraps
// to 1.
func (g *gen[T]) enumerate(e uint8) []T {
	c := composite.New[T](g.primes, g.one, g.k+1, g.k, e)
	var out []T
	if c.Value().Cmp(g.lower) > 0 {
		out = append(out, c.Value())
	}
	for {
		if !c.IncrementWithBound(g.upper) {
			break
		}
		if c.Exponent(g.k) != e {
			break
		}
		if c.Value().Cmp(g.lower) > 0 {
			out = append(out, c.Value())
		}
	}
	return out
}
