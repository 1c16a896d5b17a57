// Package driver implements the outer control loop: it advances a cursor
// through the smooth set, closes gaps by admitting more primes (raising the
// shape parameter c when the prime table cannot supply enough headroom), and
// widens the window until the whole range up to N has been scanned.
//
// The driver never touches stdout directly: no I/O runs inside workers, and
// more broadly nothing below cmd/gensmooth should print. Instead it
// publishes lifecycle events through a concurrent.Signaller, and
// cmd/gensmooth attaches a single listener that renders them through
// internal/logger.
package driver

import (
	"math"
	"time"

	"github.com/bfix/gensmooth/internal/concurrent"
	"github.com/bfix/gensmooth/internal/errs"
	"github.com/bfix/gensmooth/internal/gapscan"
	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/primetable"
	"github.com/bfix/gensmooth/internal/smoothset"
	"github.com/bfix/gensmooth/internal/width"
)

// State is one of the driver's state machine states. Closing is folded
// into Scanning here: admitting primes to close a gap and resuming the scan
// from the restored cursor is a single loop iteration, not a distinct state
// with its own transition rules.
type State int

const (
	Scanning State = iota
	Widening
	Done
)

// cCeiling is the shape parameter's upper bound: bounded above to terminate
// even on pathological inputs.
const cCeiling = 4.0

// cGrowth is the factor c is multiplied by on an irreducible gap.
const cGrowth = 1.01

// initialWindowUpper is the starting upper bound of the smooth set, chosen
// independently of n so the window actually has somewhere to grow from.
// Widening then grows it by half each step (see widenOnce) until it
// reaches n. Without this, starting the window already at n makes every
// widenOnce call a no-op and the set never evicts values below a rising
// lower bound.
const initialWindowUpper = 1 << 16

// PrimeAdmitted is sent after admit_primes_through widens the smoothness
// basis to close a gap. Coverage is a coarse coverage-strength signal
// computed over the values as they stood just before this admission (see
// CoverageReport); it is
// informational only and never drives the state machine.
type PrimeAdmitted[T numeric.Num[T]] struct {
	NewIndex int
	Coverage CoverageReport
}

// GapDetected is sent whenever the scanner finds a violation, whether or not
// it is ultimately closed.
type GapDetected[T numeric.Num[T]] struct {
	AtValue T
	C       float64
}

// WindowAdvanced is sent after the window is widened.
type WindowAdvanced[T numeric.Num[T]] struct {
	NewUpperBound T
}

// ShapeAdjusted is sent when c is grown because the prime table cannot
// supply a higher index at the current c.
type ShapeAdjusted struct {
	NewC float64
}

// Completed is sent exactly once, when the run reaches Done. UnresolvedGap
// is true when the run ended because c reached its ceiling with a gap still
// open; that is reported as a finding, not an internal error.
type Completed[T numeric.Num[T]] struct {
	FinalCursorValue T
	FinalC           float64
	UnresolvedGap    bool
	Elapsed          time.Duration
}

// Result is what Run returns once the driver reaches Done.
type Result[T numeric.Num[T]] struct {
	FinalCursorValue T
	FinalC           float64
	UnresolvedGap    bool
	Elapsed          time.Duration
}

// Driver owns the smooth set and runs the gap-closing state machine.
type Driver[T numeric.Num[T]] struct {
	table *primetable.Table[T]
	ring  numeric.Ring[T]
	set   *smoothset.Set[T]
	w     width.Func
	n     T

	stepWidth int
	workers   int

	c      float64
	cursor int

	sig *concurrent.Signaller
}

// New constructs a Driver over bound n, gap-width function w, with the
// given prime table (already built up to a static sieve bound) and working
// numeric ring. stepWidth and workers parameterize the gap scanner's
// slabbing.
func New[T numeric.Num[T]](table *primetable.Table[T], ring numeric.Ring[T], n T, w width.Func, stepWidth, workers int) *Driver[T] {
	start := ring.FromUint64(initialWindowUpper)
	if start.Cmp(n) > 0 {
		start = n
	}
	set := smoothset.New[T](table, ring, ring.FromUint64(0), start)
	return &Driver[T]{
		table:     table,
		ring:      ring,
		set:       set,
		w:         w,
		n:         n,
		stepWidth: stepWidth,
		workers:   workers,
		c:         1.0,
		sig:       concurrent.NewSignaller(),
	}
}

// Events returns a listener for the driver's lifecycle signals. Must be
// called before Run, since Run may emit its first signal immediately.
func (d *Driver[T]) Events() (*concurrent.Listener, error) {
	return d.sig.Listener()
}

// Run executes the state machine to completion. It never returns early on a
// gap: an unresolved gap at c >= cCeiling is reported in Result, not
// returned as an error.
func (d *Driver[T]) Run() (Result[T], error) {
	start := time.Now()
	d.set.AdmitPrimesThrough(0)
	d.cursor = 0

	state := Scanning
	unresolved := false

	for state != Done {
		switch state {
		case Scanning:
			next, err := d.scanOnce()
			if err != nil {
				return Result[T]{}, err
			}
			switch next {
			case scanContinue:
				state = Scanning
			case scanWiden:
				state = Widening
			case scanGapUnresolved:
				unresolved = true
				state = Done
			}

		case Widening:
			advanced, err := d.widenOnce()
			if err != nil {
				return Result[T]{}, err
			}
			if advanced {
				state = Scanning
			} else {
				state = Done
			}
		}
	}

	final := Result[T]{
		FinalC:        d.c,
		UnresolvedGap: unresolved,
		Elapsed:       time.Since(start),
	}
	if d.set.Len() > 0 {
		idx := d.cursor
		if idx >= d.set.Len() {
			idx = d.set.Len() - 1
		}
		final.FinalCursorValue = d.set.Get(idx)
	}
	d.sig.Send(Completed[T]{
		FinalCursorValue: final.FinalCursorValue,
		FinalC:           final.FinalC,
		UnresolvedGap:    final.UnresolvedGap,
		Elapsed:          final.Elapsed,
	})
	return final, nil
}

type scanOutcome int

const (
	scanContinue scanOutcome = iota
	scanWiden
	scanGapUnresolved
)

// scanOnce runs the gap scanner once from the current cursor and handles
// exactly one outcome: no gap (advance cursor or widen), or a gap (try to
// close it by admitting primes, or grow c and retry).
func (d *Driver[T]) scanOnce() (scanOutcome, error) {
	x, found := gapscan.Scan[T](d.ring, d.w, d.set, d.cursor, d.stepWidth, d.workers)
	if !found {
		d.cursor += d.stepWidth * d.workers
		if d.cursor >= d.set.Len()-1 {
			return scanWiden, nil
		}
		return scanContinue, nil
	}

	d.sig.Send(GapDetected[T]{AtValue: d.set.Get(x), C: d.c})

	_, right := width.Interval[T](d.ring, d.w, d.set.Get(x))
	target := right.AddSat(d.ring.FromUint64(1))
	bound := shapeBound(target.Float64(), d.c)
	newIndex, ok := d.table.HighestIndexAtMost(bound)
	if !ok {
		newIndex = 0
	}
	if last := d.table.Len() - 1; ok && newIndex == last && bound > d.table.Raw(last) {
		// The greatest prime <= bound may lie beyond the sieved table.
		newIndex = d.table.Len()
	}

	if newIndex > d.set.PrimesAdmitted()-1 {
		if newIndex >= d.table.Len() {
			return scanContinue, errs.New(errs.ErrPrimeTableExhausted, "requested prime index %d, table has %d", newIndex, d.table.Len())
		}
		cov := ComputeCoverage[T](d.ring, d.w, d.set)
		d.set.AdmitPrimesThrough(newIndex)
		d.sig.Send(PrimeAdmitted[T]{NewIndex: newIndex, Coverage: cov})
		if idx, ok := d.set.FindIndexAtMost(d.set.Get(x)); ok {
			d.cursor = idx
		}
		return scanContinue, nil
	}

	// newIndex == primesAdmitted-1: the prime table cannot widen at this c.
	if d.c >= cCeiling {
		return scanGapUnresolved, nil
	}
	d.c *= cGrowth
	d.sig.Send(ShapeAdjusted{NewC: d.c})
	return scanContinue, nil
}

// widenOnce advances the window toward n.
// Returns false once upper_bound has reached n, meaning the run is Done.
func (d *Driver[T]) widenOnce() (bool, error) {
	upper := d.set.UpperBound()
	if upper.Cmp(d.n) >= 0 {
		return false, nil
	}
	half := upper.Div(d.ring.FromUint64(2))
	newUpper := upper.AddSat(half)
	if newUpper.Cmp(d.n) > 0 {
		newUpper = d.n
	}

	var prevVal T
	haveCursor := d.set.Len() > 0
	if haveCursor {
		idx := d.cursor
		if idx >= d.set.Len() {
			idx = d.set.Len() - 1
		}
		prevVal = d.set.Get(idx)
	}

	d.set.Advance(newUpper)
	d.sig.Send(WindowAdvanced[T]{NewUpperBound: newUpper})

	if haveCursor {
		if idx, ok := d.set.FindIndexAtMost(prevVal); ok {
			d.cursor = idx
		} else {
			d.cursor = 0
		}
	}
	return true, nil
}

// shapeBound computes B(x) = (log2 x)^c, the smoothness bound used to pick
// the next candidate prime-table index.
func shapeBound(x, c float64) uint64 {
	if x < 2 {
		return 0
	}
	b := math.Pow(math.Log2(x), c)
	if b < 0 {
		b = 0
	}
	if b > math.MaxUint64 {
		b = math.MaxUint64
	}
	return uint64(b)
}
