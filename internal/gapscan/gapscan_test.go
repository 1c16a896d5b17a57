package gapscan

import (
	"testing"

	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/width"
)

type sliceValues []numeric.U64

func (s sliceValues) Len() int             { return len(s) }
func (s sliceValues) Get(i int) numeric.U64 { return s[i] }

// TestScanFindsViolation checks that the returned index, if any, is the
// smallest x in the scanned range with a gap-predicate violation.
func TestScanFindsViolation(t *testing.T) {
	w := width.New(width.ModePow, 0.5) // w(x) = sqrt(x)
	vals := sliceValues{1, 2, 3, 4, 100, 101, 102}

	idx, ok := bruteForceFirstViolation(numeric.U64Ring{}, w, vals, 0)
	if !ok {
		t.Fatalf("expected a violation in this handcrafted sequence")
	}

	got, gotOK := Scan[numeric.U64](numeric.U64Ring{}, w, vals, 0, 4, 2)
	if !gotOK {
		t.Fatalf("Scan found no violation, want index %d", idx)
	}
	if got != idx {
		t.Fatalf("Scan returned index %d, want %d", got, idx)
	}
}

// TestScanNoViolation covers a tightly packed sequence with no gap.
func TestScanNoViolation(t *testing.T) {
	w := width.New(width.ModePow, 1.0) // w(x) = x, intervals always overlap for increments of 1
	vals := sliceValues{1, 2, 3, 4, 5, 6, 7, 8}

	_, ok := Scan[numeric.U64](numeric.U64Ring{}, w, vals, 0, 3, 2)
	if ok {
		t.Fatalf("did not expect a violation for a tightly packed sequence")
	}
}

// TestScanIndependentOfWorkerCount checks that the minimum violating index
// does not depend on slab/worker partitioning.
func TestScanIndependentOfWorkerCount(t *testing.T) {
	w := width.New(width.ModeLog2Pow, 1.0)
	vals := sliceValues{2, 3, 4, 6, 8, 9, 12, 16, 18, 24, 27, 32, 36, 1000, 1001}

	// Both partitions cover every pair (2*7 and 5*3 indices >= 14 pairs).
	idx1, ok1 := Scan[numeric.U64](numeric.U64Ring{}, w, vals, 0, 2, 7)
	idx2, ok2 := Scan[numeric.U64](numeric.U64Ring{}, w, vals, 0, 5, 3)
	if ok1 != ok2 || idx1 != idx2 {
		t.Fatalf("scan result depends on slab/worker partition: (%d,%v) vs (%d,%v)", idx1, ok1, idx2, ok2)
	}
}

func bruteForceFirstViolation(ring numeric.Ring[numeric.U64], w width.Func, vals sliceValues, cur int) (int, bool) {
	for x := cur; x < len(vals)-1; x++ {
		_, right := width.Interval[numeric.U64](ring, w, vals[x])
		left, _ := width.Interval[numeric.U64](ring, w, vals[x+1])
		if left.Cmp(right.AddSat(ring.FromUint64(1))) > 0 {
			return x, true
		}
	}
	return 0, false
}
