package driver

import (
	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/width"
)

// Values is the subset of smoothset.Set[T] coverage computation needs.
type Values[T numeric.Num[T]] interface {
	Len() int
	Get(i int) T
}

// CoverageReport is a coverage-strength signal: for each magnitude bucket
// (values sharing a bit length), whether every consecutive pair within the
// bucket satisfies the gap predicate (FullCovered) or only every other pair
// does (AltCovered). It is computed once per prime admission and is purely
// informational; nothing in the state machine reads it back.
type CoverageReport struct {
	Magnitudes  []int
	FullCovered []bool
	AltCovered  []bool
}

// ComputeCoverage buckets values by bit length and, within each bucket,
// checks the gap predicate across consecutive pairs.
func ComputeCoverage[T numeric.Num[T]](ring numeric.Ring[T], w width.Func, values Values[T]) CoverageReport {
	var report CoverageReport
	n := values.Len()
	if n < 2 {
		return report
	}

	one := ring.FromUint64(1)
	violated := func(i int) bool {
		_, right := width.Interval[T](ring, w, values.Get(i))
		left, _ := width.Interval[T](ring, w, values.Get(i+1))
		return left.Cmp(right.AddSat(one)) > 0
	}

	start := 0
	for start < n-1 {
		mag := values.Get(start).BitLen()
		end := start
		for end < n && values.Get(end).BitLen() == mag {
			end++
		}
		full, alt := true, true
		pair := 0
		for i := start; i < end && i < n-1; i++ {
			if violated(i) {
				full = false
				if pair%2 == 0 {
					alt = false
				}
			}
			pair++
		}
		report.Magnitudes = append(report.Magnitudes, mag)
		report.FullCovered = append(report.FullCovered, full)
		report.AltCovered = append(report.AltCovered, alt)
		start = end
	}
	return report
}
