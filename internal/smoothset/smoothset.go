// Package smoothset implements a sorted, sliding-window collection of all
// currently-smooth numbers, with prime admission delegated to
// internal/fixedprime and window shifts done via in-place
// shift-and-truncate rather than reallocation.
package smoothset

import (
	"sort"

	"github.com/bfix/gensmooth/internal/fixedprime"
	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/primetable"
)

// lowerBoundDelta fixes Delta = 2, i.e. F = primes[primesAdmitted+2] when
// computing the new lower bound in Advance. What Advance must preserve is
// cursor-restorability, not this exact factor — a larger Delta would give a
// larger F, hence a lower new lower bound that keeps more values below the
// cursor, but the invariant holds either way.
const lowerBoundDelta = 2

// Set is the sorted container of B-smooth values within the window
// (lowerBound, upperBound].
type Set[T numeric.Num[T]] struct {
	table          *primetable.Table[T]
	ring           numeric.Ring[T]
	lowerBound     T
	upperBound     T
	primesAdmitted int
	values         []T
}

// New creates an empty set over (lowerBound, upperBound] with no primes
// admitted yet; the caller typically follows with AdmitPrimesThrough(0).
func New[T numeric.Num[T]](table *primetable.Table[T], ring numeric.Ring[T], lowerBound, upperBound T) *Set[T] {
	return &Set[T]{table: table, ring: ring, lowerBound: lowerBound, upperBound: upperBound}
}

// Len returns the number of values currently in the window.
func (s *Set[T]) Len() int { return len(s.values) }

// Get returns the i.th value (0-indexed, ascending).
func (s *Set[T]) Get(i int) T { return s.values[i] }

// PrimesAdmitted returns the count of leading primes currently permitted as
// factors.
func (s *Set[T]) PrimesAdmitted() int { return s.primesAdmitted }

// UpperBound returns the current window's upper bound.
func (s *Set[T]) UpperBound() T { return s.upperBound }

// LowerBound returns the current window's lower bound.
func (s *Set[T]) LowerBound() T { return s.lowerBound }

// AdmitPrimesThrough admits every prime up to and including index, calling
// the fixed-prime generator for each newly-admitted prime and re-sorting
// once all shards are merged. Calling it again with an index already
// admitted is a no-op.
func (s *Set[T]) AdmitPrimesThrough(index int) {
	if index < s.primesAdmitted {
		return
	}
	for i := s.primesAdmitted; i <= index; i++ {
		shard := fixedprime.Generate[T](s.table, s.ring, s.lowerBound, s.upperBound, i)
		s.values = append(s.values, shard...)
	}
	s.primesAdmitted = index + 1
	sort.Slice(s.values, func(i, j int) bool { return s.values[i].Cmp(s.values[j]) < 0 })
}

// FindIndexAtMost returns the largest index whose value is <= b, and false
// if every value exceeds b.
func (s *Set[T]) FindIndexAtMost(b T) (int, bool) {
	i := sort.Search(len(s.values), func(i int) bool { return s.values[i].Cmp(b) > 0 })
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}

// FindIndexGreaterThan returns the smallest index whose value is > b, and
// false if no such value exists. Symmetric to FindIndexAtMost.
func (s *Set[T]) FindIndexGreaterThan(b T) (int, bool) {
	i := sort.Search(len(s.values), func(i int) bool { return s.values[i].Cmp(b) > 0 })
	if i == len(s.values) {
		return 0, false
	}
	return i, true
}

// Advance grows the window to (newLowerBound, newUpperBound], where
// newLowerBound is derived from newUpperBound (see step 3 below).
// Precondition: newUpperBound > s.upperBound && newUpperBound <= 2*s.upperBound.
func (s *Set[T]) Advance(newUpperBound T) {
	// Step 1: for each admitted prime P[i], scan existing values in
	// (upperBound/P[i], newUpperBound/P[i]] whose largest prime factor has
	// index <= i, and emit n*P[i]. The test is <= i, not < i, because
	// re-multiplying a value whose largest factor is already P[i] by another
	// copy of P[i] still has largest factor P[i] — excluding it would miss
	// those products.
	var fresh []T
	for i := 0; i < s.primesAdmitted; i++ {
		p := s.table.Prime(i)
		lo := s.upperBound.Div(p)
		hi := newUpperBound.Div(p)
		lb, ok := s.FindIndexGreaterThan(lo)
		if !ok {
			continue
		}
		ub, ok := s.FindIndexAtMost(hi)
		if !ok || ub < lb {
			continue
		}
		for idx := lb; idx <= ub; idx++ {
			n := s.values[idx]
			if s.largestPrimeIndex(n) <= i {
				fresh = append(fresh, n.Mul(p))
			}
		}
	}

	// Step 2: merge and re-sort.
	s.values = append(s.values, fresh...)
	sort.Slice(s.values, func(i, j int) bool { return s.values[i].Cmp(s.values[j]) < 0 })

	// Step 3: raise lowerBound to newUpperBound / F, F = primes[primesAdmitted+Delta].
	fIdx := s.primesAdmitted + lowerBoundDelta
	if fIdx >= s.table.Len() {
		fIdx = s.table.Len() - 1
	}
	f := s.table.Prime(fIdx)
	newLowerBound := newUpperBound.Div(f)

	// Step 4: drop values <= newLowerBound, in place (no reallocation).
	cut := sort.Search(len(s.values), func(i int) bool { return s.values[i].Cmp(newLowerBound) > 0 })
	n := copy(s.values, s.values[cut:])
	s.values = s.values[:n]

	s.lowerBound = newLowerBound
	s.upperBound = newUpperBound
}

// largestPrimeIndex returns the index of n's largest prime factor among the
// admitted primes, by probing downward: iterate admitted primes from
// largest to smallest, return the first that divides n.
func (s *Set[T]) largestPrimeIndex(n T) int {
	for i := s.primesAdmitted - 1; i >= 0; i-- {
		if n.Mod(s.table.Prime(i)).IsZero() {
			return i
		}
	}
	return -1
}
