// Package primetable holds an immutable ordered list of primes, with binary
// search for "greatest prime at most u". It is built once from
// internal/sieve and never mutated — the set of admitted primes is tracked
// by the caller (internal/smoothset), not by the table itself.
package primetable

import (
	"sort"

	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/sieve"
)

// Table holds the static prime list in both its raw uint64 form (for index
// arithmetic and log-scale estimates) and in the working value type T (for
// use by composite/smoothset arithmetic).
type Table[T numeric.Num[T]] struct {
	raw  []uint64
	vals []T
}

// Build sieves every prime <= bound and converts each into T via ring.
func Build[T numeric.Num[T]](ring numeric.Ring[T], bound uint64) *Table[T] {
	raw := sieve.PrimesUpTo(bound)
	vals := make([]T, len(raw))
	for i, p := range raw {
		vals[i] = ring.FromUint64(p)
	}
	return &Table[T]{raw: raw, vals: vals}
}

// Len returns the number of primes in the table.
func (t *Table[T]) Len() int { return len(t.raw) }

// Prime returns the i.th prime as a working value.
func (t *Table[T]) Prime(i int) T { return t.vals[i] }

// Raw returns the i.th prime as a uint64 (always safe: prime values never
// approach the regime's ceiling even in the u128-class regime).
func (t *Table[T]) Raw(i int) uint64 { return t.raw[i] }

// HighestIndexAtMost returns the largest index i with Raw(i) <= u, and
// false if every prime exceeds u.
func (t *Table[T]) HighestIndexAtMost(u uint64) (int, bool) {
	i := sort.Search(len(t.raw), func(i int) bool { return t.raw[i] > u })
	if i == 0 {
		return 0, false
	}
	return i - 1, true
}
