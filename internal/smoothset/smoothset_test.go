package smoothset

import (
	"testing"

	"github.com/bfix/gensmooth/internal/numeric"
	"github.com/bfix/gensmooth/internal/primetable"
)

func newU64Set(primeBound, lower, upper uint64) *Set[numeric.U64] {
	tab := primetable.Build[numeric.U64](numeric.U64Ring{}, primeBound)
	return New[numeric.U64](tab, numeric.U64Ring{}, numeric.U64(lower), numeric.U64(upper))
}

func values(s *Set[numeric.U64]) []uint64 {
	out := make([]uint64, s.Len())
	for i := range out {
		out[i] = s.Get(i).Uint64()
	}
	return out
}

// TestE1 checks N=1000, only prime 2 admitted.
// Expected values: {2,4,8,...,512}, 9 entries.
func TestE1(t *testing.T) {
	s := newU64Set(1000, 0, 1000)
	s.AdmitPrimesThrough(0)
	got := values(s)
	want := []uint64{2, 4, 8, 16, 32, 64, 128, 256, 512}
	assertEqual(t, got, want)
}

// TestE2 checks N=1000, primes {2,3} admitted.
func TestE2(t *testing.T) {
	s := newU64Set(1000, 0, 1000)
	s.AdmitPrimesThrough(1)
	got := values(s)
	want := []uint64{2, 3, 4, 6, 8, 9, 12, 16, 18, 24, 27}
	if len(got) < len(want) {
		t.Fatalf("got %v, too short to compare against %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want prefix %v", got, want)
		}
	}
}

// TestSortedness checks that values stay strictly increasing after
// admitting more primes.
func TestSortedness(t *testing.T) {
	s := newU64Set(2000, 0, 2000)
	s.AdmitPrimesThrough(3)
	got := values(s)
	for i := 1; i < len(got); i++ {
		if got[i] <= got[i-1] {
			t.Fatalf("not strictly increasing at %d: %v", i, got)
		}
	}
}

// TestWindowInvariant checks every value stays within (lowerBound, upperBound].
func TestWindowInvariant(t *testing.T) {
	s := newU64Set(2000, 100, 500)
	s.AdmitPrimesThrough(3)
	for i := 0; i < s.Len(); i++ {
		v := s.Get(i).Uint64()
		if !(v > 100 && v <= 500) {
			t.Fatalf("value %d outside window (100,500]", v)
		}
	}
}

// TestE4 checks an advance with upperBound 100 -> 150, primes {2,3,5}
// admitted; new entries should include 108,120,125,128,135,144,150.
func TestE4(t *testing.T) {
	s := newU64Set(200, 0, 100)
	s.AdmitPrimesThrough(2) // primes 2,3,5
	s.Advance(numeric.U64(150))

	want := []uint64{108, 120, 125, 128, 135, 144, 150}
	got := map[uint64]bool{}
	for i := 0; i < s.Len(); i++ {
		got[s.Get(i).Uint64()] = true
	}
	for _, w := range want {
		if !got[w] {
			t.Fatalf("missing expected new value %d after advance; got %v", w, values(s))
		}
	}
}

// TestAdvanceCorrectness checks that after Advance(U'), the set equals
// { smooth x : new_lower_bound < x <= U' }, with no duplicates.
func TestAdvanceCorrectness(t *testing.T) {
	tab := primetable.Build[numeric.U64](numeric.U64Ring{}, 2000)
	s := New[numeric.U64](tab, numeric.U64Ring{}, numeric.U64(0), numeric.U64(200))
	s.AdmitPrimesThrough(3) // 2,3,5,7
	s.Advance(numeric.U64(350))

	seen := map[uint64]int{}
	for i := 0; i < s.Len(); i++ {
		seen[s.Get(i).Uint64()]++
	}
	for v, c := range seen {
		if c != 1 {
			t.Fatalf("value %d appears %d times", v, c)
		}
	}

	want := bruteForceSmooth(tab, 4, s.LowerBound().Uint64(), 350)
	for v := range want {
		if seen[v] == 0 {
			t.Fatalf("missing smooth value %d in window (%d,350]", v, s.LowerBound().Uint64())
		}
	}
	for v := range seen {
		if !want[v] {
			t.Fatalf("unexpected value %d present after advance", v)
		}
	}
}

func bruteForceSmooth(tab *primetable.Table[numeric.U64], numPrimes int, lower, upper uint64) map[uint64]bool {
	out := map[uint64]bool{}
	var rec func(idx int, v uint64)
	rec = func(idx int, v uint64) {
		if idx >= numPrimes {
			return
		}
		p := tab.Raw(idx)
		for {
			if v > upper {
				return
			}
			if v > lower && v != 1 {
				out[v] = true
			}
			rec(idx+1, v)
			if upper/p < v {
				return
			}
			v *= p
		}
	}
	rec(0, 1)
	return out
}

func assertEqual(t *testing.T, got, want []uint64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v (len %d), want %v (len %d)", got, len(got), want, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
