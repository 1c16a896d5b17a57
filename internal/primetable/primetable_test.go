package primetable

import (
	"testing"

	"github.com/bfix/gensmooth/internal/numeric"
)

func TestBuildU64Increasing(t *testing.T) {
	tab := Build[numeric.U64](numeric.U64Ring{}, 1000)
	for i := 1; i < tab.Len(); i++ {
		if tab.Raw(i) <= tab.Raw(i-1) {
			t.Fatalf("not strictly increasing at %d", i)
		}
		if tab.Prime(i).Uint64() != tab.Raw(i) {
			t.Fatalf("Prime/Raw mismatch at %d", i)
		}
	}
}

func TestHighestIndexAtMost(t *testing.T) {
	tab := Build[numeric.U64](numeric.U64Ring{}, 100) // 2,3,5,7,...,97
	i, ok := tab.HighestIndexAtMost(10)
	if !ok || tab.Raw(i) != 7 {
		t.Fatalf("HighestIndexAtMost(10) = (%d,%v), want prime 7", i, ok)
	}
	if _, ok := tab.HighestIndexAtMost(1); ok {
		t.Fatalf("HighestIndexAtMost(1) should report false")
	}
	i, ok = tab.HighestIndexAtMost(2)
	if !ok || tab.Raw(i) != 2 {
		t.Fatalf("HighestIndexAtMost(2) = (%d,%v), want prime 2", i, ok)
	}
}

func TestBuildBig(t *testing.T) {
	tab := Build[numeric.Big](numeric.BigRing{}, 50)
	if tab.Len() == 0 {
		t.Fatal("expected primes")
	}
	if tab.Prime(0).Uint64() != 2 {
		t.Fatalf("first prime = %d, want 2", tab.Prime(0).Uint64())
	}
}
