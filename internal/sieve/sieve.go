// Package sieve builds the static prime table once at startup; it is never
// touched again afterward.
//
// It is a bit-packed Sieve of Eratosthenes over odd candidates only: simpler
// than a mod-6 wheel and plainly sufficient at the scale this module runs
// at.
package sieve

// PrimesUpTo returns every prime <= bound, in ascending order. bound must be
// at least 2.
func PrimesUpTo(bound uint64) []uint64 {
	if bound < 2 {
		return nil
	}
	// composite[i] tracks the odd number 2*i+3, i.e. index 0 -> 3, 1 -> 5, ...
	n := (bound - 1) / 2
	words := n/64 + 1
	composite := make([]uint64, words)

	isComposite := func(i uint64) bool {
		return composite[i/64]&(1<<(i%64)) != 0
	}
	setComposite := func(i uint64) {
		composite[i/64] |= 1 << (i % 64)
	}

	for i := uint64(0); 2*i+3 <= bound; i++ {
		if isComposite(i) {
			continue
		}
		p := 2*i + 3
		// first odd multiple of p at or above p*p: (p*p-3)/2
		if p > (^uint64(0)-3)/p {
			continue // p*p would overflow uint64; no composites to mark within bound
		}
		for j := (p*p - 3) / 2; 2*j+3 <= bound; j += p {
			setComposite(j)
		}
	}

	primes := make([]uint64, 0, n/10+2)
	if bound >= 2 {
		primes = append(primes, 2)
	}
	for i := uint64(0); 2*i+3 <= bound; i++ {
		if !isComposite(i) {
			primes = append(primes, 2*i+3)
		}
	}
	return primes
}
