// Package composite implements an integer encoded as an exponent vector
// over a prefix of the prime table, with a cached value kept in sync by
// single multiply/divide operations rather than full recomputation.
//
// The type is generic over numeric.Num[T] so the same code serves both the
// u64 and the u128-class regime.
package composite

import "github.com/bfix/gensmooth/internal/numeric"

// primeSource is the subset of primetable.Table[T] a Composite needs; kept
// narrow so composite does not import primetable directly (avoids an import
// cycle with packages that parameterize both).
type primeSource[T numeric.Num[T]] interface {
	Prime(i int) T
}

// Composite is a positive integer represented as exponents over
// primes[0:len(es)], with a cached value equal to the product of
// primes[i]^es[i].
type Composite[T numeric.Num[T]] struct {
	primes primeSource[T]
	es     []uint8
	value  T
}

// New constructs primes[index]^value, with every other tracked exponent
// zero. width is the number of leading prime indices the composite can ever
// touch (typically index+1, since fixed-prime enumeration never needs
// indices beyond the one it fixes). one is the regime's literal value 1,
// supplied by the caller since T cannot be constructed from a literal
// without a numeric.Ring.
func New[T numeric.Num[T]](primes primeSource[T], one T, width, index int, value uint8) *Composite[T] {
	c := &Composite[T]{
		primes: primes,
		es:     make([]uint8, width),
		value:  one,
	}
	if value > 0 {
		c.es[index] = value
		c.value = primes.Prime(index).Pow(uint(value))
	}
	return c
}

// Value returns the cached numeric value.
func (c *Composite[T]) Value() T { return c.value }

// Exponent returns the current exponent at index i.
func (c *Composite[T]) Exponent(i int) uint8 { return c.es[i] }

// Width returns the number of tracked prime indices.
func (c *Composite[T]) Width() int { return len(c.es) }

// Clone returns an independent copy, since a Composite must never be shared
// across goroutines without copying.
func (c *Composite[T]) Clone() *Composite[T] {
	es := make([]uint8, len(c.es))
	copy(es, c.es)
	return &Composite[T]{primes: c.primes, es: es, value: c.value}
}

// SetExponent sets es[i] := e, updating value by a single multiplication or
// division by primes[i]^|delta| rather than recomputing the full product.
func (c *Composite[T]) SetExponent(i int, e uint8) {
	old := c.es[i]
	if e == old {
		return
	}
	p := c.primes.Prime(i)
	if e > old {
		c.value = c.value.Mul(p.Pow(uint(e - old)))
	} else {
		c.value = c.value.Div(p.Pow(uint(old - e)))
	}
	c.es[i] = e
}

// TryIncrement attempts es[i] += 1. It pre-checks via division
// (bound/primes[i] < value) rather than multiplying first and checking the
// result, which would risk overflowing T before the check could run. On
// failure the exponent is reset to zero and false is returned; on success
// the exponent and cached value are updated and true is returned.
func (c *Composite[T]) TryIncrement(bound T, i int) bool {
	p := c.primes.Prime(i)
	if bound.Div(p).Cmp(c.value) < 0 {
		c.SetExponent(i, 0)
		return false
	}
	c.value = c.value.Mul(p)
	c.es[i]++
	return true
}

// IncrementWithBound advances the composite by one step of a mixed-radix
// odometer: try index 0, then 1, then 2, ..., using
// the first successful increment; every index from 0 up to (but excluding)
// the one that succeeded is implicitly reset to zero by the failed
// TryIncrement calls. Returns false once every index has wrapped and the
// composite has returned to 1, signalling the enumeration is exhausted.
func (c *Composite[T]) IncrementWithBound(bound T) bool {
	for i := 0; i < len(c.es); i++ {
		if c.TryIncrement(bound, i) {
			return true
		}
	}
	return false
}
