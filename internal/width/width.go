// Package width implements the gap-width function family w(·): mode 0 is
// w(x) = (log2 x)^e, mode 1 is w(x) = x^e. Since the family is a small,
// fixed enumeration chosen once at startup, Func is a plain function value
// rather than an interface hierarchy — there is no dynamic dispatch to
// justify one.
//
// The log2/pow step is computed via float64 math.Log2/math.Pow. The
// precision loss at large magnitude is inherent to floating point itself,
// not something a bigger float type would avoid at this module's working
// scale, so stdlib math is sufficient here.
package width

import (
	"math"

	"github.com/bfix/gensmooth/internal/numeric"
)

// Mode selects which member of the w(·) family is in effect.
type Mode int

const (
	// ModeLog2Pow is w(x) = (log2 x)^e.
	ModeLog2Pow Mode = 0
	// ModePow is w(x) = x^e.
	ModePow Mode = 1
)

// Func computes w(x) for a value already converted to float64. Values this
// large necessarily lose precision in float64; the gap predicate accepts
// that approximation rather than carrying arbitrary-precision floats
// through the whole computation.
type Func func(x float64) float64

// New returns the Func for the given mode and exponent.
func New(mode Mode, e float64) Func {
	switch mode {
	case ModePow:
		return func(x float64) float64 { return math.Pow(x, e) }
	default:
		return func(x float64) float64 { return math.Pow(math.Log2(x), e) }
	}
}

// Interval computes the gap predicate endpoints:
// left(v) = v - w(v) + 1 (saturating at 0), right(v) = v + w(v) + 1
// (saturating at the regime's maximum).
func Interval[T numeric.Num[T]](ring numeric.Ring[T], w Func, v T) (left, right T) {
	wv := w(v.Float64())
	if wv < 0 {
		wv = 0
	}
	if wv > math.MaxUint64 {
		wv = math.MaxUint64
	}
	delta := ring.FromUint64(uint64(wv))
	one := ring.FromUint64(1)
	vPlus1 := v.AddSat(one)
	if delta.Cmp(vPlus1) >= 0 {
		left = ring.FromUint64(0)
	} else {
		left = vPlus1.Sub(delta)
	}
	right = v.AddSat(delta).AddSat(one)
	return left, right
}
