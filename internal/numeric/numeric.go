// Package numeric provides the two working-value regimes used throughout
// gensmooth: a native uint64 regime for bounds up to 2^63, and a
// math/big-backed regime for everything above it. Both satisfy Num[T], so
// the rest of the module (composite, smoothset, fixedprime, gapscan) is
// written once, generically, against Num[T] instead of being duplicated per
// regime.
package numeric

// Num is the constraint every working value type must satisfy. T is
// immutable: every method returns a new value rather than mutating the
// receiver.
type Num[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	Mod(T) T
	Cmp(T) int
	Equals(T) bool
	IsZero() bool
	BitLen() int
	Pow(n uint) T
	Uint64() uint64  // truncating; only safe where the caller knows the value fits
	Float64() float64 // approximate; used only for gap-width evaluation

	// AddSat/SubSat saturate at the regime's maximum / at zero instead of
	// wrapping.
	AddSat(T) T
	SubSat(T) T
}

// Ring supplies the constructors a generic algorithm needs but that Num[T]
// itself cannot, since constructing a T is not a method on an existing T.
type Ring[T any] interface {
	FromUint64(uint64) T
}
