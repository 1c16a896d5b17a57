package numeric

import "math/bits"

// U64 is the native working-value type for the bound < 2^63 regime: uint64
// handles that range natively without the u128-class regime.
type U64 uint64

// U64Ring constructs U64 values from a uint64.
type U64Ring struct{}

func (U64Ring) FromUint64(v uint64) U64 { return U64(v) }

func (u U64) Add(v U64) U64 { return u + v }
func (u U64) Sub(v U64) U64 { return u - v }
func (u U64) Mul(v U64) U64 { return u * v }
func (u U64) Div(v U64) U64 { return u / v }
func (u U64) Mod(v U64) U64 { return u % v }

func (u U64) Cmp(v U64) int {
	switch {
	case u < v:
		return -1
	case u > v:
		return 1
	default:
		return 0
	}
}

func (u U64) Equals(v U64) bool { return u == v }
func (u U64) IsZero() bool      { return u == 0 }
func (u U64) BitLen() int       { return bits.Len64(uint64(u)) }
func (u U64) Uint64() uint64    { return uint64(u) }
func (u U64) Float64() float64  { return float64(u) }

// Pow raises u to the n.th power. Overflow is the caller's responsibility —
// composite.TryIncrement never calls Pow with an n large enough to overflow
// because it always pre-checks via Div before multiplying.
func (u U64) Pow(n uint) U64 {
	r := U64(1)
	base := u
	for n > 0 {
		if n&1 == 1 {
			r *= base
		}
		base *= base
		n >>= 1
	}
	return r
}

// AddSat adds two U64 saturating at the maximum uint64 value instead of
// wrapping.
func (u U64) AddSat(v U64) U64 {
	if u > ^U64(0)-v {
		return ^U64(0)
	}
	return u + v
}

// SubSat subtracts, saturating at zero instead of wrapping.
func (u U64) SubSat(v U64) U64 {
	if v > u {
		return 0
	}
	return u - v
}
