package numeric

import "math/big"

// Big is the working-value type for the regime from 2^63 upward (the
// u128-class regime, selected when N >= 2^63). It wraps math/big.Int, with the method
// surface trimmed to what this domain calls.
type Big struct {
	v *big.Int
}

// BigRing constructs Big values from a uint64.
type BigRing struct{}

func (BigRing) FromUint64(v uint64) Big { return Big{v: new(big.Int).SetUint64(v)} }

// NewBigFromString parses a decimal string into a Big, for CLI bound parsing.
func NewBigFromString(s string) (Big, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Big{}, false
	}
	return Big{v: v}, true
}

func (b Big) Add(o Big) Big { return Big{v: new(big.Int).Add(b.v, o.v)} }
func (b Big) Sub(o Big) Big { return Big{v: new(big.Int).Sub(b.v, o.v)} }
func (b Big) Mul(o Big) Big { return Big{v: new(big.Int).Mul(b.v, o.v)} }
func (b Big) Div(o Big) Big { return Big{v: new(big.Int).Div(b.v, o.v)} }
func (b Big) Mod(o Big) Big { return Big{v: new(big.Int).Mod(b.v, o.v)} }

func (b Big) Cmp(o Big) int   { return b.v.Cmp(o.v) }
func (b Big) Equals(o Big) bool { return b.v.Cmp(o.v) == 0 }
func (b Big) IsZero() bool      { return b.v.Sign() == 0 }
func (b Big) BitLen() int       { return b.v.BitLen() }
func (b Big) Uint64() uint64    { return b.v.Uint64() }

func (b Big) Float64() float64 {
	f := new(big.Float).SetInt(b.v)
	v, _ := f.Float64()
	return v
}

func (b Big) Pow(n uint) Big {
	return Big{v: new(big.Int).Exp(b.v, new(big.Int).SetUint64(uint64(n)), nil)}
}

func (b Big) String() string { return b.v.String() }

// AddSat adds, saturating at the maximum value representable in 128 bits
// instead of growing without bound — big.Int never overflows on its own,
// but the gap predicate wants a fixed ceiling to saturate against so
// left()/right() behave the same way in both regimes.
func (b Big) AddSat(o Big) Big {
	sum := new(big.Int).Add(b.v, o.v)
	if sum.Cmp(max128) > 0 {
		return Big{v: new(big.Int).Set(max128)}
	}
	return Big{v: sum}
}

// SubSat subtracts, saturating at zero.
func (b Big) SubSat(o Big) Big {
	if o.v.Cmp(b.v) >= 0 {
		return Big{v: big.NewInt(0)}
	}
	return Big{v: new(big.Int).Sub(b.v, o.v)}
}

var max128 = func() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), 128)
	return m.Sub(m, big.NewInt(1))
}()
