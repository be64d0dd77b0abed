package value

import (
	"math"

	"github.com/cespare/xxhash/v2"
)

// kindRank orders Kinds for cross-kind comparison: Number > String >
// Boolean > Map > Array > Null (spec §3). Values of different kinds never
// compare equal; this rank decides which sorts first.
func kindRank(k Kind) int {
	switch k {
	case KindNumber:
		return 5
	case KindString:
		return 4
	case KindBoolean:
		return 3
	case KindMap:
		return 2
	case KindArray:
		return 1
	default: // KindNull
		return 0
	}
}

// Equal reports whether a and b hold the same value under the spec's rules:
// scalars compare by value, with NaN equal to NaN of the same bit pattern
// (not IEEE-754 equality); collections compare by identity, never by
// structural content.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case nullValue:
		return true
	case Boolean:
		return x == b.(Boolean)
	case Number:
		return math.Float64bits(float64(x)) == math.Float64bits(float64(b.(Number)))
	case String:
		return x == b.(String)
	case *Array:
		return x.identity() == b.(*Array).identity()
	case *Map:
		return x.identity() == b.(*Map).identity()
	default:
		panic("value: unknown Value implementation")
	}
}

// Compare imposes a total order over Values: Number > String > Boolean >
// Map > Array > Null by kind, then by value within a kind. NaN sorts below every other number but equal to other NaNs with an
// identical bit pattern, so the order is total even though IEEE-754
// ordering alone is not.
func Compare(a, b Value) int {
	if ra, rb := kindRank(a.Kind()), kindRank(b.Kind()); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch x := a.(type) {
	case nullValue:
		return 0
	case Boolean:
		y := b.(Boolean)
		switch {
		case x == y:
			return 0
		case !x && y:
			return -1
		default:
			return 1
		}
	case Number:
		y := b.(Number)
		xf, yf := float64(x), float64(y)
		xNaN, yNaN := math.IsNaN(xf), math.IsNaN(yf)
		switch {
		case xNaN && yNaN:
			xb, yb := math.Float64bits(xf), math.Float64bits(yf)
			switch {
			case xb == yb:
				return 0
			case xb < yb:
				return -1
			default:
				return 1
			}
		case xNaN:
			return -1
		case yNaN:
			return 1
		case xf < yf:
			return -1
		case xf > yf:
			return 1
		default:
			return 0
		}
	case String:
		y := b.(String)
		switch {
		case x == y:
			return 0
		case x < y:
			return -1
		default:
			return 1
		}
	case *Array:
		return compareID(x.identity(), b.(*Array).identity())
	case *Map:
		return compareID(x.identity(), b.(*Map).identity())
	default:
		panic("value: unknown Value implementation")
	}
}

func compareID(a, b uint64) int {
	switch {
	case a == b:
		return 0
	case a < b:
		return -1
	default:
		return 1
	}
}

// Hash computes a hash consistent with Equal: equal values always hash
// equal. Strings are hashed with xxhash; everything else folds a small
// tagged payload through the same hasher so all variants share one
// algorithm and collisions across kinds stay unlikely.
func Hash(v Value) uint64 {
	var buf [9]byte
	buf[0] = byte(v.Kind())
	switch x := v.(type) {
	case nullValue:
	case Boolean:
		if x {
			buf[1] = 1
		}
	case Number:
		putUint64(buf[1:], math.Float64bits(float64(x)))
	case String:
		h := xxhash.New()
		h.Write(buf[:1])
		h.WriteString(string(x))
		return h.Sum64()
	case *Array:
		putUint64(buf[1:], x.identity())
	case *Map:
		putUint64(buf[1:], x.identity())
	default:
		panic("value: unknown Value implementation")
	}
	return xxhash.Sum64(buf[:])
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (56 - 8*i))
	}
}
