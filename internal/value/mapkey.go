package value

import (
	"math"

	"github.com/wa-tools/wacodec/internal/errs"
)

// MapKey wraps a Value that is valid as a Map key. Null is never a valid
// key (spec §3); every other Kind is.
type MapKey struct {
	v Value
}

// NewMapKey validates and wraps v as a key.
func NewMapKey(v Value) (MapKey, error) {
	if v == nil || v.Kind() == KindNull {
		return MapKey{}, errs.New(errs.InvalidKey, "null is not a valid map key")
	}
	return MapKey{v: v}, nil
}

// Value returns the underlying key value.
func (k MapKey) Value() Value { return k.v }

// proxyKey is the actual type used as a Go map key inside Map. It collapses
// every Value into a small, comparable struct whose == agrees with the
// spec's Equal — in particular, two NaN numbers with the same bit pattern
// produce the same proxyKey, unlike native float64 equality.
type proxyKey struct {
	kind Kind
	bits uint64
	str  string
}

// proxyOf computes the proxy for v. Collections use their identity so that
// two distinct tables, however structurally similar, never collide.
func proxyOf(v Value) proxyKey {
	switch x := v.(type) {
	case nullValue:
		return proxyKey{kind: KindNull}
	case Boolean:
		var b uint64
		if x {
			b = 1
		}
		return proxyKey{kind: KindBoolean, bits: b}
	case Number:
		return proxyKey{kind: KindNumber, bits: math.Float64bits(float64(x))}
	case String:
		return proxyKey{kind: KindString, str: string(x)}
	case *Array:
		return proxyKey{kind: KindArray, bits: x.identity()}
	case *Map:
		return proxyKey{kind: KindMap, bits: x.identity()}
	default:
		panic("value: unknown Value implementation")
	}
}
