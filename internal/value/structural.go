package value

import (
	"math"

	"github.com/google/go-cmp/cmp"
)

// StructuralComparer returns a cmp.Option that compares Value trees by
// content instead of by Equal's identity rule for collections. Tests that
// want to assert "decode(encode(v)) has the same shape as v" — rather
// than the production Equal/Compare's identity-sensitive rule from §3 —
// use this with cmp.Diff/cmp.Equal instead of reflect-based struct
// comparison, since Array and Map carry unexported bookkeeping fields
// go-cmp cannot see into on its own.
func StructuralComparer() cmp.Option {
	return cmp.Comparer(structuralEqual)
}

func structuralEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Boolean:
		return x == b.(Boolean)
	case Number:
		y := b.(Number)
		if math.IsNaN(float64(x)) && math.IsNaN(float64(y)) {
			return true
		}
		return x == y
	case String:
		return x == b.(String)
	case *Array:
		y := b.(*Array)
		if len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !structuralEqual(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case *Map:
		y := b.(*Map)
		if x.Len() != y.Len() {
			return false
		}
		equal := true
		x.Range(func(k MapKey, v Value) bool {
			yv, ok := y.Get(k)
			if !ok || !structuralEqual(v, yv) {
				equal = false
				return false
			}
			return true
		})
		return equal
	default:
		return true // both Null
	}
}
