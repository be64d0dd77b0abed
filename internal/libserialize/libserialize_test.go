package libserialize

import (
	"math"
	"testing"

	"github.com/wa-tools/wacodec/internal/errs"
	"github.com/wa-tools/wacodec/internal/value"
)

func roundTrip(t *testing.T, v value.Value) value.Value {
	t.Helper()
	enc, err := Serialize(v)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	dec, err := Deserialize(enc)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	return dec
}

func TestScalarRoundTrip(t *testing.T) {
	cases := []value.Value{
		value.Null,
		value.Boolean(true),
		value.Boolean(false),
		value.Number(0),
		value.Number(42),
		value.Number(-42),
		value.Number(127),
		value.Number(128),
		value.Number(4095),
		value.Number(4096),
		value.Number(65535),
		value.Number(65536),
		value.Number(1<<24 - 1),
		value.Number(1 << 24),
		value.Number(1<<32 - 1),
		value.Number(1 << 32),
		value.Number(1<<56 - 1),
		value.Number(-127),
		value.Number(-128),
		value.Number(-4095),
		value.Number(-4096),
		value.Number(3.14159),
		value.String(""),
		value.String("ab"),
		value.String("hello world"),
	}
	for _, v := range cases {
		got := roundTrip(t, v)
		if !value.Equal(got, v) {
			t.Fatalf("round trip mismatch for %#v: got %#v", v, got)
		}
	}
}

func TestPackedSevenBitZero(t *testing.T) {
	enc, err := Serialize(value.Number(0))
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	// minor version byte, then one packed-7-bit byte for zero: 0<<1|1 = 1.
	if len(enc) != 2 || enc[1] != 1 {
		t.Fatalf("expected zero to take the packed 7-bit form, got % x", enc)
	}
}

func TestStringInterning(t *testing.T) {
	arr := value.NewArray([]value.Value{
		value.String("hello"),
		value.String("hello"),
		value.String("hello"),
	})
	enc, err := Serialize(arr)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	// version byte + embedded array(3) + embedded str "hello" + 2 StrRef8 bytes-pairs
	dec, err := Deserialize(enc)
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	da, ok := dec.(*value.Array)
	if !ok || da.Len() != 3 {
		t.Fatalf("expected array of 3, got %#v", dec)
	}
	for _, item := range da.Items {
		if !value.Equal(item, value.String("hello")) {
			t.Fatalf("expected all elements to be \"hello\", got %#v", item)
		}
	}
}

func TestArrayAndMapRoundTrip(t *testing.T) {
	arr := value.NewArray([]value.Value{value.Number(1), value.String("two"), value.Boolean(true)})
	got := roundTrip(t, arr)
	ga, ok := got.(*value.Array)
	if !ok || ga.Len() != 3 {
		t.Fatalf("expected array round trip, got %#v", got)
	}

	m := value.NewMap()
	k1, _ := value.NewMapKey(value.String("a"))
	k2, _ := value.NewMapKey(value.Number(7))
	m.Set(k1, value.Number(1))
	m.Set(k2, value.String("seven"))
	gotM := roundTrip(t, m)
	gm, ok := gotM.(*value.Map)
	if !ok || gm.Len() != 2 {
		t.Fatalf("expected map round trip, got %#v", gotM)
	}
}

func TestEmptyMapRoundTrip(t *testing.T) {
	got := roundTrip(t, value.NewMap())
	gm, ok := got.(*value.Map)
	if !ok || gm.Len() != 0 {
		t.Fatalf("expected empty map, got %#v", got)
	}
}

func TestWideArray(t *testing.T) {
	items := make([]value.Value, 20)
	for i := range items {
		items[i] = value.Number(float64(i))
	}
	got := roundTrip(t, value.NewArray(items))
	ga, ok := got.(*value.Array)
	if !ok || ga.Len() != 20 {
		t.Fatalf("expected 20-element array, got %#v", got)
	}
}

func TestUnsupportedVersion(t *testing.T) {
	if _, err := Deserialize([]byte{2, 0}); !errs.Is(err, errs.UnsupportedVersion) {
		t.Fatalf("expected UnsupportedVersion, got %v", err)
	}
}

func TestNaNRoundTrip(t *testing.T) {
	// Unlike the legacy text codec, LibSerialize has no NaN special case:
	// it falls through to the wide Float tag and round-trips its raw bits,
	// the same path Infinity takes.
	nan := value.Number(0.0 / zero())
	got := roundTrip(t, nan)
	gn, ok := got.(value.Number)
	if !ok || !math.IsNaN(float64(gn)) {
		t.Fatalf("expected NaN to round-trip, got %#v", got)
	}
}

func zero() float64 { return 0 }

func TestInvalidStringReference(t *testing.T) {
	// version byte + StrRef8 tag + index 1, with no preceding interned string
	data := []byte{1, byte(tagStrRef8) << 3, 1}
	if _, err := Deserialize(data); !errs.Is(err, errs.InvalidReference) {
		t.Fatalf("expected InvalidReference, got %v", err)
	}
}

func TestRecursionLimit(t *testing.T) {
	var v value.Value = value.NewArray(nil)
	for i := 0; i < 200; i++ {
		v = value.NewArray([]value.Value{v})
	}
	if _, err := Serialize(v); !errs.Is(err, errs.RecursionLimit) {
		t.Fatalf("expected RecursionLimit, got %v", err)
	}
}
