package wacodec

import (
	"strings"
	"testing"

	"github.com/wa-tools/wacodec/internal/errs"
)

func TestEncodeDecodeRoundTripDeflate(t *testing.T) {
	m := NewMap()
	k, _ := NewMapKey(String("name"))
	m.Set(k, String("Sanctuary of Light"))

	s, err := Encode(m, Deflate)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(s, "!") || strings.HasPrefix(s, "!WA:2!") {
		t.Fatalf("expected a bare '!' prefix, got %q", s[:min(8, len(s))])
	}

	got, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gm, ok := got.(*Map)
	if !ok {
		t.Fatalf("expected *Map, got %#v", got)
	}
	v, found := gm.Get(k)
	if !found || v != String("Sanctuary of Light") {
		t.Fatalf("expected round-tripped field, got %v, %v", v, found)
	}
}

func TestEncodeDecodeRoundTripBinary(t *testing.T) {
	arr := NewArray([]Value{Number(1), Number(2), Number(3)})
	s, err := Encode(arr, BinarySerialization)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(s, "!WA:2!") {
		t.Fatalf("expected '!WA:2!' prefix, got %q", s[:min(8, len(s))])
	}

	got, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ga, ok := got.(*Array)
	if !ok || ga.Len() != 3 {
		t.Fatalf("expected 3-element array, got %#v", got)
	}
}

func TestEncodeRejectsHuffmanTarget(t *testing.T) {
	if _, err := Encode(Number(1), Huffman); !errs.Is(err, errs.InvalidTag) {
		t.Fatalf("expected InvalidTag, got %v", err)
	}
}

func TestDecodeEmptyTableReturnsEmptyArray(t *testing.T) {
	s, err := Encode(NewArray(nil), Deflate)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := got.(*Array); !ok {
		t.Fatalf("expected an empty array, got %#v", got)
	}
}
