package wabase64

import (
	"bytes"
	"testing"

	"github.com/wa-tools/wacodec/internal/breader"
	"github.com/wa-tools/wacodec/internal/errs"
)

func TestRoundTripSmall(t *testing.T) {
	for n := 0; n < 32; n++ {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 7)
		}
		enc, err := Encode(data)
		if err != nil {
			t.Fatalf("Encode(%d bytes): %v", n, err)
		}
		dec, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%d bytes): %v", n, err)
		}
		if !bytes.Equal(dec, data) {
			t.Fatalf("round trip mismatch at n=%d: got %x want %x", n, dec, data)
		}
	}
}

func TestRoundTripStressBuffer(t *testing.T) {
	data := make([]byte, 1024*30+3)
	for i := range data {
		data[i] = byte(i)
	}
	enc, err := Encode(data)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	dec, err := Decode(enc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(dec, data) {
		t.Fatal("stress buffer did not round-trip")
	}
}

func TestScalarFastPathParity(t *testing.T) {
	data := make([]byte, 1024*30+3)
	for i := range data {
		data[i] = byte(i)
	}
	out := make([]byte, mustLen(t, len(data)))
	scalarOut := make([]byte, len(out))

	encodeInto(out, data)

	saved := hasFastPath
	hasFastPath = false
	encodeInto(scalarOut, data)
	hasFastPath = saved

	if !bytes.Equal(out, scalarOut) {
		t.Fatal("fast path and scalar path diverge on encode")
	}
}

func mustLen(t *testing.T, n int) int {
	t.Helper()
	l, err := breader.Base64EncodedLen(n)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestInvalidLength(t *testing.T) {
	if _, err := Decode([]byte("a")); !errs.Is(err, errs.InvalidBase64) {
		t.Fatalf("expected InvalidBase64 for dangling char, got %v", err)
	}
}

func TestInvalidByte(t *testing.T) {
	if _, err := Decode([]byte("ab!!")); !errs.Is(err, errs.InvalidBase64) {
		t.Fatalf("expected InvalidBase64 for out-of-alphabet byte, got %v", err)
	}
}

func TestAlphabetRoundTripsEveryCharacter(t *testing.T) {
	for i, c := range []byte(alphabet) {
		if decodeTable[c] != byte(i) {
			t.Fatalf("alphabet[%d] = %q does not decode back to %d", i, c, i)
		}
	}
}
