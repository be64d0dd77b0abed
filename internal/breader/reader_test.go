package breader

import (
	"testing"

	"github.com/wa-tools/wacodec/internal/errs"
)

func TestReaderBasics(t *testing.T) {
	r := New([]byte{0x01, 0x02, 0x03, 0x04, 0x40, 0x09, 0x21, 0xfb, 0x54, 0x44, 0x2d, 0x18})
	b, err := r.ReadU8()
	if err != nil || b != 0x01 {
		t.Fatalf("ReadU8: got %v, %v", b, err)
	}
	n, err := r.ReadBigEndianUint(3)
	if err != nil || n != 0x020304 {
		t.Fatalf("ReadBigEndianUint: got %#x, %v", n, err)
	}
	f, err := r.ReadF64BE()
	if err != nil || f != 3.141592653589793 {
		t.Fatalf("ReadF64BE: got %v, %v", f, err)
	}
	if r.Len() != 0 {
		t.Fatalf("expected exhausted reader, %d bytes remain", r.Len())
	}
}

func TestReaderShortRead(t *testing.T) {
	r := New([]byte{0x01})
	if _, err := r.ReadBytes(2); !errs.Is(err, errs.TruncatedInput) {
		t.Fatalf("expected TruncatedInput, got %v", err)
	}
	if _, err := r.ReadU8(); err != nil {
		t.Fatalf("single byte read should still succeed: %v", err)
	}
	if _, err := r.ReadU8(); !errs.Is(err, errs.TruncatedInput) {
		t.Fatalf("expected TruncatedInput at EOF, got %v", err)
	}
}

func TestRecursionGuard(t *testing.T) {
	g := NewGuard()
	for i := 0; i < MaxDepth; i++ {
		if err := g.Enter(); err != nil {
			t.Fatalf("depth %d: unexpected error %v", i, err)
		}
	}
	if err := g.Enter(); !errs.Is(err, errs.RecursionLimit) {
		t.Fatalf("expected RecursionLimit at depth %d, got %v", MaxDepth+1, err)
	}
	g.Exit()
	if err := g.Enter(); err != nil {
		t.Fatalf("expected room after Exit, got %v", err)
	}
}

func TestBase64EncodedLen(t *testing.T) {
	cases := []struct{ n, want int }{
		{0, 0}, {1, 2}, {2, 3}, {3, 4}, {4, 6}, {5, 7}, {6, 8},
	}
	for _, c := range cases {
		got, err := Base64EncodedLen(c.n)
		if err != nil || got != c.want {
			t.Fatalf("Base64EncodedLen(%d) = %d, %v; want %d", c.n, got, err, c.want)
		}
	}
}
