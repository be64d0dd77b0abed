package envelope

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/flate"

	"github.com/wa-tools/wacodec/internal/errs"
	"github.com/wa-tools/wacodec/internal/wabase64"
)

func TestSniffVersion(t *testing.T) {
	cases := []struct {
		in   string
		want StringVersion
		rest string
	}{
		{"!WA:2!abc", BinarySerialization, "abc"},
		{"!abc", Deflate, "abc"},
		{"abc", Huffman, "abc"},
		{"", Huffman, ""},
	}
	for _, c := range cases {
		got, rest := SniffVersion(c.in)
		if got != c.want || rest != c.rest {
			t.Fatalf("SniffVersion(%q) = %v, %q; want %v, %q", c.in, got, rest, c.want, c.rest)
		}
	}
}

func deflateBytes(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		t.Fatalf("flate.NewWriter: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func TestUnwrapDeflate(t *testing.T) {
	payload := []byte("^1^SHello, world!^^")
	compressed := deflateBytes(t, payload)
	encoded, err := wabase64.Encode(compressed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw := "!" + string(encoded)

	version, out, err := Unwrap(raw)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if version != Deflate {
		t.Fatalf("expected Deflate, got %v", version)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("payload mismatch: got %q want %q", out, payload)
	}
}

func TestUnwrapBinarySerialization(t *testing.T) {
	payload := []byte{1, 0x01 << 1 | 1} // minor version + packed 7-bit integer 1
	compressed := deflateBytes(t, payload)
	encoded, err := wabase64.Encode(compressed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw := "!WA:2!" + string(encoded)

	version, out, err := Unwrap(raw)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if version != BinarySerialization {
		t.Fatalf("expected BinarySerialization, got %v", version)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("payload mismatch: got % x want % x", out, payload)
	}
}

func TestUnwrapTrimsTrailingWhitespace(t *testing.T) {
	payload := []byte("^1^Zhi^^")
	compressed := deflateBytes(t, payload)
	encoded, err := wabase64.Encode(compressed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw := "!" + string(encoded) + "  \n\t"

	_, out, err := Unwrap(raw)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("payload mismatch after trailing whitespace: got %q want %q", out, payload)
	}
}

func TestWrapRoundTrip(t *testing.T) {
	payload := []byte("some legacy text payload")
	wrapped, err := Wrap(payload, Deflate)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	version, out, err := Unwrap(wrapped)
	if err != nil {
		t.Fatalf("Unwrap: %v", err)
	}
	if version != Deflate || !bytes.Equal(out, payload) {
		t.Fatalf("round trip mismatch: got %v %q", version, out)
	}
}

func TestWrapRejectsHuffman(t *testing.T) {
	if _, err := Wrap([]byte("x"), Huffman); !errs.Is(err, errs.InvalidTag) {
		t.Fatalf("expected InvalidTag, got %v", err)
	}
}

func TestInflateCapRejectsOversizedPayload(t *testing.T) {
	payload := bytes.Repeat([]byte{'a'}, MaxDecompressedSize+1024)
	compressed := deflateBytes(t, payload)
	if _, err := inflateCapped(compressed); !errs.Is(err, errs.PayloadTooLarge) {
		t.Fatalf("expected PayloadTooLarge, got %v", err)
	}
}

func TestInflateCapAcceptsPayloadAtExactCap(t *testing.T) {
	payload := bytes.Repeat([]byte{'a'}, MaxDecompressedSize)
	compressed := deflateBytes(t, payload)
	out, err := inflateCapped(compressed)
	if err != nil {
		t.Fatalf("unexpected error at exact cap: %v", err)
	}
	if len(out) != MaxDecompressedSize {
		t.Fatalf("expected exactly %d bytes, got %d", MaxDecompressedSize, len(out))
	}
}
