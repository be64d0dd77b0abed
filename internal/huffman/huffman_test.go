package huffman

import (
	"bytes"
	"testing"

	"github.com/wa-tools/wacodec/internal/errs"
)

// encodeForTest builds a payload in the format Decompress expects, driven
// by explicit per-symbol lengths, so tests can exercise the decoder
// without a production encoder (the format has none, per §4.C).
func encodeForTest(t *testing.T, data []byte, lengths map[byte]uint8) []byte {
	t.Helper()
	var allLengths [256]uint8
	for sym, l := range lengths {
		allLengths[sym] = l
	}
	// Tables buildTable rejects (incomplete codes, or a lone symbol) are
	// still written out as given, with no code bits, so that Decompress
	// sees them exactly as transmitted.
	tbl, err := buildTable(allLengths[:], -1)
	if err != nil && !errs.Is(err, errs.InvalidHuffmanTable) {
		t.Fatalf("buildTable: %v", err)
	}
	codeOf := make(map[byte]struct {
		code uint32
		len  int
	})
	for l := 1; tbl != nil && l <= tbl.maxLen; l++ {
		count := tbl.countAtLen(l)
		for i := 0; i < count; i++ {
			sym := tbl.symbols[tbl.firstIndex[l]+i]
			codeOf[byte(sym)] = struct {
				code uint32
				len  int
			}{code: tbl.firstCode[l] + uint32(i), len: l}
		}
	}

	var buf bytes.Buffer
	buf.WriteByte(byte(len(data) >> 24))
	buf.WriteByte(byte(len(data) >> 16))
	buf.WriteByte(byte(len(data) >> 8))
	buf.WriteByte(byte(len(data)))
	buf.WriteByte(byte(len(lengths) - 1))
	for sym, l := range lengths {
		buf.WriteByte(sym)
		buf.WriteByte(l)
	}

	var cur byte
	var nbits uint
	writeBit := func(bit uint32) {
		cur = cur<<1 | byte(bit)
		nbits++
		if nbits == 8 {
			buf.WriteByte(cur)
			cur, nbits = 0, 0
		}
	}
	for _, b := range data {
		c := codeOf[b]
		for i := c.len - 1; i >= 0; i-- {
			writeBit((c.code >> uint(i)) & 1)
		}
	}
	if nbits > 0 {
		cur <<= (8 - nbits)
		buf.WriteByte(cur)
	}
	return buf.Bytes()
}

func TestDecompressRoundTrip(t *testing.T) {
	data := []byte("abracadabra")
	lengths := map[byte]uint8{
		'a': 1,
		'b': 3,
		'r': 3,
		'c': 3,
		'd': 3,
	}
	enc := encodeForTest(t, data, lengths)
	out, err := Decompress(enc)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("got %q, want %q", out, data)
	}
}

func TestDecompressSingleSymbol(t *testing.T) {
	data := bytes.Repeat([]byte{'x'}, 5)
	enc := encodeForTest(t, data, map[byte]uint8{'x': 1})
	out, err := Decompress(enc)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("got %q, want %q", out, data)
	}
}

func TestDecompressInvalidTable(t *testing.T) {
	lengths := map[byte]uint8{'a': 1, 'b': 1}
	enc := encodeForTest(t, []byte("a"), lengths) // Kraft sum = 1, fine
	_, err := Decompress(enc)
	if err != nil {
		t.Fatalf("expected valid table to decode, got %v", err)
	}

	bad := map[byte]uint8{'a': 2, 'b': 2} // sum = 0.5, incomplete code
	enc2 := encodeForTest(t, []byte("a"), bad)
	if _, err := Decompress(enc2); !errs.Is(err, errs.InvalidHuffmanTable) {
		t.Fatalf("expected InvalidHuffmanTable, got %v", err)
	}
}

func TestDecompressTruncated(t *testing.T) {
	data := []byte("aaab")
	lengths := map[byte]uint8{'a': 1, 'b': 2}
	// wrong lengths: sum(2^-1)+2^-2 = 0.75, invalid
	if _, err := Decompress(encodeForTest(t, data, lengths)); !errs.Is(err, errs.InvalidHuffmanTable) {
		t.Fatalf("expected invalid table for incomplete code, got unexpected success")
	}

	valid := map[byte]uint8{'a': 1, 'b': 1}
	enc := encodeForTest(t, data, valid)
	truncated := enc[:len(enc)-1]
	if _, err := Decompress(truncated); !errs.Is(err, errs.TruncatedInput) {
		t.Fatalf("expected TruncatedInput, got %v", err)
	}
}
