// Package huffman decodes the static-Huffman payload produced by the
// oldest (unprefixed) WeakAuras transport version. It is decode-only: the
// format is never produced by this module. See SPEC_FULL.md §4.C.
package huffman

import "github.com/wa-tools/wacodec/internal/errs"

const maxCodeLen = 27 // enough for any length spectrum this format transmits

// table is a canonical Huffman decode table built from a transmitted
// length spectrum. Decoding reads one bit at a time and, after each bit,
// checks whether the code read so far is a valid code of that length — a
// scalar stand-in for the multi-bit lookup table a DEFLATE-style
// decompressor commonly uses.
type table struct {
	// The symbol for a code of a given length is found via firstCode,
	// firstIndex and symbols: canonical codes are contiguous within a
	// length class and sorted by ascending symbol value.
	firstCode  [maxCodeLen + 1]uint32
	firstIndex [maxCodeLen + 1]int
	maxLen     int
	symbols    []uint16 // symbols ordered by (length, symbol value)
	eos        int      // symbol value used as end-of-stream, -1 if none
}

// buildTable assigns canonical Huffman codes to the given per-symbol code
// lengths (lengths[i] is symbol i's code length in bits; 0 means "does not
// appear") and validates the result satisfies the Kraft inequality
// exactly, per §4.C's "sorted by length then symbol value" tie-break.
func buildTable(lengths []uint8, eosSymbol int) (*table, error) {
	var countByLen [maxCodeLen + 1]int
	maxLen := 0
	for _, l := range lengths {
		if l == 0 {
			continue
		}
		if int(l) > maxCodeLen {
			return nil, errs.Newf(errs.InvalidHuffmanTable, "code length %d exceeds supported maximum", l)
		}
		countByLen[l]++
		if int(l) > maxLen {
			maxLen = int(l)
		}
	}
	if maxLen == 0 {
		return nil, errs.New(errs.InvalidHuffmanTable, "empty code length spectrum")
	}

	// Kraft inequality: sum(2^-len) over all symbols must equal exactly 1
	// for a complete code.
	var kraft uint64
	const one = uint64(1) << maxCodeLen
	for l := 1; l <= maxLen; l++ {
		kraft += uint64(countByLen[l]) * (one >> uint(l))
	}
	if kraft != one {
		return nil, errs.New(errs.InvalidHuffmanTable, "code lengths violate the Kraft inequality")
	}

	t := &table{maxLen: maxLen, eos: eosSymbol}
	t.symbols = make([]uint16, 0, len(lengths))

	// Symbols grouped by ascending length, and by ascending symbol value
	// within each length — the canonical assignment §4.C mandates.
	var code uint32
	var index int
	for l := 1; l <= maxLen; l++ {
		t.firstCode[l] = code
		t.firstIndex[l] = index
		for sym := range lengths {
			if int(lengths[sym]) == l {
				t.symbols = append(t.symbols, uint16(sym))
				index++
			}
		}
		code = (code + uint32(countByLen[l])) << 1
	}
	return t, nil
}

// lookup resolves a canonical code of the given length to its symbol,
// returning ok=false if no symbol in the table has that exact
// (length, code) pair.
func (t *table) lookup(length int, code uint32) (int, bool) {
	if length < 1 || length > t.maxLen {
		return 0, false
	}
	offset := int(code - t.firstCode[length])
	countAtLen := t.countAtLen(length)
	if offset < 0 || offset >= countAtLen {
		return 0, false
	}
	return int(t.symbols[t.firstIndex[length]+offset]), true
}

func (t *table) countAtLen(length int) int {
	if length == t.maxLen {
		return len(t.symbols) - t.firstIndex[length]
	}
	return t.firstIndex[length+1] - t.firstIndex[length]
}
