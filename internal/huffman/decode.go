package huffman

import (
	"github.com/wa-tools/wacodec/internal/breader"
	"github.com/wa-tools/wacodec/internal/errs"
)

// bitReader pulls bits MSB-first out of an underlying byte reader, which is
// how the canonical codes this package builds are most naturally read: the
// longest-prefix-free property falls out of always consuming the next bit
// as the most significant unconsumed bit of the current byte.
type bitReader struct {
	r      *breader.Reader
	cur    byte
	nbits  uint
	usedUp bool
}

func newBitReader(r *breader.Reader) *bitReader {
	return &bitReader{r: r}
}

func (b *bitReader) next() (uint32, error) {
	if b.nbits == 0 {
		c, err := b.r.ReadU8()
		if err != nil {
			return 0, err
		}
		b.cur = c
		b.nbits = 8
	}
	bit := (b.cur >> 7) & 1
	b.cur <<= 1
	b.nbits--
	return uint32(bit), nil
}

// Decompress decodes a Huffman-compressed payload produced by the legacy
// (version 0) transport: a 4-byte big-endian decompressed length, a symbol
// table (count-1 in one byte, then symbol/length pairs), then the
// MSB-first packed bitstream. Decoding stops once exactly the declared
// number of output bytes has been produced — there is no separate
// in-band end-of-stream symbol in this layout.
func Decompress(src []byte) ([]byte, error) {
	r := breader.New(src)
	outLen64, err := r.ReadBigEndianUint(4)
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading decompressed length")
	}
	outLen := int(outLen64)

	countMinusOne, err := r.ReadU8()
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading symbol count")
	}
	numSymbols := int(countMinusOne) + 1

	var lengths [256]uint8
	for i := 0; i < numSymbols; i++ {
		sym, err := r.ReadU8()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading symbol table entry")
		}
		l, err := r.ReadU8()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading symbol table entry")
		}
		if l == 0 || int(l) > maxCodeLen {
			return nil, errs.Newf(errs.InvalidHuffmanTable, "symbol %d has invalid code length %d", sym, l)
		}
		if lengths[sym] != 0 {
			return nil, errs.Newf(errs.InvalidHuffmanTable, "symbol %d appears twice in the table", sym)
		}
		lengths[sym] = l
	}

	if numSymbols == 1 {
		return decompressSingleSymbol(lengths[:], outLen)
	}

	t, err := buildTable(lengths[:], -1)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, outLen)
	br := newBitReader(r)
	for len(out) < outLen {
		sym, err := decodeOne(br, t)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(sym))
	}
	return out, nil
}

// decompressSingleSymbol handles the degenerate one-symbol alphabet, which
// the canonical code-length algorithm can't assign a real code to (Kraft's
// inequality for one symbol wants a zero-length code). The output is
// simply that symbol repeated outLen times, with no bits consumed.
func decompressSingleSymbol(lengths []uint8, outLen int) ([]byte, error) {
	sym := -1
	for i, l := range lengths {
		if l != 0 {
			sym = i
			break
		}
	}
	if sym < 0 {
		return nil, errs.New(errs.InvalidHuffmanTable, "no symbol present")
	}
	out := make([]byte, outLen)
	for i := range out {
		out[i] = byte(sym)
	}
	return out, nil
}

func decodeOne(br *bitReader, t *table) (int, error) {
	var code uint32
	for length := 1; length <= t.maxLen; length++ {
		bit, err := br.next()
		if err != nil {
			return 0, errs.Wrap(err, errs.TruncatedInput, "ran out of bits mid-code")
		}
		code = (code << 1) | bit
		if sym, ok := t.lookup(length, code); ok {
			return sym, nil
		}
	}
	return 0, errs.New(errs.InvalidHuffmanTable, "no code matched within the maximum code length")
}
