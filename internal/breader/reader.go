// Package breader provides the primitives shared by every decoder in this
// module: a bounded byte reader that never panics on short input, a
// recursion guard bounding decode/encode walks to a constant depth, and
// overflow-checked capacity arithmetic for encoder sizing.
package breader

import (
	"encoding/binary"
	"math"

	"github.com/wa-tools/wacodec/internal/errs"
)

// Reader is a cursor over an in-memory byte slice. Every read either
// succeeds in full or returns errs.TruncatedInput; there is no partial
// read and no blocking, matching the single-threaded, synchronous model
// the whole codec operates under.
type Reader struct {
	buf []byte
	pos int
}

// New wraps buf for sequential reads starting at offset 0.
func New(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len reports the number of unread bytes remaining.
func (r *Reader) Len() int { return len(r.buf) - r.pos }

// Pos reports the current read offset.
func (r *Reader) Pos() int { return r.pos }

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, errs.New(errs.TruncatedInput, "expected 1 byte, found end of input")
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads exactly n bytes and returns a sub-slice of the backing
// buffer (no copy — callers that retain the result beyond the decode pass
// must copy it themselves).
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Len() {
		return nil, errs.Newf(errs.TruncatedInput, "expected %d bytes, found %d", n, r.Len())
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// ReadBigEndianUint reads k (1..=8) big-endian bytes as an unsigned value.
func (r *Reader) ReadBigEndianUint(k int) (uint64, error) {
	if k < 1 || k > 8 {
		return 0, errs.Newf(errs.TruncatedInput, "invalid integer width %d", k)
	}
	raw, err := r.ReadBytes(k)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, b := range raw {
		v = (v << 8) | uint64(b)
	}
	return v, nil
}

// ReadF64BE reads 8 big-endian bytes as an IEEE-754 double.
func (r *Reader) ReadF64BE() (float64, error) {
	raw, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(raw)), nil
}
