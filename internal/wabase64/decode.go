package wabase64

import "github.com/wa-tools/wacodec/internal/errs"

// Decode converts transport-alphabet text back into raw bytes. Valid
// lengths mod 4 are {0, 2, 3} — the alphabet is unpadded, so a dangling
// single character (mod 4 == 1) can never have come from a real encode and
// is rejected.
func Decode(src []byte) ([]byte, error) {
	switch len(src) % 4 {
	case 1:
		return nil, errs.New(errs.InvalidBase64, "input length leaves a single dangling character")
	}
	out := make([]byte, len(src)*3/4)
	n, err := decodeInto(out, src)
	if err != nil {
		return nil, err
	}
	return out[:n], nil
}

// decodeInto decodes src into dst, which must be at least len(src)*3/4
// bytes, and returns the number of bytes written. It dispatches to the
// fast path when enough input remains, falling back to the scalar loop for
// the remainder.
func decodeInto(dst, src []byte) (int, error) {
	written := 0
	for len(src) >= fastPathChunk && hasFastPath {
		n, ok := decodeChunkFast(dst[written:], src[:fastPathChunk])
		if !ok {
			break // chunk contains an out-of-alphabet byte; let the scalar loop report it
		}
		written += n
		src = src[fastPathChunk:]
	}
	n, err := decodeScalar(dst[written:], src)
	if err != nil {
		return 0, err
	}
	return written + n, nil
}

func decodeScalar(dst, src []byte) (int, error) {
	written := 0
	i := 0
	for i+4 <= len(src) {
		s0, err := sextet(src[i])
		if err != nil {
			return 0, err
		}
		s1, err := sextet(src[i+1])
		if err != nil {
			return 0, err
		}
		s2, err := sextet(src[i+2])
		if err != nil {
			return 0, err
		}
		s3, err := sextet(src[i+3])
		if err != nil {
			return 0, err
		}
		dst[written] = s0<<2 | s1>>4
		dst[written+1] = s1<<4 | s2>>2
		dst[written+2] = s2<<6 | s3
		written += 3
		i += 4
	}
	switch len(src) - i {
	case 0:
		// exact multiple of 4, nothing left
	case 2:
		s0, err := sextet(src[i])
		if err != nil {
			return 0, err
		}
		s1, err := sextet(src[i+1])
		if err != nil {
			return 0, err
		}
		dst[written] = s0<<2 | s1>>4
		written++
	case 3:
		s0, err := sextet(src[i])
		if err != nil {
			return 0, err
		}
		s1, err := sextet(src[i+1])
		if err != nil {
			return 0, err
		}
		s2, err := sextet(src[i+2])
		if err != nil {
			return 0, err
		}
		dst[written] = s0<<2 | s1>>4
		dst[written+1] = s1<<4 | s2>>2
		written += 2
	default:
		return 0, errs.New(errs.InvalidBase64, "input length leaves a single dangling character")
	}
	return written, nil
}
