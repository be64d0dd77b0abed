package wabase64

import "github.com/wa-tools/wacodec/internal/breader"

// Encode converts raw bytes into transport-alphabet text with no padding.
func Encode(src []byte) ([]byte, error) {
	n, err := breader.Base64EncodedLen(len(src))
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	written := encodeInto(out, src)
	return out[:written], nil
}

// EncodeAppendTo writes the transport-alphabet encoding of src starting at
// dst[0]; dst must hold at least breader.Base64EncodedLen(len(src)) bytes.
// A caller that prepends a version tag in the same allocation passes the
// part of its buffer that follows the tag.
func EncodeAppendTo(dst, src []byte) {
	encodeInto(dst, src)
}

func encodeInto(out, src []byte) int {
	written := 0
	for len(src) >= 6 && hasFastPath {
		encodeChunkFast(out[written:], src[:6])
		written += 8
		src = src[6:]
	}
	written += encodeScalar(out[written:], src)
	return written
}

func encodeScalar(dst, src []byte) int {
	written := 0
	i := 0
	for ; i+3 <= len(src); i += 3 {
		b0, b1, b2 := src[i], src[i+1], src[i+2]
		dst[written] = alphabet[b0>>2]
		dst[written+1] = alphabet[(b0<<4|b1>>4)&0x3f]
		dst[written+2] = alphabet[(b1<<2|b2>>6)&0x3f]
		dst[written+3] = alphabet[b2&0x3f]
		written += 4
	}
	switch len(src) - i {
	case 1:
		b0 := src[i]
		dst[written] = alphabet[b0>>2]
		dst[written+1] = alphabet[(b0<<4)&0x3f]
		written += 2
	case 2:
		b0, b1 := src[i], src[i+1]
		dst[written] = alphabet[b0>>2]
		dst[written+1] = alphabet[(b0<<4|b1>>4)&0x3f]
		dst[written+2] = alphabet[(b1<<2)&0x3f]
		written += 3
	}
	return written
}
