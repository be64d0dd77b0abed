// Package wabase64 implements the bespoke base64 alphabet WeakAuras uses at
// its transport boundary: a 64-character, unpadded alphabet (not RFC 4648),
// with a scalar codec and a portable word-at-a-time fast path gated on
// runtime feature detection. See SPEC_FULL.md §4.B.
package wabase64

import "github.com/wa-tools/wacodec/internal/errs"

// alphabet is the WeakAuras 64-character table: lowercase, uppercase,
// digits, then the two parenthesis characters that give its encoded
// strings their recognizable look.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789()"

// invalidSextet marks bytes absent from the alphabet in decodeTable.
const invalidSextet = 0xff

var decodeTable [256]byte

func init() {
	for i := range decodeTable {
		decodeTable[i] = invalidSextet
	}
	for i := 0; i < len(alphabet); i++ {
		decodeTable[alphabet[i]] = byte(i)
	}
}

func sextet(b byte) (byte, error) {
	v := decodeTable[b]
	if v == invalidSextet {
		return 0, errs.Newf(errs.InvalidBase64, "byte %#x is not in the transport alphabet", b)
	}
	return v, nil
}
