// Package libserialize implements the tagged binary value serialization
// ("LibSerialize") used by the BinarySerialization transport version,
// including string and table back-reference interning. See
// SPEC_FULL.md §4.E.
package libserialize

// minorVersion is the single accepted stream version byte.
const minorVersion = 1

// embeddedTypeTag is the 2-bit type selector packed into a "cccc_tt10"
// embedded-element byte.
type embeddedTypeTag uint8

const (
	embeddedStr embeddedTypeTag = iota
	embeddedMap
	embeddedArray
	embeddedMixed
)

// typeTag is the 5-bit wide element selector packed into a "ttttt_000"
// byte. The ordinal order below is the wire format itself — do not
// reorder these constants.
type typeTag uint8

const (
	tagNull typeTag = iota
	tagInt16Pos
	tagInt16Neg
	tagInt24Pos
	tagInt24Neg
	tagInt32Pos
	tagInt32Neg
	tagInt64Pos
	tagInt64Neg
	tagFloat
	tagFloatStrPos
	tagFloatStrNeg
	tagTrue
	tagFalse
	tagStr8
	tagStr16
	tagStr24
	tagMap8
	tagMap16
	tagMap24
	tagArray8
	tagArray16
	tagArray24
	tagMixed8
	tagMixed16
	tagMixed24
	tagStrRef8
	tagStrRef16
	tagStrRef24
	tagMapRef8
	tagMapRef16
	tagMapRef24
	numTypeTags
)

// requiredBytes returns the narrowest byte width (1, 2, 3, 4, or 7) that
// can hold v as an unsigned big-endian integer — 7 stands in for 8 since
// the top byte of a 64-bit magnitude is always zero for every value this
// codec ever serializes (values beyond 2^56-1 are routed to Float
// instead).
func requiredBytes(v uint64) int {
	switch {
	case v <= 0xff:
		return 1
	case v <= 0xffff:
		return 2
	case v <= 0xffffff:
		return 3
	case v <= 0xffffffff:
		return 4
	default:
		return 7
	}
}
