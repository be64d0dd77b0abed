package acetext

import (
	"math"
	"strconv"

	"github.com/wa-tools/wacodec/internal/errs"
)

// f64ToParts splits v into the (mantissa, exponent, sign) triple used by
// the ^F/^f fallback form, mirroring the IEEE-754 field extraction the
// legacy encoder performs when the shortest decimal representation
// doesn't round-trip.
func f64ToParts(v float64) (mantissa uint64, exponent int16, negative bool) {
	bits := math.Float64bits(v)
	negative = bits>>63 != 0
	exp := int16((bits >> 52) & 0x7ff)
	frac := bits & 0xfffffffffffff
	if exp == 0 {
		mantissa = frac << 1
	} else {
		mantissa = frac | 0x10000000000000
	}
	exponent = exp - (1023 + 52)
	return mantissa, exponent, negative
}

// appendNumber appends the ^N or ^F/^f encoding of v to dst.
func appendNumber(dst []byte, v float64) ([]byte, error) {
	if math.IsNaN(v) {
		return nil, errs.New(errs.UnrepresentableNumber, "NaN cannot be serialized")
	}
	if math.IsInf(v, 1) {
		return append(dst, "^N1.#INF"...), nil
	}
	if math.IsInf(v, -1) {
		return append(dst, "^N-1.#INF"...), nil
	}

	shortest := strconv.FormatFloat(v, 'g', -1, 64)
	if parsed, err := strconv.ParseFloat(shortest, 64); err == nil && parsed == v {
		dst = append(dst, "^N"...)
		return append(dst, shortest...), nil
	}

	mantissa, exponent, negative := f64ToParts(v)
	dst = append(dst, "^F"...)
	if negative {
		dst = append(dst, '-')
	}
	dst = strconv.AppendUint(dst, mantissa, 10)
	dst = append(dst, "^f"...)
	dst = strconv.AppendInt(dst, int64(exponent), 10)
	return dst, nil
}

// parseDecimalNumber parses a ^N payload, recognizing the two infinity
// spellings the legacy decoder accepts in addition to ordinary decimals.
func parseDecimalNumber(s string) (float64, error) {
	switch s {
	case "1.#INF", "inf":
		return math.Inf(1), nil
	case "-1.#INF", "-inf":
		return math.Inf(-1), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.Wrap(err, errs.InvalidToken, "malformed decimal number")
	}
	return v, nil
}

// combineFraction reconstructs a ^F/^f number as mantissa * 2^exponent,
// matching the legacy decoder (which recombines via multiplication rather
// than reconstructing the IEEE-754 bit pattern directly).
func combineFraction(mantissa, exponent float64) float64 {
	return mantissa * math.Pow(2, exponent)
}
