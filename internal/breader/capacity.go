package breader

import "github.com/wa-tools/wacodec/internal/errs"

// CheckedMul multiplies two non-negative ints, failing with
// errs.CapacityOverflow instead of wrapping silently.
func CheckedMul(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/a != b {
		return 0, errs.New(errs.CapacityOverflow, "multiplication overflow")
	}
	return c, nil
}

// CheckedAdd adds two non-negative ints, failing with
// errs.CapacityOverflow on wraparound.
func CheckedAdd(a, b int) (int, error) {
	c := a + b
	if c < a || c < b {
		return 0, errs.New(errs.CapacityOverflow, "addition overflow")
	}
	return c, nil
}

// Base64EncodedLen computes ceil(n*4/3), the exact output length of the
// custom base64 encoder for an n-byte input, failing on overflow rather
// than silently wrapping.
func Base64EncodedLen(n int) (int, error) {
	quotient := n / 3
	leftover := n % 3
	out, err := CheckedMul(quotient, 4)
	if err != nil {
		return 0, err
	}
	if leftover == 0 {
		return out, nil
	}
	return CheckedAdd(out, leftover+1)
}
