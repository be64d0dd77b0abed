// Package acetext implements the legacy caret-escaped textual value
// serialization ("AceSerializer") used by the Deflate and Huffman
// transport versions. See SPEC_FULL.md §4.D.
package acetext

import "github.com/wa-tools/wacodec/internal/errs"

// escapeByte reports the "~"-prefixed replacement character for b, and
// whether b needs escaping at all.
func escapeByte(b byte) (byte, bool) {
	switch {
	case b == 0x1E:
		return 0x7A, true // ~z
	case b == 0x5E:
		return 0x7D, true // ~} for '^'
	case b == 0x7E:
		return 0x7C, true // ~| for '~'
	case b == 0x7F:
		return 0x7B, true
	case b <= 0x1D, b == 0x1F, b == 0x20:
		return b + 64, true
	default:
		return 0, false
	}
}

// unescapeByte reverses escapeByte: given the byte following a literal
// '~', returns the original byte it stands for.
func unescapeByte(b byte) (byte, error) {
	switch b {
	case 0x7A:
		return 0x1E, nil
	case 0x7D:
		return 0x5E, nil
	case 0x7C:
		return 0x7E, nil
	case 0x7B:
		return 0x7F, nil
	default:
		if b < 64 {
			return 0, errs.Newf(errs.InvalidToken, "invalid escape sequence ~%c", b)
		}
		orig := b - 64
		if orig <= 0x1D || orig == 0x1F || orig == 0x20 {
			return orig, nil
		}
		return 0, errs.Newf(errs.InvalidToken, "invalid escape sequence ~%c", b)
	}
}

// appendEscaped appends s to dst with every byte requiring escaping
// rewritten as '~' followed by its replacement.
func appendEscaped(dst []byte, s string) []byte {
	copyFrom := 0
	for i := 0; i < len(s); i++ {
		replacement, needsEscape := escapeByte(s[i])
		if !needsEscape {
			continue
		}
		dst = append(dst, s[copyFrom:i]...)
		dst = append(dst, '~', replacement)
		copyFrom = i + 1
	}
	return append(dst, s[copyFrom:]...)
}

// unescape reverses appendEscaped, reading until the next unescaped '^' or
// end of input (the framing delimiter for every token, per §4.D).
func unescape(s string) (string, error) {
	end := indexUnescapedCaret(s)
	body := s[:end]
	if indexByte(body, '~') < 0 {
		return body, nil
	}
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != '~' {
			out = append(out, body[i])
			continue
		}
		i++
		if i >= len(body) {
			return "", errs.New(errs.InvalidToken, "dangling '~' escape at end of string")
		}
		orig, err := unescapeByte(body[i])
		if err != nil {
			return "", err
		}
		out = append(out, orig)
	}
	return string(out), nil
}

func indexUnescapedCaret(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '^' {
			return i
		}
	}
	return len(s)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}
