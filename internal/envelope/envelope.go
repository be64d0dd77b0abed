// Package envelope implements the outer transport framing shared by every
// WeakAuras import/export string: version-prefix sniffing, the custom
// base64 layer, and raw DEFLATE wrap/unwrap with the 16 MiB decompressed
// size cap. See SPEC_FULL.md §4.F and the "lib.rs" entry point it was
// distilled from.
package envelope

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/wa-tools/wacodec/internal/errs"
	"github.com/wa-tools/wacodec/internal/huffman"
	"github.com/wa-tools/wacodec/internal/wabase64"
)

// MaxDecompressedSize bounds how much a single string may inflate to,
// guarding against decompression-bomb inputs.
const MaxDecompressedSize = 16 * 1024 * 1024

// StringVersion identifies which of the three transport encodings a
// string uses.
type StringVersion uint8

const (
	// Huffman strings carry a huffman-compressed legacy text payload,
	// with no leading marker byte.
	Huffman StringVersion = iota
	// Deflate strings are prefixed with "!" and carry a DEFLATEd legacy
	// text payload.
	Deflate
	// BinarySerialization strings are prefixed with "!WA:2!" and carry a
	// DEFLATEd LibSerialize binary payload.
	BinarySerialization
)

const (
	binaryPrefix  = "!WA:2!"
	deflatePrefix = "!"
)

// SniffVersion inspects the leading bytes of an import string and reports
// its StringVersion along with the remaining payload (the given prefix
// stripped, nothing else consumed).
func SniffVersion(s string) (StringVersion, string) {
	if strings.HasPrefix(s, binaryPrefix) {
		return BinarySerialization, s[len(binaryPrefix):]
	}
	if strings.HasPrefix(s, deflatePrefix) {
		return Deflate, s[len(deflatePrefix):]
	}
	return Huffman, s
}

// Prefix returns the literal marker a StringVersion is written with.
func (v StringVersion) Prefix() string {
	switch v {
	case BinarySerialization:
		return binaryPrefix
	case Deflate:
		return deflatePrefix
	default:
		return ""
	}
}

// trimTrailingASCIIWhitespace drops trailing ASCII whitespace bytes, the
// way addon chat channels and saved-variable editors tend to leave
// behind; it never touches UTF-8 continuation bytes since whitespace
// bytes (<= 0x20) never appear as such in multi-byte encodings.
func trimTrailingASCIIWhitespace(s string) string {
	end := len(s)
	for end > 0 && isASCIISpace(s[end-1]) {
		end--
	}
	return s[:end]
}

func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}

// Unwrap reverses the full outer transport for a raw import string: it
// sniffs the version, base64-decodes the payload, and (for the two
// compressed variants) inflates it, returning the decoded payload ready
// for the matching inner codec (acetext for Huffman/Deflate, libserialize
// for BinarySerialization).
func Unwrap(raw string) (StringVersion, []byte, error) {
	version, rest := SniffVersion(raw)
	encoded := trimTrailingASCIIWhitespace(rest)

	data, err := wabase64.Decode([]byte(encoded))
	if err != nil {
		return version, nil, err
	}

	if version == Huffman {
		out, err := huffman.Decompress(data)
		return version, out, err
	}

	out, err := inflateCapped(data)
	return version, out, err
}

// inflateCapped raw-inflates src, failing with errs.PayloadTooLarge if
// more than MaxDecompressedSize bytes would be produced. It detects
// "too large" by reading one byte past the cap: if that extra byte is
// available the true output exceeds the limit, mirroring the capped
// Take(MAX_SIZE)-plus-probe-byte technique the original decoder uses.
func inflateCapped(src []byte) ([]byte, error) {
	fr := flate.NewReader(bytes.NewReader(src))
	defer fr.Close()

	limited := io.LimitReader(fr, MaxDecompressedSize+1)
	out, err := io.ReadAll(limited)
	if err != nil {
		return nil, errs.Wrap(err, errs.DeflateFailure, "failed to inflate")
	}
	if len(out) > MaxDecompressedSize {
		return nil, errs.New(errs.PayloadTooLarge, "decompressed payload exceeds 16 MiB cap")
	}
	return out, nil
}

// Wrap applies DEFLATE (best compression) and the custom base64 layer to
// payload, prefixing the result with version's marker. Huffman output is
// never produced by this encoder — WeakAuras export strings have used
// DEFLATE since format version 1, and §1's Non-goals exclude a Huffman
// compressor — so version must be Deflate or BinarySerialization.
func Wrap(payload []byte, version StringVersion) (string, error) {
	if version == Huffman {
		return "", errs.New(errs.InvalidTag, "encoding to the Huffman transport is not supported")
	}

	var buf bytes.Buffer
	fw, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", errs.Wrap(err, errs.DeflateFailure, "failed to initialize deflate writer")
	}
	if _, err := fw.Write(payload); err != nil {
		return "", errs.Wrap(err, errs.DeflateFailure, "failed to deflate payload")
	}
	if err := fw.Close(); err != nil {
		return "", errs.Wrap(err, errs.DeflateFailure, "failed to flush deflate stream")
	}

	encoded, err := wabase64.Encode(buf.Bytes())
	if err != nil {
		return "", err
	}
	return version.Prefix() + string(encoded), nil
}
