package wacodec

import (
	"github.com/wa-tools/wacodec/internal/acetext"
	"github.com/wa-tools/wacodec/internal/envelope"
	"github.com/wa-tools/wacodec/internal/errs"
	"github.com/wa-tools/wacodec/internal/libserialize"
	"github.com/wa-tools/wacodec/internal/value"
)

// StringVersion identifies which transport envelope a WeakAuras import
// string uses.
type StringVersion = envelope.StringVersion

const (
	// Huffman strings carry no marker prefix and use the static-Huffman
	// legacy payload. Decode-only: Encode rejects this version.
	Huffman = envelope.Huffman
	// Deflate strings are prefixed with "!" and carry a DEFLATEd legacy
	// text (AceSerializer) payload.
	Deflate = envelope.Deflate
	// BinarySerialization strings are prefixed with "!WA:2!" and carry a
	// DEFLATEd LibSerialize binary payload.
	BinarySerialization = envelope.BinarySerialization
)

// Value is the decoded tree: Null, Boolean, Number, String, *Array, or
// *Map. See the value package for the concrete types and their equality,
// ordering, and hashing rules.
type Value = value.Value

// Re-exported scalar and collection constructors, so callers never need
// to import the internal value package directly.
type (
	Boolean = value.Boolean
	Number  = value.Number
	String  = value.String
	Array   = value.Array
	Map     = value.Map
	MapKey  = value.MapKey
)

// Null is the sole null Value.
var Null = value.Null

// NewArray, NewMap, and NewMapKey mirror the value package's constructors.
var (
	NewArray  = value.NewArray
	NewMap    = value.NewMap
	NewMapKey = value.NewMapKey
)

// ToJSON and FromJSON convert between a Value tree and JSON at the CLI's
// external boundary; see value.FromJSON's doc comment for the map-key
// promotion rule this applies.
var (
	ToJSON   = value.ToJSON
	FromJSON = value.FromJSON
)

// Decode reverses the full WeakAuras transport envelope for text: it
// sniffs the version prefix, reverses the base64 and compression layers,
// and deserializes the inner payload with the matching value codec. It
// returns (nil, nil) if the stream terminates having produced no value.
func Decode(text string) (Value, error) {
	version, payload, err := envelope.Unwrap(text)
	if err != nil {
		return nil, err
	}

	if version == BinarySerialization {
		return libserialize.Deserialize(payload)
	}
	return acetext.Deserialize(payload)
}

// Encode renders v as a complete WeakAuras transport string under the
// given version. Only Deflate and BinarySerialization are valid encode
// targets — Huffman is decode-only, matching the original ecosystem's
// behavior of never producing version-0 strings.
func Encode(v Value, version StringVersion) (string, error) {
	var payload []byte
	var err error

	switch version {
	case BinarySerialization:
		payload, err = libserialize.Serialize(v)
	case Deflate:
		payload, err = acetext.Serialize(v)
	case Huffman:
		// envelope.Wrap rejects this directly, with errs.InvalidTag — the
		// Huffman transport is decode-only, a distinct failure from an
		// unrecognized StringVersion value entirely.
		return envelope.Wrap(payload, version)
	default:
		return "", errs.New(errs.UnsupportedVersion, "unrecognized StringVersion")
	}
	if err != nil {
		return "", err
	}

	return envelope.Wrap(payload, version)
}
