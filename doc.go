// Package wacodec decodes and encodes the interchange strings produced by
// WeakAuras, an add-on ecosystem for a MMO game client.
//
// # Overview
//
// A WeakAuras transport string wraps a tree of dynamically-typed values —
// nil, booleans, numbers, strings, and tables, straight out of the game's
// scripting language — inside an envelope made of a version marker, a
// compression layer, and a non-standard base64 alphabet. Three envelope
// shapes exist:
//
//   - no marker: base64 over a static-Huffman-compressed legacy payload
//     (decode-only; the ecosystem stopped producing this version long ago).
//   - "!" marker: base64 over a raw-DEFLATE-compressed AceSerializer
//     (caret-escaped text) payload.
//   - "!WA:2!" marker: base64 over a raw-DEFLATE-compressed LibSerialize
//     (tagged binary, with string/table interning) payload.
//
// Decode reverses whichever envelope is present; Encode only ever
// produces the latter two, matching how the ecosystem itself works.
//
// # Basic Usage
//
//	v, err := wacodec.Decode(importString)
//	if err != nil {
//	    // handle
//	}
//	if v == nil {
//	    // stream terminated with no value
//	}
//
//	exported, err := wacodec.Encode(v, wacodec.BinarySerialization)
//
// # Value tree
//
// Decode produces, and Encode consumes, a Value: one of Null, a Boolean,
// a Number (float64), a String (arbitrary bytes, not guaranteed UTF-8),
// an *Array (ordered), or a *Map (key to Value, Null keys rejected).
// Array and Map compare by identity, not structure — see the value
// package's doc comment for the full equality/ordering/hashing contract.
//
// # Resource bounds
//
// Decode nesting is bounded to 128 levels deep and DEFLATE output is
// capped at 16 MiB; both failure modes surface as a *CodecError with a
// single-line message. See the errs package for the full error taxonomy.
package wacodec
