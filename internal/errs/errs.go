// Package errs defines the flat error taxonomy shared by every codec in
// this module. There is no hierarchy: a Kind is a leaf, and a CodecError
// always renders as a single line, no matter how many layers wrapped it.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind enumerates the closed set of failure modes a codec can report.
type Kind uint8

const (
	InvalidBase64 Kind = iota
	CapacityOverflow
	InvalidHuffmanTable
	TruncatedInput
	InvalidToken
	UnrepresentableNumber
	InvalidTag
	UnsupportedVersion
	InvalidReference
	StringTooLarge
	TooLarge
	RecursionLimit
	PayloadTooLarge
	InvalidKey
	DeflateFailure
)

var names = [...]string{
	"invalid base64",
	"capacity overflow",
	"invalid huffman table",
	"truncated input",
	"invalid token",
	"unrepresentable number",
	"invalid tag",
	"unsupported version",
	"invalid reference",
	"string too large",
	"too large",
	"recursion limit",
	"payload too large",
	"invalid key",
	"deflate failure",
}

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// CodecError is the one error type every package in this module returns.
// Its Error() is always a single line: "wacodec: <kind>: <message>".
type CodecError struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *CodecError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("wacodec: %s", e.Kind)
	}
	return fmt.Sprintf("wacodec: %s: %s", e.Kind, e.Message)
}

func (e *CodecError) Unwrap() error { return e.cause }

// New builds a CodecError with no wrapped cause.
func New(kind Kind, message string) *CodecError {
	return &CodecError{Kind: kind, Message: message}
}

// Newf builds a CodecError with a formatted message.
func Newf(kind Kind, format string, args ...any) *CodecError {
	return &CodecError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause as the underlying reason for a CodecError, keeping
// the one-line rendering of Error() intact while preserving cause for
// errors.Cause / errors.Unwrap callers.
func Wrap(cause error, kind Kind, message string) *CodecError {
	return &CodecError{Kind: kind, Message: message, cause: errors.Wrap(cause, message)}
}

// Cause returns the innermost error wrapped by err, or err itself if nothing
// was wrapped. It follows the Unwrap chain, which passes through a
// CodecError (pkg/errors.Cause alone would stop at it, since CodecError
// has no Cause method).
func Cause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// Is reports whether err is a *CodecError of the given Kind.
func Is(err error, kind Kind) bool {
	var ce *CodecError
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
