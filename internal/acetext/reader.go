package acetext

import "github.com/wa-tools/wacodec/internal/errs"

// tokenReader walks a raw AceSerializer stream two bytes ("^" + tag byte)
// at a time, the identifiers the format's state machine dispatches on.
type tokenReader struct {
	s   string
	pos int
}

func newTokenReader(s string) *tokenReader {
	return &tokenReader{s: s}
}

func (r *tokenReader) eof() bool { return r.pos >= len(r.s) }

// peekIdentifier returns the next two-byte identifier (e.g. "^T") without
// consuming it.
func (r *tokenReader) peekIdentifier() (string, error) {
	if r.pos+2 > len(r.s) {
		return "", errs.New(errs.TruncatedInput, "expected an identifier, found end of input")
	}
	if r.s[r.pos] != '^' {
		return "", errs.Newf(errs.InvalidToken, "expected '^', found %q", r.s[r.pos])
	}
	return r.s[r.pos : r.pos+2], nil
}

// readIdentifier consumes and returns the next two-byte identifier.
func (r *tokenReader) readIdentifier() (string, error) {
	id, err := r.peekIdentifier()
	if err != nil {
		return "", err
	}
	r.pos += 2
	return id, nil
}

// readUntilNext returns the raw bytes up to (not including) the next '^',
// or to end of input, consuming them.
func (r *tokenReader) readUntilNext() string {
	start := r.pos
	end := indexUnescapedCaret(r.s[start:]) + start
	r.pos = end
	return r.s[start:end]
}

// parseString reads and unescapes a ^S payload, consuming through the
// delimiter (exclusive).
func (r *tokenReader) parseString() (string, error) {
	return unescape(r.readUntilNext())
}
