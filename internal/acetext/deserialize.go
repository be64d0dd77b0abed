package acetext

import (
	"strconv"

	"github.com/wa-tools/wacodec/internal/breader"
	"github.com/wa-tools/wacodec/internal/errs"
	"github.com/wa-tools/wacodec/internal/value"
)

// Deserialize reads exactly one top-level value from a complete
// AceSerializer stream, expecting the "^1" marker up front. Anything
// after the first value (including the trailing "^^") is ignored, since
// §4.D only requires a "first value" entry point. It returns (nil, nil)
// if the stream terminates with "^^" before producing a value — this is
// not an error, it is the empty-stream case the public decode entry point
// surfaces as "no value".
func Deserialize(data []byte) (value.Value, error) {
	r := newTokenReader(string(data))
	id, err := r.readIdentifier()
	if err != nil {
		return nil, err
	}
	if id != "^1" {
		return nil, errs.New(errs.InvalidToken, "input is not an AceSerializer stream (expected ^1 marker)")
	}
	d := &deserializer{r: r, guard: breader.NewGuard()}
	return d.readValue()
}

type deserializer struct {
	r     *tokenReader
	guard *breader.Guard
}

// readValue reads one token's worth of value, returning (nil, nil) if the
// stream-terminating "^^" was encountered instead.
func (d *deserializer) readValue() (value.Value, error) {
	id, err := d.r.readIdentifier()
	if err != nil {
		return nil, err
	}
	switch id {
	case "^^":
		return nil, nil
	case "^Z":
		return value.Null, nil
	case "^B":
		return value.Boolean(true), nil
	case "^b":
		return value.Boolean(false), nil
	case "^S":
		s, err := d.r.parseString()
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	case "^N":
		n, err := parseDecimalNumber(d.r.readUntilNext())
		if err != nil {
			return nil, err
		}
		return value.Number(n), nil
	case "^F":
		return d.readFraction()
	case "^T":
		return d.readTable()
	default:
		return nil, errs.Newf(errs.InvalidToken, "unrecognized token %q", id)
	}
}

func (d *deserializer) readFraction() (value.Value, error) {
	mantissaStr := d.r.readUntilNext()
	mantissa, err := strconv.ParseFloat(mantissaStr, 64)
	if err != nil {
		return nil, errs.Wrap(err, errs.InvalidToken, "malformed ^F mantissa")
	}
	id, err := d.r.readIdentifier()
	if err != nil {
		return nil, err
	}
	if id != "^f" {
		return nil, errs.New(errs.InvalidToken, "^F fraction is missing its ^f exponent")
	}
	exponentStr := d.r.readUntilNext()
	exponent, err := strconv.ParseFloat(exponentStr, 64)
	if err != nil {
		return nil, errs.Wrap(err, errs.InvalidToken, "malformed ^f exponent")
	}
	return value.Number(combineFraction(mantissa, exponent)), nil
}

func (d *deserializer) readTable() (value.Value, error) {
	if err := d.guard.Enter(); err != nil {
		return nil, err
	}
	defer d.guard.Exit()

	var keys []value.MapKey
	var values []value.Value
	for {
		peek, err := d.r.peekIdentifier()
		if err != nil {
			return nil, err
		}
		if peek == "^t" {
			_, _ = d.r.readIdentifier()
			break
		}

		rawKey, err := d.readValue()
		if err != nil {
			return nil, err
		}
		if rawKey == nil {
			return nil, errs.New(errs.InvalidToken, "table ended unexpectedly while reading a key")
		}
		key, err := value.NewMapKey(rawKey)
		if err != nil {
			return nil, err
		}

		nextPeek, err := d.r.peekIdentifier()
		if err != nil {
			return nil, err
		}
		if nextPeek == "^t" {
			return nil, errs.New(errs.InvalidToken, "table key is missing its value")
		}
		val, err := d.readValue()
		if err != nil {
			return nil, err
		}
		if val == nil {
			return nil, errs.New(errs.InvalidToken, "table ended unexpectedly while reading a value")
		}

		keys = append(keys, key)
		values = append(values, val)
	}

	if isArrayLikePairs(keys) {
		items := make([]value.Value, len(values))
		copy(items, values)
		return value.NewArray(items), nil
	}

	m := value.NewMap()
	for i, k := range keys {
		m.Set(k, values[i])
	}
	return m, nil
}

// isArrayLikePairs reports whether keys, in the order collected, are
// exactly Number(1)..Number(n) — the classification rule the decoder
// applies before the Map constructor's own identity exists, so it works
// directly off the collected key slice rather than value.IsArrayLike. An
// empty key list vacuously satisfies "every key", so an empty table
// decodes as an empty Array, matching the legacy decoder's behavior.
func isArrayLikePairs(keys []value.MapKey) bool {
	for i, k := range keys {
		n, ok := k.Value().(value.Number)
		if !ok || float64(n) != float64(i+1) {
			return false
		}
	}
	return true
}
