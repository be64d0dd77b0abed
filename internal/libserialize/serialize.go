package libserialize

import (
	"math"

	"github.com/wa-tools/wacodec/internal/breader"
	"github.com/wa-tools/wacodec/internal/errs"
	"github.com/wa-tools/wacodec/internal/value"
)

const maxPackedInt = 1<<56 - 1

// Serialize renders v as a complete LibSerialize binary stream: the minor
// version byte followed by the tagged encoding of v. Strings longer than
// two bytes are interned by content the first time they are written and
// referenced thereafter; this encoder never emits table references (§4.E
// notes a conformant decoder must still accept them from elsewhere).
func Serialize(v value.Value) ([]byte, error) {
	s := &serializer{
		guard:      breader.NewGuard(),
		stringRefs: make(map[string]int),
	}
	s.buf = append(s.buf, minorVersion)
	if err := s.write(v); err != nil {
		return nil, err
	}
	return s.buf, nil
}

type serializer struct {
	buf        []byte
	guard      *breader.Guard
	stringRefs map[string]int
}

func (s *serializer) write(v value.Value) error {
	switch x := v.(type) {
	case value.Boolean:
		if x {
			s.pushTag(tagTrue)
		} else {
			s.pushTag(tagFalse)
		}
		return nil
	case value.Number:
		return s.writeNumber(float64(x))
	case value.String:
		return s.writeString(string(x))
	case *value.Array:
		return s.writeArray(x)
	case *value.Map:
		return s.writeMap(x)
	default:
		if v.Kind() == value.KindNull {
			s.pushTag(tagNull)
			return nil
		}
		panic("libserialize: unknown Value implementation")
	}
}

func (s *serializer) pushTag(t typeTag) {
	s.buf = append(s.buf, byte(t)<<3)
}

func (s *serializer) writeBigEndian(v uint64, n int) {
	for i := n - 1; i >= 0; i-- {
		s.buf = append(s.buf, byte(v>>(8*uint(i))))
	}
}

func (s *serializer) writeNumber(v float64) error {
	// Compare against 2^56 itself: maxPackedInt has no exact float64 form and
	// rounds up to 2^56, which does not fit the 7-byte Int64 payload.
	if v != math.Trunc(v) || v <= -(maxPackedInt+1) || v >= maxPackedInt+1 {
		s.pushTag(tagFloat)
		s.writeBigEndian(math.Float64bits(v), 8)
		return nil
	}

	iv := int64(v)
	if iv > -4096 && iv < 4096 {
		if iv >= 0 && iv < 128 {
			s.buf = append(s.buf, byte(iv)<<1|1)
			return nil
		}
		mag := iv
		var negBit uint16
		if iv < 0 {
			mag = -iv
			negBit = 1 << 3
		}
		packed := uint16(mag)<<4 | negBit | 4
		s.buf = append(s.buf, byte(packed), byte(packed>>8))
		return nil
	}

	mag := iv
	var neg bool
	if iv < 0 {
		mag = -iv
		neg = true
	}
	umag := uint64(mag)
	switch requiredBytes(umag) {
	case 2:
		s.pushSignedTag(tagInt16Pos, neg)
		s.writeBigEndian(umag, 2)
	case 3:
		s.pushSignedTag(tagInt24Pos, neg)
		s.writeBigEndian(umag, 3)
	case 4:
		s.pushSignedTag(tagInt32Pos, neg)
		s.writeBigEndian(umag, 4)
	default:
		s.pushSignedTag(tagInt64Pos, neg)
		s.writeBigEndian(umag, 7)
	}
	return nil
}

// pushSignedTag pushes base (the Pos variant) or base+1 (the Neg variant,
// which always immediately follows Pos in the tag enumeration).
func (s *serializer) pushSignedTag(base typeTag, neg bool) {
	if neg {
		s.pushTag(base + 1)
	} else {
		s.pushTag(base)
	}
}

func (s *serializer) writeString(str string) error {
	if idx, ok := s.stringRefs[str]; ok {
		iv := uint64(idx)
		switch requiredBytes(iv) {
		case 1:
			s.pushTag(tagStrRef8)
			s.writeBigEndian(iv, 1)
		case 2:
			s.pushTag(tagStrRef16)
			s.writeBigEndian(iv, 2)
		case 3:
			s.pushTag(tagStrRef24)
			s.writeBigEndian(iv, 3)
		default:
			return errs.New(errs.StringTooLarge, "more than 2^24 distinct interned strings")
		}
		return nil
	}

	n := len(str)
	if n < 16 {
		s.buf = append(s.buf, byte(embeddedStr)<<2|byte(n)<<4|2)
	} else {
		nv := uint64(n)
		switch requiredBytes(nv) {
		case 1:
			s.pushTag(tagStr8)
			s.writeBigEndian(nv, 1)
		case 2:
			s.pushTag(tagStr16)
			s.writeBigEndian(nv, 2)
		case 3:
			s.pushTag(tagStr24)
			s.writeBigEndian(nv, 3)
		default:
			return errs.New(errs.StringTooLarge, "string length does not fit in 24 bits")
		}
	}

	if n > 2 {
		s.stringRefs[str] = len(s.stringRefs) + 1
	}
	s.buf = append(s.buf, str...)
	return nil
}

func (s *serializer) writeArray(a *value.Array) error {
	n := len(a.Items)
	if n < 16 {
		s.buf = append(s.buf, byte(embeddedArray)<<2|byte(n)<<4|2)
	} else if err := s.writeWideLen(n, tagArray8, tagArray16, tagArray24); err != nil {
		return err
	}

	for _, item := range a.Items {
		if err := s.guard.Enter(); err != nil {
			return err
		}
		err := s.write(item)
		s.guard.Exit()
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *serializer) writeMap(m *value.Map) error {
	n := m.Len()
	if n < 16 {
		s.buf = append(s.buf, byte(embeddedMap)<<2|byte(n)<<4|2)
	} else if err := s.writeWideLen(n, tagMap8, tagMap16, tagMap24); err != nil {
		return err
	}

	var rangeErr error
	m.Range(func(k value.MapKey, v value.Value) bool {
		if err := s.guard.Enter(); err != nil {
			rangeErr = err
			return false
		}
		err := s.write(k.Value())
		if err == nil {
			err = s.write(v)
		}
		s.guard.Exit()
		if err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	return rangeErr
}

// writeWideLen emits one of the three wide length tags for n, the shared
// logic behind Str/Map/Array's "len >= 16" branch.
func (s *serializer) writeWideLen(n int, t8, t16, t24 typeTag) error {
	nv := uint64(n)
	switch requiredBytes(nv) {
	case 1:
		s.pushTag(t8)
		s.writeBigEndian(nv, 1)
	case 2:
		s.pushTag(t16)
		s.writeBigEndian(nv, 2)
	case 3:
		s.pushTag(t24)
		s.writeBigEndian(nv, 3)
	default:
		return errs.New(errs.TooLarge, "length does not fit in 24 bits")
	}
	return nil
}
