package acetext

import (
	"github.com/wa-tools/wacodec/internal/breader"
	"github.com/wa-tools/wacodec/internal/value"
)

// Serialize renders v as a complete AceSerializer stream: "^1" ... "^^".
func Serialize(v value.Value) ([]byte, error) {
	s := &serializer{guard: breader.NewGuard()}
	s.buf = append(s.buf, "^1"...)
	if err := s.write(v); err != nil {
		return nil, err
	}
	s.buf = append(s.buf, "^^"...)
	return s.buf, nil
}

type serializer struct {
	buf   []byte
	guard *breader.Guard
}

func (s *serializer) write(v value.Value) error {
	if v.Kind() == value.KindNull {
		s.buf = append(s.buf, "^Z"...)
		return nil
	}
	switch x := v.(type) {
	case value.Boolean:
		if x {
			s.buf = append(s.buf, "^B"...)
		} else {
			s.buf = append(s.buf, "^b"...)
		}
		return nil
	case value.Number:
		var err error
		s.buf, err = appendNumber(s.buf, float64(x))
		return err
	case value.String:
		s.buf = append(s.buf, "^S"...)
		s.buf = appendEscaped(s.buf, string(x))
		return nil
	case *value.Array:
		return s.writeArray(x)
	case *value.Map:
		return s.writeMap(x)
	default:
		panic("acetext: unknown Value implementation")
	}
}

func (s *serializer) writeArray(a *value.Array) error {
	if err := s.guard.Enter(); err != nil {
		return err
	}
	defer s.guard.Exit()

	s.buf = append(s.buf, "^T"...)
	for i, item := range a.Items {
		var err error
		s.buf, err = appendNumber(s.buf, float64(i+1))
		if err != nil {
			return err
		}
		if err := s.write(item); err != nil {
			return err
		}
	}
	s.buf = append(s.buf, "^t"...)
	return nil
}

func (s *serializer) writeMap(m *value.Map) error {
	if err := s.guard.Enter(); err != nil {
		return err
	}
	defer s.guard.Exit()

	s.buf = append(s.buf, "^T"...)
	var rangeErr error
	m.Range(func(k value.MapKey, v value.Value) bool {
		if err := s.write(k.Value()); err != nil {
			rangeErr = err
			return false
		}
		if err := s.write(v); err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	if rangeErr != nil {
		return rangeErr
	}
	s.buf = append(s.buf, "^t"...)
	return nil
}

