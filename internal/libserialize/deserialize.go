package libserialize

import (
	"strconv"

	"github.com/wa-tools/wacodec/internal/breader"
	"github.com/wa-tools/wacodec/internal/errs"
	"github.com/wa-tools/wacodec/internal/value"
)

// Deserialize reads one value from a complete LibSerialize binary stream,
// rejecting any minor version other than the one this package produces.
// It returns (nil, nil) if the stream holds no element past the version
// byte — the empty-stream case the public decode entry point surfaces as
// "no value", not an error.
func Deserialize(data []byte) (value.Value, error) {
	r := breader.New(data)
	minor, err := r.ReadU8()
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading stream version")
	}
	if minor != minorVersion {
		return nil, errs.Newf(errs.UnsupportedVersion, "unsupported LibSerialize minor version %d", minor)
	}

	d := &deserializer{r: r, guard: breader.NewGuard()}
	return d.readValue()
}

type deserializer struct {
	r          *breader.Reader
	guard      *breader.Guard
	tableRefs  []value.Value
	stringRefs []string
}

// readValue reads the next element, or returns (nil, nil) at a clean
// end of stream (no more bytes and no partial tag consumed).
func (d *deserializer) readValue() (value.Value, error) {
	if d.r.Len() == 0 {
		return nil, nil
	}
	b, err := d.r.ReadU8()
	if err != nil {
		return nil, err
	}

	switch {
	case b&1 == 1:
		return value.Number(float64(b >> 1)), nil
	case b&3 == 2:
		return d.readEmbedded(embeddedTypeTag((b&0x0f)>>2), b>>4)
	case b&7 == 4:
		hi, err := d.r.ReadU8()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading 12-bit integer high byte")
		}
		packed := uint16(hi)<<8 | uint16(b)
		mag := float64(packed >> 4)
		if b&15 == 12 {
			return value.Number(-mag), nil
		}
		return value.Number(mag), nil
	default:
		tag := typeTag(b >> 3)
		if tag >= numTypeTags {
			return nil, errs.Newf(errs.InvalidTag, "unknown type tag %d", tag)
		}
		return d.readTagged(tag)
	}
}

// extractValue reads one element and fails if the stream ends instead.
func (d *deserializer) extractValue() (value.Value, error) {
	v, err := d.readValue()
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, errs.New(errs.TruncatedInput, "unexpected end of stream")
	}
	return v, nil
}

func (d *deserializer) readEmbedded(tag embeddedTypeTag, count byte) (value.Value, error) {
	switch tag {
	case embeddedStr:
		return d.readString(int(count))
	case embeddedMap:
		return d.readMap(int(count))
	case embeddedArray:
		return d.readArray(int(count))
	case embeddedMixed:
		return d.readMixed(int(count&3)+1, int(count>>2)+1)
	default:
		return nil, errs.Newf(errs.InvalidTag, "unknown embedded tag %d", tag)
	}
}

func (d *deserializer) readTagged(tag typeTag) (value.Value, error) {
	switch tag {
	case tagNull:
		return value.Null, nil
	case tagTrue:
		return value.Boolean(true), nil
	case tagFalse:
		return value.Boolean(false), nil

	case tagInt16Pos, tagInt16Neg:
		return d.readWideInt(2, tag == tagInt16Neg)
	case tagInt24Pos, tagInt24Neg:
		return d.readWideInt(3, tag == tagInt24Neg)
	case tagInt32Pos, tagInt32Neg:
		return d.readWideInt(4, tag == tagInt32Neg)
	case tagInt64Pos, tagInt64Neg:
		return d.readWideInt(7, tag == tagInt64Neg)

	case tagFloat:
		f, err := d.r.ReadF64BE()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading float payload")
		}
		return value.Number(f), nil
	case tagFloatStrPos, tagFloatStrNeg:
		return d.readFloatStr(tag == tagFloatStrNeg)

	case tagStr8:
		n, err := d.r.ReadU8()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading Str8 length")
		}
		return d.readString(int(n))
	case tagStr16:
		return d.readLenPrefixed(2, d.readString)
	case tagStr24:
		return d.readLenPrefixed(3, d.readString)

	case tagMap8:
		n, err := d.r.ReadU8()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading Map8 length")
		}
		return d.readMap(int(n))
	case tagMap16:
		return d.readLenPrefixed(2, d.readMap)
	case tagMap24:
		return d.readLenPrefixed(3, d.readMap)

	case tagArray8:
		n, err := d.r.ReadU8()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading Array8 length")
		}
		return d.readArray(int(n))
	case tagArray16:
		return d.readLenPrefixed(2, d.readArray)
	case tagArray24:
		return d.readLenPrefixed(3, d.readArray)

	case tagMixed8:
		arrLen, err := d.r.ReadU8()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading Mixed8 array length")
		}
		mapLen, err := d.r.ReadU8()
		if err != nil {
			return nil, errs.Wrap(err, errs.TruncatedInput, "reading Mixed8 map length")
		}
		return d.readMixed(int(arrLen), int(mapLen))
	case tagMixed16:
		return d.readMixedWide(2)
	case tagMixed24:
		return d.readMixedWide(3)

	case tagStrRef8:
		return d.readStrRef(1)
	case tagStrRef16:
		return d.readStrRef(2)
	case tagStrRef24:
		return d.readStrRef(3)

	case tagMapRef8:
		return d.readTableRef(1)
	case tagMapRef16:
		return d.readTableRef(2)
	case tagMapRef24:
		return d.readTableRef(3)

	default:
		return nil, errs.Newf(errs.InvalidTag, "unhandled type tag %d", tag)
	}
}

func (d *deserializer) readWideInt(n int, negative bool) (value.Value, error) {
	mag, err := d.r.ReadBigEndianUint(n)
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading integer payload")
	}
	f := float64(mag)
	if negative {
		f = -f
	}
	return value.Number(f), nil
}

func (d *deserializer) readFloatStr(negative bool) (value.Value, error) {
	n, err := d.r.ReadU8()
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading FloatStr length")
	}
	raw, err := d.r.ReadBytes(int(n))
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading FloatStr payload")
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return nil, errs.Wrap(err, errs.InvalidTag, "malformed FloatStr payload")
	}
	if negative {
		f = -f
	}
	return value.Number(f), nil
}

func (d *deserializer) readLenPrefixed(width int, read func(int) (value.Value, error)) (value.Value, error) {
	n, err := d.r.ReadBigEndianUint(width)
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading length prefix")
	}
	return read(int(n))
}

func (d *deserializer) readString(n int) (value.Value, error) {
	raw, err := d.r.ReadBytes(n)
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading string payload")
	}
	s := string(raw)
	if n > 2 {
		d.stringRefs = append(d.stringRefs, s)
	}
	return value.String(s), nil
}

func (d *deserializer) readStrRef(width int) (value.Value, error) {
	n, err := d.r.ReadBigEndianUint(width)
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading string reference index")
	}
	idx := int(n) - 1
	if idx < 0 || idx >= len(d.stringRefs) {
		return nil, errs.Newf(errs.InvalidReference, "string reference %d out of range", n)
	}
	return value.String(d.stringRefs[idx]), nil
}

func (d *deserializer) readTableRef(width int) (value.Value, error) {
	n, err := d.r.ReadBigEndianUint(width)
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading table reference index")
	}
	idx := int(n) - 1
	if idx < 0 || idx >= len(d.tableRefs) {
		return nil, errs.Newf(errs.InvalidReference, "table reference %d out of range", n)
	}
	return cloneStructurally(d.tableRefs[idx]), nil
}

// cloneStructurally makes a fresh, identity-distinct copy of a decoded
// Map or Array, matching the identity-losing shallow clone MapRef
// resolution performs: the result is structurally equal to the
// referenced table but is never the same identity.
func cloneStructurally(v value.Value) value.Value {
	switch x := v.(type) {
	case *value.Array:
		items := make([]value.Value, len(x.Items))
		copy(items, x.Items)
		return value.NewArray(items)
	case *value.Map:
		m := value.NewMap()
		x.Range(func(k value.MapKey, val value.Value) bool {
			m.Set(k, val)
			return true
		})
		return m
	default:
		return v
	}
}

func (d *deserializer) readMap(n int) (value.Value, error) {
	if err := d.guard.Enter(); err != nil {
		return nil, err
	}
	m := value.NewMap()
	for i := 0; i < n; i++ {
		k, v, err := d.readPair()
		if err != nil {
			d.guard.Exit()
			return nil, err
		}
		key, err := value.NewMapKey(k)
		if err != nil {
			d.guard.Exit()
			return nil, err
		}
		m.Set(key, v)
	}
	d.guard.Exit()
	d.tableRefs = append(d.tableRefs, m)
	return m, nil
}

func (d *deserializer) readArray(n int) (value.Value, error) {
	if err := d.guard.Enter(); err != nil {
		return nil, err
	}
	items := make([]value.Value, 0, n)
	for i := 0; i < n; i++ {
		v, err := d.extractValue()
		if err != nil {
			d.guard.Exit()
			return nil, err
		}
		items = append(items, v)
	}
	d.guard.Exit()
	a := value.NewArray(items)
	d.tableRefs = append(d.tableRefs, a)
	return a, nil
}

func (d *deserializer) readMixedWide(width int) (value.Value, error) {
	arrLen, err := d.r.ReadBigEndianUint(width)
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading Mixed array length")
	}
	mapLen, err := d.r.ReadBigEndianUint(width)
	if err != nil {
		return nil, errs.Wrap(err, errs.TruncatedInput, "reading Mixed map length")
	}
	return d.readMixed(int(arrLen), int(mapLen))
}

// readMixed decodes Mixed's array part (keys Number(1)..Number(arrLen), in
// order) followed by its map part (arbitrary key/value pairs), all into a
// single Map — the encoder never produces Mixed, but a decoder must still
// accept it from other producers.
func (d *deserializer) readMixed(arrLen, mapLen int) (value.Value, error) {
	if err := d.guard.Enter(); err != nil {
		return nil, err
	}
	m := value.NewMap()
	for i := 1; i <= arrLen; i++ {
		el, err := d.extractValue()
		if err != nil {
			d.guard.Exit()
			return nil, err
		}
		key, _ := value.NewMapKey(value.Number(float64(i)))
		m.Set(key, el)
	}
	for i := 0; i < mapLen; i++ {
		k, v, err := d.readPair()
		if err != nil {
			d.guard.Exit()
			return nil, err
		}
		key, err := value.NewMapKey(k)
		if err != nil {
			d.guard.Exit()
			return nil, err
		}
		m.Set(key, v)
	}
	d.guard.Exit()
	d.tableRefs = append(d.tableRefs, m)
	return m, nil
}

func (d *deserializer) readPair() (value.Value, value.Value, error) {
	k, err := d.extractValue()
	if err != nil {
		return nil, nil, err
	}
	v, err := d.extractValue()
	if err != nil {
		return nil, nil, err
	}
	return k, v, nil
}
