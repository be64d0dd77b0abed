package value

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/wa-tools/wacodec/internal/errs"
)

// ToJSON renders v as JSON, for the CLI's human-facing boundary. Map keys
// that are themselves Numbers are rendered as their shortest decimal
// string, matching how JSON requires object keys to be strings while still
// letting FromJSON recover the original Number key.
func ToJSON(v Value) ([]byte, error) {
	return json.Marshal(toJSONValue(v))
}

func toJSONValue(v Value) interface{} {
	switch x := v.(type) {
	case nullValue:
		return nil
	case Boolean:
		return bool(x)
	case Number:
		return float64(x)
	case String:
		return string(x)
	case *Array:
		out := make([]interface{}, x.Len())
		for i, item := range x.Items {
			out[i] = toJSONValue(item)
		}
		return out
	case *Map:
		out := make(map[string]interface{}, x.Len())
		x.Range(func(k MapKey, val Value) bool {
			out[jsonKeyString(k.Value())] = toJSONValue(val)
			return true
		})
		return out
	default:
		panic("value: unknown Value implementation")
	}
}

func jsonKeyString(v Value) string {
	switch x := v.(type) {
	case String:
		return string(x)
	case Number:
		return strconv.FormatFloat(float64(x), 'g', -1, 64)
	case Boolean:
		return strconv.FormatBool(bool(x))
	default:
		return ""
	}
}

// FromJSON parses JSON into a Value tree. Object keys that parse cleanly as
// integers are promoted to Number keys (matching the scripting language's
// lack of a separate integer/string key distinction); every other key
// stays a String key. See SPEC_FULL.md §12.
func FromJSON(data []byte) (Value, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.Wrap(err, errs.InvalidKey, "malformed JSON input")
	}
	return fromJSONValue(raw)
}

func fromJSONValue(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null, nil
	case bool:
		return Boolean(x), nil
	case float64:
		return Number(x), nil
	case string:
		return String(x), nil
	case []interface{}:
		items := make([]Value, len(x))
		for i, elem := range x {
			v, err := fromJSONValue(elem)
			if err != nil {
				return nil, err
			}
			items[i] = v
		}
		return NewArray(items), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMap()
		for _, k := range keys {
			v, err := fromJSONValue(x[k])
			if err != nil {
				return nil, err
			}
			key, err := NewMapKey(jsonKeyToValue(k))
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	default:
		return nil, errs.Newf(errs.InvalidKey, "unsupported JSON value %T", raw)
	}
}

// jsonKeyToValue promotes a JSON object key that parses cleanly as a
// base-10 integer, with no extraneous leading zero, to a Number key.
func jsonKeyToValue(k string) Value {
	if n, err := strconv.ParseInt(k, 10, 64); err == nil && strconv.FormatInt(n, 10) == k {
		return Number(float64(n))
	}
	return String(k)
}

// IsArrayLike reports whether m's keys are exactly the dense integers
// 1..m.Len() with no gaps. An empty map is not array-like. Neither codec
// calls it: acetext classifies decoded tables with its own key-slice check,
// and libserialize keeps Map and Array tags distinct on the wire.
func IsArrayLike(m *Map) bool {
	n := m.Len()
	if n == 0 {
		return false
	}
	seen := make([]bool, n)
	ok := true
	m.Range(func(k MapKey, _ Value) bool {
		num, isNum := k.Value().(Number)
		if !isNum {
			ok = false
			return false
		}
		f := float64(num)
		i := int(f)
		if float64(i) != f || i < 1 || i > n {
			ok = false
			return false
		}
		if seen[i-1] {
			ok = false
			return false
		}
		seen[i-1] = true
		return true
	})
	return ok
}
