package toon

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// FromJSON parses JSON bytes into a Value. NaN/Inf cannot occur (the
// encoding/json decoder itself rejects them), so every float coming
// back from json.Unmarshal is finite.
func FromJSON(data []byte) (Value, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Value{}, errors.Wrap(err, "toon: parse JSON")
	}
	return FromGo(v)
}

// ToJSON renders v as JSON bytes via the Go interop bridge.
func ToJSON(v Value) ([]byte, error) {
	return json.Marshal(v.ToGo())
}

// MarshalJSON implements json.Marshaler so a Value can be embedded
// directly in a struct that is itself JSON-encoded.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToGo())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	val, err := FromGo(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// FromGo converts an already-decoded Go value (the shapes produced by
// encoding/json.Unmarshal into `any`, or hand-built map[string]any /
// []any trees) into a Value. Unsupported Go types return
// *UnsupportedValueError.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(val), nil
	case string:
		return Str(val), nil
	case float64:
		if val == math.Trunc(val) && !math.IsInf(val, 0) && math.Abs(val) <= 1<<53 {
			return Int(int64(val)), nil
		}
		return Float(val), nil
	case float32:
		return FromGo(float64(val))
	case int:
		return Int(int64(val)), nil
	case int64:
		return Int(val), nil
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := val.Float64()
		if err != nil {
			return Value{}, errors.Wrap(err, "toon: convert json.Number")
		}
		return Float(f), nil
	case []any:
		elems := make([]Value, 0, len(val))
		for i, e := range val {
			ev, err := FromGo(e)
			if err != nil {
				return Value{}, errors.Wrapf(err, "toon: element %d", i)
			}
			elems = append(elems, ev)
		}
		return List(elems...), nil
	case map[string]any:
		fields := make([]Field, 0, len(val))
		for k, e := range val {
			ev, err := FromGo(e)
			if err != nil {
				return Value{}, errors.Wrapf(err, "toon: field %q", k)
			}
			fields = append(fields, F(k, ev))
		}
		return Object(fields...), nil
	case Value:
		return val, nil
	default:
		return Value{}, &UnsupportedValueError{GoType: goTypeName(val)}
	}
}

// ToGo renders v as the corresponding plain Go value: nil, bool,
// int64, float64, string, []any, or map[string]any.
func (v Value) ToGo() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.boolVal
	case KindInt:
		return v.intVal
	case KindFloat:
		return v.floatVal
	case KindStr:
		return v.strVal
	case KindList:
		out := make([]any, len(v.listVal))
		for i, e := range v.listVal {
			out[i] = e.ToGo()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.objVal))
		for _, f := range v.objVal {
			out[f.Key] = f.Value.ToGo()
		}
		return out
	default:
		return nil
	}
}

func goTypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
