package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// RKind tags the variant held by a ResolvedValue.
type RKind int

const (
	RBool RKind = iota
	RInt
	RFloat
	RString
	RArray
	RObject
)

// ResolvedValue is the image of Value.Resolve: no Input or Optional
// remains, so it is always serializable as JSON.
//
// Object keys are stored in a Go map, since insertion order is irrelevant;
// MarshalJSON below sorts keys before emitting them so serialization is
// reproducible.
type ResolvedValue struct {
	Kind   RKind
	Bool   bool
	Int    int32
	Float  float32
	String string
	Array  []ResolvedValue
	Object map[string]ResolvedValue
}

func RBoolV(b bool) ResolvedValue   { return ResolvedValue{Kind: RBool, Bool: b} }
func RIntV(i int32) ResolvedValue   { return ResolvedValue{Kind: RInt, Int: i} }
func RFloatV(f float32) ResolvedValue { return ResolvedValue{Kind: RFloat, Float: f} }
func RStringV(s string) ResolvedValue { return ResolvedValue{Kind: RString, String: s} }
func RArrayV(vs ...ResolvedValue) ResolvedValue {
	return ResolvedValue{Kind: RArray, Array: vs}
}
func RObjectV(m map[string]ResolvedValue) ResolvedValue {
	return ResolvedValue{Kind: RObject, Object: m}
}

func rFromPrimitive(p Primitive) ResolvedValue {
	switch p.Kind {
	case PrimBool:
		return RBoolV(p.B)
	case PrimInt:
		return RIntV(p.I)
	case PrimFloat:
		return RFloatV(p.F)
	default:
		return RStringV(p.S)
	}
}

// AsValue lifts a ResolvedValue back into the unresolved Value type, used by
// the "resolve idempotence" property: resolve(resolve(v)-as-Value) == resolve(v).
func (r ResolvedValue) AsValue() Value {
	switch r.Kind {
	case RBool:
		return Bool(r.Bool)
	case RInt:
		return Int(r.Int)
	case RFloat:
		return Float(r.Float)
	case RString:
		return Str(r.String)
	case RArray:
		vs := make([]Value, len(r.Array))
		for i, el := range r.Array {
			vs[i] = el.AsValue()
		}
		return Arr(vs...)
	case RObject:
		m := make(map[string]Value, len(r.Object))
		for k, el := range r.Object {
			m[k] = el.AsValue()
		}
		return Obj(m)
	default:
		return Value{}
	}
}

// MarshalJSON implements json.Marshaler, sorting object keys for
// deterministic output.
func (r ResolvedValue) MarshalJSON() ([]byte, error) {
	switch r.Kind {
	case RBool:
		return json.Marshal(r.Bool)
	case RInt:
		return json.Marshal(r.Int)
	case RFloat:
		return json.Marshal(r.Float)
	case RString:
		return json.Marshal(r.String)
	case RArray:
		return json.Marshal(r.Array)
	case RObject:
		keys := make([]string, 0, len(r.Object))
		for k := range r.Object {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return nil, err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			vb, err := json.Marshal(r.Object[k])
			if err != nil {
				return nil, err
			}
			buf.Write(vb)
		}
		buf.WriteByte('}')
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("value: invalid ResolvedValue kind %d", r.Kind)
	}
}

// UnmarshalJSON implements json.Unmarshaler by decoding into the generic
// interface{} tree and lifting it into a ResolvedValue.
func (r *ResolvedValue) UnmarshalJSON(data []byte) error {
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	*r = FromGeneric(generic)
	return nil
}

// FromGeneric converts the result of json.Unmarshal(..., &interface{}{})
// into a ResolvedValue tree.
func FromGeneric(generic interface{}) ResolvedValue {
	switch t := generic.(type) {
	case nil:
		return RStringV("")
	case bool:
		return RBoolV(t)
	case float64:
		if t == float64(int32(t)) {
			return RIntV(int32(t))
		}
		return RFloatV(float32(t))
	case string:
		return RStringV(t)
	case []interface{}:
		out := make([]ResolvedValue, len(t))
		for i, el := range t {
			out[i] = FromGeneric(el)
		}
		return RArrayV(out...)
	case map[string]interface{}:
		out := make(map[string]ResolvedValue, len(t))
		for k, el := range t {
			out[k] = FromGeneric(el)
		}
		return RObjectV(out)
	default:
		return RStringV(fmt.Sprintf("%v", t))
	}
}

// Get returns the value of key in an RObject, or (zero, false) otherwise.
func (r ResolvedValue) Get(key string) (ResolvedValue, bool) {
	if r.Kind != RObject {
		return ResolvedValue{}, false
	}
	v, ok := r.Object[key]
	return v, ok
}

// AsBool/AsInt/AsFloat/AsString project a ResolvedValue to a primitive Go
// type, returning ok=false on type mismatch.
func (r ResolvedValue) AsBool() (bool, bool) {
	if r.Kind != RBool {
		return false, false
	}
	return r.Bool, true
}

func (r ResolvedValue) AsInt() (int32, bool) {
	if r.Kind != RInt {
		return 0, false
	}
	return r.Int, true
}

func (r ResolvedValue) AsFloat() (float32, bool) {
	if r.Kind != RFloat {
		return 0, false
	}
	return r.Float, true
}

func (r ResolvedValue) AsString() (string, bool) {
	if r.Kind != RString {
		return "", false
	}
	return r.String, true
}

func (r ResolvedValue) AsSlice() ([]ResolvedValue, bool) {
	if r.Kind != RArray {
		return nil, false
	}
	return r.Array, true
}

func (r ResolvedValue) AsMap() (map[string]ResolvedValue, bool) {
	if r.Kind != RObject {
		return nil, false
	}
	return r.Object, true
}
