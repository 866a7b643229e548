package value

import (
	"encoding/json"
	"fmt"

	"github.com/maa-cli/maa-go/internal/apperr"
)

// MarshalJSON refuses to serialize a Value that still carries an Input or
// Optional placeholder: serialization of an unresolved Value fails with an
// explicit error rather than silently dropping the placeholder. Callers
// must Resolve() first.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindBool:
		return json.Marshal(v.Bool)
	case KindInt:
		return json.Marshal(v.Int)
	case KindFloat:
		return json.Marshal(v.Float)
	case KindString:
		return json.Marshal(v.String)
	case KindArray:
		return json.Marshal(v.Array)
	case KindObject:
		return json.Marshal(v.Object)
	case KindInput:
		return nil, apperr.New(apperr.KindConfig, "cannot serialize an unresolved input placeholder; call Resolve() first")
	case KindOptional:
		return nil, apperr.New(apperr.KindConfig, "cannot serialize an unresolved optional placeholder; call Resolve() first")
	default:
		return nil, fmt.Errorf("value: invalid Value kind %d", v.Kind)
	}
}

// UnmarshalJSON decodes task/profile config JSON into a Value tree,
// recognizing the tagged shapes:
//
//	{"type": "Input", "kind": "Bool"|"Int"|"Float"|"String"|"Select", ...}
//	{"type": "Optional", "conditions": {...}, "value": <value>}
//
// Special forms carry a "type" tag, the same way Condition does. Any other
// object/array/scalar decodes straight through into the corresponding
// Value kind.
func (v *Value) UnmarshalJSON(data []byte) error {
	var generic interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return err
	}
	out, err := fromGenericValue(generic)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

func fromGenericValue(generic interface{}) (Value, error) {
	switch t := generic.(type) {
	case nil:
		return Str(""), nil
	case bool:
		return Bool(t), nil
	case float64:
		if t == float64(int32(t)) {
			return Int(int32(t)), nil
		}
		return Float(float32(t)), nil
	case string:
		return Str(t), nil
	case []interface{}:
		out := make([]Value, len(t))
		for i, el := range t {
			v, err := fromGenericValue(el)
			if err != nil {
				return Value{}, err
			}
			if v.Kind == KindOptional {
				// Optional may appear only as a direct child of an Object.
				// Caught here at decode time rather than only at resolve
				// time, since a config file's array literal is never going
				// to become an object later.
				return Value{}, apperr.ErrOptionalNotInObject
			}
			out[i] = v
		}
		return Arr(out...), nil
	case map[string]interface{}:
		if tag, ok := t["type"].(string); ok {
			switch tag {
			case "Input":
				return inputFromGeneric(t)
			case "Optional":
				return optionalFromGeneric(t)
			}
		}
		out := make(map[string]Value, len(t))
		for k, el := range t {
			v, err := fromGenericValue(el)
			if err != nil {
				return Value{}, err
			}
			out[k] = v
		}
		return Obj(out), nil
	default:
		return Value{}, fmt.Errorf("value: unsupported JSON type %T", t)
	}
}

func inputFromGeneric(t map[string]interface{}) (Value, error) {
	return Value{Kind: KindInput, InputSpec: t}, nil
}

func optionalFromGeneric(t map[string]interface{}) (Value, error) {
	condsRaw, _ := t["conditions"].(map[string]interface{})
	conds := make(map[string]Primitive, len(condsRaw))
	for k, raw := range condsRaw {
		p, err := primitiveFromGeneric(raw)
		if err != nil {
			return Value{}, fmt.Errorf("optional condition %q: %w", k, err)
		}
		conds[k] = p
	}
	innerRaw, ok := t["value"]
	if !ok {
		return Value{}, apperr.New(apperr.KindConfig, "optional value missing \"value\" field")
	}
	inner, err := fromGenericValue(innerRaw)
	if err != nil {
		return Value{}, err
	}
	return Optional(conds, inner), nil
}

func primitiveFromGeneric(raw interface{}) (Primitive, error) {
	switch t := raw.(type) {
	case bool:
		return BoolPrim(t), nil
	case float64:
		if t == float64(int32(t)) {
			return IntPrim(int32(t)), nil
		}
		return FloatPrim(float32(t)), nil
	case string:
		return StringPrim(t), nil
	default:
		return Primitive{}, fmt.Errorf("unsupported primitive type %T", t)
	}
}
