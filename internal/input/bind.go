package input

import (
	"fmt"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/value"
)

// Bind walks v and constructs a concrete Prompter for every KindInput node
// that still carries a raw InputSpec (i.e. was decoded from a config file
// rather than built programmatically with value.FromInput). It returns a
// new tree; v itself is not mutated.
func Bind(v value.Value) (value.Value, error) {
	switch v.Kind {
	case value.KindInput:
		if v.Input != nil || v.InputSpec == nil {
			return v, nil
		}
		p, err := promptFromSpec(v.InputSpec)
		if err != nil {
			return value.Value{}, err
		}
		return value.FromInput(p), nil
	case value.KindArray:
		out := make([]value.Value, len(v.Array))
		for i, el := range v.Array {
			b, err := Bind(el)
			if err != nil {
				return value.Value{}, err
			}
			out[i] = b
		}
		return value.Arr(out...), nil
	case value.KindObject:
		out := make(map[string]value.Value, len(v.Object))
		for k, el := range v.Object {
			b, err := Bind(el)
			if err != nil {
				return value.Value{}, err
			}
			out[k] = b
		}
		return value.Obj(out), nil
	case value.KindOptional:
		inner, err := Bind(*v.OptionalValue)
		if err != nil {
			return value.Value{}, err
		}
		return value.Optional(v.OptionalConditions, inner), nil
	default:
		return v, nil
	}
}

func promptFromSpec(spec map[string]interface{}) (value.Prompter, error) {
	kind, _ := spec["kind"].(string)
	description, _ := spec["description"].(string)

	switch kind {
	case "Bool":
		var def *bool
		if d, ok := spec["default"].(bool); ok {
			def = &d
		}
		return &BoolInput{Default: def, Description: description}, nil
	case "Int":
		var def *int32
		if d, ok := spec["default"].(float64); ok {
			v := int32(d)
			def = &v
		}
		return &Input[int32]{Default: def, Description: description}, nil
	case "Float":
		var def *float32
		if d, ok := spec["default"].(float64); ok {
			v := float32(d)
			def = &v
		}
		return &Input[float32]{Default: def, Description: description}, nil
	case "String":
		var def *string
		if d, ok := spec["default"].(string); ok {
			def = &d
		}
		return &Input[string]{Default: def, Description: description}, nil
	case "Select":
		return selectFromSpec(spec, description)
	default:
		return nil, apperr.New(apperr.KindConfig, "unknown input kind %q", kind)
	}
}

func selectFromSpec(spec map[string]interface{}, description string) (value.Prompter, error) {
	altsRaw, _ := spec["alternatives"].([]interface{})
	if len(altsRaw) == 0 {
		return nil, apperr.New(apperr.KindConfig, "select input requires a non-empty alternatives list")
	}
	allowCustom, _ := spec["allow_custom"].(bool)
	var defaultIndex *uint64
	if d, ok := spec["default_index"].(float64); ok && d > 0 {
		v := uint64(d)
		defaultIndex = &v
	}

	switch altsRaw[0].(type) {
	case string:
		alts := make([]string, len(altsRaw))
		for i, a := range altsRaw {
			alts[i], _ = a.(string)
		}
		return &SelectD[string]{Alternatives: alts, DefaultIndex: defaultIndex, Description: description, AllowCustom: allowCustom}, nil
	case float64:
		alts := make([]int32, len(altsRaw))
		for i, a := range altsRaw {
			f, _ := a.(float64)
			alts[i] = int32(f)
		}
		return &SelectD[int32]{Alternatives: alts, DefaultIndex: defaultIndex, Description: description, AllowCustom: allowCustom}, nil
	case bool:
		alts := make([]bool, len(altsRaw))
		for i, a := range altsRaw {
			alts[i], _ = a.(bool)
		}
		return &SelectD[bool]{Alternatives: alts, DefaultIndex: defaultIndex, Description: description, AllowCustom: allowCustom}, nil
	default:
		return nil, fmt.Errorf("select input: unsupported alternative type %T", altsRaw[0])
	}
}
