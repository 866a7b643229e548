package value

import "github.com/maa-cli/maa-go/internal/apperr"

// Resolve walks the Value tree bottom-up, invoking Prompters, evaluating
// Optional conditions against already-resolved siblings, and producing a
// pure ResolvedValue.
func (v Value) Resolve() (ResolvedValue, error) {
	switch v.Kind {
	case KindBool:
		return RBoolV(v.Bool), nil
	case KindInt:
		return RIntV(v.Int), nil
	case KindFloat:
		return RFloatV(v.Float), nil
	case KindString:
		return RStringV(v.String), nil
	case KindInput:
		if v.Input == nil {
			return ResolvedValue{}, apperr.New(apperr.KindConfig, "input value has not been bound to a prompter (call input.Bind first)")
		}
		p, err := v.Input.Prompt()
		if err != nil {
			return ResolvedValue{}, apperr.Wrap(apperr.KindInput, err, "reading interactive input")
		}
		return rFromPrimitive(p), nil
	case KindOptional:
		// An Optional resolved outside of an Object has no siblings to test
		// its conditions against.
		return ResolvedValue{}, apperr.ErrOptionalNotInObject
	case KindArray:
		out := make([]ResolvedValue, len(v.Array))
		for i, el := range v.Array {
			r, err := el.Resolve()
			if err != nil {
				return ResolvedValue{}, err
			}
			out[i] = r
		}
		return RArrayV(out...), nil
	case KindObject:
		return v.resolveObject()
	default:
		return ResolvedValue{}, apperr.New(apperr.KindConfig, "value: unknown kind %d", v.Kind)
	}
}

func (v Value) resolveObject() (ResolvedValue, error) {
	order, err := topoSortObjectKeys(v.Object)
	if err != nil {
		return ResolvedValue{}, err
	}

	resolved := make(map[string]ResolvedValue, len(v.Object))
	for _, key := range order {
		field := v.Object[key]
		if field.Kind == KindOptional {
			satisfied := true
			for depKey, expected := range field.OptionalConditions {
				actual, ok := resolved[depKey]
				if !ok {
					satisfied = false
					break
				}
				actualPrim, ok := asPrimitive(actual)
				if !ok || !actualPrim.Equal(expected) {
					satisfied = false
					break
				}
			}
			if !satisfied {
				// An Optional field whose conditions aren't met is dropped
				// silently rather than erroring.
				continue
			}
			r, err := field.OptionalValue.Resolve()
			if err != nil {
				return ResolvedValue{}, err
			}
			resolved[key] = r
			continue
		}

		r, err := field.Resolve()
		if err != nil {
			return ResolvedValue{}, err
		}
		resolved[key] = r
	}
	return RObjectV(resolved), nil
}

func asPrimitive(r ResolvedValue) (Primitive, bool) {
	switch r.Kind {
	case RBool:
		return BoolPrim(r.Bool), true
	case RInt:
		return IntPrim(r.Int), true
	case RFloat:
		return FloatPrim(r.Float), true
	case RString:
		return StringPrim(r.String), true
	default:
		return Primitive{}, false
	}
}
