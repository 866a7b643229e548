// Package value implements the recursive configuration Value: a tree that
// carries interactive input placeholders and conditional ("optional")
// fields alongside plain JSON-compatible data, and resolves to a pure
// ResolvedValue.
package value

import "fmt"

// Kind tags the variant held by a Value.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
	KindInput
	KindOptional
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindInput:
		return "input"
	case KindOptional:
		return "optional"
	default:
		return "unknown"
	}
}

// PrimKind tags the variant held by a Primitive.
type PrimKind int

const (
	PrimBool PrimKind = iota
	PrimInt
	PrimFloat
	PrimString
)

// Primitive is a resolved scalar: Bool, Int (i32), Float (f32), or String.
type Primitive struct {
	Kind PrimKind
	B    bool
	I    int32
	F    float32
	S    string
}

// BoolPrim constructs a boolean Primitive.
func BoolPrim(b bool) Primitive { return Primitive{Kind: PrimBool, B: b} }

// IntPrim constructs an integer Primitive.
func IntPrim(i int32) Primitive { return Primitive{Kind: PrimInt, I: i} }

// FloatPrim constructs a float Primitive.
func FloatPrim(f float32) Primitive { return Primitive{Kind: PrimFloat, F: f} }

// StringPrim constructs a string Primitive.
func StringPrim(s string) Primitive { return Primitive{Kind: PrimString, S: s} }

// Equal reports whether two Primitives have the same kind and value.
func (p Primitive) Equal(other Primitive) bool {
	if p.Kind != other.Kind {
		return false
	}
	switch p.Kind {
	case PrimBool:
		return p.B == other.B
	case PrimInt:
		return p.I == other.I
	case PrimFloat:
		return p.F == other.F
	case PrimString:
		return p.S == other.S
	default:
		return false
	}
}

func (p Primitive) String() string {
	switch p.Kind {
	case PrimBool:
		return fmt.Sprintf("%v", p.B)
	case PrimInt:
		return fmt.Sprintf("%d", p.I)
	case PrimFloat:
		return fmt.Sprintf("%g", p.F)
	case PrimString:
		return p.S
	default:
		return ""
	}
}

// Prompter is implemented by the interactive UserInput forms in package
// input; a Value of KindInput holds one of these, invoked during Resolve.
// Keeping this as a narrow interface (rather than importing package input
// directly) avoids a dependency cycle, since package input itself imports
// value for Primitive and Value.
type Prompter interface {
	// Prompt obtains a Primitive, either from a configured default (batch
	// mode) or by interacting with the user.
	Prompt() (Primitive, error)
}

// Value is the recursive configuration value.
type Value struct {
	Kind Kind

	// Primitive payload, valid when Kind is one of the primitive kinds.
	Bool   bool
	Int    int32
	Float  float32
	String string

	// Array payload, valid when Kind == KindArray.
	Array []Value

	// Object payload, valid when Kind == KindObject.
	Object map[string]Value

	// Input payload, valid when Kind == KindInput. InputSpec holds the raw
	// decoded JSON describing the prompt (kind/default/description/...)
	// until something calls input.Bind to construct the concrete Prompter
	// into the Input field; Resolve refuses to run against an unbound
	// InputSpec.
	Input     Prompter
	InputSpec map[string]interface{}

	// Optional payload, valid when Kind == KindOptional.
	OptionalConditions map[string]Primitive
	OptionalValue      *Value
}

// Bool/Int/Float/Str/Arr/Obj are convenience constructors.

func Bool(b bool) Value   { return Value{Kind: KindBool, Bool: b} }
func Int(i int32) Value   { return Value{Kind: KindInt, Int: i} }
func Float(f float32) Value { return Value{Kind: KindFloat, Float: f} }
func Str(s string) Value  { return Value{Kind: KindString, String: s} }
func Arr(vs ...Value) Value {
	return Value{Kind: KindArray, Array: vs}
}
func Obj(m map[string]Value) Value {
	return Value{Kind: KindObject, Object: m}
}
func FromPrimitive(p Primitive) Value {
	switch p.Kind {
	case PrimBool:
		return Bool(p.B)
	case PrimInt:
		return Int(p.I)
	case PrimFloat:
		return Float(p.F)
	default:
		return Str(p.S)
	}
}
func FromInput(p Prompter) Value { return Value{Kind: KindInput, Input: p} }
func Optional(conditions map[string]Primitive, v Value) Value {
	return Value{Kind: KindOptional, OptionalConditions: conditions, OptionalValue: &v}
}

// Clone returns a deep copy of the Value tree.
func (v Value) Clone() Value {
	out := v
	if v.Array != nil {
		out.Array = make([]Value, len(v.Array))
		for i, el := range v.Array {
			out.Array[i] = el.Clone()
		}
	}
	if v.Object != nil {
		out.Object = make(map[string]Value, len(v.Object))
		for k, el := range v.Object {
			out.Object[k] = el.Clone()
		}
	}
	if v.OptionalValue != nil {
		clonedInner := v.OptionalValue.Clone()
		out.OptionalValue = &clonedInner
	}
	if v.OptionalConditions != nil {
		out.OptionalConditions = make(map[string]Primitive, len(v.OptionalConditions))
		for k, p := range v.OptionalConditions {
			out.OptionalConditions[k] = p
		}
	}
	return out
}
