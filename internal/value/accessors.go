package value

// Get returns the value at key in an Object, or (zero, false) for a
// non-object or missing key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	el, ok := v.Object[key]
	return el, ok
}

// GetOr returns the value at key, or def if absent/not an object.
func (v Value) GetOr(key string, def Value) Value {
	if el, ok := v.Get(key); ok {
		return el
	}
	return def
}

// AsBool/AsInt/AsFloat/AsStr project a Value to a primitive Go type,
// returning ok=false on type mismatch.
func (v Value) AsBool() (bool, bool) {
	if v.Kind != KindBool {
		return false, false
	}
	return v.Bool, true
}

func (v Value) AsInt() (int32, bool) {
	if v.Kind != KindInt {
		return 0, false
	}
	return v.Int, true
}

func (v Value) AsFloat() (float32, bool) {
	if v.Kind != KindFloat {
		return 0, false
	}
	return v.Float, true
}

func (v Value) AsStr() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.String, true
}

func (v Value) AsSlice() ([]Value, bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	return v.Array, true
}

func (v Value) AsMap() (map[string]Value, bool) {
	if v.Kind != KindObject {
		return nil, false
	}
	return v.Object, true
}

// GetTyped fetches key and projects it through the supplied accessor,
// e.g. GetTyped(v, "count", Value.AsInt), returning ok=false on a missing
// key, non-object receiver, or type mismatch.
func GetTyped[T any](v Value, key string, accessor func(Value) (T, bool)) (T, bool) {
	var zero T
	el, ok := v.Get(key)
	if !ok {
		return zero, false
	}
	return accessor(el)
}
