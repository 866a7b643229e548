package value

import (
	"testing"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/stretchr/testify/assert"
)

type stubPrompter struct {
	p   Primitive
	err error
}

func (s stubPrompter) Prompt() (Primitive, error) { return s.p, s.err }

func TestResolveObjectWithSatisfiedOptional(t *testing.T) {
	v := Obj(map[string]Value{
		"mode": Str("auto"),
		"delay": Optional(map[string]Primitive{"mode": StringPrim("auto")}, Int(5)),
	})
	r, err := v.Resolve()
	assert.NoError(t, err)
	assert.Equal(t, RIntV(5), r.Object["delay"])
}

func TestResolveObjectWithUnsatisfiedOptionalDropsField(t *testing.T) {
	v := Obj(map[string]Value{
		"mode": Str("manual"),
		"delay": Optional(map[string]Primitive{"mode": StringPrim("auto")}, Int(5)),
	})
	r, err := v.Resolve()
	assert.NoError(t, err)
	_, ok := r.Object["delay"]
	assert.False(t, ok)
}

func TestResolveArrayAndNestedObject(t *testing.T) {
	v := Arr(Int(1), Obj(map[string]Value{"a": Bool(true)}))
	r, err := v.Resolve()
	assert.NoError(t, err)
	assert.Equal(t, RIntV(1), r.Array[0])
	assert.Equal(t, RBoolV(true), r.Array[1].Object["a"])
}

func TestResolveInputInvokesPrompter(t *testing.T) {
	v := FromInput(stubPrompter{p: StringPrim("chosen")})
	r, err := v.Resolve()
	assert.NoError(t, err)
	assert.Equal(t, RStringV("chosen"), r)
}

func TestResolveUnboundInputErrors(t *testing.T) {
	v := Value{Kind: KindInput}
	_, err := v.Resolve()
	assert.Error(t, err)
	assert.Equal(t, apperr.KindConfig, apperr.KindOf(err))
}

func TestResolveOptionalOutsideObjectErrors(t *testing.T) {
	v := Optional(nil, Int(1))
	_, err := v.Resolve()
	assert.ErrorIs(t, err, apperr.ErrOptionalNotInObject)
}

func TestUnmarshalJSONRejectsOptionalAsArrayElement(t *testing.T) {
	var v Value
	err := v.UnmarshalJSON([]byte(`[{"type": "Optional", "conditions": {}, "value": 1}]`))
	assert.ErrorIs(t, err, apperr.ErrOptionalNotInObject)
}

func TestTopoSortDetectsCircularOptionalDependency(t *testing.T) {
	v := Obj(map[string]Value{
		"a": Optional(map[string]Primitive{"b": BoolPrim(true)}, Int(1)),
		"b": Optional(map[string]Primitive{"a": BoolPrim(true)}, Int(2)),
	})
	_, err := v.Resolve()
	assert.ErrorIs(t, err, apperr.ErrCircularDependency)
}

func TestTopoSortToleratesDiamondDependency(t *testing.T) {
	v := Obj(map[string]Value{
		"base": Bool(true),
		"x":    Optional(map[string]Primitive{"base": BoolPrim(true)}, Int(1)),
		"y":    Optional(map[string]Primitive{"base": BoolPrim(true)}, Int(2)),
	})
	r, err := v.Resolve()
	assert.NoError(t, err)
	assert.Equal(t, RIntV(1), r.Object["x"])
	assert.Equal(t, RIntV(2), r.Object["y"])
}

func TestCloneIsDeep(t *testing.T) {
	v := Obj(map[string]Value{"a": Arr(Int(1))})
	c := v.Clone()
	c.Object["a"].Array[0] = Int(99)
	assert.Equal(t, int32(1), v.Object["a"].Array[0].Int)
}
