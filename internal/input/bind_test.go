package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maa-cli/maa-go/internal/value"
)

func TestBindConstructsPrompterFromSpec(t *testing.T) {
	v := value.Value{Kind: value.KindInput, InputSpec: map[string]interface{}{
		"kind":        "Int",
		"description": "stage count",
		"default":     float64(3),
	}}
	bound, err := Bind(v)
	assert.NoError(t, err)
	assert.NotNil(t, bound.Input)

	withBatchSession(t)
	p, err := bound.Input.Prompt()
	assert.NoError(t, err)
	assert.Equal(t, value.IntPrim(3), p)
}

func TestBindLeavesAlreadyBoundInputAlone(t *testing.T) {
	def := int32(5)
	v := value.FromInput(&Input[int32]{Default: &def})
	bound, err := Bind(v)
	assert.NoError(t, err)
	assert.Same(t, v.Input, bound.Input)
}

func TestBindRecursesThroughObjectsAndOptionals(t *testing.T) {
	v := value.Obj(map[string]value.Value{
		"x": value.Optional(nil, value.Value{Kind: value.KindInput, InputSpec: map[string]interface{}{"kind": "Bool"}}),
	})
	bound, err := Bind(v)
	assert.NoError(t, err)
	assert.NotNil(t, bound.Object["x"].OptionalValue.Input)
}

func TestBindUnknownKindErrors(t *testing.T) {
	v := value.Value{Kind: value.KindInput, InputSpec: map[string]interface{}{"kind": "Nonsense"}}
	_, err := Bind(v)
	assert.Error(t, err)
}

func TestSelectFromSpecRequiresAlternatives(t *testing.T) {
	v := value.Value{Kind: value.KindInput, InputSpec: map[string]interface{}{"kind": "Select"}}
	_, err := Bind(v)
	assert.Error(t, err)
}
