package taskconfig

import (
	"testing"

	"github.com/maa-cli/maa-go/internal/condition"
	"github.com/maa-cli/maa-go/internal/value"
	"github.com/stretchr/testify/assert"
)

func TestInitStartupAutoDetect(t *testing.T) {
	tc := TaskConfig{
		Tasks: []TaskSpec{
			{
				TaskType: taskTypeStartUp,
				Params: value.Obj(map[string]value.Value{
					"start_game_enabled": value.Bool(true),
					"client_type":        value.Str("YoStarEN"),
				}),
			},
		},
	}

	out, err := tc.Init("/config")
	assert.NoError(t, err)
	assert.Equal(t, "YoStarEN", out.ClientType.String())
	assert.True(t, out.StartApp)
	assert.False(t, out.CloseApp)
	assert.Len(t, out.Tasks, 1)
	sge, ok := out.Tasks[0].Params.Get("start_game_enabled")
	assert.True(t, ok)
	b, _ := sge.AsBool()
	assert.True(t, b)
}

func TestInitClosedownForcedOnSynthesizesStartup(t *testing.T) {
	startupTrue := true
	closedownTrue := true
	tc := TaskConfig{
		Startup:   &startupTrue,
		Closedown: &closedownTrue,
		Tasks: []TaskSpec{
			{
				TaskType: taskTypeCloseDown,
				Params: value.Obj(map[string]value.Value{
					"enable": value.Bool(false),
				}),
			},
		},
	}

	out, err := tc.Init("/config")
	assert.NoError(t, err)
	assert.True(t, out.CloseApp)
	assert.Len(t, out.Tasks, 2)
	assert.Equal(t, taskTypeStartUp, out.Tasks[0].TaskType)
	assert.Equal(t, taskTypeCloseDown, out.Tasks[1].TaskType)

	enable, ok := out.Tasks[1].Params.Get("enable")
	assert.True(t, ok)
	b, _ := enable.AsBool()
	assert.True(t, b)

	ct, ok := out.Tasks[1].Params.Get("client_type")
	assert.True(t, ok)
	s, _ := ct.AsString()
	assert.Equal(t, "Official", s)
}

func TestEffectiveParamsMergeStrategy(t *testing.T) {
	spec := TaskSpec{
		TaskType: "Fight",
		Params: value.Obj(map[string]value.Value{
			"a": value.Int(1),
			"c": value.Int(5),
		}),
		Strategy: Merge,
		Variants: []TaskVariant{
			{Condition: condition.Always, Params: value.Obj(map[string]value.Value{"a": value.Int(2)})},
			{Condition: condition.Always, Params: value.Obj(map[string]value.Value{"a": value.Int(3), "b": value.Int(4)})},
		},
	}

	eff := spec.EffectiveParams()
	a, _ := eff.Get("a")
	b, _ := eff.Get("b")
	c, _ := eff.Get("c")
	av, _ := a.AsInt()
	bv, _ := b.AsInt()
	cv, _ := c.AsInt()
	assert.Equal(t, int32(3), av)
	assert.Equal(t, int32(4), bv)
	assert.Equal(t, int32(5), cv)
}

func TestEffectiveParamsFirstStrategyStopsAtFirstActive(t *testing.T) {
	spec := TaskSpec{
		TaskType: "Fight",
		Params:   value.Obj(map[string]value.Value{"a": value.Int(1)}),
		Strategy: First,
		Variants: []TaskVariant{
			{Condition: condition.Always, Params: value.Obj(map[string]value.Value{"a": value.Int(2)})},
			{Condition: condition.Always, Params: value.Obj(map[string]value.Value{"a": value.Int(3)})},
		},
	}
	eff := spec.EffectiveParams()
	a, _ := eff.Get("a")
	av, _ := a.AsInt()
	assert.Equal(t, int32(2), av)
}

func TestRelativeFilenameRewritten(t *testing.T) {
	tc := TaskConfig{
		Tasks: []TaskSpec{
			{
				TaskType: "Copilot",
				Params: value.Obj(map[string]value.Value{
					"filename": value.Str("a.json"),
				}),
			},
		},
	}
	out, err := tc.Init("/cfg")
	assert.NoError(t, err)
	fn, ok := out.Tasks[0].Params.Get("filename")
	assert.True(t, ok)
	s, _ := fn.AsString()
	assert.Equal(t, "/cfg/copilot/a.json", s)
}
