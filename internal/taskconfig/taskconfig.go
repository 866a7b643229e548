// Package taskconfig implements TaskSpec/TaskConfig and the initialization
// algorithm that turns a declared task file into a sequence of fully
// resolved, fixed-up tasks ready for FFI submission.
package taskconfig

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/clienttype"
	"github.com/maa-cli/maa-go/internal/condition"
	"github.com/maa-cli/maa-go/internal/logger"
	"github.com/maa-cli/maa-go/internal/value"
)

// Strategy selects how a TaskSpec's active variants combine with its base
// params.
type Strategy int

const (
	// First stops merging after the first active variant.
	First Strategy = iota
	// Merge folds every active variant in order.
	Merge
)

// TaskVariant is one conditionally-active overlay of params on a TaskSpec.
type TaskVariant struct {
	Condition condition.Condition
	Params    value.Value
}

// TaskSpec is one declared task entry in a task config file.
type TaskSpec struct {
	Name     string
	TaskType string
	Params   value.Value
	Strategy Strategy
	Variants []TaskVariant
}

// Active reports whether this spec contributes a task: true if it has no
// variants, or if any variant is currently active.
func (t TaskSpec) Active() bool {
	if len(t.Variants) == 0 {
		return true
	}
	for _, v := range t.Variants {
		if v.Condition.IsActive(context.Background()) {
			return true
		}
	}
	return false
}

// EffectiveParams clones Params and merges in every active variant's params
// in order, honoring Strategy.
func (t TaskSpec) EffectiveParams() value.Value {
	out := t.Params.Clone()
	for _, v := range t.Variants {
		if !v.Condition.IsActive(context.Background()) {
			continue
		}
		out.Merge(v.Params)
		if t.Strategy == First {
			break
		}
	}
	return out
}

// TaskConfig is the file-level container of task specs.
type TaskConfig struct {
	ClientType *clienttype.ClientType
	Startup    *bool
	Closedown  *bool
	Tasks      []TaskSpec
}

// InitializedTask is one fully resolved, fixed-up task ready for FFI
// submission.
type InitializedTask struct {
	Name     string
	TaskType string
	Params   value.ResolvedValue
}

// InitializedTaskConfig is the output of TaskConfig.Init.
type InitializedTaskConfig struct {
	ClientType clienttype.ClientType
	StartApp   bool
	CloseApp   bool
	Tasks      []InitializedTask
}

const (
	taskTypeStartUp   = "StartUp"
	taskTypeCloseDown = "CloseDown"
	taskTypeFight     = "Fight"
)

// Init runs the forward-pass initialization algorithm: resolving each
// active task's params, applying per-task-type fixups, inferring the
// config-wide client type, and synthesizing implicit StartUp/CloseDown
// tasks.
func (tc TaskConfig) Init(configDir string) (InitializedTaskConfig, error) {
	var out InitializedTaskConfig
	var sawClientType clienttype.ClientType
	haveClientType := tc.ClientType != nil
	if haveClientType {
		sawClientType = *tc.ClientType
	}

	sawStartUp := false
	sawCloseDown := false

	startup := tc.Startup
	closedown := tc.Closedown

	for _, spec := range tc.Tasks {
		if !spec.Active() {
			continue
		}

		params := spec.EffectiveParams()
		resolved, err := params.Resolve()
		if err != nil {
			return InitializedTaskConfig{}, apperr.Wrap(apperr.KindConfig, err, "resolving params for task %q", spec.Name)
		}

		switch spec.TaskType {
		case taskTypeStartUp:
			sawStartUp = true
			startGame := boolField(resolved, "enable", true) && boolField(resolved, "start_game_enabled", false)
			switch {
			case startGame && startup == nil:
				t := true
				startup = &t
			case !startGame && startup != nil && *startup:
				resolved = withBoolFields(resolved, map[string]bool{"enable": true, "start_game_enabled": true})
			}
		case taskTypeCloseDown:
			sawCloseDown = true
			enable := boolField(resolved, "enable", true)
			switch {
			case enable && closedown == nil:
				t := true
				closedown = &t
			case !enable && closedown != nil && *closedown:
				resolved = withBoolFields(resolved, map[string]bool{"enable": true})
			}
		default:
			resolved = rewriteRelativeFilename(resolved, configDir, spec.TaskType)
		}

		if ctStr, ok := stringField(resolved, "client_type"); ok {
			ct := clienttype.Parse(ctStr)
			if !haveClientType {
				sawClientType = ct
				haveClientType = true
			} else if ct != sawClientType {
				logger.Default().Warn("task declares a conflicting client_type; keeping the first one seen",
					"task", spec.Name, "seen", sawClientType.String(), "declared", ct.String())
			}
		}

		out.Tasks = append(out.Tasks, InitializedTask{
			Name:     spec.Name,
			TaskType: spec.TaskType,
			Params:   resolved,
		})
	}

	clientType := clienttype.Official
	if haveClientType {
		clientType = sawClientType
	}
	out.ClientType = clientType

	for i := range out.Tasks {
		switch out.Tasks[i].TaskType {
		case taskTypeStartUp, taskTypeFight, taskTypeCloseDown:
			out.Tasks[i].Params = withStringField(out.Tasks[i].Params, "client_type", clientType.String())
		}
	}

	out.StartApp = startup != nil && *startup
	out.CloseApp = closedown != nil && *closedown

	if !sawStartUp && out.StartApp {
		synthesized := withStringField(
			withBoolFields(value.RObjectV(map[string]value.ResolvedValue{}), map[string]bool{"start_game_enabled": true}),
			"client_type", clientType.String(),
		)
		out.Tasks = append([]InitializedTask{{TaskType: taskTypeStartUp, Params: synthesized}}, out.Tasks...)
	}
	if !sawCloseDown && out.CloseApp {
		synthesized := withStringField(value.RObjectV(map[string]value.ResolvedValue{}), "client_type", clientType.String())
		out.Tasks = append(out.Tasks, InitializedTask{TaskType: taskTypeCloseDown, Params: synthesized})
	}

	return out, nil
}

func boolField(r value.ResolvedValue, key string, def bool) bool {
	f, ok := r.Get(key)
	if !ok {
		return def
	}
	b, ok := f.AsBool()
	if !ok {
		return def
	}
	return b
}

func stringField(r value.ResolvedValue, key string) (string, bool) {
	f, ok := r.Get(key)
	if !ok {
		return "", false
	}
	return f.AsString()
}

func withBoolFields(r value.ResolvedValue, fields map[string]bool) value.ResolvedValue {
	if r.Kind != value.RObject {
		r = value.RObjectV(map[string]value.ResolvedValue{})
	}
	obj := make(map[string]value.ResolvedValue, len(r.Object)+len(fields))
	for k, v := range r.Object {
		obj[k] = v
	}
	for k, v := range fields {
		obj[k] = value.RBoolV(v)
	}
	return value.RObjectV(obj)
}

func withStringField(r value.ResolvedValue, key, s string) value.ResolvedValue {
	if r.Kind != value.RObject {
		r = value.RObjectV(map[string]value.ResolvedValue{})
	}
	obj := make(map[string]value.ResolvedValue, len(r.Object)+1)
	for k, v := range r.Object {
		obj[k] = v
	}
	obj[key] = value.RStringV(s)
	return value.RObjectV(obj)
}

// rewriteRelativeFilename rewrites any other task type's relative
// "filename" string parameter to be rooted at configDir/<lowercase
// task type>/.
func rewriteRelativeFilename(r value.ResolvedValue, configDir, taskType string) value.ResolvedValue {
	name, ok := stringField(r, "filename")
	if !ok || name == "" || filepath.IsAbs(name) {
		return r
	}
	rewritten := filepath.Join(configDir, strings.ToLower(taskType), name)
	obj := make(map[string]value.ResolvedValue, len(r.Object))
	for k, v := range r.Object {
		obj[k] = v
	}
	obj["filename"] = value.RStringV(rewritten)
	return value.RObjectV(obj)
}
