package taskconfig

import (
	"encoding/json"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/clienttype"
	"github.com/maa-cli/maa-go/internal/condition"
	"github.com/maa-cli/maa-go/internal/input"
	"github.com/maa-cli/maa-go/internal/value"
)

type wireVariant struct {
	Condition condition.Condition `json:"condition"`
	Params    json.RawMessage     `json:"params"`
}

type wireTaskSpec struct {
	Name     string          `json:"name,omitempty"`
	Type     string          `json:"type"`
	Params   json.RawMessage `json:"params,omitempty"`
	Strategy string          `json:"strategy,omitempty"`
	Variants []wireVariant   `json:"variants,omitempty"`
}

type wireTaskConfig struct {
	ClientType *string        `json:"client_type,omitempty"`
	Startup    *bool          `json:"startup,omitempty"`
	Closedown  *bool          `json:"closedown,omitempty"`
	Tasks      []wireTaskSpec `json:"tasks"`
}

// DecodeTaskConfig decodes a task config file body (already normalized to
// JSON by the caller's multi-format loader) into a TaskConfig, binding any
// interactive input placeholders it contains.
func DecodeTaskConfig(data []byte) (TaskConfig, error) {
	var w wireTaskConfig
	if err := json.Unmarshal(data, &w); err != nil {
		return TaskConfig{}, apperr.Wrap(apperr.KindConfig, err, "decoding task config")
	}

	var tc TaskConfig
	if w.ClientType != nil {
		ct := clienttype.Parse(*w.ClientType)
		tc.ClientType = &ct
	}
	tc.Startup = w.Startup
	tc.Closedown = w.Closedown

	for _, wt := range w.Tasks {
		spec, err := specFromWire(wt)
		if err != nil {
			return TaskConfig{}, err
		}
		tc.Tasks = append(tc.Tasks, spec)
	}
	return tc, nil
}

func specFromWire(wt wireTaskSpec) (TaskSpec, error) {
	params, err := decodeValue(wt.Params)
	if err != nil {
		return TaskSpec{}, apperr.Wrap(apperr.KindConfig, err, "decoding params for task %q", wt.Name)
	}

	strategy := First
	if wt.Strategy == "Merge" {
		strategy = Merge
	}

	variants := make([]TaskVariant, 0, len(wt.Variants))
	for _, wv := range wt.Variants {
		vp, err := decodeValue(wv.Params)
		if err != nil {
			return TaskSpec{}, apperr.Wrap(apperr.KindConfig, err, "decoding variant params for task %q", wt.Name)
		}
		variants = append(variants, TaskVariant{Condition: wv.Condition, Params: vp})
	}

	return TaskSpec{
		Name:     wt.Name,
		TaskType: wt.Type,
		Params:   params,
		Strategy: strategy,
		Variants: variants,
	}, nil
}

func decodeValue(raw json.RawMessage) (value.Value, error) {
	if len(raw) == 0 {
		return value.Obj(map[string]value.Value{}), nil
	}
	var v value.Value
	if err := json.Unmarshal(raw, &v); err != nil {
		return value.Value{}, err
	}
	bound, err := input.Bind(v)
	if err != nil {
		return value.Value{}, err
	}
	return bound, nil
}
