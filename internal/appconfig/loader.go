// Package appconfig loads config files that may be written in TOML, YAML,
// or JSON, discovered by extension in priority order.
package appconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/maa-cli/maa-go/internal/apperr"
	"gopkg.in/yaml.v3"
)

// Format tags which serialization a config file is written in.
type Format int

const (
	FormatJSON Format = iota
	FormatTOML
	FormatYAML
)

// extensionPriority is the discovery order used when a caller names a file
// kind without an extension (e.g. "profiles/default").
var extensionPriority = []string{".json", ".toml", ".yaml", ".yml"}

func formatOf(ext string) (Format, bool) {
	switch ext {
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return 0, false
	}
}

// Resolve finds the first existing file among stem.json, stem.toml,
// stem.yaml, stem.yml (in that order), returning its path and Format.
func Resolve(stem string) (string, Format, error) {
	for _, ext := range extensionPriority {
		candidate := stem + ext
		if _, err := os.Stat(candidate); err == nil {
			f, _ := formatOf(ext)
			return candidate, f, nil
		}
	}
	return "", 0, apperr.New(apperr.KindConfig, "no config file found for %q (tried %v)", stem, extensionPriority)
}

// LoadGeneric reads path and decodes it into a generic JSON-compatible
// tree (map[string]interface{}, []interface{}, and scalar types), regardless
// of its on-disk format.
func LoadGeneric(path string) (interface{}, error) {
	ext := filepath.Ext(path)
	format, ok := formatOf(ext)
	if !ok {
		return nil, apperr.New(apperr.KindConfig, "unsupported config file extension %q", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindConfig, err, "reading config file %s", path)
	}
	return decode(data, format)
}

func decode(data []byte, format Format) (interface{}, error) {
	switch format {
	case FormatJSON:
		var out interface{}
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, apperr.Wrap(apperr.KindConfig, err, "parsing JSON config")
		}
		return out, nil
	case FormatTOML:
		var out map[string]interface{}
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, apperr.Wrap(apperr.KindConfig, err, "parsing TOML config")
		}
		return normalizeTOML(out), nil
	case FormatYAML:
		var out interface{}
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, apperr.Wrap(apperr.KindConfig, err, "parsing YAML config")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("appconfig: unknown format %d", format)
	}
}

// normalizeTOML converts toml.Unmarshal's output (which may nest
// map[string]interface{} containing time.Time/int64 values) into the same
// JSON-ish shape json.Unmarshal would produce, so downstream decoders
// (value.Value, profile structs) only need to deal with one shape.
func normalizeTOML(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, el := range t {
			out[k] = normalizeTOML(el)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, el := range t {
			out[i] = normalizeTOML(el)
		}
		return out
	case int64:
		return float64(t)
	default:
		return v
	}
}

// ReencodeJSON round-trips a generic tree through JSON so callers with a
// json.Unmarshaler-based decoder (value.Value, the task/profile wire
// structs) can reuse encoding/json regardless of the source format.
func ReencodeJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
