package appconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestResolvePrefersJSONOverTOMLOverYAML(t *testing.T) {
	dir := t.TempDir()
	stem := filepath.Join(dir, "profile")
	writeFile(t, stem+".yaml", "a: 1\n")
	writeFile(t, stem+".toml", "a = 1\n")
	writeFile(t, stem+".json", `{"a":1}`)

	path, format, err := Resolve(stem)
	assert.NoError(t, err)
	assert.Equal(t, stem+".json", path)
	assert.Equal(t, FormatJSON, format)
}

func TestResolveFallsBackToLowerPriorityExtension(t *testing.T) {
	dir := t.TempDir()
	stem := filepath.Join(dir, "profile")
	writeFile(t, stem+".yaml", "a: 1\n")

	path, format, err := Resolve(stem)
	assert.NoError(t, err)
	assert.Equal(t, stem+".yaml", path)
	assert.Equal(t, FormatYAML, format)
}

func TestResolveMissingReturnsError(t *testing.T) {
	_, _, err := Resolve(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestLoadGenericJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.json")
	writeFile(t, path, `{"name":"default","count":3}`)

	v, err := LoadGeneric(path)
	assert.NoError(t, err)
	m := v.(map[string]interface{})
	assert.Equal(t, "default", m["name"])
	assert.Equal(t, 3.0, m["count"])
}

func TestLoadGenericTOMLNormalizesIntsToFloat64(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.toml")
	writeFile(t, path, "name = \"default\"\ncount = 3\n")

	v, err := LoadGeneric(path)
	assert.NoError(t, err)
	m := v.(map[string]interface{})
	assert.Equal(t, "default", m["name"])
	assert.Equal(t, float64(3), m["count"])
}

func TestLoadGenericYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.yaml")
	writeFile(t, path, "name: default\ncount: 3\n")

	v, err := LoadGeneric(path)
	assert.NoError(t, err)
	m := v.(map[string]interface{})
	assert.Equal(t, "default", m["name"])
}

func TestLoadGenericUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.ini")
	writeFile(t, path, "name=default\n")

	_, err := LoadGeneric(path)
	assert.Error(t, err)
}

func TestReencodeJSONRoundTrips(t *testing.T) {
	data, err := ReencodeJSON(map[string]interface{}{"a": 1.0})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(data))
}
