package maadirs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveHonorsEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("MAA_DATA_DIR", filepath.Join(dir, "data"))
	t.Setenv("MAA_STATE_DIR", filepath.Join(dir, "state"))
	t.Setenv("MAA_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("MAA_CONFIG_DIR", filepath.Join(dir, "config"))

	d, err := Resolve()
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data"), d.Data)
	assert.Equal(t, filepath.Join(dir, "state"), d.State)
	assert.Equal(t, filepath.Join(dir, "cache"), d.Cache)
	assert.Equal(t, filepath.Join(dir, "config"), d.Config)
	assert.Equal(t, []string{
		filepath.Join(dir, "config", "profiles"),
		filepath.Join(dir, "config", "tasks"),
		filepath.Join(dir, "config", "infrast"),
	}, d.ConfigDirs)
}

func TestEnsureAllCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	d := &Dirs{
		Data:     filepath.Join(dir, "data"),
		State:    filepath.Join(dir, "state"),
		Cache:    filepath.Join(dir, "cache"),
		Config:   filepath.Join(dir, "config"),
		Log:      filepath.Join(dir, "state", "debug"),
		Resource: filepath.Join(dir, "data", "resource"),
	}
	assert.NoError(t, d.EnsureAll())
	for _, p := range []string{d.Data, d.State, d.Cache, d.Config, d.Log, d.Resource} {
		info, err := os.Stat(p)
		assert.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestConfigFileKindRouting(t *testing.T) {
	d := &Dirs{Config: "/cfg"}
	assert.Equal(t, "/cfg/asst", d.ConfigFile("cli", "asst"))
	assert.Equal(t, "/cfg/profiles/default", d.ConfigFile("profile", "default"))
	assert.Equal(t, "/cfg/tasks/nightly", d.ConfigFile("task", "nightly"))
	assert.Equal(t, "/cfg/infrast/301", d.ConfigFile("infrast", "301"))
}

func TestCopilotCacheFilePath(t *testing.T) {
	d := &Dirs{Cache: "/cache"}
	assert.Equal(t, "/cache/copilot/abc123.json", d.CopilotCacheFile("abc123"))
}
