// Package maadirs resolves the directories the orchestrator persists state
// into: data, state, cache, and config, each overridable by an environment
// variable and otherwise falling back to XDG base directories.
package maadirs

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/kelseyhightower/envconfig"
)

const appName = "maa"

// Dirs is the resolved set of paths the orchestrator reads and writes.
type Dirs struct {
	Data       string
	State      string
	Cache      string
	Config     string
	Log        string
	HotUpdate  string
	Resource   string
	ConfigDirs []string
}

// envOverrides is an envconfig-tagged struct for MAA_DATA_DIR/MAA_STATE_DIR/
// MAA_CACHE_DIR/MAA_CONFIG_DIR; envconfig.Process("MAA", ...) reads
// "MAA_"+tag for each field, leaving a field "" when its env var is unset
// so Resolve's XDG fallbacks apply.
type envOverrides struct {
	DataDir   string `envconfig:"DATA_DIR"`
	StateDir  string `envconfig:"STATE_DIR"`
	CacheDir  string `envconfig:"CACHE_DIR"`
	ConfigDir string `envconfig:"CONFIG_DIR"`
}

// Resolve computes Dirs honoring, in priority order: MAA_DATA_DIR /
// MAA_STATE_DIR / MAA_CACHE_DIR / MAA_CONFIG_DIR, then XDG base directories,
// then platform project-dir defaults.
func Resolve() (*Dirs, error) {
	var overrides envOverrides
	// envconfig.Process only fails on malformed values (e.g. a non-string
	// field that can't be parsed); every field here is a plain string, so
	// the only possible error is a programmer error in the struct tags.
	if err := envconfig.Process(appName, &overrides); err != nil {
		return nil, err
	}

	data := overrides.DataDir
	if data == "" {
		data = filepath.Join(xdg.DataHome, appName)
	}

	state := overrides.StateDir
	if state == "" {
		state = firstNonEmpty(xdgStateHome(), filepath.Join(xdg.DataHome, appName, "state"))
		state = filepath.Join(state, appName)
	}

	cache := overrides.CacheDir
	if cache == "" {
		cache = filepath.Join(xdg.CacheHome, appName)
	}

	config := overrides.ConfigDir
	if config == "" {
		config = filepath.Join(xdg.ConfigHome, appName)
	}

	d := &Dirs{
		Data:      data,
		State:     state,
		Cache:     cache,
		Config:    config,
		Log:       filepath.Join(state, "debug"),
		HotUpdate: filepath.Join(data, "MaaResource"),
		Resource:  filepath.Join(data, "resource"),
	}
	d.ConfigDirs = []string{
		filepath.Join(config, "profiles"),
		filepath.Join(config, "tasks"),
		filepath.Join(config, "infrast"),
	}
	return d, nil
}

// xdgStateHome returns XDG_STATE_HOME or the conventional fallback, since
// adrg/xdg's older releases didn't always expose StateHome on every OS.
func xdgStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(xdg.Home, ".local", "state")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// EnsureAll creates every directory in Dirs with 0o755 permissions.
func (d *Dirs) EnsureAll() error {
	for _, p := range []string{d.Data, d.State, d.Cache, d.Config, d.Log, d.Resource} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ConfigFile resolves the path of a config file of the given kind: "cli"
// files sit directly under Config, "profile"/"task"/"infrast" under
// Config/profiles, Config/tasks and Config/infrast, and any other kind
// under Config/<kind>.
func (d *Dirs) ConfigFile(kind, name string) string {
	switch kind {
	case "cli":
		return filepath.Join(d.Config, name)
	case "profile":
		return filepath.Join(d.Config, "profiles", name)
	case "task":
		return filepath.Join(d.Config, "tasks", name)
	case "infrast":
		return filepath.Join(d.Config, "infrast", name)
	default:
		return filepath.Join(d.Config, kind, name)
	}
}

// CopilotCacheFile returns the content-addressed cache path for a copilot
// code: $CACHE_DIR/copilot/<code>.json.
func (d *Dirs) CopilotCacheFile(code string) string {
	return filepath.Join(d.Cache, "copilot", code+".json")
}
