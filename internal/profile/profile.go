// Package profile implements the static Core bundle deserialized from a
// profile config file: connection, resource, static, and instance options.
package profile

import (
	"os"
	"path/filepath"

	"github.com/maa-cli/maa-go/internal/logger"
)

// ConnectionConfig is a profile's connection sub-section.
type ConnectionConfig struct {
	Preset     string
	AdbPath    string
	Address    string
	CoreConfig string
}

// ConnectArgs returns (adbPath, address, coreConfig), filling in preset
// defaults for any field left unset.
func (c ConnectionConfig) ConnectArgs() (adbPath, address, coreConfig string) {
	preset := ParsePreset(c.Preset)

	adbPath = c.AdbPath
	if adbPath == "" {
		adbPath = preset.DefaultAdbPath
	}
	address = c.Address
	if address == "" {
		address = preset.ResolveAddress()
	}
	coreConfig = c.CoreConfig
	if coreConfig == "" {
		coreConfig = preset.DefaultCoreConfig
	}
	return adbPath, address, coreConfig
}

// ResourceConfig is a profile's resource sub-section.
type ResourceConfig struct {
	GlobalResource     string
	PlatformDiffResource string
	UserResource       bool
	BaseDirs           []string
}

// ResourceDirs returns base dirs, then any existing global/<name>/resource
// directory under each base, then any existing platform_diff/<name>/resource
// directory under each base.
func (r ResourceConfig) ResourceDirs() []string {
	dirs := append([]string{}, r.BaseDirs...)
	if r.GlobalResource != "" {
		for _, base := range r.BaseDirs {
			dir := filepath.Join(base, "global", r.GlobalResource, "resource")
			if dirExists(dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	if r.PlatformDiffResource != "" {
		for _, base := range r.BaseDirs {
			dir := filepath.Join(base, "platform_diff", r.PlatformDiffResource, "resource")
			if dirExists(dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	return dirs
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// StaticOptions is a profile's static-option sub-section, applied once
// via CoreHandle.SetStaticOption.
type StaticOptions struct {
	CPUOCR bool
	GPUOCR bool
}

// Apply returns the (key, value) pairs the Core's SetStaticOption expects,
// warning if both CPU and GPU OCR were requested (GPU wins).
func (s StaticOptions) Apply() map[string]string {
	out := map[string]string{}
	if s.CPUOCR && s.GPUOCR {
		logger.Default().Warn("both cpu_ocr and gpu_ocr enabled; gpu_ocr takes precedence")
	}
	switch {
	case s.GPUOCR:
		out["gpu_ocr"] = "1"
	case s.CPUOCR:
		out["cpu_ocr"] = "1"
	}
	return out
}

// InstanceOptions is a profile's instance-option sub-section, applied to
// an Instance after construction.
type InstanceOptions struct {
	TouchMode          string
	DeploymentWithPause *bool
	AdbLiteEnabled     *bool
	KillAdbOnExit      *bool
}

// Apply returns the (key, value) pairs the Core's SetInstanceOption expects.
func (o InstanceOptions) Apply() map[string]string {
	out := map[string]string{}
	if o.TouchMode != "" {
		out["touch_mode"] = o.TouchMode
	}
	if o.DeploymentWithPause != nil {
		out["deployment_with_pause"] = boolStr(*o.DeploymentWithPause)
	}
	if o.AdbLiteEnabled != nil {
		out["adb_lite_enabled"] = boolStr(*o.AdbLiteEnabled)
	}
	if o.KillAdbOnExit != nil {
		out["kill_adb_on_exit"] = boolStr(*o.KillAdbOnExit)
	}
	return out
}

func boolStr(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// AsstConfig is the deserialized static Core bundle for one profile.
type AsstConfig struct {
	Connection ConnectionConfig
	Resource   ResourceConfig
	Static     StaticOptions
	Instance   InstanceOptions
}

// NewAsstConfig applies the PlayCover forcing rule: constructing with
// preset == PlayCover forces touch_mode = MacPlayTools and adds the iOS
// platform-diff resource, warning if the user had chosen a different touch
// mode.
func NewAsstConfig(conn ConnectionConfig, res ResourceConfig, static StaticOptions, inst InstanceOptions) AsstConfig {
	preset := ParsePreset(conn.Preset)
	if preset.ForcesTouchMode != "" {
		if inst.TouchMode != "" && inst.TouchMode != preset.ForcesTouchMode {
			logger.Default().Warn("connection preset forces a touch mode, overriding user choice",
				"preset", preset.Name, "requested", inst.TouchMode, "forced", preset.ForcesTouchMode)
		}
		inst.TouchMode = preset.ForcesTouchMode
	}
	if preset.ForcedPlatformDiff != "" && res.PlatformDiffResource == "" {
		res.PlatformDiffResource = preset.ForcedPlatformDiff
	}
	return AsstConfig{Connection: conn, Resource: res, Static: static, Instance: inst}
}
