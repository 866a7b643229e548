package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayCoverForcesTouchModeAndPlatformDiff(t *testing.T) {
	cfg := NewAsstConfig(
		ConnectionConfig{Preset: "PlayCover"},
		ResourceConfig{},
		StaticOptions{},
		InstanceOptions{TouchMode: "ADB"},
	)
	assert.Equal(t, "MacPlayTools", cfg.Instance.TouchMode)
	assert.Equal(t, "iOS", cfg.Resource.PlatformDiffResource)
}

func TestUnknownPresetDowngradesToAdb(t *testing.T) {
	p := ParsePreset("SomeFutureEmulator")
	assert.Equal(t, "Adb", p.Name)
}

func TestConnectArgsPlayCoverDefaultAddress(t *testing.T) {
	conn := ConnectionConfig{Preset: "PlayCover"}
	_, addr, core := conn.ConnectArgs()
	assert.Equal(t, "127.0.0.1:1717", addr)
	assert.Equal(t, "PlayCover", core)
}

func TestResourceDirsIncludesExistingGlobalResource(t *testing.T) {
	base := t.TempDir()
	assert.NoError(t, os.MkdirAll(filepath.Join(base, "global", "YoStarEN", "resource"), 0o755))

	rc := ResourceConfig{
		BaseDirs:       []string{base},
		GlobalResource: "YoStarEN",
	}
	dirs := rc.ResourceDirs()
	assert.Contains(t, dirs, base)
	assert.Contains(t, dirs, filepath.Join(base, "global", "YoStarEN", "resource"))
}

func TestStaticOptionsGPUWinsOverCPU(t *testing.T) {
	s := StaticOptions{CPUOCR: true, GPUOCR: true}
	applied := s.Apply()
	_, hasGPU := applied["gpu_ocr"]
	_, hasCPU := applied["cpu_ocr"]
	assert.True(t, hasGPU)
	assert.False(t, hasCPU)
}
