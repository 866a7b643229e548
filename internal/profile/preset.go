package profile

import (
	"bufio"
	"bytes"
	"os/exec"
	"strings"

	"github.com/maa-cli/maa-go/internal/logger"
)

// ConnectionPreset is one of the finite connection presets a profile's
// connection.preset field can name. Modeled as a struct-of-closures table
// mapping a short name onto a bundle of per-variant behavior.
type ConnectionPreset struct {
	Name                string
	DefaultAdbPath      string
	DefaultCoreConfig   string
	ResolveAddress      func() string
	ForcesTouchMode     string // "" unless the preset pins a touch mode
	ForcedPlatformDiff  string // "" unless the preset auto-adds a platform-diff resource
}

func adbDetectedAddress(adbPath string) string {
	cmd := exec.Command(adbPath, "devices")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return "emulator-5554"
	}
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "\tdevice") {
			fields := strings.Fields(line)
			if len(fields) > 0 {
				return fields[0]
			}
		}
	}
	return "emulator-5554"
}

var presets = map[string]ConnectionPreset{
	"Adb": {
		Name:              "Adb",
		DefaultAdbPath:    "adb",
		DefaultCoreConfig: "General",
		ResolveAddress:    func() string { return adbDetectedAddress("adb") },
	},
	"MuMuPro": {
		Name:              "MuMuPro",
		DefaultAdbPath:    "adb",
		DefaultCoreConfig: "MuMuEmulator12",
		ResolveAddress:    func() string { return "127.0.0.1:16384" },
	},
	"PlayCover": {
		Name:               "PlayCover",
		DefaultAdbPath:     "",
		DefaultCoreConfig:  "PlayCover",
		ResolveAddress:     func() string { return "127.0.0.1:1717" },
		ForcesTouchMode:    "MacPlayTools",
		ForcedPlatformDiff: "iOS",
	},
	"Waydroid": {
		Name:              "Waydroid",
		DefaultAdbPath:    "adb",
		DefaultCoreConfig: "General",
		ResolveAddress:    func() string { return adbDetectedAddress("adb") },
	},
}

// ParsePreset resolves a preset name, downgrading unknown strings to Adb
// with a warning rather than rejecting them.
func ParsePreset(name string) ConnectionPreset {
	if p, ok := presets[name]; ok {
		return p
	}
	logger.Default().Warn("unknown connection preset, downgrading to Adb", "preset", name)
	return presets["Adb"]
}
