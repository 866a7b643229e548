package profile

import "encoding/json"

type wireConnection struct {
	Preset     string `json:"preset,omitempty"`
	AdbPath    string `json:"adb_path,omitempty"`
	Address    string `json:"address,omitempty"`
	CoreConfig string `json:"core_config,omitempty"`
}

type wireResource struct {
	GlobalResource       string   `json:"global_resource,omitempty"`
	PlatformDiffResource string   `json:"platform_diff_resource,omitempty"`
	UserResource         bool     `json:"user_resource,omitempty"`
	BaseDirs             []string `json:"base_dirs,omitempty"`
}

type wireStatic struct {
	CPUOCR *bool `json:"cpu_ocr,omitempty"`
	GPUOCR *bool `json:"gpu_ocr,omitempty"`
}

type wireInstance struct {
	TouchMode           string `json:"touch_mode,omitempty"`
	DeploymentWithPause *bool  `json:"deployment_with_pause,omitempty"`
	AdbLiteEnabled      *bool  `json:"adb_lite_enabled,omitempty"`
	KillAdbOnExit       *bool  `json:"kill_adb_on_exit,omitempty"`
}

type wireAsstConfig struct {
	Connection wireConnection `json:"connection"`
	Resource   wireResource   `json:"resource"`
	Static     wireStatic     `json:"static_options"`
	Instance   wireInstance   `json:"instance_options"`
}

// DecodeAsstConfig decodes a profile file body (already normalized to JSON
// by the multi-format loader) into an AsstConfig.
func DecodeAsstConfig(data []byte) (AsstConfig, error) {
	var w wireAsstConfig
	if err := json.Unmarshal(data, &w); err != nil {
		return AsstConfig{}, err
	}

	static := StaticOptions{}
	if w.Static.CPUOCR != nil {
		static.CPUOCR = *w.Static.CPUOCR
	}
	if w.Static.GPUOCR != nil {
		static.GPUOCR = *w.Static.GPUOCR
	}

	return NewAsstConfig(
		ConnectionConfig{
			Preset:     w.Connection.Preset,
			AdbPath:    w.Connection.AdbPath,
			Address:    w.Connection.Address,
			CoreConfig: w.Connection.CoreConfig,
		},
		ResourceConfig{
			GlobalResource:       w.Resource.GlobalResource,
			PlatformDiffResource: w.Resource.PlatformDiffResource,
			UserResource:         w.Resource.UserResource,
			BaseDirs:             w.Resource.BaseDirs,
		},
		static,
		InstanceOptions{
			TouchMode:           w.Instance.TouchMode,
			DeploymentWithPause: w.Instance.DeploymentWithPause,
			AdbLiteEnabled:      w.Instance.AdbLiteEnabled,
			KillAdbOnExit:       w.Instance.KillAdbOnExit,
		},
	), nil
}
