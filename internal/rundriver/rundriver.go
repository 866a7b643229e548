// Package rundriver is the glue that loads the Core library, registers
// tasks, pumps the callback stream, handles termination signals, and
// returns a structured exit status for one run.
package rundriver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/tidwall/gjson"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/appconfig"
	"github.com/maa-cli/maa-go/internal/callback"
	"github.com/maa-cli/maa-go/internal/corehandle"
	"github.com/maa-cli/maa-go/internal/logger"
	"github.com/maa-cli/maa-go/internal/maadirs"
	"github.com/maa-cli/maa-go/internal/profile"
	"github.com/maa-cli/maa-go/internal/signals"
	"github.com/maa-cli/maa-go/internal/taskconfig"
)

// CommonArgs is the CLI-level knobs every task verb shares.
type CommonArgs struct {
	Address         string
	Profile         string
	DryRun          bool
	NoSummary       bool
	UseUserResource bool
}

// ProfileLoader resolves the named profile into an AsstConfig.
type ProfileLoader func(dirs *maadirs.Dirs, name string) (profile.AsstConfig, error)

// TaskConfigFunc is the task-config producer `f: AsstConfig -> Result<TaskConfig>`
// built by each CLI verb from its own arguments (fight stage, copilot uri,
// ad-hoc task file, ...).
type TaskConfigFunc func(profile.AsstConfig) (taskconfig.TaskConfig, error)

// HotUpdateChecker triggers a best-effort resource hot-update check before
// a run starts; failures are logged, never fatal, since they're
// network-only.
type HotUpdateChecker func(ctx context.Context) error

// AppHelper launches/closes the external emulator helper app for presets
// that need it (PlayCover/Waydroid).
type AppHelper interface {
	// Launch starts the external app if the preset demands it. addressChanged
	// is true when first boot assigned a new emulator address that must be
	// re-queried via ConnectArgs.
	Launch(ctx context.Context, preset string) (addressChanged bool, err error)
	Close(ctx context.Context, preset string) error
}

// noopAppHelper never launches anything, used by presets/tests that don't
// need an external app.
type noopAppHelper struct{}

func (noopAppHelper) Launch(context.Context, string) (bool, error) { return false, nil }
func (noopAppHelper) Close(context.Context, string) error          { return nil }

// Driver owns the collaborators the run loop needs beyond what's passed
// per-invocation: the resolved directory set, the Core library path, and
// optional hot-update/app-helper collaborators, both defaulted to no-ops
// when unset.
type Driver struct {
	Dirs      *maadirs.Dirs
	CorePath  string
	HotUpdate HotUpdateChecker
	AppHelper AppHelper
	Out       io.Writer

	// PollInterval overrides the 500ms poll tick; tests set this low.
	PollInterval time.Duration
}

// Run executes the full driver algorithm for one task config.
func (d *Driver) Run(ctx context.Context, args CommonArgs, loadProfile ProfileLoader, f TaskConfigFunc) error {
	runID := uuid.NewString()
	log := logger.Default().With("run_id", runID)

	if d.HotUpdate != nil {
		if err := d.HotUpdate(ctx); err != nil {
			log.Warn("hot-update check failed, continuing with existing resources", "error", err)
		}
	}

	lock, err := d.acquireRunLock()
	if err != nil {
		return err
	}
	defer d.releaseRunLock(lock)

	cfg, err := loadProfile(d.Dirs, args.Profile)
	if err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "loading profile %q", args.Profile)
	}
	if args.Address != "" {
		cfg.Connection.Address = args.Address
	}
	if args.UseUserResource {
		cfg.Resource.UserResource = true
	}

	taskCfg, err := f(cfg)
	if err != nil {
		return apperr.Wrap(apperr.KindConfig, err, "building task config")
	}
	initialized, err := taskCfg.Init(d.Dirs.Config)
	if err != nil {
		return err
	}
	if res := initialized.ClientType.Resource(); res != "" {
		cfg.Resource.GlobalResource = res
	}

	if err := corehandle.Load(d.CorePath); err != nil {
		return err
	}
	if err := corehandle.SetUserDir(d.Dirs.State); err != nil {
		return err
	}
	for name, value := range cfg.Static.Apply() {
		if err := corehandle.SetStaticOption(staticOptionKey(name), value); err != nil {
			log.Warn("failed applying static option", "key", name, "error", err)
		}
	}
	for _, dir := range cfg.Resource.ResourceDirs() {
		if err := corehandle.LoadResource(dir); err != nil {
			return err
		}
	}
	if cfg.Resource.UserResource {
		userDir := filepath.Join(d.Dirs.Config, "resource")
		if info, err := os.Stat(userDir); err == nil && info.IsDir() {
			if err := corehandle.LoadResource(userDir); err != nil {
				return err
			}
		}
	}

	watcher := signals.NewWatcher()
	defer watcher.Close()

	sub := callback.Init(256)
	instance, err := corehandle.New(func(msgCode int32, payload []byte) {
		callback.Send(callback.Message{
			Code:    callback.MsgCode(msgCode),
			TaskID:  extraTaskID(payload),
			Payload: payload,
		})
	})
	if err != nil {
		return err
	}
	defer instance.Close()

	for name, value := range cfg.Instance.Apply() {
		if err := instance.SetInstanceOption(instanceOptionKey(name), value); err != nil {
			log.Warn("failed applying instance option", "key", name, "error", err)
		}
	}

	for _, task := range initialized.Tasks {
		paramsJSON, err := json.Marshal(task.Params)
		if err != nil {
			return apperr.Wrap(apperr.KindConfig, err, "serializing params for task %q", task.Name)
		}
		id, err := instance.AppendTask(task.TaskType, paramsJSON)
		if err != nil {
			return apperr.Wrap(apperr.KindRuntime, err, "appending task %q", task.TaskType)
		}
		sub.Insert(id, task.Name, task.TaskType)
	}

	var runErr error
	if !args.DryRun {
		runErr = d.runConnected(ctx, cfg, &initialized, instance, sub, watcher, log)
	}

	if !args.NoSummary {
		fmt.Fprintln(d.Out, sub.Snapshot())
	}

	if runErr != nil {
		return runErr
	}
	if callback.ErrorObserved() {
		return apperr.ErrObservedFailure
	}
	return nil
}

func (d *Driver) runConnected(ctx context.Context, cfg profile.AsstConfig, initialized *taskconfig.InitializedTaskConfig, instance *corehandle.Instance, sub *callback.Subscriber, watcher *signals.Watcher, log hclog.Logger) error {
	appHelper := d.AppHelper
	if appHelper == nil {
		appHelper = noopAppHelper{}
	}

	adb, addr, coreConfig := cfg.Connection.ConnectArgs()
	if initialized.StartApp {
		changed, err := appHelper.Launch(ctx, cfg.Connection.Preset)
		if err != nil {
			return apperr.Wrap(apperr.KindRuntime, err, "launching external app")
		}
		if changed {
			adb, addr, coreConfig = cfg.Connection.ConnectArgs()
		}
	}

	if _, err := instance.AsyncConnect(adb, addr, coreConfig, true); err != nil {
		return err
	}
	if err := instance.Start(); err != nil {
		return err
	}

	interval := d.PollInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var loopErr error
loop:
	for {
		select {
		case <-ticker.C:
			if watcher.Stopped() {
				loopErr = apperr.ErrInterrupted
				break loop
			}
			if delta, err := sub.TryUpdate(); err == nil && delta != "" {
				fmt.Fprintln(d.Out, delta)
			}
			if !instance.Running() {
				break loop
			}
		case <-ctx.Done():
			loopErr = apperr.Wrap(apperr.KindRuntime, ctx.Err(), "run cancelled")
			break loop
		}
	}
	if err := instance.Stop(); err != nil {
		log.Warn("AsstStop failed", "error", err)
	}

	if initialized.CloseApp {
		if err := appHelper.Close(ctx, cfg.Connection.Preset); err != nil {
			log.Warn("failed closing external app", "error", err)
		}
	}

	return loopErr
}

// DefaultProfileLoader resolves a profile name in order: try
// profiles/<name>, then profiles/default, then the legacy "asst" stem,
// else an all-defaults AsstConfig.
func DefaultProfileLoader(dirs *maadirs.Dirs, name string) (profile.AsstConfig, error) {
	stems := []string{dirs.ConfigFile("profile", name)}
	if name != "default" {
		stems = append(stems, dirs.ConfigFile("profile", "default"))
	}
	stems = append(stems, dirs.ConfigFile("cli", "asst"))

	for _, stem := range stems {
		path, _, err := appconfig.Resolve(stem)
		if err != nil {
			continue
		}
		generic, err := appconfig.LoadGeneric(path)
		if err != nil {
			return profile.AsstConfig{}, err
		}
		data, err := appconfig.ReencodeJSON(generic)
		if err != nil {
			return profile.AsstConfig{}, err
		}
		return profile.DecodeAsstConfig(data)
	}
	return profile.NewAsstConfig(profile.ConnectionConfig{}, profile.ResourceConfig{}, profile.StaticOptions{}, profile.InstanceOptions{}), nil
}

// extraTaskID defensively pulls the task id out of a raw callback payload;
// absent/malformed fields yield 0 rather than an error.
func extraTaskID(payload []byte) int32 {
	return int32(gjson.GetBytes(payload, "task_id").Int())
}

func staticOptionKey(name string) int32 {
	switch name {
	case "cpu_ocr":
		return corehandle.StaticOptionCPUOCR
	case "gpu_ocr":
		return corehandle.StaticOptionGPUOCR
	default:
		return 0
	}
}

func instanceOptionKey(name string) int32 {
	switch name {
	case "touch_mode":
		return corehandle.InstanceOptionTouchMode
	case "deployment_with_pause":
		return corehandle.InstanceOptionDeploymentWithPause
	case "adb_lite_enabled":
		return corehandle.InstanceOptionAdbLiteEnabled
	case "kill_adb_on_exit":
		return corehandle.InstanceOptionKillAdbOnExit
	default:
		return 0
	}
}
