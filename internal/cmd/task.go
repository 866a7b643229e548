package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maa-cli/maa-go/internal/appconfig"
	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/maadirs"
	"github.com/maa-cli/maa-go/internal/profile"
	"github.com/maa-cli/maa-go/internal/rundriver"
	"github.com/maa-cli/maa-go/internal/taskconfig"
	"github.com/maa-cli/maa-go/internal/value"
)

func commonTaskFlags(c *cobra.Command, a *rundriver.CommonArgs) {
	c.Flags().StringVarP(&a.Address, "address", "a", "", "override the profile's connection address")
	c.Flags().StringVarP(&a.Profile, "profile", "p", "default", "profile to use")
	c.Flags().BoolVar(&a.DryRun, "dry-run", false, "resolve and validate without connecting to the Core")
	c.Flags().BoolVar(&a.NoSummary, "no-summary", false, "suppress the post-run summary")
	c.Flags().BoolVar(&a.UseUserResource, "user-resource", false, "layer $CONFIG_DIR/resource over the bundled resource")
}

// loadNamedTaskConfig resolves $CONFIG_DIR/tasks/<name> through the
// multi-format loader, the task-file analogue of rundriver.DefaultProfileLoader.
func loadNamedTaskConfig(dirs *maadirs.Dirs, name string) (taskconfig.TaskConfig, error) {
	stem := dirs.ConfigFile("task", name)
	path, _, err := appconfig.Resolve(stem)
	if err != nil {
		return taskconfig.TaskConfig{}, apperr.Wrap(apperr.KindConfig, err, "resolving task config %q", name)
	}
	generic, err := appconfig.LoadGeneric(path)
	if err != nil {
		return taskconfig.TaskConfig{}, err
	}
	data, err := appconfig.ReencodeJSON(generic)
	if err != nil {
		return taskconfig.TaskConfig{}, err
	}
	return taskconfig.DecodeTaskConfig(data)
}

// singleTaskConfig wraps one ad-hoc TaskSpec (built straight from CLI flags,
// as with fight/copilot/roguelike) as a one-task TaskConfig, bypassing the
// tasks/ directory entirely.
func singleTaskConfig(taskType string, params map[string]value.Value) rundriver.TaskConfigFunc {
	return func(profile.AsstConfig) (taskconfig.TaskConfig, error) {
		return taskconfig.TaskConfig{
			Tasks: []taskconfig.TaskSpec{{
				Name:     taskType,
				TaskType: taskType,
				Params:   value.Obj(params),
			}},
		}, nil
	}
}

func namedTaskConfig(dirs *maadirs.Dirs, name string) rundriver.TaskConfigFunc {
	return func(profile.AsstConfig) (taskconfig.TaskConfig, error) {
		return loadNamedTaskConfig(dirs, name)
	}
}

func runCmd() *cobra.Command {
	var a rundriver.CommonArgs
	c := &cobra.Command{
		Use:   "run <task-name>",
		Short: "run the task config named tasks/<task-name>",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDriver(cmd, a, namedTaskConfig(g.dirs, args[0]))
		},
	}
	commonTaskFlags(c, &a)
	return c
}

func clientParam(args []string) map[string]value.Value {
	params := map[string]value.Value{"enable": value.Bool(true)}
	if len(args) > 0 {
		params["client_type"] = value.Str(args[0])
	}
	return params
}

func startupCmd() *cobra.Command {
	var a rundriver.CommonArgs
	c := &cobra.Command{
		Use:   "startup [client]",
		Short: "run a single StartUp task, optionally overriding the client type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := clientParam(args)
			params["start_game_enabled"] = value.Bool(true)
			return runDriver(cmd, a, singleTaskConfig("StartUp", params))
		},
	}
	commonTaskFlags(c, &a)
	return c
}

func closedownCmd() *cobra.Command {
	var a rundriver.CommonArgs
	c := &cobra.Command{
		Use:   "closedown [client]",
		Short: "run a single CloseDown task, optionally overriding the client type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDriver(cmd, a, singleTaskConfig("CloseDown", clientParam(args)))
		},
	}
	commonTaskFlags(c, &a)
	return c
}

func fightCmd() *cobra.Command {
	var a rundriver.CommonArgs
	var medicine int
	c := &cobra.Command{
		Use:   "fight [stage]",
		Short: "run a single Fight task against the given stage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]value.Value{"enable": value.Bool(true)}
			if len(args) > 0 {
				params["stage"] = value.Str(args[0])
			}
			if medicine > 0 {
				params["medicine"] = value.Int(int32(medicine))
			}
			return runDriver(cmd, a, singleTaskConfig("Fight", params))
		},
	}
	commonTaskFlags(c, &a)
	c.Flags().IntVarP(&medicine, "medicine", "m", 0, "number of sanity potions to use")
	return c
}

func copilotCmd() *cobra.Command {
	var a rundriver.CommonArgs
	var loopTimes int
	c := &cobra.Command{
		Use:   "copilot <uri>",
		Short: "run a single Copilot task against a cached or local copilot file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]value.Value{
				"enable":   value.Bool(true),
				"filename": value.Str(args[0]),
			}
			if loopTimes > 0 {
				params["loop_times"] = value.Int(int32(loopTimes))
			}
			return runDriver(cmd, a, singleTaskConfig("Copilot", params))
		},
	}
	commonTaskFlags(c, &a)
	c.Flags().IntVar(&loopTimes, "loop-times", 0, "number of times to repeat the copilot")
	return c
}

func roguelikeCmd() *cobra.Command {
	var a rundriver.CommonArgs
	c := &cobra.Command{
		Use:   "roguelike <theme>",
		Short: "run a single Roguelike task for the given theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]value.Value{
				"enable": value.Bool(true),
				"theme":  value.Str(args[0]),
			}
			return runDriver(cmd, a, singleTaskConfig("Roguelike", params))
		},
	}
	commonTaskFlags(c, &a)
	return c
}

func depotCmd() *cobra.Command {
	var a rundriver.CommonArgs
	c := &cobra.Command{
		Use:   "depot",
		Short: "run a single Depot (inventory recognition) task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDriver(cmd, a, singleTaskConfig("Depot", map[string]value.Value{"enable": value.Bool(true)}))
		},
	}
	commonTaskFlags(c, &a)
	return c
}

func operboxCmd() *cobra.Command {
	var a rundriver.CommonArgs
	c := &cobra.Command{
		Use:   "operbox",
		Short: "run a single OperBox (operator roster recognition) task",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDriver(cmd, a, singleTaskConfig("OperBox", map[string]value.Value{"enable": value.Bool(true)}))
		},
	}
	commonTaskFlags(c, &a)
	return c
}
