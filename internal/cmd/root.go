// Package cmd builds the orchestrator's cobra command tree: a cobra root
// command, persistent flags bound to a shared config, an Execute entry
// point mapping a returned error's apperr.Kind onto a process exit code.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/input"
	"github.com/maa-cli/maa-go/internal/logger"
	"github.com/maa-cli/maa-go/internal/maadirs"
	"github.com/maa-cli/maa-go/internal/rundriver"
	"github.com/maa-cli/maa-go/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "maa <command> [<args>]",
	Short: "maa drives a headless automation Core through declarative task configs",
	Long: `maa is a CLI orchestrator that turns declarative task descriptions into a
running, observed Core task pipeline.`,
}

// globals holds the resolved state every subcommand's RunE closure closes
// over, built once in Execute's PersistentPreRunE.
type globals struct {
	dirs     *maadirs.Dirs
	corePath string
	levels   int
	noColor  bool
	batch    bool
}

var g globals

// Execute runs the command tree and returns a process exit code, mapping a
// returned error's apperr.Kind onto that code.
func Execute(version string) int {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("{{printf \"%s\" .Version}}\n")

	rootCmd.PersistentFlags().CountVarP(&g.levels, "level", "l", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "disable color output")
	rootCmd.PersistentFlags().BoolVar(&g.batch, "batch", false, "never prompt; fail when a default is required but absent")
	rootCmd.PersistentFlags().StringVar(&g.corePath, "core", os.Getenv("MAA_CORE_LIB"), "path to the Core shared library")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		dirs, err := maadirs.Resolve()
		if err != nil {
			return apperr.Wrap(apperr.KindConfig, err, "resolving directories")
		}
		if err := dirs.EnsureAll(); err != nil {
			return apperr.Wrap(apperr.KindConfig, err, "creating directories")
		}
		g.dirs = dirs

		if !g.batch && !isatty.IsTerminal(os.Stdin.Fd()) {
			g.batch = true
		}
		input.SetGlobalSession(input.NewSession(g.batch))

		ui.NoColor(g.noColor)
		log := logger.New()
		log.SetLevelFromCount(g.levels)
		logger.SetDefault(log)
		return nil
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(startupCmd())
	rootCmd.AddCommand(closedownCmd())
	rootCmd.AddCommand(fightCmd())
	rootCmd.AddCommand(copilotCmd())
	rootCmd.AddCommand(roguelikeCmd())
	rootCmd.AddCommand(depotCmd())
	rootCmd.AddCommand(operboxCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(versionCmd(version))
	rootCmd.AddCommand(dirCmd())
	rootCmd.AddCommand(activityCmd())
	rootCmd.AddCommand(remainderCmd())
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(cleanupCmd())
	rootCmd.AddCommand(mangenCmd())

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	fmt.Fprintln(os.Stderr, ui.Err(err.Error()))

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Kind().ExitCode()
	}
	return 1
}

// newDriver builds the rundriver.Driver shared by every task-producing
// verb, from the globals resolved in PersistentPreRunE.
func newDriver() *rundriver.Driver {
	return &rundriver.Driver{
		Dirs:     g.dirs,
		CorePath: g.corePath,
		Out:      os.Stdout,
	}
}

func runDriver(cmd *cobra.Command, args rundriver.CommonArgs, f rundriver.TaskConfigFunc) error {
	d := newDriver()
	return d.Run(cmd.Context(), args, rundriver.DefaultProfileLoader, f)
}
