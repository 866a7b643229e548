package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/maa-cli/maa-go/internal/activity"
	"github.com/maa-cli/maa-go/internal/appconfig"
	"github.com/maa-cli/maa-go/internal/apperr"
	"github.com/maa-cli/maa-go/internal/clienttype"
	"github.com/maa-cli/maa-go/internal/condition"
	"github.com/maa-cli/maa-go/internal/copilotcache"
	"github.com/maa-cli/maa-go/internal/ui"
)

// importCmd copies a file into its config kind's directory, rejecting
// unknown extensions for cli/profile/task and failing on a pre-existing
// destination unless --force.
func importCmd() *cobra.Command {
	var kind string
	var force bool
	c := &cobra.Command{
		Use:   "import <path>",
		Short: "import a config file into its kind's directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			ext := filepath.Ext(src)
			switch kind {
			case "cli", "profile", "task":
				if ext != ".json" && ext != ".toml" && ext != ".yaml" && ext != ".yml" {
					return apperr.New(apperr.KindConfig, "unsupported extension %q for kind %q", ext, kind)
				}
			}
			name := filepath.Base(src)
			if kind == "cli" && name != "cli"+ext {
				return apperr.New(apperr.KindConfig, "cli config must be named \"cli\", got %q", name)
			}
			dest := g.dirs.ConfigFile(kind, name)
			if _, err := os.Stat(dest); err == nil && !force {
				return apperr.New(apperr.KindConfig, "%s already exists; pass --force to overwrite", dest)
			}
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return apperr.Wrap(apperr.KindConfig, err, "creating destination directory")
			}
			if err := copyFile(src, dest); err != nil {
				return apperr.Wrap(apperr.KindConfig, err, "importing %s", src)
			}
			fmt.Fprintln(os.Stdout, ui.OK(fmt.Sprintf("imported %s -> %s", src, dest)))
			return nil
		},
	}
	c.Flags().StringVarP(&kind, "type", "t", "profile", "config kind: cli, profile, task, infrast, resource, copilot, ssscopilot")
	c.Flags().BoolVar(&force, "force", false, "overwrite an existing destination")
	return c
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}

// initCmd scaffolds a new, all-defaults profile file in the requested
// format (json, toml, or yaml).
func initCmd() *cobra.Command {
	var name, format string
	c := &cobra.Command{
		Use:   "init",
		Short: "scaffold a new profile with default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			ext := "." + format
			if _, ok := map[string]bool{".json": true, ".toml": true, ".yaml": true, ".yml": true}[ext]; !ok {
				return apperr.New(apperr.KindConfig, "unsupported format %q", format)
			}
			dest := g.dirs.ConfigFile("profile", name+ext)
			if _, err := os.Stat(dest); err == nil {
				return apperr.New(apperr.KindConfig, "%s already exists", dest)
			}
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return apperr.Wrap(apperr.KindConfig, err, "creating profile directory")
			}
			defaults := map[string]interface{}{
				"connection": map[string]interface{}{"preset": "Adb"},
				"resource":   map[string]interface{}{},
				"static":     map[string]interface{}{},
				"instance":   map[string]interface{}{},
			}
			body, err := appconfig.ReencodeJSON(defaults)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, body, 0o644); err != nil {
				return apperr.Wrap(apperr.KindConfig, err, "writing %s", dest)
			}
			fmt.Fprintln(os.Stdout, ui.OK("created "+dest))
			return nil
		},
	}
	c.Flags().StringVarP(&name, "name", "n", "default", "profile name")
	c.Flags().StringVarP(&format, "format", "f", "json", "encoding: json, toml, yaml")
	return c
}

// listCmd enumerates the profiles and task configs currently on disk.
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list known profiles and task configs",
		RunE: func(cmd *cobra.Command, args []string) error {
			printDirListing(os.Stdout, "profiles", filepath.Join(g.dirs.Config, "profiles"))
			printDirListing(os.Stdout, "tasks", filepath.Join(g.dirs.Config, "tasks"))
			return nil
		},
	}
}

func printDirListing(w io.Writer, label, dir string) {
	fmt.Fprintln(w, ui.Bold(label+":"))
	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Fprintln(w, "  "+ui.Dim("(none)"))
		return
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		fmt.Fprintln(w, "  "+ui.Dim("(none)"))
	}
	for _, n := range names {
		fmt.Fprintln(w, "  "+n)
	}
}

// versionCmd reports the orchestrator's own version; the Core's FFI contract
// has no version query, so `core`/`all` report that the Core's own version
// isn't observable over the documented ABI.
func versionCmd(cliVersion string) *cobra.Command {
	return &cobra.Command{
		Use:   "version [cli|core|all]",
		Short: "print version information",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "all"
			if len(args) > 0 {
				which = args[0]
			}
			if which == "cli" || which == "all" {
				fmt.Fprintln(os.Stdout, "cli:", cliVersion)
			}
			if which == "core" || which == "all" {
				fmt.Fprintln(os.Stdout, "core:", ui.Dim("unavailable (no version query in the Core ABI)"))
			}
			return nil
		},
	}
}

// dirCmd prints one resolved directory:
// `dir <data|lib|config|cache|resource|hot-update|log>`.
func dirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir <data|lib|config|cache|resource|hot-update|log>",
		Short: "print a resolved directory path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			switch args[0] {
			case "data":
				path = g.dirs.Data
			case "lib":
				path = g.corePath
			case "config":
				path = g.dirs.Config
			case "cache":
				path = g.dirs.Cache
			case "resource":
				path = g.dirs.Resource
			case "hot-update":
				path = g.dirs.HotUpdate
			case "log":
				path = g.dirs.Log
			default:
				return apperr.New(apperr.KindConfig, "unknown directory kind %q", args[0])
			}
			fmt.Fprintln(os.Stdout, path)
			return nil
		},
	}
}

// activityCmd queries the activity oracle directly, reporting the stub's
// conservative answer unless a real oracle has been wired in via
// activity.SetOracle.
func activityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity [client]",
		Short: "report whether a client currently has a side story event open",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ct := clienttype.Official
			if len(args) > 0 {
				ct = clienttype.Parse(args[0])
			}
			open, err := activity.Current().HasSideStoryOpen(cmd.Context(), ct)
			if err != nil {
				return apperr.Wrap(apperr.KindRuntime, err, "querying activity oracle")
			}
			fmt.Fprintln(os.Stdout, ct.String(), "side story open:", open)
			return nil
		},
	}
}

// remainderCmd exposes the DayMod schedule arithmetic directly:
// `day_of_era(now, tz) mod divisor`.
func remainderCmd() *cobra.Command {
	var tz int
	c := &cobra.Command{
		Use:   "remainder <divisor>",
		Short: "print day_of_era(now) mod divisor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			divisor, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil || divisor == 0 {
				return apperr.New(apperr.KindConfig, "divisor must be a positive integer, got %q", args[0])
			}
			loc := time.FixedZone("offset", tz*3600)
			day := condition.DayOfEra(time.Now().In(loc))
			fmt.Fprintln(os.Stdout, uint32(day)%uint32(divisor))
			return nil
		},
	}
	c.Flags().IntVar(&tz, "timezone", 0, "UTC offset in hours to evaluate against")
	return c
}

// convertCmd reads a json/toml/yaml config file and re-encodes it as JSON,
// writing to stdout when no output path is given. JSON is the only output
// format; any other --format value is rejected.
func convertCmd() *cobra.Command {
	var format string
	c := &cobra.Command{
		Use:   "convert <in> [out]",
		Short: "convert a json/toml/yaml config file to json",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			generic, err := appconfig.LoadGeneric(args[0])
			if err != nil {
				return err
			}
			data, err := appconfig.ReencodeJSON(generic)
			if err != nil {
				return err
			}
			if format != "json" {
				return apperr.New(apperr.KindConfig, "re-encoding to %q is not yet supported; only json output is wired", format)
			}
			if len(args) == 2 {
				if err := os.WriteFile(args[1], data, 0o644); err != nil {
					return apperr.Wrap(apperr.KindConfig, err, "writing %s", args[1])
				}
				fmt.Fprintln(os.Stdout, ui.OK("wrote "+args[1]))
				return nil
			}
			fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	c.Flags().StringVarP(&format, "format", "f", "json", "output encoding")
	return c
}

// cleanupCmd removes cached/derived state: with no targets, cleans the
// whole copilot cache.
func cleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup [targets...]",
		Short: "remove cached copilot definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cache := copilotcache.New(g.dirs)
			if len(args) == 0 {
				dir := filepath.Join(g.dirs.Cache, "copilot")
				entries, err := os.ReadDir(dir)
				if err != nil {
					return nil
				}
				for _, e := range entries {
					code := e.Name()
					if ext := filepath.Ext(code); ext == ".json" {
						code = code[:len(code)-len(ext)]
					}
					if err := cache.Clean(code); err != nil {
						return err
					}
				}
				return nil
			}
			for _, code := range args {
				if err := cache.Clean(code); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// mangenCmd is left unimplemented: man-page generation is an external
// collaborator concern, and this stub exists only so the verb is
// enumerable in the command tree.
func mangenCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "mangen --path <p>",
		Short:  "generate man pages (not yet implemented)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// TODO: wire github.com/spf13/cobra/doc's GenManTree once this
			// verb is actually needed.
			return apperr.New(apperr.KindConfig, "mangen is not implemented")
		},
	}
}
