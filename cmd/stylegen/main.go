package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylegen/config"
	"stylegen/generate"
	"stylegen/misc"
	"stylegen/state"
)

// setup runs after command line is parsed and before the subcommand: it
// loads configuration, opens debug report when requested and builds logger.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.NArg() == 0 {
		return ctx, nil
	}

	env := state.EnvFromContext(ctx)
	cfgFile := cmd.String("config")

	cfg, err := config.LoadConfiguration(cfgFile)
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	env.Cfg = cfg

	if cmd.Bool("debug") {
		if env.Rpt, err = cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		storeConfig(env.Rpt, cfg, cfgFile)
	}

	if env.Log, err = cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started",
		zap.Strings("args", os.Args),
		zap.String("ver", misc.GetVersion()),
		zap.String("runtime", runtime.Version()),
		zap.String("hash", misc.GetGitHash()))
	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if cfgFile == "" {
		env.Log.Info("Using defaults (no configuration file)")
	}
	return ctx, nil
}

// storeConfig puts processed configuration into report, only when it came
// from a file.
func storeConfig(rpt *config.Report, cfg *config.Config, name string) {
	if name == "" {
		return
	}
	if data, err := config.Dump(cfg); err == nil {
		rpt.StoreData("config/"+filepath.Base(name), data)
	}
}

// teardown syncs logs, closes report and cleans up panic log. Errors past
// this point go directly to stderr.
func teardown(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}
	env.RestoreStdLog()

	var err error
	if env.Rpt != nil {
		if e := env.Rpt.Close(); e != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", e))
		}
	}
	if env.Cfg != nil {
		err = multierr.Append(err, removeEmptyPanicLog(env.Cfg.Logging.FileLogger.Destination))
	}
	return err
}

func removeEmptyPanicLog(logFile string) error {
	if logFile == "" {
		return nil
	}
	debug.SetCrashOutput(nil, debug.CrashOptions{})

	name := filepath.Join(filepath.Dir(logFile), misc.GetAppName()+"-panic.log")
	fi, err := os.Stat(name)
	if err != nil || fi.Size() != 0 {
		return nil
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("unable to remove empty panic log file '%s': %w", name, err)
	}
	return nil
}

// Set when error was already logged, so main does not repeat it on stderr.
var errLogged bool

// reportError runs before teardown, while logger is still available.
func reportError(ctx context.Context, _ *cli.Command, err error) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Error("Program ended with error", zap.Error(err))
		errLogged = true
	}
}

// passUsageError returns error as is, it is reported once on exit.
func passUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func unknownCommand(ctx context.Context, _ *cli.Command, name string) {
	if log := state.EnvFromContext(ctx).Log; log != nil {
		log.Warn("Unknown command, nothing to do", zap.String("command", name))
		return
	}
	fmt.Fprintf(os.Stderr, "Unknown command %q, nothing to do\n", name)
}

const definitionsHelp = `
DEFINITIONS:
    one or more YAML files with style definitions, directories holding them
    or zip bundles of them. Directories are processed recursively (symbolic
    links are not followed), every *.yaml and *.yml file found in a directory
    or a bundle is loaded in natural order.

    Same definition found in several files produces single class.
`

const dumpconfigHelp = `
DESTINATION:
    file name to write configuration to, if absent - STDOUT

Writes actual configuration: defaults merged with values from configuration
file. Use --default to see configuration embedded into the program.
`

func commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:         "render",
			Usage:        "Renders stylesheet for style definitions",
			OnUsageError: passUsageError,
			Action:       generate.Run,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write stylesheet to `FILE` instead of STDOUT"},
				&cli.StringFlag{Name: "classes", Usage: "write class names of every definition to `FILE` (YAML)"},
			},
			ArgsUsage:          "DEFINITIONS...",
			CustomHelpTemplate: cli.CommandHelpTemplate + definitionsHelp,
		},
		{
			Name:         "explain",
			Usage:        "Shows how every definition resolves across environment",
			OnUsageError: passUsageError,
			Action:       generate.Explain,
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write explanation to `FILE` instead of STDOUT"},
			},
			ArgsUsage:          "DEFINITIONS...",
			CustomHelpTemplate: cli.CommandHelpTemplate + definitionsHelp,
		},
		{
			Name:         "dumpconfig",
			Usage:        "Writes default or actual configuration (YAML)",
			OnUsageError: passUsageError,
			Action:       dumpConfig,
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "default", Usage: "write configuration embedded into the program"},
			},
			ArgsUsage:          "DESTINATION",
			CustomHelpTemplate: cli.CommandHelpTemplate + dumpconfigHelp,
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "generates atomic CSS for environment dependent styles",
		Version:         fmt.Sprintf("%s (%s) : %s", misc.GetVersion(), runtime.Version(), misc.GetGitHash()),
		HideHelpCommand: true,
		Before:          setup,
		After:           teardown,
		OnUsageError:    passUsageError,
		ExitErrHandler:  reportError,
		CommandNotFound: unknownCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log everything and collect inputs and outputs into report archive"},
		},
		Commands: commands(),
	}

	err := app.Run(ctx, os.Args)
	stop()
	if err != nil {
		if !errLogged {
			fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
		}
		os.Exit(1)
	}
}
