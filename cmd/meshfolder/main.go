// meshfolder - index and inspect a directory of mesh files.
//
// Usage:
//
//	meshfolder list     [--json]
//	meshfolder info     <index> [--json]
//	meshfolder verify   [--jobs N]
//	meshfolder snapshot <index> <out.png|out.webp> [--size N] [--frames N]
//	meshfolder view     <index>
//	meshfolder config   init [path] | show
//
// The dataset root and allowed extensions come from meshfolder.yaml and can
// be overridden with --root and --ext.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taigrr/meshfolder/internal/config"
	"github.com/taigrr/meshfolder/internal/logger"
	"github.com/taigrr/meshfolder/pkg/meshfolder"
)

// app carries state shared by subcommands once the root command has run its
// pre-run hook.
type app struct {
	configPath string
	overrides  config.Overrides

	cfg *config.Config
	log *zap.Logger
}

func main() {
	a := &app{}
	root := a.rootCommand()
	err := root.Execute()
	logger.Sync(a.log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "meshfolder",
		Short:         "Index and inspect a directory of mesh files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to config file")
	flags.StringVar(&a.overrides.Root, "root", "", "Dataset root directory ($VAR expanded)")
	flags.StringSliceVar(&a.overrides.Extensions, "ext", nil, "Allowed extensions, e.g. --ext .obj,.ply")
	flags.StringVar(&a.overrides.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&a.overrides.Debug, "debug", false, "Enable debug logging (same as --log-level debug)")
	flags.StringVar(&a.overrides.LogFile, "log-file", "", "Also write logs to this file")

	root.AddCommand(
		a.listCommand(),
		a.infoCommand(),
		a.verifyCommand(),
		a.snapshotCommand(),
		a.viewCommand(),
		a.configCommand(),
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath, a.overrides)
	if err != nil {
		return err
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log
	return nil
}

// openIndex builds the index described by the loaded config.
func (a *app) openIndex() (*meshfolder.Index, error) {
	return meshfolder.New(a.cfg.Dataset.Root,
		meshfolder.WithExtensions(a.cfg.Dataset.Extensions...),
		meshfolder.WithLogger(a.log),
	)
}

// parseIndex converts a positional argument to an ordinal.
func parseIndex(arg string) (int, error) {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", arg)
	}
	return i, nil
}
