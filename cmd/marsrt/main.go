// Command marsrt is the command-line companion of the Drewno Mars runtime.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"drewnomars.net/marsrt/internal/config"
	"drewnomars.net/marsrt/internal/logging"
)

// app holds state shared by the subcommands of one invocation.
type app struct {
	configPath string
	verbose    bool
	seed       int64
	transcript string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "marsrt",
		Short: "Drewno Mars runtime tools",
		Long: `marsrt runs the Drewno Mars runtime primitives from the shell and
inspects the transcripts recorded by compiled programs.

Configuration is read from --config (or $MARSRT_CONFIG) and MARSRT_*
environment variables; flags override both.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", os.Getenv(config.EnvConfigPath), "config file path")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging on stderr")
	flags.Int64Var(&a.seed, "seed", 0, "seed for magic (0 uses the config or the clock)")
	flags.StringVar(&a.transcript, "transcript", "", "SQLite transcript database path")

	root.AddCommand(
		newCallCmd(a),
		newTranscriptCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.seed != 0 {
		cfg.Seed = a.seed
	}
	if a.transcript != "" {
		cfg.Transcript.Driver = config.DriverSQLite
		cfg.Transcript.Path = a.transcript
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
