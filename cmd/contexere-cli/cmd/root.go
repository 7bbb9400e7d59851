package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"contexere/internal/adapters/filesystem"
	"contexere/internal/adapters/sqlite"
	"contexere/internal/config"
	"contexere/internal/ports"
)

var (
	configPath string
	dirFlag    string
	tzFlag     string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
	repo   *filesystem.Repository
	ledger *sqlite.Ledger
)

var rootCmd = &cobra.Command{
	Use:   "contexere-cli",
	Short: "Compact date tokens and sequential identifiers for files",
	Long: `contexere-cli encodes dates as 4-character tokens (YYMD) and times as
3-character tokens (HMM), and suggests the next identifier for a directory.

An identifier is a project name, a date token and a step letter, e.g.
proj22p3a. The next identifier bumps the step when the latest one is from
today, otherwise it starts today's token at step "a".`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		if cmd.Flags().Changed("dir") {
			cfg.Directory = dirFlag
		}
		if cmd.Flags().Changed("tz") {
			cfg.Timezone = tzFlag
		}
		if verbose {
			cfg.LogLevel = "debug"
		}

		logger = cfg.NewLogger(os.Stderr)
		slog.SetDefault(logger)
		repo = filesystem.NewRepository(cfg.Directory)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run executes the root command and closes the ledger whether or not the
// command succeeded. Cobra skips post-run hooks after a RunE error.
func run() (err error) {
	defer func() {
		if cerr := closeLedger(); err == nil {
			err = cerr
		}
	}()
	return rootCmd.Execute()
}

func closeLedger() error {
	if ledger == nil {
		return nil
	}
	err := ledger.Close()
	ledger = nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/contexere/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dirFlag, "dir", "d", config.DefaultDirectory, "directory whose history is used")
	rootCmd.PersistentFlags().StringVar(&tzFlag, "tz", "", "IANA time zone (default from config, else UTC)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "log debug output to stderr")
}

// GetLedger opens the ledger on first use
func GetLedger() (*sqlite.Ledger, error) {
	if ledger != nil {
		return ledger, nil
	}
	l := sqlite.NewLedger(logger)
	if err := l.Open(sqlite.DatabasePath(cfg.DataDir)); err != nil {
		return nil, err
	}
	ledger = l
	return ledger, nil
}

// historyProvider returns the ledger when useLedger is set, else the directory
func historyProvider(useLedger bool) (ports.HistoryProvider, error) {
	if !useLedger {
		return repo, nil
	}
	l, err := GetLedger()
	if err != nil {
		return nil, err
	}
	return l, nil
}

// resolveLocation picks the location from args[i] or the configured directory
func resolveLocation(args []string, i int) (string, error) {
	location := cfg.Directory
	if len(args) > i {
		location = args[i]
	}
	return filesystem.ResolveLocation(location)
}
