package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"iv-tracker/app"
	"iv-tracker/config"
)

var (
	verbose   bool
	logger    *zap.Logger
	dotenvErr error // reported once the logger exists
)

func main() {
	// Load config from .env file
	dotenvErr = config.LoadDotEnv()
	cfg := config.LoadFromEnv()

	if err := newRootCmd(cfg).Execute(); err != nil {
		if logger != nil {
			logger.Error("Run failed", zap.Error(err))
			_ = logger.Sync()
		}
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ivtracker",
		Short: "Generate the IV tracker dashboard from the iv-scanner database",
		Long: `Reads the latest ATM implied volatility, historical volatility and option chain
snapshots collected by iv-scanner, scores every symbol and writes a static HTML
dashboard with the data embedded as JSON.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(cfg.LogLevel, verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			if dotenvErr != nil {
				logger.Warn("Ignoring .env file", zap.Error(dotenvErr))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: generateRunE(cfg),
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver (sqlite, postgres)")
	flags.StringVar(&cfg.DatabasePath, "db", cfg.DatabasePath, "path to the iv-scanner SQLite database")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	bindGenerateFlags(rootCmd, cfg)

	rootCmd.AddCommand(newGenerateCmd(cfg), newStatsCmd(cfg))
	return rootCmd
}

// newGenerateCmd is the explicit form of the default root run
func newGenerateCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the dashboard HTML (default when no command is given)",
		Args:  cobra.NoArgs,
		RunE:  generateRunE(cfg),
	}
	bindGenerateFlags(cmd, cfg)
	return cmd
}

func generateRunE(cfg *config.Config) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return app.New(cfg, logger, cmd.OutOrStdout()).Generate(cmd.Context())
	}
}

func bindGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	flags.StringVar(&cfg.TemplatePath, "template", cfg.TemplatePath, "dashboard template file")
	flags.StringVarP(&cfg.OutputPath, "out", "o", cfg.OutputPath, "output HTML file")
	flags.IntVar(&cfg.Analysis.NearTermMaxDTE, "near-dte", cfg.Analysis.NearTermMaxDTE, "max days to expiry for the wheel view")
}

// newStatsCmd prints source table row counts
func newStatsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print row counts of the source tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.New(cfg, logger, cmd.OutOrStdout()).Stats(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "daily_iv               %d\n", stats.DailyIV)
			fmt.Fprintf(out, "option_chain_snapshot  %d\n", stats.OptionChainSnapshot)
			fmt.Fprintf(out, "historical_volatility  %d\n", stats.HistoricalVolatility)
			return nil
		},
	}
}

// newLogger builds a production zap logger writing to stderr
func newLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	return config.Build()
}
