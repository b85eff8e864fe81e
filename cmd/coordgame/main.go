package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/coordgame/config"
	"github.com/katalvlaran/coordgame/experiment"
	"github.com/katalvlaran/coordgame/store"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "coordgame",
		Short: "Two-period network coordination game solver",
		Long: `coordgame computes period-1 action profiles for nodes of a network playing
a two-period coordination game with uncertain period-2 rewards.

It solves the sample-average program on the whole network or on L-hop
ego-networks, and scores the solved profiles on held-out scenarios.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("store", "", "SQLite artifact database (overrides store.path)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides logging.level)")
	rootCmd.PersistentFlags().Int("workers", 0, "Concurrent sub-solves (overrides experiment.workers)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newDiameterCmd(),
		newImportGraphCmd(),
		newExportGraphCmd(),
		newSampleCmd(),
		newSolveCmd(),
		newEvaluateCmd(),
		newExportCmd(),
	)

	return rootCmd
}

// loadConfig reads --config and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store.Path = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Logging.Level = v
	}
	if cmd.Flags().Changed("workers") {
		cfg.Experiment.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openRunner builds a Runner over the configured store. The returned close
// function releases the store.
func openRunner(cmd *cobra.Command) (*experiment.Runner, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}
	logger := cfg.CreateLogger()
	logger.Debug().Str("store", cfg.Store.Path).Msg("store opened")

	return experiment.New(st, cfg, logger), func() { st.Close() }, nil
}
