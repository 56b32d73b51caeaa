// Package cli implements the command-line interface for cubesync.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubesync/internal/config"
	"github.com/SeamusWaldron/cubesync/internal/logger"
)

const version = "0.1.0"

var (
	// Global flags
	dbPath    string
	configDir string
	verbose   bool

	// cfg is loaded before every command runs.
	cfg *config.Config
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubesync",
	Short: "3x3x3 cube simulator",
	Long: `cubesync - A Rubik's Cube simulator that keeps a virtual cube in sync
with a physical one.

Turn faces with standard notation, scan a real cube face by face, ask a
solver for a solution and play it back. The active session is stored in
a local database so every command picks up where the last one left off.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubesync/cubesync.db)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "Directory holding config.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	if err := logger.Init(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return nil
}

// getDBPath returns the database path from flag, config or the state file.
// Empty means the default location.
func getDBPath(stateDBPath string) string {
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil && cfg.Storage.Path != "" {
		return cfg.Storage.Path
	}
	return stateDBPath
}
