// Package main provides the genaidss CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/genaidss/genaidss/pkg/config"
)

var version = "dev"

// rootFlags are shared by every subcommand.
var rootFlags struct {
	configPath string
	verbose    bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "genaidss",
		Short: "Decision support for choosing a generative AI assistant",
		Long: `genaidss ranks generative AI assistants with Simple Additive Weighting
over seven quality indicators, using department weight presets or your own
weights and ratings.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "Path to config file (default: search for .genaidss/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "Log wizard activity to stderr")

	rootCmd.AddCommand(
		newScoreCmd(),
		newValidateCmd(),
		newCatalogCmd(),
		newDeriveCmd(),
		newUICmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads .env, the config file and GENAIDSS_* overrides.
// A broken config file is reported and replaced by defaults.
func loadConfig() *config.Config {
	_ = godotenv.Load()

	path := rootFlags.configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		} else {
			cfg = loaded
		}
	}
	config.ApplyEnv(cfg)
	return cfg
}

// newLogger returns a debug console logger with --verbose, otherwise a no-op.
func newLogger(cfg *config.Config) *zap.Logger {
	if !rootFlags.verbose {
		return zap.NewNop()
	}
	lc := cfg.Logging
	lc.Level = "debug"
	logger, err := config.NewLogger(lc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
