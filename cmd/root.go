// =============================================================================
// smartpick - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the setup shared
// by the subcommands.
//
// COBRA CLI STRUCTURE:
//   rootCmd (smartpick)
//   ├── processCmd  (smartpick process)
//   ├── validateCmd (smartpick validate)
//   └── versionCmd  (smartpick version)
//
// CONFIGURATION ORDER:
//   1. .env / .env.local are loaded into the environment (godotenv)
//   2. config.yaml is read over the built-in defaults
//   3. SMARTPICK_* environment variables override single settings
//   4. --verbose forces debug logging
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/smartpick/picklist/internal/config"
	"github.com/smartpick/picklist/internal/logging"
	"github.com/smartpick/picklist/internal/mastersheet"
	"github.com/smartpick/picklist/internal/types"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "smartpick",
	Short: "smartpick - Build warehouse picking lists from order exports",
	Long: `smartpick turns order exports from the shop back office into printable
picking lists. Every order line is resolved against the product master
table (sets, unit counts, product migrations) and merged into one row per
product.

Key Features:
  - Shift_JIS and UTF-8 order exports, configurable per export profile
  - Product master from XLSX, CSV, Google Sheets or Cloud Storage
  - Picking list, multiple-quantity list and order list as XLSX or XML
  - Validation report for lines that cannot be picked
  - Concurrent processing and automatic file archival

Example Usage:
  smartpick process                       # Process all files in the input directory
  smartpick process --file ./orders.csv   # Process a single file
  smartpick validate --file ./orders.csv  # Show what would be excluded`,

	SilenceUsage: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// loadRuntime loads the configuration and builds the logger.
func loadRuntime() (*config.MainConfig, *zap.Logger, error) {
	if _, err := config.LoadEnv(config.DefaultEnvFiles); err != nil {
		return nil, nil, fmt.Errorf("failed to load env files: %w", err)
	}

	mainConfig, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load main config: %w", err)
	}

	logCfg := logging.Config{
		Level:  mainConfig.Log.Level,
		Format: mainConfig.Log.Format,
		Output: mainConfig.Log.Output,
	}
	if verbose {
		logCfg.Level = "debug"
	}

	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return mainConfig, logger, nil
}

// loadProfiles loads the export profiles. Without profile files the
// built-in GoQ profile is used.
func loadProfiles(mainConfig *config.MainConfig, logger *zap.Logger) (map[string]*config.ProfileConfig, error) {
	profiles, err := config.LoadProfiles(mainConfig.ConfigsDir)
	if errors.Is(err, config.ErrNoProfiles) {
		logger.Info("no profile files found, using built-in profile", zap.String("configs_dir", mainConfig.ConfigsDir))
		p := config.DefaultProfile()
		return map[string]*config.ProfileConfig{p.ProfileCode: p}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return profiles, nil
}

// selectProfile returns the profile named by code, or the first profile
// whose patterns match path when code is empty.
func selectProfile(path, code string, profiles map[string]*config.ProfileConfig) (*config.ProfileConfig, error) {
	if code != "" {
		p, ok := profiles[code]
		if !ok {
			return nil, fmt.Errorf("unknown profile %q", code)
		}
		return p, nil
	}

	p := config.MatchProfile(path, profiles)
	if p == nil {
		return nil, fmt.Errorf("no matching profile found")
	}
	return p, nil
}

// fetchMaster loads one snapshot of the master table for the whole run.
func fetchMaster(ctx context.Context, mainConfig *config.MainConfig, logger *zap.Logger) (types.MasterTable, error) {
	source, err := mastersheet.New(mainConfig.Master)
	if err != nil {
		return nil, err
	}

	master, err := source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load master from %s: %w", source.Describe(), err)
	}

	logger.Info("loaded master table",
		zap.String("source", source.Describe()),
		zap.Int("rows", len(master.DataRows())))
	return master, nil
}

// inputPatterns collects the file patterns of all profiles.
func inputPatterns(profiles map[string]*config.ProfileConfig) []string {
	seen := make(map[string]bool)
	var patterns []string
	for _, p := range profiles {
		for _, pattern := range p.FileMatchingPatterns {
			if !seen[pattern] {
				seen[pattern] = true
				patterns = append(patterns, pattern)
			}
		}
	}
	return patterns
}
