// =============================================================================
// smartpick - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   smartpick validate [--file F] [--profile P]
//
// Loads the configuration, the profiles and the master table, then runs the
// picking computation for each order file without writing anything and
// prints the validation report. Useful before a print run to see which
// lines will be excluded.
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smartpick/picklist/internal/processor"
	"github.com/smartpick/picklist/internal/validation"
	"github.com/smartpick/picklist/pkg/utils"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check configuration and order files without writing outputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&filePath, "file", "", "Path to a specific file to validate")
	validateCmd.Flags().StringVar(&profileCode, "profile", "", "Profile code to use for every file")
}

func runValidate(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	mainConfig, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync()

	profiles, err := loadProfiles(mainConfig, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Configuration OK (%d profile(s))\n", len(profiles))

	var inputFiles []string
	if filePath != "" {
		if !utils.FileExists(filePath) {
			return fmt.Errorf("file not found: %s", filePath)
		}
		inputFiles = []string{filePath}
	} else {
		files := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, mainConfig.InputArchiveDir, mainConfig.OutputArchiveDir)
		inputFiles, err = files.DiscoverInputFiles(inputPatterns(profiles)...)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}
	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No order files to validate.")
		return nil
	}

	master, err := fetchMaster(ctx, mainConfig, logger)
	if err != nil {
		return err
	}
	engine := processor.NewEngine(mainConfig, logger)

	invalid := 0
	for _, file := range inputFiles {
		fmt.Fprintf(out, "\n=== %s ===\n", filepath.Base(file))

		profile, err := selectProfile(file, profileCode, profiles)
		if err != nil {
			invalid++
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		analysis, err := processor.New(file, profile, mainConfig, master,
			processor.WithLogger(logger),
			processor.WithEngine(engine),
		).Analyze(ctx)
		if err != nil {
			invalid++
			fmt.Fprintf(out, "Error: %v\n", err)
			continue
		}

		r := analysis.Result
		fmt.Fprintf(out, "Profile:        %s\n", profile.ProfileCode)
		fmt.Fprintf(out, "Orders:         %d (%d lines)\n", analysis.Summary.OrderCount, analysis.Summary.LineCount)
		fmt.Fprintf(out, "Picking rows:   %d\n", len(r.Rows))
		fmt.Fprintf(out, "Single units:   %d\n", r.TotalSingleUnits)
		fmt.Fprintf(out, "Excluded lines: %d\n\n", r.ExcludedCount)
		fmt.Fprintln(out, validation.FormatErrors(analysis.Validation.Errors))

		if !analysis.Validation.IsValid {
			invalid++
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", invalid, len(inputFiles))
	}
	return nil
}
