// =============================================================================
// smartpick - Process Command
// =============================================================================
//
// This file defines the 'process' command, which builds the picking lists
// for every order export in the input directory.
//
// COMMAND USAGE:
//   smartpick process [flags]
//
// FLAGS:
//   --dry-run : Compute and validate without writing or moving any file
//   --file    : Process only this file
//   --profile : Use this profile code instead of matching by file name
//
// PROCESSING PIPELINE:
//   1. Load configuration and export profiles
//   2. Discover order files in the input directory
//   3. Load the master table once for the whole run
//   4. Process the files concurrently, bounded by max_concurrency
//   5. Print and write the run summary
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/smartpick/picklist/internal/processor"
	"github.com/smartpick/picklist/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	dryRun      bool
	filePath    string
	profileCode string
)

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build picking lists for the order exports in the input directory",
	Long: `The process command scans the input directory for order exports, matches
each one to an export profile and builds its picking list against the
product master table.

Each file is processed independently; an error in one file does not stop
the others.

On successful processing:
  - The picking list is written to the output directory in every
    configured format
  - A validation log is written next to it when lines need attention
  - The order export is moved to the input archive

On error:
  - The order export remains in the input directory
  - Processing continues for other files`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute and validate without writing or moving files")
	processCmd.Flags().StringVar(&filePath, "file", "", "Path to a specific file to process")
	processCmd.Flags().StringVar(&profileCode, "profile", "", "Profile code to use for every file")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	startTime := time.Now()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	mainConfig, logger, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logger.Sync()

	runID := uuid.New().String()
	logger = logger.With(zap.String("run_id", runID))

	if !dryRun {
		if err := mainConfig.EnsureDirectories(); err != nil {
			return err
		}
	}

	profiles, err := loadProfiles(mainConfig, logger)
	if err != nil {
		return err
	}
	logger.Info("loaded profiles", zap.Int("count", len(profiles)))

	// =========================================================================
	// STEP 2: DISCOVER INPUT FILES
	// =========================================================================

	files := utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, mainConfig.InputArchiveDir, mainConfig.OutputArchiveDir)

	var inputFiles []string
	if filePath != "" {
		if !utils.FileExists(filePath) {
			return fmt.Errorf("file not found: %s", filePath)
		}
		inputFiles = []string{filePath}
	} else {
		inputFiles, err = files.DiscoverInputFiles(inputPatterns(profiles)...)
		if err != nil {
			return fmt.Errorf("failed to discover input files: %w", err)
		}
	}

	if len(inputFiles) == 0 {
		fmt.Fprintln(out, "No order files found in the input directory.")
		return nil
	}
	fmt.Fprintf(out, "Found %d file(s) to process\n", len(inputFiles))

	// =========================================================================
	// STEP 3: LOAD MASTER TABLE
	// =========================================================================

	master, err := fetchMaster(ctx, mainConfig, logger)
	if err != nil {
		return err
	}
	engine := processor.NewEngine(mainConfig, logger)

	// =========================================================================
	// STEP 4: PROCESS FILES CONCURRENTLY
	// =========================================================================

	results := make([]processor.Result, len(inputFiles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(mainConfig.MaxConcurrency)
	for i, file := range inputFiles {
		g.Go(func() error {
			profile, err := selectProfile(file, profileCode, profiles)
			if err != nil {
				results[i] = processor.Result{FilePath: file, Error: err}
				return nil
			}

			results[i] = processor.New(file, profile, mainConfig, master,
				processor.WithLogger(logger),
				processor.WithEngine(engine),
				processor.WithFileManager(files),
				processor.WithDryRun(dryRun),
			).Run(gctx)
			return nil
		})
	}
	// Failures are reported per file, never through the group.
	_ = g.Wait()

	// =========================================================================
	// STEP 5: SUMMARY
	// =========================================================================

	summary := utils.ProcessingSummary{
		RunID:      runID,
		StartTime:  startTime,
		TotalFiles: len(inputFiles),
	}

	for _, result := range results {
		name := filepath.Base(result.FilePath)
		if result.Success {
			summary.SuccessfulFiles++
			summary.ProcessedFiles = append(summary.ProcessedFiles, utils.ProcessedFileInfo{
				InputFile:   result.FilePath,
				OutputFiles: result.OutputFiles,
				ArchivePath: result.ArchivePath,
				Lines:       result.Stats.Lines,
				PickingRows: result.Stats.PickingRows,
				Units:       result.Stats.SingleUnits,
				ProcessTime: result.Stats.ProcessingTime,
			})
			fmt.Fprintf(out, "  ✓ %s: %d rows, %d units", name, result.Stats.PickingRows, result.Stats.SingleUnits)
			if result.Stats.ExcludedLines > 0 {
				fmt.Fprintf(out, " (%d line(s) excluded)", result.Stats.ExcludedLines)
			}
			fmt.Fprintln(out)
			for _, o := range result.OutputFiles {
				fmt.Fprintf(out, "      -> %s\n", o)
			}
		} else {
			summary.FailedFiles++
			summary.FailedFilesList = append(summary.FailedFilesList, utils.FailedFileInfo{
				InputFile:    result.FilePath,
				ErrorMessage: fmt.Sprint(result.Error),
			})
			fmt.Fprintf(out, "  ✗ %s: %v\n", name, result.Error)
		}

		summary.TotalLines += result.Stats.Lines
		summary.TotalPickingRows += result.Stats.PickingRows
		summary.TotalUnits += result.Stats.SingleUnits
		summary.ExcludedLines += result.Stats.ExcludedLines
		summary.Findings += result.Stats.Findings
	}
	summary.EndTime = time.Now()

	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Total files:     %d\n", summary.TotalFiles)
	fmt.Fprintf(out, "Successful:      %d\n", summary.SuccessfulFiles)
	fmt.Fprintf(out, "Errors:          %d\n", summary.FailedFiles)
	fmt.Fprintf(out, "Time elapsed:    %s\n", summary.EndTime.Sub(startTime))

	if !dryRun {
		path, err := utils.WriteSummaryLog(summary, mainConfig.OutputDir)
		if err != nil {
			logger.Warn("failed to write summary log", zap.Error(err))
		} else {
			fmt.Fprintf(out, "Summary:         %s\n", path)
		}
	}

	if summary.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.FailedFiles, summary.TotalFiles)
	}
	return nil
}
