// =============================================================================
// smartpick - Processor Module
// =============================================================================
//
// This module runs the picking pipeline for a single order file, from CSV
// parsing to the printable outputs.
//
// PROCESSING PIPELINE:
//   1. Parse the order export with the profile's CSV settings
//   2. Map rows to order lines and apply normalization rules
//   3. Recompute the picking list against the master table
//   4. Validate the order file
//   5. Write the error log when validation found anything
//   6. Render the outputs (xlsx, xml)
//   7. Archive the processed files
//
// CONCURRENCY:
//   A Processor handles one file. The master table and the Engine are
//   shared read-only, so one Processor per file may run concurrently.
//
// =============================================================================

package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/smartpick/picklist/internal/config"
	"github.com/smartpick/picklist/internal/csvparser"
	"github.com/smartpick/picklist/internal/logging"
	"github.com/smartpick/picklist/internal/orders"
	"github.com/smartpick/picklist/internal/picking"
	"github.com/smartpick/picklist/internal/report"
	"github.com/smartpick/picklist/internal/types"
	"github.com/smartpick/picklist/internal/validation"
	"github.com/smartpick/picklist/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single file.
type Result struct {
	// FilePath is the path to the order file that was processed.
	FilePath string

	// Profile is the code of the profile used.
	Profile string

	// OutputFiles are the generated documents, one per output format.
	// Empty if processing failed or on a dry run.
	OutputFiles []string

	// ErrorLog is the path of the validation log, if one was written.
	ErrorLog string

	// ArchivePath is where the order file was moved to.
	ArchivePath string

	Success bool

	// Error is nil if processing was successful.
	Error error

	// Validation is the validation report, once the file got that far.
	Validation *validation.ValidationResult

	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	// Lines is the number of order lines read.
	Lines int

	// PickingRows is the number of rows on the picking list.
	PickingRows int

	// SingleUnits is the grand total of single units.
	SingleUnits int

	ExcludedLines      int
	MultiQuantityLines int

	// Findings is the number of validation findings, errors and warnings.
	Findings int

	ProcessingTime time.Duration
}

// Analysis is everything computed for one order file before any output is
// written.
type Analysis struct {
	Items      []types.OrderLineItem
	Summary    orders.Summary
	Result     *picking.Result
	Validation *validation.ValidationResult
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// Processor handles one order file.
type Processor struct {
	csvPath    string
	profile    *config.ProfileConfig
	mainConfig *config.MainConfig
	master     types.MasterTable
	engine     *picking.Engine
	files      *utils.FileManager
	logger     *zap.Logger
	dryRun     bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithEngine shares one engine between processors.
func WithEngine(e *picking.Engine) Option {
	return func(p *Processor) {
		p.engine = e
	}
}

// WithFileManager sets the file manager used for archival.
func WithFileManager(fm *utils.FileManager) Option {
	return func(p *Processor) {
		p.files = fm
	}
}

// WithDryRun stops after validation. Nothing is written or moved.
func WithDryRun(dryRun bool) Option {
	return func(p *Processor) {
		p.dryRun = dryRun
	}
}

// New creates a Processor for csvPath.
func New(csvPath string, profile *config.ProfileConfig, mainConfig *config.MainConfig, master types.MasterTable, opts ...Option) *Processor {
	p := &Processor{
		csvPath:    csvPath,
		profile:    profile,
		mainConfig: mainConfig,
		master:     master,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.logger = p.logger.With(zap.String("file", filepath.Base(csvPath)), zap.String("profile", profile.ProfileCode))
	if p.engine == nil {
		p.engine = NewEngine(mainConfig, p.logger)
	}
	if p.files == nil {
		p.files = utils.NewFileManager(mainConfig.InputDir, mainConfig.OutputDir, mainConfig.InputArchiveDir, mainConfig.OutputArchiveDir)
	}
	return p
}

// NewEngine builds the picking engine for the given configuration.
// Degradation events are logged through logger.
func NewEngine(cfg *config.MainConfig, logger *zap.Logger) *picking.Engine {
	return picking.NewEngine(
		picking.WithColumnSpec(cfg.Master.ColumnSpec()),
		picking.WithSelectableSKUs(cfg.SelectableSKUs),
		picking.WithDiagnostics(logging.NewDiagnostics(logger)),
	)
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Analyze runs steps 1 to 4 of the pipeline.
func (p *Processor) Analyze(ctx context.Context) (*Analysis, error) {
	// =========================================================================
	// STEP 1: PARSE ORDER EXPORT
	// =========================================================================

	csvData, err := csvparser.Parse(p.csvPath, p.profile.CSVSettings)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	p.logger.Debug("parsed order export", zap.Int("rows", csvData.RowCount()))

	// =========================================================================
	// STEP 2: MAP AND NORMALIZE
	// =========================================================================

	norm, err := orders.NewNormalizer(p.profile.NormalizationRules)
	if err != nil {
		return nil, fmt.Errorf("invalid normalization rules: %w", err)
	}
	missing := orders.MissingColumns(csvData, p.profile.Columns)
	items := orders.FromCSV(csvData, p.profile.Columns, norm)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// =========================================================================
	// STEP 3: RECOMPUTE
	// =========================================================================

	recorder := &picking.Recorder{}
	result := p.engine.RecomputeWithDiagnostics(items, p.master, recorder)
	p.logger.Debug("recomputed picking list",
		zap.Int("lines", len(items)),
		zap.Int("rows", len(result.Rows)),
		zap.Int("units", result.TotalSingleUnits),
		zap.Int("excluded", result.ExcludedCount))

	// =========================================================================
	// STEP 4: VALIDATE
	// =========================================================================

	findings := validation.Validate(validation.Input{
		MissingColumns: missing,
		Lines:          result.Lines,
		Events:         recorder.Events,
	})

	return &Analysis{
		Items:      items,
		Summary:    orders.Summarize(items),
		Result:     result,
		Validation: findings,
	}, nil
}

// Run executes the pipeline for the file.
func (p *Processor) Run(ctx context.Context) (result Result) {
	startTime := time.Now()
	result = Result{
		FilePath: p.csvPath,
		Profile:  p.profile.ProfileCode,
	}
	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	p.logger.Info("processing file")

	analysis, err := p.Analyze(ctx)
	if err != nil {
		result.Error = err
		return result
	}

	pr := analysis.Result
	result.Validation = analysis.Validation
	result.Stats = ProcessingStats{
		Lines:              len(analysis.Items),
		PickingRows:        len(pr.Rows),
		SingleUnits:        pr.TotalSingleUnits,
		ExcludedLines:      pr.ExcludedCount,
		MultiQuantityLines: len(pr.MultiQuantityLines()),
		Findings:           len(analysis.Validation.Errors),
	}

	for _, ve := range analysis.Validation.Errors {
		if ve.Severity == validation.SeverityError {
			p.logger.Warn("validation error", zap.String("finding", ve.Error()))
		} else {
			p.logger.Debug("validation warning", zap.String("finding", ve.Error()))
		}
	}

	if p.dryRun {
		p.logger.Info("dry run, no outputs written")
		result.Success = analysis.Validation.IsValid || p.mainConfig.ContinueOnError
		return result
	}

	// =========================================================================
	// STEP 5: ERROR LOG
	// =========================================================================

	source := utils.SourceName(p.csvPath)

	if len(analysis.Validation.Errors) > 0 {
		logPath := filepath.Join(p.mainConfig.OutputDir, source+"_validation.txt")
		if err := validation.WriteErrorLog(analysis.Validation.Errors, p.csvPath, logPath); err != nil {
			p.logger.Warn("failed to write error log", zap.Error(err))
		} else {
			result.ErrorLog = logPath
		}
	}

	if !analysis.Validation.IsValid && !p.mainConfig.ContinueOnError {
		result.Error = fmt.Errorf("validation failed with %d errors", analysis.Validation.ErrorCount)
		return result
	}

	// =========================================================================
	// STEP 6: RENDER OUTPUTS
	// =========================================================================

	doc := report.NewDocument(pr, analysis.Summary, report.Options{
		Source:       filepath.Base(p.csvPath),
		Profile:      p.profile.ProfileCode,
		SortByName:   p.mainConfig.SortByName,
		JANOverrides: p.mainConfig.JANDisplayOverrides,
	})

	params := map[string]string{
		"profile": p.profile.ProfileCode,
		"source":  source,
	}
	for _, format := range p.mainConfig.OutputFormats {
		if err := ctx.Err(); err != nil {
			result.Error = err
			return result
		}

		name := utils.GenerateOutputFileName(p.mainConfig.OutputNameFormat, format, params)
		outputPath := filepath.Join(p.mainConfig.OutputDir, name)
		if err := report.Write(format, outputPath, doc); err != nil {
			result.Error = fmt.Errorf("failed to write %s output: %w", format, err)
			return result
		}
		result.OutputFiles = append(result.OutputFiles, outputPath)
		p.logger.Info("wrote output", zap.String("path", outputPath))
	}

	// =========================================================================
	// STEP 7: ARCHIVE FILES
	// =========================================================================

	for _, out := range result.OutputFiles {
		if _, err := p.files.ArchiveOutputFile(out); err != nil {
			p.logger.Warn("failed to archive output", zap.String("path", out), zap.Error(err))
		}
	}
	archived, err := p.files.ArchiveInputFile(p.csvPath)
	if err != nil {
		// The picking list exists; a failed move is not a failed file.
		p.logger.Warn("failed to archive input", zap.Error(err))
	} else {
		result.ArchivePath = archived
	}

	result.Success = true
	return result
}
