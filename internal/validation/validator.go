// =============================================================================
// smartpick - Validation Module
// =============================================================================
//
// This module checks one order file after the picking computation and lists
// everything an operator should look at before printing: missing export
// columns, lines that cannot be picked, master sheet layout problems.
//
// Nothing here changes the picking result. Findings carry a severity:
//   error   : the picking list is probably wrong; the file fails unless
//             continue_on_error is set
//   warning : the picking list is right, but some lines need attention
//
// =============================================================================

package validation

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/smartpick/picklist/internal/picking"
)

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Rules.
const (
	RuleRequiredColumn = "required_column"
	RuleNoIdentifier   = "no_identifier"
	RuleQuantity       = "quantity"
	RuleNotInMaster    = "not_in_master"
	RuleMasterHeader   = "master_header"
	RuleMigration      = "migration"
	RuleNothingToPick  = "nothing_to_pick"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single finding.
type ValidationError struct {
	Severity string

	// Field is the order field or master column concerned.
	Field string

	// Value is the offending value.
	Value string

	Rule    string
	Message string

	// OrderID and SKU identify the order line, RowNumber its row in the
	// export. All empty for file-level findings.
	OrderID   string
	SKU       string
	RowNumber int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] ", strings.ToUpper(e.Severity))
	if e.RowNumber > 0 {
		fmt.Fprintf(&b, "Row %d, ", e.RowNumber)
	}
	if e.OrderID != "" {
		fmt.Fprintf(&b, "Order %s, ", e.OrderID)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, "Field '%s': ", e.Field)
	}
	b.WriteString(e.Message)
	if e.Value != "" {
		fmt.Fprintf(&b, " (value: '%s')", e.Value)
	}
	return b.String()
}

// =============================================================================
// VALIDATION RESULT
// =============================================================================

// ValidationResult contains the results of validation.
type ValidationResult struct {
	// IsValid is true if there are no findings of severity error.
	IsValid bool

	Errors []*ValidationError

	ErrorCount   int
	WarningCount int

	LinesValidated int
}

func (r *ValidationResult) add(e *ValidationError) {
	r.Errors = append(r.Errors, e)
	if e.Severity == SeverityError {
		r.ErrorCount++
		r.IsValid = false
	} else {
		r.WarningCount++
	}
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Input is everything known about one order file after recompute.
type Input struct {
	// MissingColumns are required export headers not found in the file.
	MissingColumns []string

	// Lines are the per-line results of the picking computation.
	Lines []picking.LineResult

	// Events are the diagnostics reported during the computation.
	Events []picking.Event
}

// Validate checks one order file.
func Validate(in Input) *ValidationResult {
	result := &ValidationResult{IsValid: true, LinesValidated: len(in.Lines)}

	// =========================================================================
	// STEP 1: FILE LEVEL
	// =========================================================================

	for _, col := range in.MissingColumns {
		result.add(&ValidationError{
			Severity: SeverityError,
			Field:    col,
			Rule:     RuleRequiredColumn,
			Message:  "required column is missing from the export",
		})
	}

	for _, ev := range in.Events {
		switch ev.Kind {
		case picking.EventHeaderFallback:
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Field:    ev.Label,
				Value:    fmt.Sprintf("column %d", ev.Column+1),
				Rule:     RuleMasterHeader,
				Message:  "master header label not found, fallback column used",
			})
		case picking.EventHeaderAmbiguous:
			result.add(&ValidationError{
				Severity: SeverityWarning,
				Field:    ev.Label,
				Value:    fmt.Sprintf("column %d", ev.Column+1),
				Rule:     RuleMasterHeader,
				Message:  "master header label occurs more than once",
			})
		case picking.EventMigrationMiss:
			result.add(&ValidationError{
				Severity:  SeverityWarning,
				Field:     "引継ぎ元",
				Value:     ev.Value,
				Rule:      RuleMigration,
				Message:   "migration source has no target row, original product used",
				OrderID:   ev.OrderID,
				SKU:       ev.SKU,
				RowNumber: ev.SourceRow,
			})
		}
	}

	// =========================================================================
	// STEP 2: LINE LEVEL
	// =========================================================================

	eligible := 0
	for _, line := range in.Lines {
		item := line.Item
		base := ValidationError{
			Severity:  SeverityWarning,
			OrderID:   item.OrderID,
			SKU:       item.ProductSKU,
			RowNumber: item.SourceRow,
		}

		if strings.TrimSpace(item.ProductSKU) == "" &&
			strings.TrimSpace(item.SKUManagementNumber) == "" &&
			strings.TrimSpace(item.ProductCode) == "" {
			e := base
			e.Field = "product_sku"
			e.Rule = RuleNoIdentifier
			e.Message = "line has no product SKU, SKU management number or product code"
			result.add(&e)
		}

		if q := picking.ParseQuantity(item.OrderQuantity); q <= 0 {
			e := base
			e.Field = "order_quantity"
			e.Value = item.OrderQuantity
			e.Rule = RuleQuantity
			if q == 0 {
				e.Message = "quantity is zero or not a number, line skipped"
			} else {
				e.Message = "quantity is negative"
			}
			result.add(&e)
		}

		if line.Eligible {
			eligible++
		} else {
			e := base
			e.Field = "product_sku"
			e.Value = item.ProductSKU
			e.Rule = RuleNotInMaster
			e.Message = "product not found in master, excluded from picking list"
			result.add(&e)
		}
	}

	if len(in.Lines) > 0 && eligible == 0 {
		result.add(&ValidationError{
			Severity: SeverityError,
			Rule:     RuleNothingToPick,
			Message:  fmt.Sprintf("none of the %d order lines is in the master", len(in.Lines)),
		})
	}

	return result
}

// =============================================================================
// OUTPUT
// =============================================================================

// FormatErrors formats findings for display or logging.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation errors."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation completed with %d finding(s):\n\n", len(errors)))
	for i, err := range errors {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, err.Error()))
	}
	return builder.String()
}

// WriteErrorLog writes findings to filePath with a short header.
func WriteErrorLog(errors []*ValidationError, source, filePath string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create error log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	fmt.Fprintf(writer, "Source:    %s\n", source)
	fmt.Fprintf(writer, "Generated: %s\n\n", time.Now().Format(time.RFC3339))
	writer.WriteString(FormatErrors(errors))

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to write error log: %w", err)
	}
	return nil
}
