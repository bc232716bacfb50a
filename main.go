// =============================================================================
// smartpick - Main Entry Point
// =============================================================================
//
// USAGE:
//   smartpick process   - Build picking lists for all order exports
//   smartpick validate  - Show the validation report without writing outputs
//   smartpick version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : picking engine, parsers, master sources, outputs
//   - pkg/           : file management utilities
//   - configs/       : order-export profiles
//
// =============================================================================

package main

import (
	"github.com/smartpick/picklist/cmd"
)

func main() {
	cmd.Execute()
}
