// Package cli implements the command-line interface for c7ctl.
//
// The cli package provides:
// - Command-line argument parsing and validation
// - Documentation cache refresh, status and check commands
// - Editor setup and automatic-use configuration
// - Terminal output formatting with an optional pager
package cli
