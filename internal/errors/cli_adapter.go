package errors

import (
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for
// the sitebuilder CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if be, ok := err.(*BuildError); ok {
		return a.exitCodeFromBuildError(be)
	}

	return 1
}

// exitCodeFromBuildError maps BuildError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromBuildError(err *BuildError) int {
	switch err.Category {
	case CategoryPath:
		return 2 // Invalid usage / missing project
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryLayout, CategoryRender, CategoryFileSystem, CategoryAggregate:
		return 11 // Build error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display. The missing
// project-directory case gets a friendlier message than the generic path.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if be, ok := err.(*BuildError); ok {
		if be.Category == CategoryPath {
			return fmt.Sprintf("No site found: %s", be.Message)
		}
		if a.verbose {
			return fmt.Sprintf("%s (%s): %s", be.Category, be.Severity, be.Error())
		}
		return be.Error()
	}

	return fmt.Sprintf("Error: %v", err)
}

// LogError logs an error with its category attached.
func (a *CLIErrorAdapter) LogError(err error) {
	if err == nil {
		return
	}
	if be, ok := err.(*BuildError); ok {
		a.logger.Error(be.Message, slog.String("category", string(be.Category)))
		return
	}
	a.logger.Error("Unclassified error", "error", err)
}
