package errors

import (
	"context"
	"fmt"
	"log/slog"
)

// CLIErrorAdapter handles error presentation and exit code determination for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger}
}

// ExitCodeFor determines the process exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	c, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch c.Category() {
	case CategoryValidation:
		return 2
	case CategoryConfig:
		return 7
	case CategoryNetwork, CategoryGit:
		return 8
	case CategoryInternal:
		return 10
	case CategoryRender, CategoryContent, CategoryFileSystem:
		return 11
	case CategoryRuntime, CategoryStorage:
		return 12
	default:
		return 1
	}
}

// FormatError formats an error for display on stderr.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	c, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return c.Error()
	}
	if hint, ok := c.Context().GetString("hint"); ok {
		return fmt.Sprintf("Error: %s (%s)", c.Message(), hint)
	}
	return fmt.Sprintf("Error: %s", c.Message())
}

// Log records the error with a level matching its severity.
func (a *CLIErrorAdapter) Log(err error) {
	if err == nil {
		return
	}
	c, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	attrs := []slog.Attr{slog.String("category", string(c.Category()))}
	if c.CanRetry() {
		attrs = append(attrs, slog.Bool("retryable", true))
	}
	if c.Cause() != nil {
		attrs = append(attrs, slog.String("cause", c.Cause().Error()))
	}
	a.logger.LogAttrs(context.Background(), slogLevel(c.Severity()), c.Message(), attrs...)
}
