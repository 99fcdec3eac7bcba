package main

import (
	"errors"
	"os"

	"github.com/alnah/go-serialpub"
)

// Exit codes for the serialpub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command completed
	ExitGeneral = 1 // General/unexpected error, or check found problems
	ExitUsage   = 2 // Invalid flags, selector, config, template or front matter
	ExitIO      = 3 // Source not found, write failed, archive unreadable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, serialpub.ErrSourceNotFound) ||
		errors.Is(err, serialpub.ErrWriteFailed) ||
		errors.Is(err, serialpub.ErrArchiveCorrupt) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, serialpub.ErrInvalidSelector) ||
		errors.Is(err, serialpub.ErrInvalidChapter) ||
		errors.Is(err, serialpub.ErrDateOutOfRange) ||
		errors.Is(err, serialpub.ErrFrontMatterInvalid) ||
		errors.Is(err, serialpub.ErrTemplateMissing) ||
		errors.Is(err, serialpub.ErrTemplateInvalid) ||
		errors.Is(err, serialpub.ErrInvalidTemplatePath) ||
		errors.Is(err, serialpub.ErrConfigNotFound) ||
		errors.Is(err, serialpub.ErrConfigParse) ||
		errors.Is(err, serialpub.ErrConfigInvalid) {
		return ExitUsage
	}

	return ExitGeneral
}
