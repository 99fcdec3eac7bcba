package serialpub

import "errors"

// Sentinel errors for library operations.
var (
	// ErrSourceNotFound indicates no manuscript file exists for the chapter.
	ErrSourceNotFound = errors.New("chapter source not found")

	// ErrFrontMatterInvalid indicates the manuscript's leading YAML block is unusable.
	ErrFrontMatterInvalid = errors.New("invalid front matter")

	// ErrTemplateMissing indicates a page template could not be found.
	ErrTemplateMissing = errors.New("template missing")

	// ErrWriteFailed indicates an output artifact could not be written.
	ErrWriteFailed = errors.New("write failed")

	// Selector and calendar errors.
	ErrInvalidSelector = errors.New("invalid chapter selector")
	ErrInvalidChapter  = errors.New("chapter number out of range")
	ErrDateOutOfRange  = errors.New("date outside the series")

	// ErrArchiveCorrupt indicates the archive JSON exists but cannot be used.
	ErrArchiveCorrupt = errors.New("archive corrupt")

	// Template errors other than absence.
	ErrTemplateInvalid     = errors.New("template invalid")
	ErrInvalidTemplatePath = errors.New("invalid template directory")
)
