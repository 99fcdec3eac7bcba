package serialpub

import (
	"errors"

	"github.com/alnah/go-serialpub/internal/assets"
)

// Built-in template names.
const (
	DefaultChapterTemplate = assets.ChapterTemplate
	DefaultArchiveTemplate = assets.ArchiveTemplate
)

// AssetLoader defines the contract for loading page templates.
// Implementations may load from a directory, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for directory-based loading with
// fallback to the built-in templates. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadTemplate loads an html/template source by name (without .html extension).
	// Returns an error wrapping ErrTemplateMissing if the template doesn't exist.
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader creates an AssetLoader for the given template directory.
// If dir is empty, returns a loader using only built-in templates.
// If dir is set, its {name}.html files take precedence with fallback to built-ins.
//
// Returns ErrInvalidTemplatePath if dir is set but not a readable directory.
func NewAssetLoader(dir string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter wraps the internal resolver to return public errors.
type assetLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *assetLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// templateSource reports "custom" or "embedded" for Check.
func (a *assetLoaderAdapter) templateSource(name string) (string, error) {
	src, err := a.resolver.Source(name)
	return src, convertAssetError(err)
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateMissing, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateMissing, err) // Invalid name means not found
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidTemplatePath, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidTemplatePath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
