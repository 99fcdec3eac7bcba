package assets

// Built-in template names.
const (
	ChapterTemplate = "chapter"
	ArchiveTemplate = "archive"
)

// AssetLoader defines the contract for loading page templates.
// Implementations may load from embedded assets, a directory, etc.
type AssetLoader interface {
	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
