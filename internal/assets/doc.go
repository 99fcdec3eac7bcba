// Package assets provides the HTML templates used to render chapter and
// archive pages.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from a template directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in "chapter" and "archive" templates
// compiled into the binary.
//
// FilesystemLoader lets a site ship its own templates from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver is the loader used by the publisher. It tries the custom
// FilesystemLoader first, falling back to EmbeddedLoader if the template is
// not found. A site can therefore override the chapter page and keep the
// built-in archive page.
//
// # Directory Structure
//
// A template directory holds one file per template:
//
//	{basePath}/
//	├── chapter.html   # chapter page
//	└── archive.html   # archive listing
//
// Templates are html/template sources. The data passed to each is defined by
// the serialpub package (ChapterPage, ArchivePage).
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
