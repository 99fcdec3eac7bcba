// Package pipeline implements the chapter rendering pipeline.
//
// This package handles the stages between a manuscript file and a chapter page:
//   - Markdown preprocessing (line normalization, highlight syntax)
//   - Front matter splitting and decoding
//   - Title and excerpt derivation when front matter omits them
//   - Markdown to HTML fragment conversion via Goldmark
//   - Rewriting manuscript-relative links for the page location
//   - Page rendering through html/template
//
// Archive, feed, and file writes are handled by the root serialpub package.
// Every stage is a pure function of its input, so publishing the same
// manuscript twice yields identical bytes.
package pipeline
