// Package post holds the source document model and the directive-based
// metadata extractor.
//
// A post is a plain-text file whose header lines carry org-style directives
// (#+title:, #+date:, #+filetags:); the rest of the file is the Markdown body
// handed to the markup converter.
package post

import (
	"path/filepath"
	"strings"
	"time"
)

// Document represents one source content file. It is read fresh from disk on
// every pipeline run and never mutated afterwards.
type Document struct {
	Path  string    // Path to the source file
	Slug  string    // Source base name without extension
	Title string    // Required title directive value
	Date  time.Time // Required date directive value
	Tags  []string  // Optional, ordered as written; empty when absent
	Draft bool      // True when the document lives in the drafts directory
	Body  []byte    // Raw body markup: source text minus the matched directive lines and leading blanks
}

// OutputName returns the deterministic output file name for the document.
func (d *Document) OutputName() string {
	return d.Slug + ".html"
}

// URL returns the document's absolute URL under the given base URL.
func (d *Document) URL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/" + d.OutputName()
}

// slugFor derives the slug from a source path.
func slugFor(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
