// Package normalise converts raw document files into plain text ready
// for analysis. Each normaliser knows one family of formats; the
// registry picks the best match for a file by MIME type, then by
// extension, breaking ties on priority.
package normalise

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// Document is the normalised form of one input file.
type Document struct {
	// Title is taken from the document itself when the format carries
	// one, else derived from the filename.
	Title string

	// Content is the extracted plain text.
	Content string

	// Format names the source format ("plaintext", "markdown", ...).
	Format string
}

// Normaliser converts one format family to plain text.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns filename extensions (without dot).
	SupportedExtensions() []string

	// Priority orders candidates when several match; higher wins.
	Priority() int

	// Normalise extracts plain text from the raw file bytes.
	Normalise(filename string, data []byte) (*Document, error)
}

// Registry selects a normaliser for a file.
type Registry struct {
	normalisers []Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// DefaultRegistry returns a registry with all built-in normalisers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewPlaintext())
	r.Register(NewMarkdown())
	r.Register(NewHTML())
	r.Register(NewDocx())
	return r
}

// Register adds a normaliser.
func (r *Registry) Register(n Normaliser) {
	r.normalisers = append(r.normalisers, n)
}

// ForFile returns the best normaliser for the given filename and
// optional MIME type. Returns domain.ErrInvalidInput when nothing
// matches.
func (r *Registry) ForFile(filename, mimeType string) (Normaliser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")

	var best Normaliser
	for _, n := range r.normalisers {
		if !matches(n, ext, mimeType) {
			continue
		}
		if best == nil || n.Priority() > best.Priority() {
			best = n
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no normaliser for %q (%s): %w", filename, mimeType, domain.ErrInvalidInput)
	}
	return best, nil
}

// Normalise picks a normaliser and runs it in one step.
func (r *Registry) Normalise(filename, mimeType string, data []byte) (*Document, error) {
	n, err := r.ForFile(filename, mimeType)
	if err != nil {
		return nil, err
	}
	return n.Normalise(filename, data)
}

func matches(n Normaliser, ext, mimeType string) bool {
	if mimeType != "" {
		for _, mt := range n.SupportedMIMETypes() {
			if strings.EqualFold(mt, mimeType) {
				return true
			}
		}
	}
	if ext != "" {
		for _, e := range n.SupportedExtensions() {
			if e == ext {
				return true
			}
		}
	}
	return false
}

// titleFromFilename derives a human-readable title from a filename.
func titleFromFilename(filename string) string {
	name := filepath.Base(filename)
	if ext := filepath.Ext(name); ext != "" {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return name
}
