package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/docmind/internal/core/domain"
	"github.com/custodia-labs/docmind/internal/logger"
	"github.com/custodia-labs/docmind/internal/normalise"
)

var normaliserRegistry = normalise.DefaultRegistry()

// readDocument loads a file and normalises it to plain text. Files with
// no matching normaliser pass through as plain text so unknown formats
// still analyze.
func readDocument(path string) (*normalise.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	filename := filepath.Base(path)
	n, err := normaliserRegistry.ForFile(filename, "")
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) {
			return nil, err
		}
		logger.Debug("no normaliser for %s, treating as plain text", filename)
		return &normalise.Document{
			Title:   filename,
			Content: string(data),
			Format:  "plaintext",
		}, nil
	}

	doc, err := n.Normalise(filename, data)
	if err != nil {
		return nil, fmt.Errorf("normalising %s: %w", filename, err)
	}
	logger.Debug("normalised %s as %s", filename, doc.Format)
	return doc, nil
}
