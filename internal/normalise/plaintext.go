package normalise

import (
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// Ensure Plaintext implements the interface.
var _ Normaliser = (*Plaintext)(nil)

// Plaintext is the fallback normaliser: the bytes are the text.
type Plaintext struct{}

// NewPlaintext creates a plain text normaliser.
func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Plaintext) SupportedMIMETypes() []string {
	return []string{"text/plain", "text/csv", "application/json"}
}

// SupportedExtensions returns filename extensions this normaliser handles.
func (n *Plaintext) SupportedExtensions() []string {
	return []string{"txt", "text", "csv", "json", "log"}
}

// Priority returns the selection priority. Low: this is the fallback.
func (n *Plaintext) Priority() int {
	return 5
}

// Normalise passes the content through, deriving a title from the
// first non-empty line when one looks like a heading, else from the
// filename.
func (n *Plaintext) Normalise(filename string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyContent
	}

	content := string(data)
	title := titleFromFilename(filename)
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			if len(line) <= 80 {
				title = line
			}
			break
		}
	}

	return &Document{Title: title, Content: content, Format: "plaintext"}, nil
}
