package normalise

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// Ensure Markdown implements the interface.
var _ Normaliser = (*Markdown)(nil)

// Markdown strips markdown formatting down to analysable text.
type Markdown struct{}

// NewMarkdown creates a markdown normaliser.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Markdown) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// SupportedExtensions returns filename extensions this normaliser handles.
func (n *Markdown) SupportedExtensions() []string {
	return []string{"md", "markdown"}
}

// Priority returns the selection priority.
func (n *Markdown) Priority() int {
	return 50
}

var (
	mdCodeBlock    = regexp.MustCompile("(?s)```[^`]*```")
	mdInlineCode   = regexp.MustCompile("`[^`]+`")
	mdImage        = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	mdLink         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdHeading      = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	mdBlockquote   = regexp.MustCompile(`(?m)^>\s*`)
	mdRule         = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	mdListMarker   = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	mdNumberedList = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	mdNewlines     = regexp.MustCompile(`\n{3,}`)
)

// Normalise converts markdown to plain text. The title comes from the
// first H1 heading, falling back to the filename.
func (n *Markdown) Normalise(filename string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyContent
	}
	raw := string(data)

	title := titleFromFilename(filename)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(line, "#"))
			break
		}
	}

	return &Document{Title: title, Content: stripMarkdown(raw), Format: "markdown"}, nil
}

// stripMarkdown removes common markdown formatting. Simplified on
// purpose; edge cases degrade to slightly noisy text, not errors.
func stripMarkdown(content string) string {
	content = mdCodeBlock.ReplaceAllString(content, "")
	content = mdInlineCode.ReplaceAllString(content, "")
	content = mdImage.ReplaceAllString(content, "")
	content = mdLink.ReplaceAllString(content, "$1")
	content = mdHeading.ReplaceAllString(content, "")
	content = mdBlockquote.ReplaceAllString(content, "")
	content = mdRule.ReplaceAllString(content, "")
	content = mdListMarker.ReplaceAllString(content, "")
	content = mdNumberedList.ReplaceAllString(content, "")

	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "__", "")
	content = strings.ReplaceAll(content, "*", "")
	content = strings.ReplaceAll(content, "_", " ")

	content = mdNewlines.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
