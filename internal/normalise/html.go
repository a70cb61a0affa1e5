package normalise

import (
	"html"
	"regexp"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// Ensure HTML implements the interface.
var _ Normaliser = (*HTML)(nil)

// HTML strips markup and extracts readable text.
type HTML struct{}

// NewHTML creates an HTML normaliser.
func NewHTML() *HTML {
	return &HTML{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *HTML) SupportedMIMETypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

// SupportedExtensions returns filename extensions this normaliser handles.
func (n *HTML) SupportedExtensions() []string {
	return []string{"html", "htm", "xhtml"}
}

// Priority returns the selection priority.
func (n *HTML) Priority() int {
	return 50
}

var (
	htmlTitleTag   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	htmlScriptTag  = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	htmlStyleTag   = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	htmlHeadTag    = regexp.MustCompile(`(?is)<head[^>]*>.*?</head>`)
	htmlComment    = regexp.MustCompile(`(?s)<!--.*?-->`)
	htmlBlockOpen  = regexp.MustCompile(`(?i)<(p|div|h[1-6]|li|tr|blockquote|pre|table|section|article)[^>]*>`)
	htmlBlockClose = regexp.MustCompile(`(?i)</(p|div|br|hr|h[1-6]|li|tr|blockquote|pre|table|section|article)>`)
	htmlBreak      = regexp.MustCompile(`(?i)<(?:br|hr)\s*/?>`)
	htmlAnyTag     = regexp.MustCompile(`<[^>]+>`)
	htmlSpaces     = regexp.MustCompile(`[ \t]+`)
	htmlNewlines   = regexp.MustCompile(`\n{3,}`)
)

// Normalise strips the markup. The title comes from the <title> tag,
// falling back to the filename.
func (n *HTML) Normalise(filename string, data []byte) (*Document, error) {
	if len(data) == 0 {
		return nil, domain.ErrEmptyContent
	}
	raw := string(data)

	title := titleFromFilename(filename)
	if matches := htmlTitleTag.FindStringSubmatch(raw); len(matches) > 1 {
		if t := strings.TrimSpace(html.UnescapeString(matches[1])); t != "" {
			title = t
		}
	}

	return &Document{Title: title, Content: stripHTML(raw), Format: "html"}, nil
}

// stripHTML removes tags and decodes entities, keeping block structure
// as newlines.
func stripHTML(content string) string {
	content = htmlScriptTag.ReplaceAllString(content, "")
	content = htmlStyleTag.ReplaceAllString(content, "")
	content = htmlHeadTag.ReplaceAllString(content, "")
	content = htmlComment.ReplaceAllString(content, "")

	content = htmlBlockOpen.ReplaceAllString(content, "\n")
	content = htmlBlockClose.ReplaceAllString(content, "\n")
	content = htmlBreak.ReplaceAllString(content, "\n")
	content = htmlAnyTag.ReplaceAllString(content, "")

	content = html.UnescapeString(content)
	content = htmlSpaces.ReplaceAllString(content, " ")
	content = htmlNewlines.ReplaceAllString(content, "\n\n")

	var lines []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
