package normalise

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/docmind/internal/core/domain"
)

// Ensure Docx implements the interface.
var _ Normaliser = (*Docx)(nil)

// Docx extracts text from Office Open XML word documents.
type Docx struct{}

// NewDocx creates a DOCX normaliser.
func NewDocx() *Docx {
	return &Docx{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Docx) SupportedMIMETypes() []string {
	return []string{"application/vnd.openxmlformats-officedocument.wordprocessingml.document"}
}

// SupportedExtensions returns filename extensions this normaliser handles.
func (n *Docx) SupportedExtensions() []string {
	return []string{"docx"}
}

// Priority returns the selection priority.
func (n *Docx) Priority() int {
	return 50
}

// Normalise unzips the archive and walks word/document.xml. The title
// comes from docProps/core.xml when present.
func (n *Docx) Normalise(filename string, data []byte) (*Document, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("docx %q is not a zip archive: %w", filename, domain.ErrInvalidInput)
	}

	content, err := docxBodyText(reader)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	title := docxTitle(reader)
	if title == "" {
		title = titleFromFilename(filename)
	}

	return &Document{Title: title, Content: content, Format: "docx"}, nil
}

// docxDocument mirrors the parts of word/document.xml we read.
type docxDocument struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

type docxParagraph struct {
	Runs []docxRun `xml:"r"`
}

type docxRun struct {
	Text []docxText `xml:"t"`
}

type docxText struct {
	Content string `xml:",chardata"`
}

func docxBodyText(reader *zip.Reader) (string, error) {
	raw, err := readZipFile(reader, "word/document.xml")
	if err != nil || raw == nil {
		return "", err
	}

	var doc docxDocument
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("parsing document.xml: %w", domain.ErrInvalidInput)
	}

	var b strings.Builder
	for i, para := range doc.Body.Paragraphs {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, run := range para.Runs {
			for _, text := range run.Text {
				b.WriteString(text.Content)
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

type docxCoreProps struct {
	Title string `xml:"title"`
}

func docxTitle(reader *zip.Reader) string {
	raw, err := readZipFile(reader, "docProps/core.xml")
	if err != nil || raw == nil {
		return ""
	}
	var core docxCoreProps
	if err := xml.Unmarshal(raw, &core); err != nil {
		return ""
	}
	return strings.TrimSpace(core.Title)
}

func readZipFile(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, domain.ErrInvalidInput)
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, domain.ErrInvalidInput)
		}
		return raw, nil
	}
	return nil, nil
}
