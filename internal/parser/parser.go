package parser

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dotandev/planfiler/internal/plandoc"
)

// Parser converts raw planning document bytes into a plan tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*plandoc.Tree, error)
}

// SupportedExtensions lists planning document formats this tool can read.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// PlanText returns the document as text ready for section extraction.
// Markdown and plain text pass through byte for byte so the extractor's
// exact-substring semantics hold. PDFs yield their raw extracted text.
// Other formats are parsed and flattened back to markdown-style headings.
func PlanText(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".md", ".markdown":
		return string(data), nil
	case ".pdf":
		p := &PDFParser{FallbackPdftotext: true}
		text, err := p.Text(bytes.NewReader(data))
		if err != nil {
			return "", err
		}
		// Page breaks must not glue a heading onto the previous line.
		return strings.ReplaceAll(text, "\f", "\n"), nil
	case ".html", ".htm", ".docx":
		p, err := ForFile(filename)
		if err != nil {
			return "", err
		}
		tree, err := p.Parse(bytes.NewReader(data), filename)
		if err != nil {
			return "", err
		}
		return tree.Flatten(), nil
	default:
		return "", fmt.Errorf("unsupported file extension: %s", ext)
	}
}
