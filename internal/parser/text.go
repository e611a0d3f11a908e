package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dotandev/planfiler/internal/plandoc"
)

// TextParser handles plain text planning documents.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*plandoc.Tree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tree := &plandoc.Tree{
		Title: strings.TrimSuffix(filename, ".txt"),
	}

	// Each paragraph becomes a section; headings are not inferred from
	// plain text.
	for _, para := range paragraphs {
		tree.Sections = append(tree.Sections, &plandoc.Node{
			Text: para,
		})
	}

	return tree, nil
}
