package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_PhaseHierarchy(t *testing.T) {
	input := `# Implementation Plan

Overview text.

### Phase 8

Phase 8 notes.

#### 86. Cleanup pass

Remove dead code.

### Phase 9

#### 87. Wire the adapter

Connect the adapter to the registry.
`
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "plan.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tree.Title != "plan" {
		t.Errorf("expected title %q, got %q", "plan", tree.Title)
	}

	// Top-level: one h1.
	if len(tree.Sections) != 1 {
		t.Fatalf("expected 1 top-level section (h1), got %d", len(tree.Sections))
	}

	h1 := tree.Sections[0]
	if h1.Title != "Implementation Plan" || h1.Level != 1 {
		t.Errorf("unexpected h1: %+v", h1)
	}
	if !strings.Contains(h1.Text, "Overview text.") {
		t.Errorf("expected h1 text to contain overview, got %q", h1.Text)
	}

	// h1 has two h3 phases.
	if len(h1.Children) != 2 {
		t.Fatalf("expected 2 phase children, got %d", len(h1.Children))
	}

	phase9 := h1.Children[1]
	if phase9.Title != "Phase 9" || phase9.Level != 3 {
		t.Errorf("unexpected phase: %+v", phase9)
	}
	if len(phase9.Children) != 1 {
		t.Fatalf("expected 1 entry under Phase 9, got %d", len(phase9.Children))
	}
	entry := phase9.Children[0]
	if entry.Title != "87. Wire the adapter" || entry.Level != 4 {
		t.Errorf("unexpected entry node: %+v", entry)
	}
	if !strings.Contains(entry.Text, "Connect the adapter to the registry.") {
		t.Errorf("expected entry body text, got %q", entry.Text)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No headings: all text should be collected into a single section.
	if len(tree.Sections) != 1 {
		t.Fatalf("expected 1 section for headingless markdown, got %d", len(tree.Sections))
	}

	text := tree.Sections[0].Text
	if !strings.Contains(text, "Just some plain text.") {
		t.Errorf("expected text to contain first paragraph, got %q", text)
	}
	if !strings.Contains(text, "Another paragraph here.") {
		t.Errorf("expected text to contain second paragraph, got %q", text)
	}
}

func TestMarkdownParser_CodeBlocksStayInSection(t *testing.T) {
	input := "### Phase 9\n\n#### 88. Document the endpoints\n\nEndpoints:\n\n```\nGET /api/users\nPOST /api/users\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(tree.Sections) != 1 {
		t.Fatalf("expected 1 top-level section, got %d", len(tree.Sections))
	}
	phase := tree.Sections[0]
	if len(phase.Children) != 1 {
		t.Fatalf("expected 1 entry node, got %d", len(phase.Children))
	}
	entry := phase.Children[0]
	if !strings.Contains(entry.Text, "GET /api/users") {
		t.Errorf("expected code block content in text, got %q", entry.Text)
	}
	if !strings.Contains(entry.Text, "More text after code.") {
		t.Errorf("expected post-code text, got %q", entry.Text)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	tree, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Sections) != 0 {
		t.Errorf("expected 0 sections for empty input, got %d", len(tree.Sections))
	}
}

func TestMarkdownParser_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"plan.md", "plan"},
		{"notes.markdown", "notes"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		tree, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if tree.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, tree.Title)
		}
	}
}
