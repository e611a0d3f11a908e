package plandoc

import (
	"testing"

	"github.com/dotandev/planfiler/internal/plan"
)

func samplePlanTree() *Tree {
	return &Tree{
		Title: "implementation_plan",
		Sections: []*Node{
			{
				Title: "Phase 8",
				Level: 3,
				Text:  "Wrap-up notes.",
			},
			{
				Title: "Phase 9",
				Level: 3,
				Children: []*Node{
					{Title: "1. First Task", Level: 4, Text: "Do the first thing."},
					{Title: "2. Second Task", Level: 4, Text: "Do the second thing."},
				},
			},
		},
	}
}

func TestFlatten_RebuildsMarkdownHeadings(t *testing.T) {
	text := samplePlanTree().Flatten()

	want := "### Phase 8\n\nWrap-up notes.\n\n### Phase 9\n\n#### 1. First Task\n\nDo the first thing.\n\n#### 2. Second Task\n\nDo the second thing."
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestFlatten_FeedsExtractorAndParser(t *testing.T) {
	text := samplePlanTree().Flatten()

	section, err := plan.Extract(text, "### Phase 9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := plan.ParseEntries(section)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Number != "1" || entries[0].Title != "First Task" || entries[0].Body != "Do the first thing." {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
}

func TestFlatten_LevelZeroDefaultsToH1(t *testing.T) {
	tree := &Tree{Sections: []*Node{{Title: "Untitled level"}}}
	if got := tree.Flatten(); got != "# Untitled level" {
		t.Errorf("expected %q, got %q", "# Untitled level", got)
	}
}

func TestOutline_CountsEntriesPerSection(t *testing.T) {
	items := Outline(samplePlanTree())
	if len(items) != 2 {
		t.Fatalf("expected 2 outline items, got %d", len(items))
	}
	if items[0].Title != "Phase 8" || items[0].Entries != 0 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
	if items[1].Title != "Phase 9" || items[1].Entries != 2 {
		t.Errorf("unexpected second item: %+v", items[1])
	}
	if len(items[1].Children) != 0 {
		t.Errorf("entry nodes should be counted, not listed: %+v", items[1].Children)
	}
}

func TestOutline_EntriesInsideLeafText(t *testing.T) {
	// Plain text documents parse to headingless nodes; the numbered entries
	// then live inside the node text.
	tree := &Tree{Sections: []*Node{
		{Text: "1. First\nbody\n2. Second\nbody"},
	}}
	items := Outline(tree)
	if len(items) != 1 {
		t.Fatalf("expected 1 outline item, got %d", len(items))
	}
	if items[0].Entries != 2 {
		t.Errorf("expected 2 entries counted from text, got %d", items[0].Entries)
	}
}
