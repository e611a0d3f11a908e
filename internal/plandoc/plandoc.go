// Package plandoc holds the structural form of a planning document.
package plandoc

import (
	"strings"

	"github.com/dotandev/planfiler/internal/plan"
)

// Tree is the root of a parsed planning document.
type Tree struct {
	Title    string  // Document title (from metadata or filename)
	Sections []*Node // Top-level sections
}

// Node is a recursive section of the plan.
type Node struct {
	Title    string  // Section heading (empty for leaf text)
	Level    int     // Heading level in the source document (0 if N/A)
	Text     string  // Text content of this node (may be empty for container nodes)
	Page     int     // Source page (0 if N/A)
	Children []*Node // Subsections
}

// Flatten renders the tree back to markdown-style text, headings re-emitted
// as hash runs by level, so the section extractor and entry parser can run
// over documents that did not arrive as text.
func (t *Tree) Flatten() string {
	var b strings.Builder
	for _, s := range t.Sections {
		s.flattenInto(&b)
	}
	return b.String()
}

// Flatten renders this node and its subtree as markdown-style text.
func (n *Node) Flatten() string {
	var b strings.Builder
	n.flattenInto(&b)
	return b.String()
}

func (n *Node) flattenInto(b *strings.Builder) {
	if n.Title != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		level := n.Level
		if level <= 0 {
			level = 1
		}
		b.WriteString(strings.Repeat("#", level))
		b.WriteByte(' ')
		b.WriteString(n.Title)
	}
	if n.Text != "" {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(n.Text)
	}
	for _, c := range n.Children {
		c.flattenInto(b)
	}
}

// OutlineItem summarizes one section for pre-flight inspection before
// filing: its heading, level, and how many numbered entries sit under it.
type OutlineItem struct {
	Title    string        `json:"title"`
	Level    int           `json:"level"`
	Entries  int           `json:"entries"`
	Children []OutlineItem `json:"children,omitempty"`
}

// Outline walks the tree and summarizes its sections. Child nodes whose
// titles are themselves numbered entries are counted rather than listed.
func Outline(t *Tree) []OutlineItem {
	return outlineNodes(t.Sections)
}

func outlineNodes(nodes []*Node) []OutlineItem {
	var items []OutlineItem
	for _, n := range nodes {
		if _, _, ok := plan.SplitEntryTitle(n.Title); ok {
			continue
		}
		item := OutlineItem{
			Title: n.Title,
			Level: n.Level,
		}
		for _, c := range n.Children {
			if _, _, ok := plan.SplitEntryTitle(c.Title); ok {
				item.Entries++
			}
		}
		// Headingless documents flatten to plain text; entries may sit in
		// the node body rather than as child nodes.
		if item.Entries == 0 && n.Text != "" {
			item.Entries = len(plan.ParseEntries(n.Text))
		}
		item.Children = outlineNodes(n.Children)
		items = append(items, item)
	}
	return items
}
