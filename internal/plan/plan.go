// Package plan locates a named section of a planning document and parses
// the numbered work items inside it.
package plan

import (
	"errors"
	"strings"
)

// ErrSectionNotFound means the document does not contain the section marker.
var ErrSectionNotFound = errors.New("section not found")

// Entry is one numbered work item parsed out of a plan section.
type Entry struct {
	Number string `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// ComposedTitle is the issue title filed for this entry.
func (e Entry) ComposedTitle() string {
	return e.Number + ". " + e.Title
}

// Extract returns the document text from the first occurrence of marker to
// the end of the document. The section deliberately runs to the end rather
// than to the next top-level heading; trailing content under a later heading
// is included.
func Extract(doc, marker string) (string, error) {
	i := strings.Index(doc, marker)
	if i < 0 {
		return "", ErrSectionNotFound
	}
	return doc[i:], nil
}

// ParseEntries scans a plan section and returns its entries in document
// order. An entry starts at a heading line and its body is everything up to
// the next heading line (or end of input), trimmed. Blank lines inside a
// body are kept; digit-dot text that does not start a line never opens a
// new entry. A section with no headings yields an empty slice.
func ParseEntries(section string) []Entry {
	var entries []Entry
	var body []string

	flush := func() {
		if len(entries) == 0 {
			body = nil
			return
		}
		entries[len(entries)-1].Body = strings.TrimSpace(strings.Join(body, "\n"))
		body = nil
	}

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if number, title, ok := parseHeading(line); ok {
			flush()
			entries = append(entries, Entry{Number: number, Title: title})
			continue
		}
		if len(entries) > 0 {
			body = append(body, line)
		}
	}
	flush()

	return entries
}

// parseHeading recognizes an entry heading line: an optional markdown
// hash prefix followed by a space, then digits, then ". ", then the title.
// Both "#### 12. Title" and bare "12. Title" qualify.
func parseHeading(line string) (number, title string, ok bool) {
	rest := line
	if strings.HasPrefix(rest, "#") {
		i := 0
		for i < len(rest) && rest[i] == '#' {
			i++
		}
		if i >= len(rest) || rest[i] != ' ' {
			return "", "", false
		}
		rest = rest[i+1:]
	}
	return SplitEntryTitle(rest)
}

// SplitEntryTitle splits a bare "12. Title" string into its number and
// trimmed title. It reports false when s is not of that form.
func SplitEntryTitle(s string) (number, title string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || !strings.HasPrefix(s[i:], ". ") {
		return "", "", false
	}
	title = strings.TrimSpace(s[i+2:])
	if title == "" {
		return "", "", false
	}
	return s[:i], title, true
}
