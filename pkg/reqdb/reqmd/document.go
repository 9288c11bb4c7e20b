package reqmd

import "strings"

// Requirement is a level-2 heading section within a chapter.
//
// Index is immutable once created; Title must be unique within the owning
// chapter. Body holds the raw lines between this heading and the next
// heading of level <=2, verbatim (code fences and blank lines included).
type Requirement struct {
	Index string
	Title string
	Body  []string

	// Malformed marks a heading whose content did not split into
	// "{index}: {title}". Index then holds the full heading content and
	// Title is empty. Malformed requirements are never matched by index.
	Malformed bool
}

// Text returns the body as a single string with leading and trailing blank
// lines removed. Interior formatting is preserved verbatim.
func (r *Requirement) Text() string {
	return strings.Join(trimBlankEdges(r.Body), "\n")
}

// SetText replaces the body with the lines of text.
func (r *Requirement) SetText(text string) {
	r.Body = SplitLines(text + "\n")
}

// Chapter is a level-1 heading section holding requirements in
// file-appearance order.
type Chapter struct {
	Name string

	// Preamble holds raw lines between the chapter heading and the first
	// requirement heading.
	Preamble []string

	Requirements []*Requirement
}

// Find returns the requirement with the exact index, or nil.
// Malformed requirements are never matched.
func (c *Chapter) Find(index string) *Requirement {
	for _, r := range c.Requirements {
		if !r.Malformed && r.Index == index {
			return r
		}
	}

	return nil
}

// HasTitle reports whether any requirement other than excludeIndex carries
// the exact title. Comparison is case-sensitive.
func (c *Chapter) HasTitle(title, excludeIndex string) bool {
	for _, r := range c.Requirements {
		if r.Malformed {
			continue
		}

		if excludeIndex != "" && r.Index == excludeIndex {
			continue
		}

		if r.Title == title {
			return true
		}
	}

	return false
}

// Remove deletes the requirement with the exact index.
// Returns false if no such requirement exists.
func (c *Chapter) Remove(index string) bool {
	for i, r := range c.Requirements {
		if !r.Malformed && r.Index == index {
			c.Requirements = append(c.Requirements[:i], c.Requirements[i+1:]...)

			return true
		}
	}

	return false
}

// Document is the in-memory model of one category file.
type Document struct {
	// Preamble holds raw lines before the first chapter heading.
	Preamble []string

	Chapters []*Chapter
}

// Parse builds a Document from file text.
//
// Level-2 headings appearing before any chapter heading have no chapter to
// belong to; they and their body lines are kept verbatim in the document
// preamble so a rewrite does not lose them.
func Parse(text string) *Document {
	doc := &Document{}

	var (
		chapter *Chapter
		req     *Requirement
	)

	appendLine := func(line string) {
		switch {
		case req != nil:
			req.Body = append(req.Body, line)
		case chapter != nil:
			chapter.Preamble = append(chapter.Preamble, line)
		default:
			doc.Preamble = append(doc.Preamble, line)
		}
	}

	for _, ev := range Scan(text) {
		switch ev.Kind {
		case EventChapterHeading:
			chapter = &Chapter{Name: ev.Name}
			req = nil
			doc.Chapters = append(doc.Chapters, chapter)
		case EventRequirementHeading:
			if chapter == nil {
				appendLine(ev.Line)

				continue
			}

			req = &Requirement{Index: ev.Index, Title: ev.Title, Malformed: ev.Malformed}
			chapter.Requirements = append(chapter.Requirements, req)
		case EventBodyLine, EventFenceToggle:
			appendLine(ev.Line)
		}
	}

	return doc
}

// Chapter returns the chapter with the exact name, or nil.
// Names are matched exactly, never by substring.
func (d *Document) Chapter(name string) *Chapter {
	for _, c := range d.Chapters {
		if c.Name == name {
			return c
		}
	}

	return nil
}

// AddChapter appends a new chapter at the end of the document and returns
// it.
func (d *Document) AddChapter(name string) *Chapter {
	c := &Chapter{Name: name}
	d.Chapters = append(d.Chapters, c)

	return c
}

// RemoveChapter deletes the chapter with the exact name.
// Returns false if no such chapter exists.
func (d *Document) RemoveChapter(name string) bool {
	for i, c := range d.Chapters {
		if c.Name == name {
			d.Chapters = append(d.Chapters[:i], d.Chapters[i+1:]...)

			return true
		}
	}

	return false
}

// Find returns the chapter and requirement holding the exact index, or
// (nil, nil).
func (d *Document) Find(index string) (*Chapter, *Requirement) {
	for _, c := range d.Chapters {
		if r := c.Find(index); r != nil {
			return c, r
		}
	}

	return nil, nil
}

// trimBlankEdges returns lines with leading and trailing blank lines
// removed. Interior blank lines are preserved.
func trimBlankEdges(lines []string) []string {
	start := 0
	for start < len(lines) && strings.TrimSpace(lines[start]) == "" {
		start++
	}

	end := len(lines)
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	return lines[start:end]
}
