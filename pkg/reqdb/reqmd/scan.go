// Package reqmd implements the markdown requirement file format.
//
// A category file is UTF-8 markdown with a two-level structure:
//
//	# Chapter Name
//
//	## G.S.1: Requirement title
//
//	Requirement body, verbatim markdown.
//
// A level-1 ATX heading opens a chapter, a level-2 heading opens a
// requirement. Heading recognition follows ATX rules: up to three leading
// spaces, exactly N '#' characters, then a mandatory space. Trailing '#'
// runs are kept as heading text. Headings inside fenced code blocks are
// body content; a fence toggles on any line whose trimmed content begins
// with three backticks, regardless of language tag.
//
// [Scan] tokenizes file text into ordered events, [Parse] builds a
// [Document] from them, and [Document.Serialize] writes the document back
// in a stable normal form. The event stream is transient and never
// persisted.
package reqmd

import "strings"

// EventKind identifies a scanner event.
type EventKind int

const (
	// EventChapterHeading is a level-1 heading outside a code fence.
	EventChapterHeading EventKind = iota + 1

	// EventRequirementHeading is a level-2 heading outside a code fence.
	EventRequirementHeading

	// EventBodyLine is any other line, including blank lines and heading
	// lookalikes inside code fences.
	EventBodyLine

	// EventFenceToggle is a line whose trimmed content begins with three
	// backticks. The first fence opens a code block, the next closes it.
	EventFenceToggle
)

// Event is one structural token of a category file.
// Line always holds the raw line so consumers can preserve text verbatim.
type Event struct {
	Kind EventKind
	Line string

	// Name is the chapter name for EventChapterHeading.
	Name string

	// Index and Title are set for EventRequirementHeading. A heading whose
	// content does not split into "{index}: {title}" is marked Malformed:
	// the full content becomes the Index and Title stays empty.
	Index     string
	Title     string
	Malformed bool
}

// Scan tokenizes text into ordered events, one per line.
//
// Output preserves exact line order, including blank lines. Heading events
// are only emitted outside open code fences; fence state is tracked across
// the whole file.
func Scan(text string) []Event {
	lines := SplitLines(text)
	events := make([]Event, 0, len(lines))

	inFence := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence

			events = append(events, Event{Kind: EventFenceToggle, Line: line})

			continue
		}

		if inFence {
			events = append(events, Event{Kind: EventBodyLine, Line: line})

			continue
		}

		level, content, ok := parseHeading(line)

		switch {
		case ok && level == 1:
			events = append(events, Event{
				Kind: EventChapterHeading,
				Line: line,
				Name: content,
			})
		case ok && level == 2:
			ev := Event{Kind: EventRequirementHeading, Line: line}
			ev.Index, ev.Title, ev.Malformed = splitIndexTitle(content)

			events = append(events, ev)
		default:
			// Level-3+ headings are body content: only headings of level <=2
			// delimit sections.
			events = append(events, Event{Kind: EventBodyLine, Line: line})
		}
	}

	return events
}

// SplitLines splits text into lines without trailing newlines.
//
// A trailing newline does not produce a final empty line. CRLF line endings
// are normalized by stripping the trailing '\r'.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// parseHeading reports whether line is an ATX heading and at which level.
//
// A line is a level-N heading iff: up to 3 leading spaces (ignored), then
// exactly N '#' characters, then a mandatory space, then the heading text.
// Trailing '#' characters are kept as part of the text. Four or more
// leading spaces make the line indented code, never a heading.
func parseHeading(line string) (level int, text string, ok bool) {
	s := line

	indent := 0
	for indent < len(s) && indent < 3 && s[indent] == ' ' {
		indent++
	}

	s = s[indent:]

	if len(s) > 0 && s[0] == ' ' {
		return 0, "", false
	}

	for level < len(s) && s[level] == '#' {
		level++
	}

	if level == 0 || level >= len(s) || s[level] != ' ' {
		return 0, "", false
	}

	return level, strings.TrimSpace(s[level+1:]), true
}

// splitIndexTitle splits requirement heading content on the first ": ".
//
// Both halves are trimmed and must be non-empty. Content that does not
// split is malformed: the full content is returned as an opaque index with
// an empty title. Malformed requirements keep their section boundaries but
// are excluded from index-based lookup.
func splitIndexTitle(content string) (index, title string, malformed bool) {
	sep := strings.Index(content, ": ")
	if sep < 0 {
		return content, "", true
	}

	index = strings.TrimSpace(content[:sep])
	title = strings.TrimSpace(content[sep+2:])

	if index == "" || title == "" {
		return content, "", true
	}

	return index, title, false
}
