package reqmd

import "strings"

// Serialize reconstructs the file text in the stable normal form.
//
// Chapter and requirement order is preserved. Every requirement block is
// written as "## {index}: {title}" followed by a blank line, its body, and
// a blank line before the next heading; headings are never adjacent without
// a blank line between them. Bodies are written verbatim with leading and
// trailing blank lines trimmed, since block separation supplies them.
//
// Serializing then re-parsing yields an equivalent document, and
// serializing an already-normalized file reproduces it byte for byte.
func (d *Document) Serialize() string {
	var out []string

	if pre := trimBlankEdges(d.Preamble); len(pre) > 0 {
		out = append(out, pre...)
	}

	for _, c := range d.Chapters {
		if len(out) > 0 {
			out = append(out, "")
		}

		out = append(out, "# "+c.Name)

		if pre := trimBlankEdges(c.Preamble); len(pre) > 0 {
			out = append(out, "")
			out = append(out, pre...)
		}

		for _, r := range c.Requirements {
			out = append(out, "", r.headingLine())

			if body := trimBlankEdges(r.Body); len(body) > 0 {
				out = append(out, "")
				out = append(out, body...)
			}
		}
	}

	if len(out) == 0 {
		return ""
	}

	return strings.Join(out, "\n") + "\n"
}

func (r *Requirement) headingLine() string {
	if r.Malformed {
		return "## " + r.Index
	}

	return "## " + r.Index + ": " + r.Title
}
