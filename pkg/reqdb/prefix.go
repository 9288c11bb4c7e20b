package reqdb

import (
	"strconv"
	"strings"

	"github.com/reqlix/reqdb/pkg/reqdb/reqmd"
)

// computePrefix derives the uppercase abbreviation identifying name among
// its siblings. Only ASCII letters participate: they are uppercased and the
// prefix grows one letter at a time until no sibling shares a prefix of the
// same length. A name without letters has no prefix.
//
// When even the full letter sequence collides, the names sharing that
// sequence are ranked alphabetically and a decimal suffix (2, 3, ...) is
// appended by rank, so the outcome does not depend on sibling order.
func computePrefix(name string, siblings []string) string {
	ls := prefixLetters(name)
	if ls == "" {
		return ""
	}

	for n := 1; n <= len(ls); n++ {
		if !prefixTaken(ls[:n], n, name, siblings) {
			return ls[:n]
		}
	}

	rank := 0
	for _, other := range siblings {
		if other != name && prefixLetters(other) == ls && other < name {
			rank++
		}
	}

	return ls + strconv.Itoa(rank+2)
}

func prefixTaken(prefix string, n int, name string, siblings []string) bool {
	for _, other := range siblings {
		if other == name {
			continue
		}

		ol := prefixLetters(other)
		if ol == "" {
			continue
		}

		if len(ol) > n {
			ol = ol[:n]
		}

		if ol == prefix {
			return true
		}
	}

	return false
}

func prefixLetters(name string) string {
	var b strings.Builder

	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteByte(byte(c) - 'a' + 'A')
		case c >= 'A' && c <= 'Z':
			b.WriteByte(byte(c))
		}
	}

	return b.String()
}

// parseIndex splits "{category_prefix}.{chapter_prefix}.{number}" into its
// three parts.
func parseIndex(index string) (catPrefix, chPrefix, number string, err error) {
	parts := strings.Split(index, ".")
	if len(parts) != 3 {
		return "", "", "", invalidIndexErr(index)
	}

	return parts[0], parts[1], parts[2], nil
}

// reusedCategoryPrefix returns the category prefix recorded in the first
// well-formed requirement anywhere in the document. Once a file owns a
// requirement, its prefix is authoritative; recomputation only happens for
// empty files.
func reusedCategoryPrefix(doc *reqmd.Document) (string, bool) {
	for _, c := range doc.Chapters {
		for _, r := range c.Requirements {
			if r.Malformed {
				continue
			}

			if parts := strings.Split(r.Index, "."); parts[0] != "" {
				return parts[0], true
			}
		}
	}

	return "", false
}

// reusedChapterPrefix returns the chapter prefix recorded in the first
// well-formed requirement of the chapter whose index has at least two
// parts.
func reusedChapterPrefix(c *reqmd.Chapter) (string, bool) {
	for _, r := range c.Requirements {
		if r.Malformed {
			continue
		}

		if parts := strings.Split(r.Index, "."); len(parts) >= 2 && parts[1] != "" {
			return parts[1], true
		}
	}

	return "", false
}

// nextNumber returns one past the highest numeric third index part in the
// chapter. Numbers of deleted requirements are never reused, so gaps
// persist.
func nextNumber(c *reqmd.Chapter) int {
	max := 0

	for _, r := range c.Requirements {
		if r.Malformed {
			continue
		}

		parts := strings.Split(r.Index, ".")
		if len(parts) != 3 {
			continue
		}

		if n, err := strconv.Atoi(parts[2]); err == nil && n > max {
			max = n
		}
	}

	return max + 1
}
