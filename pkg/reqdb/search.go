package reqdb

import (
	"strings"

	"go.uber.org/zap"
)

// Search scans every requirement in every category for the given keywords.
// A requirement matches when any keyword is a case-insensitive substring
// of its title or body text. Keywords are trimmed and empty ones dropped;
// an empty effective list succeeds with empty results. Result order is
// unspecified.
func (s *Store) Search(keywords []string) (SearchResult, error) {
	kw, err := validateKeywords(keywords)
	if err != nil {
		return SearchResult{}, err
	}

	out := SearchResult{Keywords: kw, Results: []Requirement{}}

	if len(kw) == 0 {
		return out, nil
	}

	categories, err := s.listCategories()
	if err != nil {
		return SearchResult{}, err
	}

	lowered := make([]string, len(kw))
	for i, k := range kw {
		lowered[i] = strings.ToLower(k)
	}

	for _, category := range categories {
		doc, err := s.loadDocument(category)
		if err != nil {
			// One unreadable category must not fail the whole search.
			s.log.Warn("skipping unreadable category",
				zap.String("category", category), zap.Error(err))

			continue
		}

		for _, c := range doc.Chapters {
			for _, r := range c.Requirements {
				if r.Malformed {
					continue
				}

				if matchesAny(r.Title, r.Text(), lowered) {
					out.Results = append(out.Results, requirementRecord(category, c, r))
				}
			}
		}
	}

	return out, nil
}

func matchesAny(title, text string, lowered []string) bool {
	t := strings.ToLower(title)
	b := strings.ToLower(text)

	for _, k := range lowered {
		if strings.Contains(t, k) || strings.Contains(b, k) {
			return true
		}
	}

	return false
}
