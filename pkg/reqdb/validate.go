package reqdb

import "strings"

const (
	maxCategoryLen = 100
	maxChapterLen  = 100
	maxIndexLen    = 100
	maxTitleLen    = 100
	maxTextLen     = 10000
	maxKeywordLen  = 200

	// MaxBatchSize bounds the element count of GetBatch, UpdateBatch,
	// DeleteBatch and Search inputs.
	MaxBatchSize = 100
)

func validateCategory(value string) error {
	if value == "" {
		return validationErr("category is required")
	}

	if len(value) > maxCategoryLen {
		return validationErrf("category exceeds maximum length of %d characters", maxCategoryLen)
	}

	if strings.TrimSpace(value) != value {
		return validationErr("category name must not start or end with whitespace")
	}

	for _, c := range value {
		if (c < 'a' || c > 'z') && c != '_' {
			return validationErr("category name must contain only lowercase English letters (a-z) and underscore (_)")
		}
	}

	return nil
}

func validateChapter(value string) error {
	if value == "" {
		return validationErr("chapter is required")
	}

	if len(value) > maxChapterLen {
		return validationErrf("chapter exceeds maximum length of %d characters", maxChapterLen)
	}

	if strings.TrimSpace(value) != value {
		return validationErr("chapter name must not start or end with whitespace")
	}

	for _, c := range value {
		if isASCIILetter(c) || c == ' ' || c == ':' || c == '-' || c == '_' {
			continue
		}

		return validationErr("chapter name must contain only uppercase and lowercase English letters (A-Z, a-z), spaces, colons (:), hyphens (-), and underscores (_)")
	}

	return nil
}

func validateIndex(value string) error {
	if value == "" {
		return validationErr("index is required")
	}

	if len(value) > maxIndexLen {
		return validationErrf("index exceeds maximum length of %d characters", maxIndexLen)
	}

	return nil
}

func validateText(value string) error {
	if value == "" {
		return validationErr("text is required")
	}

	if len(value) > maxTextLen {
		return validationErrf("text exceeds maximum length of %d characters", maxTextLen)
	}

	return nil
}

// validateTitle checks title constraints. Titles are embedded in level-2
// headings ("## {index}: {title}"), so newlines are rejected outright; any
// other character is legal heading content.
func validateTitle(value string, required bool) error {
	if required && value == "" {
		return validationErr("title is required")
	}

	if len(value) > maxTitleLen {
		return validationErrf("title exceeds maximum length of %d characters", maxTitleLen)
	}

	if strings.ContainsAny(value, "\n\r") {
		return validationErr("title must not contain newlines (invalid for markdown heading)")
	}

	return nil
}

// validateKeywords bounds the keyword list, trims each keyword and drops
// the ones that end up empty. An empty result is not an error.
func validateKeywords(keywords []string) ([]string, error) {
	if len(keywords) > MaxBatchSize {
		return nil, structuralErr("Keywords count exceeds maximum limit of 100")
	}

	filtered := make([]string, 0, len(keywords))

	for _, k := range keywords {
		if len(k) > maxKeywordLen {
			return nil, validationErrf("Keyword exceeds maximum length of %d characters", maxKeywordLen)
		}

		if k = strings.TrimSpace(k); k != "" {
			filtered = append(filtered, k)
		}
	}

	return filtered, nil
}

func isASCIILetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
