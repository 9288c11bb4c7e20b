package reqdb

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/reqlix/reqdb/pkg/reqdb/reqmd"
)

// Insert adds a requirement to a chapter, creating the category file and
// the chapter when missing.
//
// The index is allocated here: category and chapter prefixes are reused
// from existing requirements when the file already has any, computed from
// the sibling names otherwise, and the number is one past the chapter's
// highest. Titles must be unique within the chapter.
func (s *Store) Insert(category, chapter, title, text string) (Requirement, error) {
	if err := validateCategory(category); err != nil {
		return Requirement{}, err
	}

	if err := validateChapter(chapter); err != nil {
		return Requirement{}, err
	}

	if err := validateTitle(title, true); err != nil {
		return Requirement{}, err
	}

	if err := validateText(text); err != nil {
		return Requirement{}, err
	}

	path := s.categoryPath(category)

	release, err := s.lockCategory(path)
	if err != nil {
		return Requirement{}, err
	}
	defer release()

	doc, err := s.loadDocument(category)
	if err != nil {
		return Requirement{}, err
	}

	c := doc.Chapter(chapter)
	if c == nil {
		c = doc.AddChapter(chapter)
	}

	if c.HasTitle(title, "") {
		return Requirement{}, ErrTitleExists
	}

	categories, err := s.listCategories()
	if err != nil {
		return Requirement{}, err
	}

	catPrefix, ok := reusedCategoryPrefix(doc)
	if !ok {
		catPrefix = computePrefix(category, siblingsOf(category, categories))
	}

	index := catPrefix + "." + chapterPrefix(doc, c) + "." + strconv.Itoa(nextNumber(c))

	r := &reqmd.Requirement{Index: index, Title: title}
	r.SetText(text)
	c.Requirements = append(c.Requirements, r)

	if err := s.writeFileUTF8(path, doc.Serialize()); err != nil {
		return Requirement{}, err
	}

	s.log.Debug("requirement inserted",
		zap.String("index", index),
		zap.String("category", category),
		zap.String("chapter", chapter))

	return requirementRecord(category, c, r), nil
}
