package reqdb

// Get returns the requirement identified by index. The category is matched
// by the first index part, the chapter by the second, the requirement by
// the full index.
func (s *Store) Get(index string) (Requirement, error) {
	if err := validateIndex(index); err != nil {
		return Requirement{}, err
	}

	category, _, c, r, err := s.locate(index)
	if err != nil {
		return Requirement{}, err
	}

	return requirementRecord(category, c, r), nil
}

// GetBatch looks up each index independently and returns one Result per
// input element, in input order. The returned error is non-nil only when
// the batch container itself is invalid; an empty batch succeeds with an
// empty result slice.
func (s *Store) GetBatch(indices []string) ([]Result[Requirement], error) {
	if len(indices) > MaxBatchSize {
		return nil, structuralErr("Batch request exceeds maximum limit of 100 indices")
	}

	results := make([]Result[Requirement], 0, len(indices))

	for _, index := range indices {
		r, err := s.Get(index)
		if err != nil {
			results = append(results, Fail[Requirement](err))
			continue
		}

		results = append(results, Ok(r))
	}

	return results, nil
}

// Categories lists the category names in the requirements directory,
// sorted.
func (s *Store) Categories() ([]string, error) {
	return s.listCategories()
}

// Chapters lists the chapter names of a category in file order.
func (s *Store) Chapters(category string) ([]string, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	doc, err := s.requireCategory(category)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(doc.Chapters))
	for _, c := range doc.Chapters {
		names = append(names, c.Name)
	}

	return names, nil
}

// Requirements lists the requirements of one chapter as index/title pairs
// in file order. Headings without a parseable index are omitted.
func (s *Store) Requirements(category, chapter string) ([]Summary, error) {
	if err := validateCategory(category); err != nil {
		return nil, err
	}

	if err := validateChapter(chapter); err != nil {
		return nil, err
	}

	doc, err := s.requireCategory(category)
	if err != nil {
		return nil, err
	}

	c := doc.Chapter(chapter)
	if c == nil {
		return nil, ErrChapterNotFound
	}

	summaries := make([]Summary, 0, len(c.Requirements))

	for _, r := range c.Requirements {
		if r.Malformed {
			continue
		}

		summaries = append(summaries, Summary{Index: r.Index, Title: r.Title})
	}

	return summaries, nil
}
