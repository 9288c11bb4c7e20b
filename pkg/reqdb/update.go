package reqdb

import "go.uber.org/zap"

// UpdateItem is one element of an UpdateBatch call. Title is optional; nil
// keeps the current title.
type UpdateItem struct {
	Index string  `json:"index"`
	Text  string  `json:"text"`
	Title *string `json:"title,omitempty"`
}

// Update replaces a requirement's text and, when title is non-nil, its
// title. The index never changes, even when the prefixes a fresh
// allocation would pick differ from the stored ones.
func (s *Store) Update(index, text string, title *string) (Requirement, error) {
	if err := validateIndex(index); err != nil {
		return Requirement{}, err
	}

	if err := validateText(text); err != nil {
		return Requirement{}, err
	}

	if title != nil {
		if err := validateTitle(*title, false); err != nil {
			return Requirement{}, err
		}
	}

	catPrefix, chPrefix, _, err := parseIndex(index)
	if err != nil {
		return Requirement{}, err
	}

	category, err := s.resolveCategory(catPrefix)
	if err != nil {
		return Requirement{}, err
	}

	path := s.categoryPath(category)

	release, err := s.lockCategory(path)
	if err != nil {
		return Requirement{}, err
	}
	defer release()

	// Fresh read under the lock; the resolve above ran lock-free.
	doc, err := s.loadDocument(category)
	if err != nil {
		return Requirement{}, err
	}

	c, r := findByPrefix(doc, chPrefix, index)
	if r == nil {
		return Requirement{}, ErrRequirementNotFound
	}

	if title != nil {
		if c.HasTitle(*title, index) {
			return Requirement{}, ErrTitleExists
		}

		r.Title = *title
	}

	r.SetText(text)

	if err := s.writeFileUTF8(path, doc.Serialize()); err != nil {
		return Requirement{}, err
	}

	s.log.Debug("requirement updated",
		zap.String("index", index),
		zap.String("category", category))

	return requirementRecord(category, c, r), nil
}

// UpdateBatch applies each item independently and returns one Result per
// item, in input order. A failed item never rolls back the ones already
// applied.
func (s *Store) UpdateBatch(items []UpdateItem) ([]Result[Requirement], error) {
	if len(items) > MaxBatchSize {
		return nil, structuralErr("Batch update exceeds maximum limit of 100 items")
	}

	results := make([]Result[Requirement], 0, len(items))

	for _, item := range items {
		r, err := s.Update(item.Index, item.Text, item.Title)
		if err != nil {
			results = append(results, Fail[Requirement](err))
			continue
		}

		results = append(results, Ok(r))
	}

	return results, nil
}
