package reqdb

import "go.uber.org/zap"

// Delete removes a requirement. A chapter emptied by the removal is
// dropped from the file; the category file itself stays on disk even when
// no chapters remain. The requirement's number is never reallocated.
func (s *Store) Delete(index string) (Deleted, error) {
	if err := validateIndex(index); err != nil {
		return Deleted{}, err
	}

	catPrefix, chPrefix, _, err := parseIndex(index)
	if err != nil {
		return Deleted{}, err
	}

	category, err := s.resolveCategory(catPrefix)
	if err != nil {
		return Deleted{}, err
	}

	path := s.categoryPath(category)

	release, err := s.lockCategory(path)
	if err != nil {
		return Deleted{}, err
	}
	defer release()

	doc, err := s.loadDocument(category)
	if err != nil {
		return Deleted{}, err
	}

	c, r := findByPrefix(doc, chPrefix, index)
	if r == nil {
		return Deleted{}, ErrRequirementNotFound
	}

	deleted := Deleted{
		Index:    r.Index,
		Title:    r.Title,
		Category: category,
		Chapter:  c.Name,
	}

	c.Remove(index)

	if len(c.Requirements) == 0 {
		doc.RemoveChapter(c.Name)
	}

	if err := s.writeFileUTF8(path, doc.Serialize()); err != nil {
		return Deleted{}, err
	}

	s.log.Debug("requirement deleted",
		zap.String("index", index),
		zap.String("category", category),
		zap.String("chapter", deleted.Chapter))

	return deleted, nil
}

// DeleteBatch removes each index independently and returns one Result per
// input element, in input order.
func (s *Store) DeleteBatch(indices []string) ([]Result[Deleted], error) {
	if len(indices) > MaxBatchSize {
		return nil, structuralErr("Batch delete exceeds maximum limit of 100 indices")
	}

	results := make([]Result[Deleted], 0, len(indices))

	for _, index := range indices {
		d, err := s.Delete(index)
		if err != nil {
			results = append(results, Fail[Deleted](err))
			continue
		}

		results = append(results, Ok(d))
	}

	return results, nil
}
