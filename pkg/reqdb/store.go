package reqdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"syscall"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/reqlix/reqdb/internal/fs"
	"github.com/reqlix/reqdb/pkg/reqdb/reqmd"
)

// reservedStem is the markdown file in the requirements directory that is
// never treated as a category.
const reservedStem = "AGENTS"

// Store is a handle on one requirements directory. It keeps no document
// state between calls; every operation re-reads the files it touches.
//
// A Store is safe for concurrent use. Mutations of the same category file
// serialize through a per-path mutex and a cross-process flock.
type Store struct {
	dir  string
	fsys fs.FS
	log  *zap.Logger
	perm os.FileMode

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open binds the requirements directory named by cfg.Dir, creating it when
// missing.
func Open(cfg Config) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("reqdb: requirements directory is required")
	}

	fsys := cfg.FS
	if fsys == nil {
		fsys = &fs.Real{LockTimeout: cfg.LockTimeout}
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	perm := cfg.FilePerm
	if perm == 0 {
		perm = 0o644
	}

	dir := filepath.Clean(cfg.Dir)

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating requirements directory: %w", err)
	}

	log.Debug("requirement store opened", zap.String("dir", dir))

	return &Store{
		dir:   dir,
		fsys:  fsys,
		log:   log,
		perm:  perm,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the requirements directory the store is bound to.
func (s *Store) Dir() string { return s.dir }

func (s *Store) categoryPath(category string) string {
	return filepath.Join(s.dir, category+".md")
}

func (s *Store) pathMutex(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.locks[path]
	if !ok {
		m = &sync.Mutex{}
		s.locks[path] = m
	}

	return m
}

// lockCategory serializes mutations of one category file against other
// goroutines (mutex) and other processes (flock). Reads stay lock-free.
func (s *Store) lockCategory(path string) (release func(), err error) {
	m := s.pathMutex(path)
	m.Lock()

	fl, err := s.fsys.Lock(path)
	if err != nil {
		m.Unlock()

		return nil, fsErr(fmt.Sprintf("Failed to lock file %s: %v", path, err), err)
	}

	return func() {
		_ = fl.Close()
		m.Unlock()
	}, nil
}

// readFileUTF8 reads path and maps failures onto the store error taxonomy.
// Non-UTF-8 content is a filesystem error, not silently replaced.
func (s *Store) readFileUTF8(path string) (string, error) {
	data, err := s.fsys.ReadFile(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return "", fsErr("File not found: "+path, err)
		case os.IsPermission(err):
			return "", fsErr("Permission denied: "+path, err)
		default:
			return "", fsErr(fmt.Sprintf("Failed to read file %s: %v", path, err), err)
		}
	}

	if !utf8.Valid(data) {
		return "", fsErr("Encoding error: file is not valid UTF-8: "+path, nil)
	}

	return string(data), nil
}

func (s *Store) writeFileUTF8(path, content string) error {
	err := s.fsys.WriteFileAtomic(path, []byte(content), s.perm)
	if err == nil {
		return nil
	}

	s.log.Error("category write failed", zap.String("path", path), zap.Error(err))

	switch {
	case os.IsPermission(err):
		return fsErr("Permission denied: "+path, err)
	case os.IsNotExist(err):
		return fsErr("Invalid path: "+path, err)
	case errors.Is(err, syscall.ENOSPC):
		return fsErr("Disk full: cannot write to "+path, err)
	default:
		return fsErr(fmt.Sprintf("Failed to write file %s: %v", path, err), err)
	}
}

// listCategories returns the sorted category names, excluding the reserved
// AGENTS.md file.
func (s *Store) listCategories() ([]string, error) {
	entries, err := s.fsys.ReadDir(s.dir)
	if err != nil {
		return nil, fsErr(fmt.Sprintf("Failed to read requirements directory: %v", err), err)
	}

	var categories []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		stem, ok := strings.CutSuffix(e.Name(), ".md")
		if !ok || stem == reservedStem {
			continue
		}

		categories = append(categories, stem)
	}

	sort.Strings(categories)

	return categories, nil
}

// loadDocument parses one category file. A missing file yields an empty
// document, so callers that distinguish absence must check existence first.
func (s *Store) loadDocument(category string) (*reqmd.Document, error) {
	path := s.categoryPath(category)

	ok, err := s.fsys.Exists(path)
	if err != nil {
		return nil, fsErr(fmt.Sprintf("Failed to read file %s: %v", path, err), err)
	}

	if !ok {
		return reqmd.Parse(""), nil
	}

	content, err := s.readFileUTF8(path)
	if err != nil {
		return nil, err
	}

	return reqmd.Parse(content), nil
}

// requireCategory loads a category whose file must already exist on disk.
func (s *Store) requireCategory(category string) (*reqmd.Document, error) {
	path := s.categoryPath(category)

	ok, err := s.fsys.Exists(path)
	if err != nil {
		return nil, fsErr(fmt.Sprintf("Failed to read file %s: %v", path, err), err)
	}

	if !ok {
		return nil, ErrCategoryNotFound
	}

	content, err := s.readFileUTF8(path)
	if err != nil {
		return nil, err
	}

	return reqmd.Parse(content), nil
}

// categoryPrefix resolves the prefix of category: reused from its first
// requirement when the file already has one, computed from the sibling set
// otherwise.
func (s *Store) categoryPrefix(category string, all []string) (string, error) {
	doc, err := s.loadDocument(category)
	if err != nil {
		return "", err
	}

	if p, ok := reusedCategoryPrefix(doc); ok {
		return p, nil
	}

	return computePrefix(category, siblingsOf(category, all)), nil
}

// chapterPrefix resolves the prefix of chapter c within doc, reused from
// the chapter's first requirement when present.
func chapterPrefix(doc *reqmd.Document, c *reqmd.Chapter) string {
	if p, ok := reusedChapterPrefix(c); ok {
		return p
	}

	names := make([]string, 0, len(doc.Chapters))
	for _, other := range doc.Chapters {
		names = append(names, other.Name)
	}

	return computePrefix(c.Name, siblingsOf(c.Name, names))
}

// resolveCategory maps a category prefix back to the category it denotes.
func (s *Store) resolveCategory(prefix string) (string, error) {
	categories, err := s.listCategories()
	if err != nil {
		return "", err
	}

	for _, category := range categories {
		p, err := s.categoryPrefix(category, categories)
		if err != nil {
			return "", err
		}

		if p == prefix {
			return category, nil
		}
	}

	return "", ErrCategoryNotFound
}

// locate finds a requirement by its full index: category by prefix,
// chapter by prefix, then exact index match inside the chapter.
func (s *Store) locate(index string) (category string, doc *reqmd.Document, c *reqmd.Chapter, r *reqmd.Requirement, err error) {
	catPrefix, chPrefix, _, err := parseIndex(index)
	if err != nil {
		return "", nil, nil, nil, err
	}

	category, err = s.resolveCategory(catPrefix)
	if err != nil {
		return "", nil, nil, nil, err
	}

	doc, err = s.loadDocument(category)
	if err != nil {
		return "", nil, nil, nil, err
	}

	c, r = findByPrefix(doc, chPrefix, index)
	if r == nil {
		return "", nil, nil, nil, ErrRequirementNotFound
	}

	return category, doc, c, r, nil
}

// findByPrefix scans the chapters whose prefix matches chPrefix for an
// exact index match.
func findByPrefix(doc *reqmd.Document, chPrefix, index string) (*reqmd.Chapter, *reqmd.Requirement) {
	for _, chapter := range doc.Chapters {
		if chapterPrefix(doc, chapter) != chPrefix {
			continue
		}

		if req := chapter.Find(index); req != nil {
			return chapter, req
		}
	}

	return nil, nil
}

func siblingsOf(name string, all []string) []string {
	siblings := make([]string, 0, len(all))

	for _, other := range all {
		if other != name {
			siblings = append(siblings, other)
		}
	}

	return siblings
}

func requirementRecord(category string, c *reqmd.Chapter, r *reqmd.Requirement) Requirement {
	return Requirement{
		Index:    r.Index,
		Title:    r.Title,
		Text:     r.Text(),
		Category: category,
		Chapter:  c.Name,
	}
}
