// Package reqdb provides a markdown-backed structured requirement store.
//
// # Overview
//
// Requirements live in one UTF-8 markdown file per category
// ("{category}.md") inside a requirements directory. A level-1 ATX heading
// is a chapter, a level-2 heading of the form "## {index}: {title}" is a
// requirement. The sibling file AGENTS.md is reserved and never parsed as a
// category.
//
// An index is "{category_prefix}.{chapter_prefix}.{number}", e.g. "G.S.1".
// Prefixes are uppercase letter abbreviations unique among siblings; once a
// category or chapter owns a requirement, its prefix is reused from that
// requirement's index instead of being recomputed. Numbers grow
// monotonically per chapter and are never reused after deletion.
//
// # Operations
//
// [Store.Get], [Store.Insert], [Store.Update], [Store.Delete] operate on
// single requirements. [Store.GetBatch], [Store.UpdateBatch] and
// [Store.DeleteBatch] accept up to 100 elements and return one tagged
// [Result] per input element, in input order; one element's failure never
// aborts or rolls back the others. [Store.Search] matches keywords
// case-insensitively against titles and body text across all categories.
// [Store.Categories], [Store.Chapters] and [Store.Requirements] list the
// hierarchy.
//
// # Consistency
//
// There is no cross-call state: every operation re-reads the category file,
// builds an in-memory document, mutates it, and atomically rewrites the
// whole file. A write either fully replaces the file or the prior contents
// remain. Mutating operations on the same category file serialize through a
// per-path mutex plus a cross-process flock; reads are lock-free.
package reqdb
