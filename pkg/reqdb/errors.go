package reqdb

import (
	"errors"
	"fmt"
)

// Kind classifies a store operation failure.
type Kind int

const (
	// KindValidation marks malformed or out-of-range input parameters.
	KindValidation Kind = iota + 1

	// KindNotFound marks a missing category, chapter or requirement.
	KindNotFound

	// KindConflict marks a duplicate title within a chapter.
	KindConflict

	// KindFilesystem marks a read, write or lock failure, including
	// non-UTF-8 file contents.
	KindFilesystem

	// KindStructural marks a batch container violation, such as exceeding
	// the element limit. Structural errors fail the whole batch; element
	// errors are reported per Result instead.
	KindStructural
)

// Error is the failure type returned by all Store operations.
//
// The message alone identifies the failure; Err, when set, carries the
// underlying cause for errors.Is/errors.As chains.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Err }

// Is matches errors by kind and message so that sentinel values like
// ErrRequirementNotFound compare equal to freshly constructed errors of
// the same shape.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind && e.Msg == t.Msg
}

var (
	ErrCategoryNotFound    = &Error{Kind: KindNotFound, Msg: "Category not found"}
	ErrChapterNotFound     = &Error{Kind: KindNotFound, Msg: "Chapter not found"}
	ErrRequirementNotFound = &Error{Kind: KindNotFound, Msg: "Requirement not found"}
	ErrTitleExists         = &Error{Kind: KindConflict, Msg: "Title already exists in chapter"}
)

// KindOf returns the kind of err, or zero when err did not originate in
// this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}

	return 0
}

func validationErr(msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg}
}

func validationErrf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func structuralErr(msg string) *Error {
	return &Error{Kind: KindStructural, Msg: msg}
}

func fsErr(msg string, cause error) *Error {
	return &Error{Kind: KindFilesystem, Msg: msg, Err: cause}
}

func invalidIndexErr(index string) *Error {
	return validationErr("Invalid index format: " + index)
}
