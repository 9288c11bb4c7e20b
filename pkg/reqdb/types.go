package reqdb

import "encoding/json"

// Requirement is the full record returned by read and mutation operations.
type Requirement struct {
	Index    string `json:"index"`
	Title    string `json:"title"`
	Text     string `json:"text"`
	Category string `json:"category"`
	Chapter  string `json:"chapter"`
}

// Summary identifies a requirement inside an already known category and
// chapter.
type Summary struct {
	Index string `json:"index"`
	Title string `json:"title"`
}

// Deleted describes a requirement that was removed.
type Deleted struct {
	Index    string `json:"index"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Chapter  string `json:"chapter"`
}

// SearchResult echoes the effective keywords alongside every matching
// requirement. Result order is unspecified.
type SearchResult struct {
	Keywords []string      `json:"keywords"`
	Results  []Requirement `json:"results"`
}

// Result is the tagged outcome of one batch element. A batch call returns
// one Result per input element in input order; elements succeed and fail
// independently.
type Result[T any] struct {
	Data T
	Err  error
}

// Ok wraps a successful element outcome.
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Fail wraps a failed element outcome.
func Fail[T any](err error) Result[T] {
	var zero T
	return Result[T]{Data: zero, Err: err}
}

// MarshalJSON renders the envelope form: {"success":true,"data":...} on
// success, {"success":false,"error":"..."} on failure.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Err != nil {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{false, r.Err.Error()})
	}

	return json.Marshal(struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}{true, r.Data})
}
