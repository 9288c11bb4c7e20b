package reqdb_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reqlix/reqdb/pkg/reqdb"
)

func Test_GetBatch_Preserves_Input_Order_And_Isolates_Failures(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)

	mustInsert(t, s, "general", "Security", "One", "x")
	mustInsert(t, s, "general", "Security", "Two", "y")

	results, err := s.GetBatch([]string{"G.S.2", "bogus", "G.S.1"})
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].Err != nil || results[0].Data.Index != "G.S.2" {
		t.Fatalf("results[0] = %+v", results[0])
	}

	if results[1].Err == nil || results[1].Err.Error() != "Invalid index format: bogus" {
		t.Fatalf("results[1].Err = %v", results[1].Err)
	}

	if results[2].Err != nil || results[2].Data.Index != "G.S.1" {
		t.Fatalf("results[2] = %+v", results[2])
	}
}

func Test_GetBatch_Empty_Input_Succeeds(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)

	results, err := s.GetBatch(nil)
	if err != nil {
		t.Fatalf("err = %v", err)
	}

	if len(results) != 0 {
		t.Fatalf("results = %v", results)
	}
}

func Test_GetBatch_Rejects_Oversized_Container(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)

	results, err := s.GetBatch(make([]string, 101))
	if err == nil || err.Error() != "Batch request exceeds maximum limit of 100 indices" {
		t.Fatalf("err = %v", err)
	}

	if reqdb.KindOf(err) != reqdb.KindStructural {
		t.Fatalf("kind = %v, want structural", reqdb.KindOf(err))
	}

	if results != nil {
		t.Fatalf("results = %v, want nil", results)
	}
}

func Test_UpdateBatch_Applies_Elements_Independently(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)

	mustInsert(t, s, "general", "Security", "One", "old")

	results, err := s.UpdateBatch([]reqdb.UpdateItem{
		{Index: "G.S.1", Text: "new"},
		{Index: "G.S.99", Text: "whatever"},
	})
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}

	if results[0].Err != nil {
		t.Fatalf("results[0].Err = %v", results[0].Err)
	}

	if !errors.Is(results[1].Err, reqdb.ErrRequirementNotFound) {
		t.Fatalf("results[1].Err = %v", results[1].Err)
	}

	// The successful element persisted even though its sibling failed.
	got, err := s.Get("G.S.1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.Text != "new" {
		t.Fatalf("text = %q, want %q", got.Text, "new")
	}
}

func Test_UpdateBatch_Rejects_Oversized_Container(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)

	_, err := s.UpdateBatch(make([]reqdb.UpdateItem, 101))
	if err == nil || err.Error() != "Batch update exceeds maximum limit of 100 items" {
		t.Fatalf("err = %v", err)
	}
}

func Test_DeleteBatch_Duplicate_Index_Fails_Second_Element(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)

	mustInsert(t, s, "general", "Security", "One", "x")

	results, err := s.DeleteBatch([]string{"G.S.1", "G.S.1"})
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}

	if results[0].Err != nil {
		t.Fatalf("results[0].Err = %v", results[0].Err)
	}

	// The first element already removed it; elements never roll back.
	if results[1].Err == nil {
		t.Fatal("second delete of same index succeeded")
	}
}

func Test_DeleteBatch_Rejects_Oversized_Container(t *testing.T) {
	t.Parallel()

	s, _ := openTestStore(t)

	_, err := s.DeleteBatch(make([]string, 101))
	if err == nil || err.Error() != "Batch delete exceeds maximum limit of 100 indices" {
		t.Fatalf("err = %v", err)
	}
}

func Test_Result_JSON_Envelope(t *testing.T) {
	t.Parallel()

	ok, err := json.Marshal(reqdb.Ok(reqdb.Summary{Index: "G.S.1", Title: "One"}))
	if err != nil {
		t.Fatalf("marshal ok: %v", err)
	}

	wantOK := `{"success":true,"data":{"index":"G.S.1","title":"One"}}`
	if diff := cmp.Diff(wantOK, string(ok)); diff != "" {
		t.Fatalf("ok envelope mismatch (-want +got):\n%s", diff)
	}

	fail, err := json.Marshal(reqdb.Fail[reqdb.Summary](reqdb.ErrRequirementNotFound))
	if err != nil {
		t.Fatalf("marshal fail: %v", err)
	}

	wantFail := `{"success":false,"error":"Requirement not found"}`
	if diff := cmp.Diff(wantFail, string(fail)); diff != "" {
		t.Fatalf("fail envelope mismatch (-want +got):\n%s", diff)
	}
}
