package reqmd_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reqlix/reqdb/pkg/reqdb/reqmd"
)

func Test_Serialize_Empty_Document_Is_Empty_File(t *testing.T) {
	t.Parallel()

	doc := &reqmd.Document{}

	if got := doc.Serialize(); got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func Test_Serialize_Normal_Form(t *testing.T) {
	t.Parallel()

	doc := &reqmd.Document{}

	c := doc.AddChapter("Security")
	r := &reqmd.Requirement{Index: "G.S.1", Title: "Auth token format"}
	r.SetText("Tokens must be JWT.")
	c.Requirements = append(c.Requirements, r)

	want := "# Security\n\n## G.S.1: Auth token format\n\nTokens must be JWT.\n"

	if diff := cmp.Diff(want, doc.Serialize()); diff != "" {
		t.Fatalf("serialization mismatch (-want +got):\n%s", diff)
	}
}

func Test_Serialize_Never_Emits_Adjacent_Headings(t *testing.T) {
	t.Parallel()

	doc := &reqmd.Document{}

	c := doc.AddChapter("A")
	c.Requirements = append(c.Requirements,
		&reqmd.Requirement{Index: "X.A.1", Title: "empty body"},
		&reqmd.Requirement{Index: "X.A.2", Title: "also empty"},
	)
	doc.AddChapter("B")

	out := doc.Serialize()

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "#") && strings.HasPrefix(lines[i-1], "#") {
			t.Fatalf("adjacent headings at lines %d-%d:\n%s", i-1, i, out)
		}
	}
}

func Test_Serialize_Is_Stable_Under_RoundTrip(t *testing.T) {
	t.Parallel()

	text := "# Security\n\n## G.S.1: Auth token format\n\nTokens must be JWT.\n\n```\n## G.S.9: fenced\n```\n\n## G.S.2: Session timeout\n\nFifteen minutes.\n"

	once := reqmd.Parse(text).Serialize()
	twice := reqmd.Parse(once).Serialize()

	if diff := cmp.Diff(once, twice); diff != "" {
		t.Fatalf("round-trip not stable (-once +twice):\n%s", diff)
	}

	if diff := cmp.Diff(text, once); diff != "" {
		t.Fatalf("normalized input changed (-want +got):\n%s", diff)
	}
}

func Test_Serialize_Preserves_File_And_Chapter_Preambles(t *testing.T) {
	t.Parallel()

	text := "intro prose\n\n# C\n\nchapter notes\n\n## A.C.1: One\n\nbody\n"

	got := reqmd.Parse(text).Serialize()

	if diff := cmp.Diff(text, got); diff != "" {
		t.Fatalf("preambles lost (-want +got):\n%s", diff)
	}
}

func Test_Serialize_Preserves_Malformed_Heading_Verbatim(t *testing.T) {
	t.Parallel()

	text := "# C\n\n## just a note\n\nbody\n"

	got := reqmd.Parse(text).Serialize()

	if diff := cmp.Diff(text, got); diff != "" {
		t.Fatalf("malformed heading changed (-want +got):\n%s", diff)
	}
}

func Test_Serialize_Collapses_Extra_Blank_Lines_Between_Blocks(t *testing.T) {
	t.Parallel()

	text := "# C\n\n\n\n## A.C.1: One\n\n\nbody\n\n\n"

	want := "# C\n\n## A.C.1: One\n\nbody\n"

	got := reqmd.Parse(text).Serialize()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalization mismatch (-want +got):\n%s", diff)
	}
}
