package reqdb_test

import (
	"errors"
	"os"
	"strings"
	"syscall"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/reqlix/reqdb/internal/fs"
	"github.com/reqlix/reqdb/pkg/reqdb"
)

// failFS wraps the real filesystem and injects failures into single
// operations, exercising the store's error mapping.
type failFS struct {
	fs.FS
	writeErr error
	lockErr  error
}

func (f *failFS) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if f.writeErr != nil {
		return f.writeErr
	}

	return f.FS.WriteFileAtomic(path, data, perm)
}

func (f *failFS) Lock(path string) (fs.Locker, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}

	return f.FS.Lock(path)
}

func openFailStore(t *testing.T, ffs *failFS) *reqdb.Store {
	t.Helper()

	ffs.FS = &fs.Real{}

	s, err := reqdb.Open(reqdb.Config{
		Dir:    t.TempDir(),
		FS:     ffs,
		Logger: zaptest.NewLogger(t),
	})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	return s
}

func Test_Write_Errors_Map_To_Canonical_Messages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		writeErr   error
		wantPrefix string
	}{
		{"permission", os.ErrPermission, "Permission denied: "},
		{"missing path", os.ErrNotExist, "Invalid path: "},
		{"disk full", syscall.ENOSPC, "Disk full: cannot write to "},
		{"other", errors.New("boom"), "Failed to write file "},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			s := openFailStore(t, &failFS{writeErr: tc.writeErr})

			_, err := s.Insert("general", "Security", "Title", "text")
			if err == nil || !strings.HasPrefix(err.Error(), tc.wantPrefix) {
				t.Fatalf("err = %v, want prefix %q", err, tc.wantPrefix)
			}

			if reqdb.KindOf(err) != reqdb.KindFilesystem {
				t.Fatalf("kind = %v, want filesystem", reqdb.KindOf(err))
			}

			if !errors.Is(err, tc.writeErr) {
				t.Fatalf("cause not wrapped: %v", err)
			}
		})
	}
}

func Test_Lock_Failure_Surfaces_As_Filesystem_Error(t *testing.T) {
	t.Parallel()

	s := openFailStore(t, &failFS{lockErr: errors.New("lock timeout")})

	_, err := s.Insert("general", "Security", "Title", "text")
	if err == nil || !strings.HasPrefix(err.Error(), "Failed to lock file ") {
		t.Fatalf("err = %v", err)
	}

	if reqdb.KindOf(err) != reqdb.KindFilesystem {
		t.Fatalf("kind = %v, want filesystem", reqdb.KindOf(err))
	}
}

func Test_Reads_Are_Lock_Free(t *testing.T) {
	t.Parallel()

	// With locking broken entirely, reads still work; only mutations
	// need the lock.
	ffs := &failFS{lockErr: errors.New("lock broken")}
	s := openFailStore(t, ffs)

	if _, err := s.Categories(); err != nil {
		t.Fatalf("categories: %v", err)
	}

	if _, err := s.Search([]string{"anything"}); err != nil {
		t.Fatalf("search: %v", err)
	}

	_, err := s.Get("G.S.1")
	if err == nil || reqdb.KindOf(err) != reqdb.KindNotFound {
		t.Fatalf("get: %v", err)
	}
}
