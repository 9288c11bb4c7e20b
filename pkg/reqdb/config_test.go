package reqdb_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reqlix/reqdb/pkg/reqdb"
)

func Test_LoadConfig_Defaults_When_No_File(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	cfg, loaded, err := reqdb.LoadConfig(workDir, "")
	require.NoError(t, err)
	require.Empty(t, loaded)
	require.Equal(t, filepath.Join(workDir, "requirements"), cfg.Dir)
}

func Test_LoadConfig_Reads_Project_File_With_Comments(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	content := `{
	// requirements live next to the docs
	"requirements_dir": "docs/reqs",
}`

	err := os.WriteFile(filepath.Join(workDir, reqdb.ConfigFileName), []byte(content), 0o644)
	require.NoError(t, err)

	cfg, loaded, err := reqdb.LoadConfig(workDir, "")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(workDir, reqdb.ConfigFileName), loaded)
	require.Equal(t, filepath.Join(workDir, "docs/reqs"), cfg.Dir)
}

func Test_LoadConfig_Keeps_Absolute_Directory(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()
	absDir := filepath.Join(t.TempDir(), "reqs")

	content := `{"requirements_dir": "` + absDir + `"}`

	err := os.WriteFile(filepath.Join(workDir, reqdb.ConfigFileName), []byte(content), 0o644)
	require.NoError(t, err)

	cfg, _, err := reqdb.LoadConfig(workDir, "")
	require.NoError(t, err)
	require.Equal(t, absDir, cfg.Dir)
}

func Test_LoadConfig_Explicit_File_Must_Exist(t *testing.T) {
	t.Parallel()

	_, _, err := reqdb.LoadConfig(t.TempDir(), "missing.json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "config file not found")
}

func Test_LoadConfig_Rejects_Invalid_JSONC(t *testing.T) {
	t.Parallel()

	workDir := t.TempDir()

	err := os.WriteFile(filepath.Join(workDir, reqdb.ConfigFileName), []byte("{nope"), 0o644)
	require.NoError(t, err)

	_, _, err = reqdb.LoadConfig(workDir, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid config file")
}
