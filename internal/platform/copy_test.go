package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFileCreatesParents(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "deploy.toml")
	require.NoError(t, os.WriteFile(src, []byte("name = \"deploy\"\n"), 0644))

	dst := filepath.Join(tmp, "out", "agent", "deploy.toml")
	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "name = \"deploy\"\n", string(got))
}

func TestCopyFileOverwritesAndKeepsMode(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "run.sh")
	dst := filepath.Join(tmp, "copy.sh")
	require.NoError(t, os.WriteFile(src, []byte("new"), 0755))
	require.NoError(t, os.WriteFile(dst, []byte("old contents"), 0600))

	require.NoError(t, CopyFile(src, dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(dst)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
	}
}

func TestCopyFileMissingSource(t *testing.T) {
	tmp := t.TempDir()
	assert.Error(t, CopyFile(filepath.Join(tmp, "missing"), filepath.Join(tmp, "dst")))
}

func TestWriteFileAndExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "agent.json")
	assert.False(t, Exists(path))

	require.NoError(t, WriteFile(path, []byte("{}")))
	assert.True(t, Exists(path))
}
