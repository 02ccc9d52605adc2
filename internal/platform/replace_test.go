package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceDirSwapsTree(t *testing.T) {
	target := filepath.Join(t.TempDir(), "skills")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "stale"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "stale", "old.md"), []byte("old"), 0644))

	err := ReplaceDir(target, func(staging string) error {
		return WriteFile(filepath.Join(staging, "ai", "general", "new.md"), []byte("new"))
	})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(target, "stale", "old.md"))
	assert.FileExists(t, filepath.Join(target, "ai", "general", "new.md"))
	assert.NoDirExists(t, target+stagingSuffix)
	assert.NoDirExists(t, target+backupSuffix)
}

func TestReplaceDirCreatesMissingTarget(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "skills")

	require.NoError(t, ReplaceDir(target, func(string) error { return nil }))

	assert.DirExists(t, target)
}

func TestReplaceDirBuildFailureKeepsPrevious(t *testing.T) {
	target := filepath.Join(t.TempDir(), "skills")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep.md"), []byte("keep"), 0644))

	boom := errors.New("boom")
	err := ReplaceDir(target, func(staging string) error {
		_ = WriteFile(filepath.Join(staging, "partial.md"), []byte("partial"))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.FileExists(t, filepath.Join(target, "keep.md"))
	assert.NoFileExists(t, filepath.Join(target, "partial.md"))
	assert.NoDirExists(t, target+stagingSuffix)
}
