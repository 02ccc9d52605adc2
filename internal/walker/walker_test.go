package walker

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestWalkSyncModeExclusions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"minions-a/SKILL.md",
		".git/config",
		"node_modules/dep/SKILL.md",
		"minions-registry/minions-skills/ai/general/a.md",
		".hidden/SKILL.md",
		"website/page.md",
		"notes/.draft.md",
	)

	files, err := Walk(root, Options{Mode: ModeSync, Reserved: []string{"minions-registry"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"minions-a/SKILL.md", "website/page.md"}, relAll(t, root, files))
}

func TestWalkIndexModeExclusions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"ai/general/a.md",
		"website/page.md",
		"examples/sample.md",
		".claude/settings.md",
	)

	files, err := Walk(root, Options{Mode: ModeIndex})
	require.NoError(t, err)

	assert.Equal(t, []string{"ai/general/a.md"}, relAll(t, root, files))
}

func TestWalkInclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "ai/general/a.md", "ai/general/a.toml", "b.md")

	files, err := Walk(root, Options{Mode: ModeIndex, Include: "**/*.md"})
	require.NoError(t, err)

	assert.Equal(t, []string{"ai/general/a.md", "b.md"}, relAll(t, root, files))
}

func TestWalkExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "keep/a.md", "drafts/b.md", "keep/c.bak")

	files, err := Walk(root, Options{Exclude: []string{"drafts", "*.bak"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"keep/a.md"}, relAll(t, root, files))
}

func TestWalkMissingRoot(t *testing.T) {
	_, err := Walk(filepath.Join(t.TempDir(), "nope"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestWalkInvalidIncludePattern(t *testing.T) {
	_, err := Walk(t.TempDir(), Options{Include: "[unclosed"})
	assert.Error(t, err)
}
