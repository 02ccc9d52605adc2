package index

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 30, 45, 123000000, time.FixedZone("CET", 3600))

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// newBuilder returns a Builder whose roots live under one temp dir laid out
// like a registry checkout.
func newBuilder(t *testing.T) *Builder {
	t.Helper()
	root := t.TempDir()
	return &Builder{
		SkillsRoot:  filepath.Join(root, "registry", "minions-skills"),
		AgentsRoot:  filepath.Join(root, "registry", "minions-agents"),
		BundlesRoot: filepath.Join(root, "minionsBundles"),
		OutDir:      filepath.Join(root, "registry", "website", "public"),
		Now:         func() time.Time { return fixedNow },
	}
}

func readArtifact(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v))
}
