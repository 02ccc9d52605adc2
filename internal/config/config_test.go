package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	v := New()
	v.Set("root", root)

	cfg, err := Load(v, "")
	require.NoError(t, err)

	registry := filepath.Join(root, "minions-registry")
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, registry, cfg.RegistryDir)
	assert.Equal(t, filepath.Join(root, "_claws"), cfg.Agents.Source)
	assert.Equal(t, filepath.Join(registry, "minions-agents"), cfg.Agents.Dest)
	assert.Equal(t, "Shared", cfg.Agents.Shared)
	assert.Equal(t, ".toml", cfg.Agents.DefinitionExt)
	assert.Equal(t, filepath.Join(registry, "minions-skills"), cfg.Skills.Dest)
	assert.Equal(t, "minions-", cfg.Skills.Marker)
	assert.Equal(t, "SKILL.md", cfg.Skills.File)
	assert.Equal(t, filepath.Join(root, "minionsBundles"), cfg.Bundles.Root)
	assert.Equal(t, "minions-bundles-", cfg.Bundles.Prefix)
	assert.Equal(t, filepath.Join(registry, "website", "public"), cfg.Index.OutDir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "fmt", cfg.Log.Format)
	assert.Empty(t, cfg.File)
	assert.Equal(t, "minions-registry", cfg.ReservedName())
}

func TestLoadWorkspaceFile(t *testing.T) {
	root := t.TempDir()
	content := `registry_dir: out
agents:
  source: claws
  definition_ext: yaml
skills:
  dest: /srv/skills
walk:
  exclude:
    - "*.bak"
    - drafts
log:
  format: json
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "minions.yaml"), []byte(content), 0644))

	v := New()
	v.Set("root", root)
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "minions.yaml"), cfg.File)
	assert.Equal(t, filepath.Join(root, "out"), cfg.RegistryDir)
	assert.Equal(t, filepath.Join(root, "claws"), cfg.Agents.Source)
	assert.Equal(t, filepath.Join(root, "out", "minions-agents"), cfg.Agents.Dest)
	assert.Equal(t, ".yaml", cfg.Agents.DefinitionExt)
	assert.Equal(t, "/srv/skills", cfg.Skills.Dest)
	assert.Equal(t, []string{"*.bak", "drafts"}, cfg.Walk.Exclude)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "out", cfg.ReservedName())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "minions.yaml"), []byte("log:\n  level: warn\n"), 0644))
	t.Setenv("MINIONS_LOG_LEVEL", "debug")
	t.Setenv("MINIONS_BUNDLES_PREFIX", "kit-")

	v := New()
	v.Set("root", root)
	cfg, err := Load(v, "")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "kit-", cfg.Bundles.Prefix)
}

func TestLoadRootFromEnv(t *testing.T) {
	root := t.TempDir()
	t.Setenv("MINIONS_ROOT", root)

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
}

func TestLoadExplicitFileMissing(t *testing.T) {
	v := New()
	v.Set("root", t.TempDir())

	_, err := Load(v, filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	v := New()
	v.Set("root", t.TempDir())
	v.Set("log.format", "xml")

	_, err := Load(v, "")
	require.ErrorIs(t, err, errInvalid)
}

func TestResolveKeepsAbsolutePaths(t *testing.T) {
	root := t.TempDir()
	abs := filepath.Join(t.TempDir(), "agents")
	cfg := &Config{
		Root:   root,
		Agents: AgentsConfig{Source: abs},
		Skills: SkillsConfig{Marker: "m", File: "SKILL.md"},
		Log:    LogConfig{Format: "fmt"},
	}

	require.NoError(t, cfg.Resolve())
	assert.Equal(t, abs, cfg.Agents.Source)
	assert.Equal(t, filepath.Join(root, DefaultRegistryDir), cfg.RegistryDir)
	assert.Equal(t, filepath.Join(root, DefaultRegistryDir, DefaultIndexDir), cfg.Index.OutDir)
}
