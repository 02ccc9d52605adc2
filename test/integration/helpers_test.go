//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minions-labs/minions-registry/internal/config"
)

// testEnv holds the paths of an isolated workspace.
type testEnv struct {
	Root   string         // MINIONS_ROOT, the workspace holding sources and the registry
	Config *config.Config // configuration resolved against Root
}

// setupTestEnv creates an empty workspace and points MINIONS_ROOT at it so
// configuration resolves every path inside the sandbox.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	t.Setenv("MINIONS_ROOT", root)

	cfg, err := config.Load(config.New(), "")
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	return &testEnv{Root: root, Config: cfg}
}

// setupWorkspace populates root with two agents, toolbox skill documents and
// bundles, covering defaulted and explicit header fields.
func setupWorkspace(t *testing.T, root string) {
	t.Helper()

	claws := filepath.Join(root, "_claws")

	// --- Agents ---
	writeFile(t, filepath.Join(claws, "AIDeveloper", "SOUL.md"), "Ships code.\n")
	writeFile(t, filepath.Join(claws, "AIDeveloper", "github.toml"), "[github]\n")
	writeFile(t, filepath.Join(claws, "AIDeveloper", "github.md"), "# GitHub toolbox\n")
	writeFile(t, filepath.Join(claws, "AIDeveloper", "shell.toml"), "[shell]\n")
	writeFile(t, filepath.Join(claws, "BlogAgency", "notes.txt"), "not a toolbox\n")
	writeFile(t, filepath.Join(claws, "Shared", "common.toml"), "shared = true\n")

	// --- Toolbox skills ---
	writeFile(t, filepath.Join(root, "toolboxes", "minions-github", "SKILL.md"), `---
name: github
category: dev-tools
subcategory: scm
version: 2.1.0
description: "Work with pull requests"
commands: [pr-list, pr-merge]
env: [GITHUB_TOKEN]
---
# GitHub
`)
	writeFile(t, filepath.Join(root, "toolboxes", "minions-notes", "SKILL.md"), "# Notes without a header\n")
	writeFile(t, filepath.Join(root, "toolboxes", "plain", "SKILL.md"), "---\nname: ignored\n---\n")

	// --- Bundles ---
	bundles := filepath.Join(root, "minionsBundles")
	writeFile(t, filepath.Join(bundles, "minions-bundles-dev", "package.json"), `{"name": "dev", "description": "Developer kit", "version": "0.3.0"}`)
	writeFile(t, filepath.Join(bundles, "minions-bundles-dev", "README.md"), "# Dev bundle\n")
	writeFile(t, filepath.Join(bundles, "scratch", "package.json"), `{"name": "scratch"}`)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func assertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file to not exist: %s", path)
	}
}

func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("expected %s to contain %q", path, substr)
	}
}
