package agents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minions-labs/minions-registry/internal/logger"
	"github.com/minions-labs/minions-registry/internal/manifest"
	"github.com/minions-labs/minions-registry/internal/platform"
	"github.com/sirupsen/logrus"
)

// Defaults for the Synchronizer's optional fields.
const (
	DefaultSharedDir     = "Shared"
	DefaultDefinitionExt = ".toml"
)

// Synchronizer reconciles agent source directories under Source into Dest.
type Synchronizer struct {
	Source string // root holding one directory per agent
	Dest   string // registry agent tree

	// Shared names the directory holding shared configuration; it is not an agent.
	Shared string
	// DefinitionExt is the toolbox definition file extension, including the dot.
	DefinitionExt string
}

// AgentResult describes the synchronization of one agent.
type AgentResult struct {
	Manifest  manifest.AgentManifest
	Generated []string // personality files synthesized in the source directory
}

// SyncResult summarizes a synchronization run.
type SyncResult struct {
	SourceMissing bool
	Agents        []AgentResult
}

// Sync processes every agent directory under Source. A missing Source is
// reported and yields an empty result rather than an error; write failures
// abort the run.
func (s *Synchronizer) Sync(ctx context.Context) (*SyncResult, error) {
	log := logger.G(ctx)
	result := &SyncResult{}

	if !isDir(s.Source) {
		log.WithField("source", s.Source).Warn("agents source directory not found, skipping synchronization")
		result.SourceMissing = true
		return result, nil
	}

	entries, err := os.ReadDir(s.Source)
	if err != nil {
		return nil, fmt.Errorf("reading agents source %s: %w", s.Source, err)
	}

	for _, entry := range entries {
		if entry.Name() == s.sharedDir() || !isDir(filepath.Join(s.Source, entry.Name())) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		agentCtx := logger.WithFields(ctx, logrus.Fields{"agent": entry.Name()})
		res, err := s.syncAgent(agentCtx, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("syncing agent %s: %w", entry.Name(), err)
		}
		result.Agents = append(result.Agents, *res)
	}

	log.WithField("agents", len(result.Agents)).Info("synchronized agents")
	return result, nil
}

func (s *Synchronizer) syncAgent(ctx context.Context, name string) (*AgentResult, error) {
	log := logger.G(ctx)
	srcDir := filepath.Join(s.Source, name)
	dstDir := filepath.Join(s.Dest, name)

	if err := os.MkdirAll(dstDir, platform.DirPerm); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dstDir, err)
	}

	defaults, err := DefaultTemplates(name)
	if err != nil {
		return nil, err
	}

	res := &AgentResult{}
	for _, file := range PersonalityFiles {
		srcFile := filepath.Join(srcDir, file)
		created, err := ensure(srcFile, func() string {
			content, _ := defaults.For(file)
			return content
		})
		if err != nil {
			return nil, err
		}
		if created {
			log.WithField("file", file).Info("created missing personality file")
			res.Generated = append(res.Generated, file)
		}
		if err := platform.CopyFile(srcFile, filepath.Join(dstDir, file)); err != nil {
			return nil, err
		}
	}

	toolboxes, err := s.copyToolboxes(srcDir, dstDir)
	if err != nil {
		return nil, err
	}

	res.Manifest = manifest.AgentManifest{
		Name:        name,
		Toolboxes:   toolboxes,
		Personality: append([]string(nil), PersonalityFiles...),
	}
	data, err := manifest.MarshalAgent(&res.Manifest)
	if err != nil {
		return nil, err
	}
	if err := platform.WriteFile(filepath.Join(dstDir, manifest.AgentFile), data); err != nil {
		return nil, err
	}

	log.WithField("toolboxes", len(toolboxes)).Infof("synced %d technical toolboxes and %d personality files", len(toolboxes), len(PersonalityFiles))
	return res, nil
}

// copyToolboxes copies every definition file and its same-stem companion
// document, returning base names in directory listing order.
func (s *Synchronizer) copyToolboxes(srcDir, dstDir string) ([]string, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", srcDir, err)
	}

	ext := s.definitionExt()
	toolboxes := []string{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		base := strings.TrimSuffix(entry.Name(), ext)
		if err := platform.CopyFile(filepath.Join(srcDir, entry.Name()), filepath.Join(dstDir, entry.Name())); err != nil {
			return nil, err
		}

		companion := filepath.Join(srcDir, base+".md")
		if _, err := os.Stat(companion); err == nil {
			if err := platform.CopyFile(companion, filepath.Join(dstDir, base+".md")); err != nil {
				return nil, err
			}
		}
		toolboxes = append(toolboxes, base)
	}
	return toolboxes, nil
}

// ensure writes generate's output to path when path does not exist yet.
// It reports whether the file was created.
func ensure(path string, generate func() string) (bool, error) {
	if platform.Exists(path) {
		return false, nil
	}
	if err := platform.WriteFile(path, []byte(generate())); err != nil {
		return false, err
	}
	return true, nil
}

// isDir follows symlinks, so a linked agent directory is still an agent.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (s *Synchronizer) sharedDir() string {
	if s.Shared == "" {
		return DefaultSharedDir
	}
	return s.Shared
}

func (s *Synchronizer) definitionExt() string {
	if s.DefinitionExt == "" {
		return DefaultDefinitionExt
	}
	return s.DefinitionExt
}
