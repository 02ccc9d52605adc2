package index

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minions-labs/minions-registry/internal/logger"
	"github.com/minions-labs/minions-registry/internal/manifest"
	"github.com/sirupsen/logrus"
)

// Agent is one entry of the agents index. Personality maps the lower-cased
// file stem ("soul", "identity", ...) to the trimmed document content.
type Agent struct {
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Toolboxes   []string          `json:"toolboxes"`
	Personality map[string]string `json:"personality"`
}

// AgentsIndex is the agents artifact.
type AgentsIndex struct {
	Agents      []Agent `json:"agents"`
	TotalAgents int     `json:"totalAgents"`
	GeneratedAt string  `json:"generatedAt"`
}

// BuildAgents reads every agent manifest under AgentsRoot and writes the
// agents index. Directories without a manifest are ignored; manifests that
// fail validation are logged and skipped.
func (b *Builder) BuildAgents(ctx context.Context) (*AgentsIndex, error) {
	log := logger.G(ctx).WithField("index", "agents")

	if err := requireDir(b.AgentsRoot); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(b.AgentsRoot)
	if err != nil {
		return nil, err
	}

	agents := []Agent{}
	for _, entry := range entries {
		dir := filepath.Join(b.AgentsRoot, entry.Name())
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}

		manifestPath := filepath.Join(dir, manifest.AgentFile)
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}
		m, err := manifest.ReadAgent(manifestPath)
		if err != nil {
			log.WithError(err).WithField("agent", entry.Name()).Warn("skipping agent with unreadable manifest")
			continue
		}

		agents = append(agents, Agent{
			Slug:        strings.ToLower(entry.Name()),
			Name:        entry.Name(),
			Toolboxes:   m.Toolboxes,
			Personality: readPersonality(dir, m.Personality),
		})
	}

	names := newNameOrder()
	sort.SliceStable(agents, func(i, j int) bool {
		return names.less(agents[i].Name, agents[j].Name)
	})

	idx := &AgentsIndex{
		Agents:      agents,
		TotalAgents: len(agents),
		GeneratedAt: b.generatedAt(),
	}
	out, err := b.write(AgentsFile, idx)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"agents": len(agents), "path": out}).Info("built agents index")
	return idx, nil
}

// readPersonality loads the listed documents; a missing one maps to "".
func readPersonality(dir string, files []string) map[string]string {
	personality := make(map[string]string, len(files))
	for _, file := range files {
		key := strings.ToLower(strings.TrimSuffix(file, ".md"))
		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			personality[key] = ""
			continue
		}
		personality[key] = strings.TrimSpace(string(data))
	}
	return personality
}
