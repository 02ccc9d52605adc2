package index

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/minions-labs/minions-registry/internal/logger"
	"github.com/minions-labs/minions-registry/internal/platform"
	"github.com/sirupsen/logrus"
)

// Artifact file names written to OutDir.
const (
	SkillsFile  = "skills-index.json"
	AgentsFile  = "agents-index.json"
	BundlesFile = "bundles-index.json"
)

// DefaultBundlePrefix identifies bundle directories.
const DefaultBundlePrefix = "minions-bundles-"

// ErrSourceMissing is wrapped when a sub-build's source directory does not exist.
var ErrSourceMissing = errors.New("source directory not found")

// timestampLayout renders UTC times like an ISO-8601 string with milliseconds.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Builder produces the registry indexes.
type Builder struct {
	SkillsRoot  string // canonical skill tree
	AgentsRoot  string // synchronized agent tree
	BundlesRoot string // directory holding packaged bundles
	OutDir      string // where the JSON artifacts are written

	BundlePrefix string
	// Exclude holds extra glob patterns for the skill tree walk.
	Exclude []string
	// Now stamps generatedAt; defaults to time.Now.
	Now func() time.Time
}

// Summary reports what BuildAll produced. A nil index means that sub-build
// was skipped or failed.
type Summary struct {
	Skills  *SkillsIndex
	Agents  *AgentsIndex
	Bundles *BundlesIndex
	Skipped []string
}

// BuildAll runs the three sub-builds independently. Missing sources are
// logged and skipped; other failures are collected and returned together
// once every sub-build has had its turn.
func (b *Builder) BuildAll(ctx context.Context) (*Summary, error) {
	log := logger.G(ctx)
	summary := &Summary{}
	var result *multierror.Error

	record := func(name string, err error) {
		if err == nil {
			return
		}
		if errors.Is(err, ErrSourceMissing) {
			log.WithField("index", name).Warnf("%v, skipping", err)
			summary.Skipped = append(summary.Skipped, name)
			return
		}
		result = multierror.Append(result, fmt.Errorf("building %s index: %w", name, err))
	}

	skills, err := b.BuildSkills(ctx)
	summary.Skills = skills
	record("skills", err)

	agents, err := b.BuildAgents(ctx)
	summary.Agents = agents
	record("agents", err)

	bundles, err := b.BuildBundles(ctx)
	summary.Bundles = bundles
	record("bundles", err)

	return summary, result.ErrorOrNil()
}

func (b *Builder) generatedAt() string {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return now().UTC().Format(timestampLayout)
}

func (b *Builder) bundlePrefix() string {
	if b.BundlePrefix == "" {
		return DefaultBundlePrefix
	}
	return b.BundlePrefix
}

// write renders v as indented JSON into OutDir/name, replacing any prior file.
func (b *Builder) write(name string, v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encoding %s: %w", name, err)
	}

	path := filepath.Join(b.OutDir, name)
	if err := platform.WriteFile(path, buf.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceMissing, path)
	}
	return nil
}

// checkVersion logs versions that are not valid semver. The raw value is
// kept in the index either way.
func checkVersion(log *logrus.Entry, version string) {
	if _, err := semver.NewVersion(version); err != nil {
		log.WithField("version", version).Warn("version is not valid semver")
	}
}
