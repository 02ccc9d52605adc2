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

// DefaultBundleVersion is reported for bundles whose package has no version.
const DefaultBundleVersion = "0.1.0"

// Bundle is one entry of the bundles index.
type Bundle struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Readme      string `json:"readme"`
	Skills      string `json:"skills"`
}

// BundlesIndex is the bundles artifact.
type BundlesIndex struct {
	Bundles      []Bundle `json:"bundles"`
	TotalBundles int      `json:"totalBundles"`
	GeneratedAt  string   `json:"generatedAt"`
}

// BuildBundles scans BundlesRoot for prefixed bundle directories and writes
// the bundles index. A bundle without a package manifest is skipped.
func (b *Builder) BuildBundles(ctx context.Context) (*BundlesIndex, error) {
	log := logger.G(ctx).WithField("index", "bundles")

	if err := requireDir(b.BundlesRoot); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(b.BundlesRoot)
	if err != nil {
		return nil, err
	}

	prefix := b.bundlePrefix()
	bundles := []Bundle{}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		dir := filepath.Join(b.BundlesRoot, name)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}

		pkgPath := filepath.Join(dir, manifest.PackageFile)
		if _, err := os.Stat(pkgPath); err != nil {
			continue
		}
		pkg, err := manifest.ReadPackage(pkgPath)
		if err != nil {
			log.WithError(err).WithField("bundle", name).Warn("skipping bundle with unreadable package manifest")
			continue
		}

		bundle := Bundle{
			Slug:        strings.ToLower(strings.TrimPrefix(name, prefix)),
			Name:        name,
			Description: pkg.Description,
			Version:     DefaultBundleVersion,
			Readme:      readTrimmed(filepath.Join(dir, "README.md")),
			Skills:      readTrimmed(filepath.Join(dir, "SKILLS.md")),
		}
		if pkg.Version != "" {
			bundle.Version = pkg.Version
		}
		checkVersion(log.WithField("bundle", name), bundle.Version)
		bundles = append(bundles, bundle)
	}

	names := newNameOrder()
	sort.SliceStable(bundles, func(i, j int) bool {
		return names.less(bundles[i].Name, bundles[j].Name)
	})

	idx := &BundlesIndex{
		Bundles:      bundles,
		TotalBundles: len(bundles),
		GeneratedAt:  b.generatedAt(),
	}
	out, err := b.write(BundlesFile, idx)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{"bundles": len(bundles), "path": out}).Info("built bundles index")
	return idx, nil
}

// readTrimmed returns the trimmed content of path, or "" when it is absent.
func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
