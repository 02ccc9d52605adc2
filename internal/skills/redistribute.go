package skills

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minions-labs/minions-registry/internal/frontmatter"
	"github.com/minions-labs/minions-registry/internal/logger"
	"github.com/minions-labs/minions-registry/internal/platform"
	"github.com/minions-labs/minions-registry/internal/walker"
	"github.com/sirupsen/logrus"
)

// Defaults applied when a document's header omits a field or the
// Redistributor leaves an option unset.
const (
	DefaultCategory    = "ai"
	DefaultSubcategory = "general"
	DefaultMarker      = "minions-"
	DefaultFileName    = "SKILL.md"
)

// Redistributor rebuilds the canonical tree at Dest from documents found
// under RepoRoot.
type Redistributor struct {
	RepoRoot string
	Dest     string

	// Marker is the path fragment identifying toolbox-owned documents.
	Marker string
	// FileName is the exact document name to collect.
	FileName string
	// Reserved directory names skipped while walking, typically the registry
	// output directory so the canonical tree never feeds itself.
	Reserved []string
	// Exclude holds extra glob patterns passed to the walker.
	Exclude []string
}

// Entry records one copied document.
type Entry struct {
	Source      string // absolute source path
	Target      string // path relative to Dest, slash separated
	Category    string
	Subcategory string
	Name        string
}

// Result summarizes a redistribution run.
type Result struct {
	Entries    []Entry
	Skipped    []string // sources whose destination would escape Dest
	Collisions []string // targets written by more than one source
}

// Discover returns the toolbox-owned documents under RepoRoot, sorted.
func (r *Redistributor) Discover() ([]string, error) {
	files, err := walker.Walk(r.RepoRoot, walker.Options{
		Mode:     walker.ModeSync,
		Reserved: r.Reserved,
		Exclude:  r.Exclude,
	})
	if err != nil {
		return nil, err
	}

	var found []string
	for _, path := range files {
		if filepath.Base(path) != r.fileName() {
			continue
		}
		rel, err := filepath.Rel(r.RepoRoot, path)
		if err != nil {
			return nil, err
		}
		if strings.Contains(filepath.ToSlash(rel), r.marker()) {
			found = append(found, path)
		}
	}
	sort.Strings(found)
	return found, nil
}

// Plan resolves the destination of a document from its content. The second
// return value is false when the header-derived path would leave the tree.
func Plan(source string, content []byte) (Entry, bool) {
	header, _ := frontmatter.Parse(string(content))

	e := Entry{
		Source:      source,
		Category:    DefaultCategory,
		Subcategory: DefaultSubcategory,
		Name:        filepath.Base(filepath.Dir(source)),
	}
	if v := header.String("category"); v != "" {
		e.Category = v
	}
	if v := header.String("subcategory"); v != "" {
		e.Subcategory = v
	}
	if v := header.String("name"); v != "" {
		e.Name = v
	}

	target := filepath.Join(e.Category, e.Subcategory, e.Name+".md")
	if !filepath.IsLocal(target) {
		return e, false
	}
	e.Target = filepath.ToSlash(target)
	return e, true
}

// Run discovers documents and replaces the canonical tree with a fresh
// copy. The previous tree stays in place until the new one is complete.
func (r *Redistributor) Run(ctx context.Context) (*Result, error) {
	log := logger.G(ctx)
	log.Info("finding minion SKILL files")

	sources, err := r.Discover()
	if err != nil {
		return nil, fmt.Errorf("discovering skill documents: %w", err)
	}

	result := &Result{}
	err = platform.ReplaceDir(r.Dest, func(staging string) error {
		written := make(map[string]string)
		for _, src := range sources {
			if err := ctx.Err(); err != nil {
				return err
			}

			content, err := os.ReadFile(src)
			if err != nil {
				return fmt.Errorf("reading %s: %w", src, err)
			}

			entry, ok := Plan(src, content)
			if !ok {
				log.WithField("source", src).Warn("skill destination escapes the canonical tree, skipping")
				result.Skipped = append(result.Skipped, src)
				continue
			}
			if prev, dup := written[entry.Target]; dup {
				log.WithFields(logrus.Fields{
					"target":   entry.Target,
					"previous": prev,
					"source":   src,
				}).Warn("skill destination collision, later source wins")
				result.Collisions = append(result.Collisions, entry.Target)
			}

			dst := filepath.Join(staging, filepath.FromSlash(entry.Target))
			if err := platform.CopyFile(src, dst); err != nil {
				return err
			}
			written[entry.Target] = src
			result.Entries = append(result.Entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithField("dest", r.Dest).Infof("synced %d skill files", len(result.Entries))
	return result, nil
}

func (r *Redistributor) marker() string {
	if r.Marker == "" {
		return DefaultMarker
	}
	return r.Marker
}

func (r *Redistributor) fileName() string {
	if r.FileName == "" {
		return DefaultFileName
	}
	return r.FileName
}
