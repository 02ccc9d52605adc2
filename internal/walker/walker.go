// Package walker enumerates files under a root directory while skipping
// version-control metadata, dependency caches, the registry's own output and
// hidden entries. Results come back in traversal order; callers that emit
// ordered artifacts sort them first.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// Mode selects the exclusion set.
type Mode int

const (
	// ModeSync is used when collecting source documents for synchronization.
	ModeSync Mode = iota
	// ModeIndex additionally skips build tooling and example directories.
	ModeIndex
)

// excludedNames are skipped in every mode.
var excludedNames = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// indexExcludedNames are skipped in ModeIndex only.
var indexExcludedNames = map[string]bool{
	".claude":  true,
	"website":  true,
	"examples": true,
}

// Options controls a walk.
type Options struct {
	Mode Mode
	// Reserved names directories skipped by name, e.g. the registry output dir.
	Reserved []string
	// Exclude holds glob patterns matched against an entry's name and its
	// slash-separated path relative to the root.
	Exclude []string
	// Include, when set, is a doublestar pattern a file's slash-separated
	// relative path must match to be returned.
	Include string
}

// Walk returns the paths of all files under root that survive the exclusion
// rules. A missing root yields an error wrapping fs.ErrNotExist.
func Walk(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walking %s: not a directory", root)
	}

	if opts.Include != "" && !doublestar.ValidatePattern(opts.Include) {
		return nil, fmt.Errorf("invalid include pattern %q", opts.Include)
	}
	excludes := make([]glob.Glob, 0, len(opts.Exclude))
	for _, pattern := range opts.Exclude {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		excludes = append(excludes, g)
	}

	reserved := make(map[string]bool, len(opts.Reserved))
	for _, name := range opts.Reserved {
		reserved[name] = true
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		name := d.Name()

		skip := isHidden(name) || matchesAny(excludes, name, rel)
		if d.IsDir() {
			if skip || excludedNames[name] || reserved[name] ||
				(opts.Mode == ModeIndex && indexExcludedNames[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		if skip || !d.Type().IsRegular() {
			return nil
		}
		if opts.Include != "" {
			if ok, _ := doublestar.Match(opts.Include, rel); !ok {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	return files, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func matchesAny(globs []glob.Glob, name, rel string) bool {
	for _, g := range globs {
		if g.Match(name) || g.Match(rel) {
			return true
		}
	}
	return false
}
