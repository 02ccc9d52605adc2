package index

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minions-labs/minions-registry/internal/frontmatter"
	"github.com/minions-labs/minions-registry/internal/logger"
	"github.com/minions-labs/minions-registry/internal/walker"
	"github.com/sirupsen/logrus"
)

// DefaultSkillVersion is reported for skills whose header has no version.
const DefaultSkillVersion = "1.0.0"

// subcategorySeparator joins the middle segments of deep paths.
const subcategorySeparator = "/"

// Skill is one document of the canonical tree.
type Skill struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	ID           *string  `json:"id"`
	Version      string   `json:"version"`
	Description  string   `json:"description"`
	Commands     []string `json:"commands"`
	Env          []string `json:"env"`
	Path         string   `json:"path"`
	MarkdownBody string   `json:"markdownBody"`
}

// Subcategory groups the skills of one subcategory path.
type Subcategory struct {
	Slug   string  `json:"slug"`
	Name   string  `json:"name"`
	Skills []Skill `json:"skills"`
}

// Category holds direct skills and named subcategories.
// SkillCount is len(Skills) plus the skills of every subcategory.
type Category struct {
	Slug          string        `json:"slug"`
	Name          string        `json:"name"`
	Icon          string        `json:"icon"`
	Subcategories []Subcategory `json:"subcategories"`
	Skills        []Skill       `json:"skills"`
	SkillCount    int           `json:"skillCount"`
}

// SkillsIndex is the skills artifact.
type SkillsIndex struct {
	Categories  []Category `json:"categories"`
	TotalSkills int        `json:"totalSkills"`
	GeneratedAt string     `json:"generatedAt"`
}

// Location is the position of a document within the canonical tree.
type Location struct {
	Category    string
	Subcategory string // empty when the document has none
	Slug        string
}

// Locate derives a document's location from its slash-separated path
// relative to the canonical root. Three or more segments give
// category/subcategory.../slug, two give category/slug, and a bare file
// name lands in FallbackCategory.
func Locate(rel string) Location {
	parts := strings.Split(rel, "/")
	last := parts[len(parts)-1]
	slug := strings.TrimSuffix(last, path.Ext(last))

	switch {
	case len(parts) >= 3:
		return Location{
			Category:    parts[0],
			Subcategory: strings.Join(parts[1:len(parts)-1], subcategorySeparator),
			Slug:        slug,
		}
	case len(parts) == 2:
		return Location{Category: parts[0], Slug: slug}
	default:
		return Location{Category: FallbackCategory, Slug: slug}
	}
}

// BuildSkills walks the canonical skill tree and writes the skills index.
func (b *Builder) BuildSkills(ctx context.Context) (*SkillsIndex, error) {
	log := logger.G(ctx).WithField("index", "skills")

	if err := requireDir(b.SkillsRoot); err != nil {
		return nil, err
	}

	files, err := walker.Walk(b.SkillsRoot, walker.Options{
		Mode:    walker.ModeIndex,
		Include: "**/*.md",
		Exclude: b.Exclude,
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	categories := make(map[string]*categoryBuilder)
	var order []string
	total := 0

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rel, err := filepath.Rel(b.SkillsRoot, file)
		if err != nil {
			return nil, err
		}
		loc := Locate(filepath.ToSlash(rel))

		skill, err := b.readSkill(file, loc.Slug)
		if err != nil {
			return nil, err
		}
		checkVersion(log.WithField("skill", filepath.ToSlash(rel)), skill.Version)

		cat, ok := categories[loc.Category]
		if !ok {
			cat = newCategoryBuilder(loc.Category)
			categories[loc.Category] = cat
			order = append(order, loc.Category)
		}
		cat.add(loc.Subcategory, skill)
		total++
	}

	idx := &SkillsIndex{
		Categories:  make([]Category, 0, len(order)),
		TotalSkills: total,
		GeneratedAt: b.generatedAt(),
	}
	names := newNameOrder()
	for _, slug := range order {
		idx.Categories = append(idx.Categories, categories[slug].build(names))
	}
	sort.SliceStable(idx.Categories, func(i, j int) bool {
		a, c := idx.Categories[i], idx.Categories[j]
		if a.SkillCount != c.SkillCount {
			return a.SkillCount > c.SkillCount
		}
		return a.Slug < c.Slug
	})

	out, err := b.write(SkillsFile, idx)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"skills":     total,
		"categories": len(idx.Categories),
		"path":       out,
	}).Info("built skills index")
	return idx, nil
}

// readSkill parses one canonical document into a Skill record.
func (b *Builder) readSkill(file, slug string) (Skill, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return Skill{}, fmt.Errorf("reading %s: %w", file, err)
	}
	doc := frontmatter.ParseDocument(content)
	h := doc.Header

	relDir, err := filepath.Rel(filepath.Dir(b.SkillsRoot), filepath.Dir(file))
	if err != nil {
		return Skill{}, err
	}

	skill := Skill{
		Slug:         slug,
		Name:         slug,
		Version:      DefaultSkillVersion,
		Description:  strings.TrimSpace(h.String("description")),
		Commands:     h.List("commands"),
		Env:          h.List("env"),
		Path:         filepath.ToSlash(relDir),
		MarkdownBody: strings.TrimSpace(doc.Body),
	}
	if v := h.String("name"); v != "" {
		skill.Name = v
	}
	if v := h.String("id"); v != "" {
		skill.ID = &v
	}
	if v := h.String("version"); v != "" {
		skill.Version = v
	}
	if skill.Commands == nil {
		skill.Commands = []string{}
	}
	if skill.Env == nil {
		skill.Env = []string{}
	}
	return skill, nil
}

type categoryBuilder struct {
	cat   Category
	subs  map[string]*Subcategory
	order []string
}

func newCategoryBuilder(slug string) *categoryBuilder {
	return &categoryBuilder{
		cat: Category{
			Slug:   slug,
			Name:   Title(slug),
			Icon:   Icon(slug),
			Skills: []Skill{},
		},
		subs: make(map[string]*Subcategory),
	}
}

func (c *categoryBuilder) add(subcategory string, skill Skill) {
	if subcategory == "" {
		c.cat.Skills = append(c.cat.Skills, skill)
		return
	}
	sub, ok := c.subs[subcategory]
	if !ok {
		sub = &Subcategory{Slug: subcategory, Name: Title(subcategory)}
		c.subs[subcategory] = sub
		c.order = append(c.order, subcategory)
	}
	sub.Skills = append(sub.Skills, skill)
}

// build sorts subcategories by display name and computes SkillCount.
func (c *categoryBuilder) build(names *nameOrder) Category {
	out := c.cat
	out.Subcategories = make([]Subcategory, 0, len(c.order))
	count := len(out.Skills)
	for _, slug := range c.order {
		sub := *c.subs[slug]
		count += len(sub.Skills)
		out.Subcategories = append(out.Subcategories, sub)
	}
	sort.SliceStable(out.Subcategories, func(i, j int) bool {
		return names.less(out.Subcategories[i].Name, out.Subcategories[j].Name)
	})
	out.SkillCount = count
	return out
}
