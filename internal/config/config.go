package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/minions-labs/minions-registry/internal/branding"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Default directory names, relative to the workspace root unless noted.
const (
	DefaultRegistryDir = "minions-registry"
	DefaultAgentSource = "_claws"
	DefaultBundlesRoot = "minionsBundles"

	// Relative to the registry directory.
	DefaultAgentsDir = "minions-agents"
	DefaultSkillsDir = "minions-skills"
	DefaultIndexDir  = "website/public"
)

// Config is the effective configuration of one run. After Load every path
// field is absolute.
type Config struct {
	Root        string        `mapstructure:"root" yaml:"root"`
	RegistryDir string        `mapstructure:"registry_dir" yaml:"registry_dir"`
	Agents      AgentsConfig  `mapstructure:"agents" yaml:"agents"`
	Skills      SkillsConfig  `mapstructure:"skills" yaml:"skills"`
	Bundles     BundlesConfig `mapstructure:"bundles" yaml:"bundles"`
	Index       IndexConfig   `mapstructure:"index" yaml:"index"`
	Walk        WalkConfig    `mapstructure:"walk" yaml:"walk"`
	Log         LogConfig     `mapstructure:"log" yaml:"log"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" yaml:"-"`
}

type AgentsConfig struct {
	Source        string `mapstructure:"source" yaml:"source"`
	Dest          string `mapstructure:"dest" yaml:"dest"`
	Shared        string `mapstructure:"shared" yaml:"shared"`
	DefinitionExt string `mapstructure:"definition_ext" yaml:"definition_ext"`
}

type SkillsConfig struct {
	Dest   string `mapstructure:"dest" yaml:"dest"`
	Marker string `mapstructure:"marker" yaml:"marker"`
	File   string `mapstructure:"file" yaml:"file"`
}

type BundlesConfig struct {
	Root   string `mapstructure:"root" yaml:"root"`
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

type IndexConfig struct {
	OutDir string `mapstructure:"out_dir" yaml:"out_dir"`
}

type WalkConfig struct {
	// Exclude holds glob patterns skipped by every tree walk.
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("registry_dir", DefaultRegistryDir)
	v.SetDefault("agents.source", DefaultAgentSource)
	// Empty destinations follow registry_dir; see Resolve.
	v.SetDefault("agents.dest", "")
	v.SetDefault("agents.shared", "Shared")
	v.SetDefault("agents.definition_ext", ".toml")
	v.SetDefault("skills.dest", "")
	v.SetDefault("skills.marker", "minions-")
	v.SetDefault("skills.file", "SKILL.md")
	v.SetDefault("bundles.root", DefaultBundlesRoot)
	v.SetDefault("bundles.prefix", "minions-bundles-")
	v.SetDefault("index.out_dir", "")
	v.SetDefault("walk.exclude", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "fmt")
}

// New returns a Viper instance with defaults and environment binding in
// place. Callers may bind flags to it before passing it to Load.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file into v and returns the resolved configuration.
// An explicit path must exist; otherwise the branding config file is looked
// up in the workspace root and silently skipped when absent.
func Load(v *viper.Viper, path string) (*Config, error) {
	file := path
	if file == "" {
		candidate := filepath.Join(v.GetString("root"), branding.ConfigFile())
		if _, err := os.Stat(candidate); err == nil {
			file = candidate
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = file

	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve fills derived defaults and makes every path absolute. Relative
// paths are taken from Root; the agent and skill destinations and the index
// output directory default to locations inside RegistryDir.
func (c *Config) Resolve() error {
	if c.Root == "" {
		c.Root = "."
	}
	root, err := filepath.Abs(c.Root)
	if err != nil {
		return fmt.Errorf("resolving root %s: %w", c.Root, err)
	}
	c.Root = root

	if c.RegistryDir == "" {
		c.RegistryDir = DefaultRegistryDir
	}
	c.RegistryDir = c.under(c.RegistryDir)

	if c.Agents.Dest == "" {
		c.Agents.Dest = filepath.Join(c.RegistryDir, DefaultAgentsDir)
	}
	if c.Skills.Dest == "" {
		c.Skills.Dest = filepath.Join(c.RegistryDir, DefaultSkillsDir)
	}
	if c.Index.OutDir == "" {
		c.Index.OutDir = filepath.Join(c.RegistryDir, filepath.FromSlash(DefaultIndexDir))
	}

	c.Agents.Source = c.under(c.Agents.Source)
	c.Agents.Dest = c.under(c.Agents.Dest)
	c.Skills.Dest = c.under(c.Skills.Dest)
	c.Bundles.Root = c.under(c.Bundles.Root)
	c.Index.OutDir = c.under(c.Index.OutDir)

	if c.Agents.DefinitionExt != "" && !strings.HasPrefix(c.Agents.DefinitionExt, ".") {
		c.Agents.DefinitionExt = "." + c.Agents.DefinitionExt
	}
	return c.validate()
}

func (c *Config) under(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}

var errInvalid = errors.New("invalid configuration")

func (c *Config) validate() error {
	if c.Agents.Source == "." || c.Agents.Source == "" {
		return fmt.Errorf("%w: agents.source must be set", errInvalid)
	}
	if c.Skills.Marker == "" {
		return fmt.Errorf("%w: skills.marker must be set", errInvalid)
	}
	if c.Skills.File == "" {
		return fmt.Errorf("%w: skills.file must be set", errInvalid)
	}
	switch c.Log.Format {
	case "fmt", "json":
	default:
		return fmt.Errorf("%w: log.format must be fmt or json, got %q", errInvalid, c.Log.Format)
	}
	return nil
}

// ReservedName is the registry directory's base name, which the skill walk
// must never descend into.
func (c *Config) ReservedName() string {
	return filepath.Base(c.RegistryDir)
}
