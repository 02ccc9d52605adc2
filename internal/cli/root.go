package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minions-labs/minions-registry/internal/branding"
	"github.com/minions-labs/minions-registry/internal/config"
	"github.com/minions-labs/minions-registry/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	configPath string
	rootDir    string
	logLevel   string
	logFormat  string

	// current is the configuration loaded for the running command.
	current *config.Config
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Config file (default <root>/"+branding.ConfigFile()+")")
	flags.StringVar(&rootDir, "root", "", "Workspace root holding the agent sources and skill documents")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Log format (fmt, json)")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps the minions registry in step with its sources: it synchronizes
agent directories, redistributes toolbox skill documents into the canonical tree,
and builds the JSON indexes served by the registry website.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// version must work even with a broken config file.
		if cmd.Name() == "version" {
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := logger.SetLogLevel(cfg.Log.Level); err != nil {
			return fmt.Errorf("setting log level %q: %w", cfg.Log.Level, err)
		}
		logger.SetLogFormat(cfg.Log.Format)
		current = cfg

		ctx := logger.WithFields(cmd.Context(), logrus.Fields{
			"run": uuid.NewString(),
			"cmd": cmd.CommandPath(),
		})
		cmd.SetContext(ctx)

		log := logger.G(ctx)
		if cfg.File != "" {
			log = log.WithField("config", cfg.File)
		}
		log.WithField("root", cfg.Root).Debug("configuration loaded")
		return nil
	},
}

// loadConfig layers the root command's flags over the config file and environment.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	flags := cmd.Root().PersistentFlags()
	for key, flag := range map[string]string{
		"root":       "root",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return config.Load(v, configPath)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		logger.L.Error(err)
	}
	return err
}
