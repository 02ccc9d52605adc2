package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/minions-labs/minions-registry/internal/config"
	"github.com/minions-labs/minions-registry/internal/index"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the skills, agents and bundles indexes",
	Long: `Scan the canonical skill tree, the synchronized agents and the packaged
bundles and write skills-index.json, agents-index.json and bundles-index.json.
A missing source directory skips its index; other failures are reported after
every index has been attempted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndex(cmd.Context(), current, cmd.OutOrStdout())
	},
}

func runIndex(ctx context.Context, cfg *config.Config, out io.Writer) error {
	b := &index.Builder{
		SkillsRoot:   cfg.Skills.Dest,
		AgentsRoot:   cfg.Agents.Dest,
		BundlesRoot:  cfg.Bundles.Root,
		OutDir:       cfg.Index.OutDir,
		BundlePrefix: cfg.Bundles.Prefix,
		Exclude:      cfg.Walk.Exclude,
	}
	summary, err := b.BuildAll(ctx)

	if s := summary.Skills; s != nil {
		fmt.Fprintf(out, "Built skills index: %d skills across %d categories\n", s.TotalSkills, len(s.Categories))
		fmt.Fprintf(out, "   -> %s\n", filepath.Join(cfg.Index.OutDir, index.SkillsFile))
	}
	if a := summary.Agents; a != nil {
		fmt.Fprintf(out, "Built agents index: %d agents\n", a.TotalAgents)
		fmt.Fprintf(out, "   -> %s\n", filepath.Join(cfg.Index.OutDir, index.AgentsFile))
	}
	if bs := summary.Bundles; bs != nil {
		fmt.Fprintf(out, "Built bundles index: %d bundles\n", bs.TotalBundles)
		fmt.Fprintf(out, "   -> %s\n", filepath.Join(cfg.Index.OutDir, index.BundlesFile))
	}
	for _, name := range summary.Skipped {
		fmt.Fprintf(out, "No %s source found, skipped %s index.\n", name, name)
	}
	return err
}
