package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minions-labs/minions-registry/internal/agents"
	"github.com/minions-labs/minions-registry/internal/config"
	"github.com/minions-labs/minions-registry/internal/skills"
	"github.com/spf13/cobra"
)

func init() {
	syncCmd.AddCommand(syncAgentsCmd)
	syncCmd.AddCommand(syncSkillsCmd)
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize agents or skills into the registry",
}

var syncAgentsCmd = &cobra.Command{
	Use:   "agents",
	Short: "Mirror agent source directories into the registry",
	Long: `Copy every agent directory from the agents source into the registry,
generating any missing personality file from its default template and writing
an agent.json manifest for each agent.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSyncAgents(cmd.Context(), current, cmd.OutOrStdout())
	},
}

var syncSkillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Rebuild the canonical skill tree from toolbox documents",
	Long: `Collect every toolbox-owned skill document in the workspace and rebuild the
canonical category/subcategory tree in the registry. The previous tree is
replaced only once the new one is complete.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSyncSkills(cmd.Context(), current, cmd.OutOrStdout())
	},
}

func runSyncAgents(ctx context.Context, cfg *config.Config, out io.Writer) error {
	s := &agents.Synchronizer{
		Source:        cfg.Agents.Source,
		Dest:          cfg.Agents.Dest,
		Shared:        cfg.Agents.Shared,
		DefinitionExt: cfg.Agents.DefinitionExt,
	}
	result, err := s.Sync(ctx)
	if err != nil {
		return fmt.Errorf("syncing agents: %w", err)
	}
	if result.SourceMissing {
		fmt.Fprintf(out, "Agents source not found at %s, nothing to sync.\n", cfg.Agents.Source)
		return nil
	}

	for _, a := range result.Agents {
		fmt.Fprintf(out, "Agent %s: %d toolbox files, %d personality files", a.Manifest.Name, len(a.Manifest.Toolboxes), len(a.Manifest.Personality))
		if len(a.Generated) > 0 {
			fmt.Fprintf(out, " (created %s)", strings.Join(a.Generated, ", "))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "Synced %d agents to %s\n", len(result.Agents), cfg.Agents.Dest)
	return nil
}

func runSyncSkills(ctx context.Context, cfg *config.Config, out io.Writer) error {
	r := &skills.Redistributor{
		RepoRoot: cfg.Root,
		Dest:     cfg.Skills.Dest,
		Marker:   cfg.Skills.Marker,
		FileName: cfg.Skills.File,
		Reserved: []string{cfg.ReservedName()},
		Exclude:  cfg.Walk.Exclude,
	}
	result, err := r.Run(ctx)
	if err != nil {
		return fmt.Errorf("syncing skills: %w", err)
	}

	fmt.Fprintf(out, "Synced %d skill files to %s\n", len(result.Entries), cfg.Skills.Dest)
	if n := len(result.Skipped); n > 0 {
		fmt.Fprintf(out, "Skipped %d documents whose destination escapes the skill tree\n", n)
	}
	if n := len(result.Collisions); n > 0 {
		fmt.Fprintf(out, "%d destinations were written by more than one document\n", n)
	}
	return nil
}
