package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run the full pipeline: sync agents, sync skills, then index",
	Long: `Run every pipeline stage in order. The indexes read the trees the sync
stages produce, so a failing sync stops the build before indexing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, out := cmd.Context(), cmd.OutOrStdout()
		if err := runSyncAgents(ctx, current, out); err != nil {
			return err
		}
		if err := runSyncSkills(ctx, current, out); err != nil {
			return err
		}
		return runIndex(ctx, current, out)
	},
}
