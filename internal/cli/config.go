package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the pipeline would run with, after merging the
config file, MINIONS_* environment variables and flags. Paths are absolute.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if current.File != "" {
			fmt.Fprintf(out, "# %s\n", current.File)
		}
		data, err := yaml.Marshal(current)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}
		_, err = out.Write(data)
		return err
	},
}
