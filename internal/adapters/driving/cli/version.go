package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ronin/internal/core/domain"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Annotations: map[string]string{skipWiring: "true"},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("ronin version %s (analysis %s)\n", version, domain.AgentVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
