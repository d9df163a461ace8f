package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the current version of datepick
const Version = "0.1.0"

// versionTemplate is shared by --version and the version command
const versionTemplate = "{{.Name}} version {{.Version}}\n"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of datepick",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root := cmd.Root()
		fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", root.Name(), root.Version)
	},
}

func init() {
	rootCmd.SetVersionTemplate(versionTemplate)
	rootCmd.AddCommand(versionCmd)
}
