package cmd

import (
	"github.com/spf13/cobra"
)

func init() {
	// Register custom completions after all commands are initialized
	cobra.OnInitialize(registerCompletions)
}

func registerCompletions() {
	// --type flag: picker granularities
	rootCmd.RegisterFlagCompletionFunc("type", fixedCompletions(
		"date\tcalendar only",
		"time\tclock only",
		"datetime\tcalendar, then clock",
	))

	// --log-level flag
	rootCmd.RegisterFlagCompletionFunc("log-level", fixedCompletions("debug", "info", "warn", "error"))

	// --config and --log-file take paths
	rootCmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"toml"}, cobra.ShellCompDirectiveFilterFileExt
	})
	rootCmd.RegisterFlagCompletionFunc("log-file", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveDefault
	})

	// clock --mode flag
	clockCmd.RegisterFlagCompletionFunc("mode", fixedCompletions(
		"hour\thour dial",
		"minute\tminute dial",
	))
}

// fixedCompletions completes a flag with a fixed list of values
func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
