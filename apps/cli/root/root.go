package root

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd is the base command for the site admin CLI. Subcommands (content, leads) are attached here.
var rootCmd = &cobra.Command{
	Use:           "fw1031",
	Short:         "1031 Exchange Fort Worth admin CLI",
	Long:          "Content validation, content review exports and lead exports for the 1031 Exchange Fort Worth site.",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(*cobra.Command, []string) {
		_ = godotenv.Load()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// Root returns the mutable root command for wiring from subpackages.
func Root() *cobra.Command {
	return rootCmd
}
