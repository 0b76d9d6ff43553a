// Package commands implements the dirsearch CLI.
package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// GlobalFlags holds the persistent flags shared by every subcommand.
type GlobalFlags struct {
	Output  string
	NoColor bool
	Verbose bool
}

// Flags is populated from the root command before any subcommand runs.
var Flags GlobalFlags

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirsearch",
		Short: "Search directory users and managed devices",
		Long: `dirsearch looks up users and managed devices in the organisation's directory.

Sign in with the device-code flow, then search by UPN, email, name, device
name or serial number. Results are paged five at a time.

Use "dirsearch [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Flags.Output, _ = cmd.Flags().GetString("output")
			Flags.NoColor, _ = cmd.Flags().GetBool("no-color")
			Flags.Verbose, _ = cmd.Flags().GetBool("verbose")
		},
	}

	cmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml)")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newShellCmd())
	cmd.AddCommand(newWhoamiCmd())
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
