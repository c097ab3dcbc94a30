/*
Package cmd provides the CLI commands for Mailout.
*/
package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mailout",
	Short: "Validate and send a single email over SMTP",
	Long: `Mailout validates every input up front and then sends exactly one
email through an SMTP server.

Addresses, hosts, and ports are checked before any connection is
made, attachments are verified to be readable, and an optional TCP
probe can confirm the server is reachable first.

Example:
  mailout send --server smtp.example.com --port 587 \
      --from alice@example.com --to bob@example.com \
      --subject "Hello" --body "First line\nSecond line"
  mailout send ... --dry-run    # Validate everything, send nothing
  mailout check --server smtp.example.com --port 587
  mailout version`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initLogging)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")

	// Add subcommands
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	if debug {
		log.SetLevel(log.DebugLevel)
	} else if verbose {
		log.SetLevel(log.InfoLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}
}
