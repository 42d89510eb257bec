package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "revise",
	Short: "Spaced-repetition study tracker",
	Long:  "Revise organizes study material into subjects and topics and schedules revision reminders 2, 7, and 14 days after each topic is created.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
