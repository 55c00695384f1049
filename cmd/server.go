package cmd

import (
	"github.com/spf13/cobra"

	"NoLabelPanel/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the moderation panel HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
