package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"NoLabelPanel/server"
)

var rootCmd = &cobra.Command{
	Use:   "nolabel_panel",
	Short: "NoLabel moderation panel backend",
	Long:  `Backend for the NoLabel control panel: moderators review submitted tracks and publish or reject them.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
