package cmd

import (
	"moodfm/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the MoodFM HTTP server",
	Long:  `Start the MoodFM API server: emotion-based recommendation pipeline, favorites store and playback control.`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
