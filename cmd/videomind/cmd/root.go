package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"videomind/cmd/videomind/cmd/analyze"
	"videomind/cmd/videomind/cmd/export"
	"videomind/cmd/videomind/cmd/serve"
	"videomind/cmd/videomind/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "videomind",
	Short: "Video analysis service",
	Long: `videomind downloads videos, transcribes and summarizes them, and
optionally describes key frames. Run "videomind serve" for the HTTP API or
"videomind analyze" for a one-shot run from the terminal.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.NewCommand())
	rootCmd.AddCommand(analyze.NewCommand())
	rootCmd.AddCommand(export.NewCommand())
	rootCmd.AddCommand(version.NewCommand())
}
