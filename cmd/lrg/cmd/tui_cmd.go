package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hisahi/lrg/internal/config"
	"github.com/hisahi/lrg/internal/tui"
)

// tuiCmd launches the interactive range viewer.
var tuiCmd = &cobra.Command{
	Use:   "tui [input-file]",
	Short: "Browse a file's line ranges interactively",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			diag("%v", err)
			os.Exit(exitUsage)
		}
		applyFlagOverrides(cmd, &cfg)
		opts, _, err := buildOptions(cfg)
		if err != nil {
			diag("%v", err)
			os.Exit(exitUsage)
		}
		if err := tui.Run(args[0], opts); err != nil {
			diag("%v", err)
			os.Exit(exitFailure)
		}
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
