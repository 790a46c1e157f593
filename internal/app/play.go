package app

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vodtools/vodindex/internal/player"
	"github.com/vodtools/vodindex/internal/util"
)

func newPlayCmd() *cobra.Command {
	var (
		dir     string
		rewind  int
		verbose bool
	)
	cmd := &cobra.Command{
		Use:     "vodplay -d DIR -- COMMAND [ARGS]",
		Short:   "Shuffle and play downloaded videos",
		Long:    `Plays the videos in DIR with COMMAND in random order, avoiding repeats and resuming an interrupted video where it stopped. A "{}" argument is replaced by the start position in seconds.`,
		Example: `  vodplay -d /media/videos -- mpv --fullscreen --start={}`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			util.InitColor(false)
			p := &player.Player{
				Dir:       dir,
				Command:   args,
				RewindSec: rewind,
				Verbose:   verbose,
				Log: func(format string, a ...interface{}) {
					fmt.Fprintln(os.Stderr, fmt.Sprintf(format, a...))
				},
			}
			return p.Run()
		},
	}
	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "video directory")
	cmd.Flags().IntVar(&rewind, "replay-sec", 30, "seconds to replay when resuming a video")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show video player output")
	return cmd
}

// ExecutePlayer is the entry point of the vodplay binary.
func ExecutePlayer(v string) {
	cmd := newPlayCmd()
	cmd.Version = v
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(1)
	}
}
