package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sleepdiary/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Window string
}

func AddSinceArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Window, "since", "",
		`Only notes from a lookback window, example: --since="7 nights" or --since=2w.`)
}

func AddLastArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Window, "last", timeutil.DefaultWindow,
		"Time window to include (for example 3d, 1w, 14 nights).")
}
