package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/picfav/cmd/picfav/opts"
	"github.com/walteh/picfav/pkg/log"
)

// NewScanCmd creates a new scan command
func NewScanCmd(opts *opts.RootOpts) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "scan <folder>",
		Short: "List the images in a folder",
		Long: `Scan lists the jpg, jpeg, png, webp, bmp and gif files directly inside a
folder. Favourites are marked with a star. With --events the listing is
written to stdout as a JSON array of absolute paths.

With --watch the folder is listed again every time a file is added,
removed or renamed, until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "scan")
			folder := args[0]

			if !watch {
				images, err := opts.App.ScanFolder(ctx, folder)
				if err != nil {
					return err
				}
				return printImages(ctx, opts, images)
			}

			console := log.FromContext(ctx)
			return opts.App.WatchFolder(ctx, folder, func(images []string) {
				if !opts.Events {
					console.Header("watching " + folder)
				}
				if err := printImages(ctx, opts, images); err != nil {
					console.Warningf("printing listing: %v", err)
					return
				}
				if !opts.Events {
					console.LogNewline()
				}
			})
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep listing the folder as it changes")

	return cmd
}
