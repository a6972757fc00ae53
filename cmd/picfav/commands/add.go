package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/picfav/cmd/picfav/opts"
	"github.com/walteh/picfav/pkg/log"
)

// NewAddCmd creates a new add command
func NewAddCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <image>...",
		Short: "Mark images as favourites",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "add")

			images, err := absPaths(args)
			if err != nil {
				return err
			}

			console := log.FromContext(ctx)
			for _, img := range images {
				if err := opts.App.AddFavourite(ctx, img); err != nil {
					return err
				}
				console.Successf("★ %s", filepath.Base(img))
			}
			return nil
		},
	}

	return cmd
}
