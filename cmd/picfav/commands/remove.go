package commands

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/walteh/picfav/cmd/picfav/opts"
	"github.com/walteh/picfav/pkg/log"
)

// NewRemoveCmd creates a new remove command
func NewRemoveCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <image>...",
		Aliases: []string{"rm"},
		Short:   "Unmark favourite images",
		Long: `Remove unmarks images. Removing an image that is not a favourite is not
an error. The image files themselves are never touched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "remove")

			images, err := absPaths(args)
			if err != nil {
				return err
			}

			console := log.FromContext(ctx)
			for _, img := range images {
				if err := opts.App.RemoveFavourite(ctx, img); err != nil {
					return err
				}
				console.Successf("- %s", filepath.Base(img))
			}
			return nil
		},
	}

	return cmd
}
