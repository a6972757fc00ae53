package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/picfav/cmd/picfav/opts"
	"github.com/walteh/picfav/pkg/log"
)

// NewListCmd creates a new list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List favourite images",
		Long: `List prints every favourite in the order it was added. With --events the
favourites are written to stdout as a JSON array of {"path": ...} objects.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "list")

			favourites, err := opts.App.GetFavourites(ctx)
			if err != nil {
				return err
			}

			if opts.Events {
				return writeJSON(opts, favourites)
			}

			console := log.FromContext(ctx)
			for _, f := range favourites {
				console.Image(f.Path, true)
			}
			console.Infof("%d favourites", len(favourites))
			return nil
		},
	}

	return cmd
}
