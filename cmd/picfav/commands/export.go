package commands

import (
	"context"
	"path/filepath"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"github.com/walteh/picfav/cmd/picfav/opts"
	"github.com/walteh/picfav/pkg/log"
	"github.com/walteh/picfav/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewExportCmd creates a new export command
func NewExportCmd(opts *opts.RootOpts) *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:   "export [destination]",
		Short: "Copy favourite images to a folder",
		Long: `Export copies every favourite into the destination folder, one file at a
time, in the order they were added. Files keep their base name and replace
any file of the same name. The destination defaults to the configured one.

The export stops at the first file that cannot be copied; files already
copied stay in place. With --files, the given images are exported instead of
the favourites.

The exported names are listed once the export ends, including the names
copied before a failure. With --events they follow the progress events on
stdout as a single JSON array. Without --events a progress bar is drawn on
stderr; the terminal cursor is hidden while it runs, and the escape codes
doing so are written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd.Context(), "export")

			destination := ""
			if len(args) == 1 {
				abs, err := filepath.Abs(args[0])
				if err != nil {
					return err
				}
				destination = abs
			}

			var (
				exported []string
				err      error
			)
			if cmd.Flags().Changed("files") {
				sources, aerr := absPaths(files)
				if aerr != nil {
					return aerr
				}
				exported, err = opts.App.ExportFiles(ctx, destination, sources)
			} else {
				exported, err = opts.App.ExportFavourites(ctx, destination)
			}
			if err != nil {
				var exportErr *operation.ExportError
				if errors.As(err, &exportErr) {
					if perr := printExported(ctx, opts, exportErr.Completed, false); perr != nil {
						return errors.Join(err, perr)
					}
				}
				return err
			}

			return printExported(ctx, opts, exported, true)
		},
	}

	cmd.Flags().StringSliceVar(&files, "files", nil, "export these images instead of the favourites")

	return cmd
}

// printExported lists the names an export wrote. With --events the list is a
// JSON array on stdout, after the progress events.
func printExported(ctx context.Context, opts *opts.RootOpts, names []string, complete bool) error {
	if opts.Events {
		if names == nil {
			names = []string{}
		}
		return writeJSON(opts, names)
	}

	console := log.FromContext(ctx)
	if !complete {
		console.Warningf("%s copied before the export stopped", english.Plural(len(names), "file", ""))
		for _, name := range names {
			console.Info(name)
		}
		return nil
	}

	for _, name := range names {
		console.Successf("exported %s", name)
	}
	console.Successf("exported %s", english.Plural(len(names), "file", ""))
	return nil
}
