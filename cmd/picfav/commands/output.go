package commands

import (
	"context"
	"encoding/json"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/picfav/cmd/picfav/opts"
	"github.com/walteh/picfav/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// commandContext tags the context logger with the command name
func commandContext(ctx context.Context, name string) context.Context {
	return zerolog.Ctx(ctx).With().Str("command", name).Logger().WithContext(ctx)
}

// writeJSON writes v as a single JSON line on stdout
func writeJSON(o *opts.RootOpts, v any) error {
	if err := json.NewEncoder(o.Stdout).Encode(v); err != nil {
		return errors.Errorf("writing output: %w", err)
	}
	return nil
}

// printImages prints a folder listing, starring the favourites
func printImages(ctx context.Context, o *opts.RootOpts, images []string) error {
	if o.Events {
		if images == nil {
			images = []string{}
		}
		return writeJSON(o, images)
	}

	console := log.FromContext(ctx)
	for _, img := range images {
		fav, err := o.App.IsFavourite(ctx, img)
		if err != nil {
			return err
		}
		console.Image(img, fav)
	}
	console.Infof("%d images", len(images))
	return nil
}

// absPaths makes every argument absolute so favourites match scan results
func absPaths(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, a := range args {
		abs, err := filepath.Abs(a)
		if err != nil {
			return nil, errors.Errorf("resolving %s: %w", a, err)
		}
		out = append(out, abs)
	}
	return out, nil
}
