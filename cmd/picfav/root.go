package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/picfav/cmd/picfav/commands"
	"github.com/walteh/picfav/cmd/picfav/opts"
	"github.com/walteh/picfav/pkg/app"
	"github.com/walteh/picfav/pkg/config"
	"github.com/walteh/picfav/pkg/log"
	"github.com/walteh/picfav/pkg/paths"
	"github.com/walteh/picfav/pkg/status"
	"github.com/walteh/picfav/pkg/store"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".picfav.yaml"

// newRootCmd creates the root command with every subcommand attached
func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   paths.AppName,
		Short: "Browse image folders, keep favourites and export them",
		Long: `picfav lists the images in a folder, remembers the ones you mark as
favourites across sessions, and copies them to a destination folder.

With --events, export progress is written to stdout as JSON lines
({"event":"export-progress","payload":N}) for a UI shell to follow.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newRootOpts(setupLogging(cmd.Context(), o), cmd, o)
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeStore(o)
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewScanCmd(o),
		commands.NewAddCmd(o),
		commands.NewRemoveCmd(o),
		commands.NewListCmd(o),
		commands.NewExportCmd(o),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", defaultConfigFile, "config file path (.yaml, .hcl or .toml)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&o.DataDir, "data-dir", "", "directory holding the favourites database")
	cmd.PersistentFlags().BoolVar(&o.Events, "events", false, "write export progress events to stdout as JSON lines")
	cmd.PersistentFlags().BoolVar(&o.Async, "async", false, "run exports asynchronously")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, o *opts.RootOpts) context.Context {
	level := zerolog.WarnLevel
	if o.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: o.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().
		Logger()

	return logger.WithContext(ctx)
}

// newRootOpts loads the config, applies flag overrides, opens the store and
// attaches the console logger. A store that cannot be opened stops the
// command before it runs.
func newRootOpts(ctx context.Context, cmd *cobra.Command, o *opts.RootOpts) (context.Context, error) {
	flags := cmd.Flags()

	cfg, err := config.Load(ctx, o.ConfigFile, !flags.Changed("config"))
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	if flags.Changed("data-dir") {
		abs, err := filepath.Abs(o.DataDir)
		if err != nil {
			return nil, errors.Errorf("resolving data directory: %w", err)
		}
		cfg.DataDir = abs
	}
	if flags.Changed("events") {
		cfg.Events = o.Events
	}
	if flags.Changed("async") {
		cfg.Async = o.Async
	}

	if cfg.DataDir == "" {
		cfg.DataDir, err = paths.DataDir(paths.AppName)
		if err != nil {
			return nil, errors.Errorf("resolving data directory: %w", err)
		}
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Str("location", cfg.Location()).Msg("configuration loaded")

	s, err := store.Open(ctx, cfg.DataDir)
	if err != nil {
		return nil, errors.Errorf("initializing favourites store: %w", err)
	}

	var emitter status.Emitter
	if cfg.Events {
		emitter = status.NewJSONEmitter(o.Stdout)
	} else {
		emitter = status.NewBarEmitter(o.Stderr, "exporting")
	}

	a, err := app.New(app.Options{Favourites: s, Config: cfg, Emitter: emitter})
	if err != nil {
		_ = s.Close()
		return nil, errors.Errorf("creating app: %w", err)
	}

	o.Config = cfg
	o.Store = s
	o.App = a
	o.Events = cfg.Events

	// keep stdout clean for the event stream
	console := o.Stdout
	if cfg.Events {
		console = o.Stderr
	}
	return log.NewContext(ctx, log.New(console, *zerolog.Ctx(ctx))), nil
}

// closeStore releases the store; safe to call more than once
func closeStore(o *opts.RootOpts) error {
	if o.Store == nil {
		return nil
	}
	return o.Store.Close()
}
