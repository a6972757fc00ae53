package opts

import (
	"io"

	"github.com/walteh/picfav/pkg/app"
	"github.com/walteh/picfav/pkg/config"
	"github.com/walteh/picfav/pkg/store"
)

// RootOpts contains shared options used by all commands. The flag fields are
// bound by the root command; the rest is filled in before a command runs.
type RootOpts struct {
	ConfigFile string
	Debug      bool
	DataDir    string
	Events     bool
	Async      bool

	Config *config.Config
	Store  *store.Store
	App    *app.App

	// Stdout carries command results, and the event stream with --events
	Stdout io.Writer
	// Stderr carries logs, the progress bar, and console lines with --events
	Stderr io.Writer
}
