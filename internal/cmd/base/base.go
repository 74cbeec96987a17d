package base

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
)

// Command carries the dependencies shared by every subcommand.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// Fs is used for local files such as -config and write -from.
	Fs afero.Fs

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// NewCommand returns a Command backed by the OS filesystem and environment.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
		Fs:  afero.NewOsFs(),
	}
}

// Context returns a context that is cancelled on interrupt or SIGTERM.
func (c *Command) Context() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
