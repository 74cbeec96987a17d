package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/lit-app/commander/internal/cmd/base"
	"github.com/lit-app/commander/internal/cmd/commands/files"
	"github.com/lit-app/commander/internal/cmd/commands/login"
	"github.com/lit-app/commander/internal/cmd/commands/version"
)

// Commands is the mapping of all available commander commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	initCommandsWith(base.NewCommand(log, ui))
}

func initCommandsWith(b *base.Command) {
	Commands = map[string]cli.CommandFactory{
		"read": func() (cli.Command, error) {
			return files.NewReadCommand(b), nil
		},
		"read-many": func() (cli.Command, error) {
			return files.NewReadManyCommand(b), nil
		},
		"write": func() (cli.Command, error) {
			return files.NewWriteCommand(b), nil
		},
		"edit": func() (cli.Command, error) {
			return files.NewEditCommand(b), nil
		},
		"move": func() (cli.Command, error) {
			return files.NewMoveCommand(b), nil
		},
		"ls": func() (cli.Command, error) {
			return files.NewListCommand(b), nil
		},
		"mkdir": func() (cli.Command, error) {
			return files.NewMkdirCommand(b), nil
		},
		"info": func() (cli.Command, error) {
			return files.NewInfoCommand(b), nil
		},
		"search": func() (cli.Command, error) {
			return files.NewSearchCommand(b), nil
		},
		"search-code": func() (cli.Command, error) {
			return files.NewSearchCodeCommand(b), nil
		},
		"login": func() (cli.Command, error) {
			return &login.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
