package files

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/lit-app/commander/internal/cmd/base"
	"github.com/lit-app/commander/pkg/commander"
)

type WriteCommand struct {
	remoteCommand

	flagFrom   string
	flagAppend bool
}

func NewWriteCommand(b *base.Command) *WriteCommand {
	return &WriteCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *WriteCommand) Synopsis() string {
	return "Write content to a remote file"
}

func (c *WriteCommand) Help() string {
	return `Usage: commander write [options] <path> [<content>...]
       commander write [options] -from=<local-file> <path>

  Writes the remaining arguments, joined by spaces, or the content of a
  local file to a remote file. The file is replaced unless -append is set.` +
		c.Flags().Help()
}

func (c *WriteCommand) Flags() *base.FlagSet {
	f := c.newFlagSet("write")

	f.StringVar(
		&c.flagFrom, "from", "",
		"Read the content from this local file.",
	)
	f.BoolVar(
		&c.flagAppend, "append", false,
		"Append to the file instead of replacing it.",
	)

	return f
}

func (c *WriteCommand) Run(args []string) int {
	rest, ok := c.parse(c.Flags(), args, 1, -1)
	if !ok {
		return 1
	}

	path := rest[0]
	content := strings.Join(rest[1:], " ")
	if c.flagFrom != "" {
		if len(rest) > 1 {
			c.UI.Error("content arguments cannot be combined with -from")
			return 1
		}
		b, err := afero.ReadFile(c.Fs, c.flagFrom)
		if err != nil {
			c.UI.Error(fmt.Sprintf("error reading %s: %v", c.flagFrom, err))
			return 1
		}
		content = string(b)
	}

	mode := commander.WriteModeRewrite
	if c.flagAppend {
		mode = commander.WriteModeAppend
	}

	svc, ok := c.service()
	if !ok {
		return 1
	}

	ctx, stop := c.Context()
	defer stop()

	msg, err := svc.WriteFile(ctx, path, content, mode)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error writing file: %v", err))
		return 1
	}

	c.UI.Info(msg)
	return 0
}

type EditCommand struct {
	remoteCommand

	flagExpectedReplacements int
}

func NewEditCommand(b *base.Command) *EditCommand {
	return &EditCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *EditCommand) Synopsis() string {
	return "Replace a block of text in a remote file"
}

func (c *EditCommand) Help() string {
	return `Usage: commander edit [options] <path> <old> <new>

  Replaces occurrences of <old> with <new> in a remote file. The server
  rejects the edit when the number of occurrences differs from
  -expected-replacements.` +
		c.Flags().Help()
}

func (c *EditCommand) Flags() *base.FlagSet {
	f := c.newFlagSet("edit")

	f.IntVar(
		&c.flagExpectedReplacements, "expected-replacements", 1,
		"Number of occurrences that must be replaced.",
	)

	return f
}

func (c *EditCommand) Run(args []string) int {
	rest, ok := c.parse(c.Flags(), args, 3, 3)
	if !ok {
		return 1
	}
	if c.flagExpectedReplacements < 1 {
		c.UI.Error("expected-replacements must be at least 1")
		return 1
	}

	svc, ok := c.service()
	if !ok {
		return 1
	}

	ctx, stop := c.Context()
	defer stop()

	msg, err := svc.EditBlock(ctx, commander.EditBlockRequest{
		FilePath:             rest[0],
		OldString:            rest[1],
		NewString:            rest[2],
		ExpectedReplacements: c.flagExpectedReplacements,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error editing file: %v", err))
		return 1
	}

	c.UI.Info(msg)
	return 0
}

type MoveCommand struct {
	remoteCommand
}

func NewMoveCommand(b *base.Command) *MoveCommand {
	return &MoveCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *MoveCommand) Synopsis() string {
	return "Move or rename a remote file (not supported by the server)"
}

func (c *MoveCommand) Help() string {
	return `Usage: commander move [options] <source> <destination>

  The commander server has no move endpoint; this command always fails.` +
		c.Flags().Help()
}

func (c *MoveCommand) Flags() *base.FlagSet {
	return c.newFlagSet("move")
}

func (c *MoveCommand) Run(args []string) int {
	rest, ok := c.parse(c.Flags(), args, 2, 2)
	if !ok {
		return 1
	}
	svc, ok := c.service()
	if !ok {
		return 1
	}

	ctx, stop := c.Context()
	defer stop()

	if err := svc.MoveFile(ctx, rest[0], rest[1]); err != nil {
		c.UI.Error(fmt.Sprintf("error moving file: %v", err))
		return 1
	}
	return 0
}
