package files

import (
	"fmt"

	"github.com/lit-app/commander/internal/cmd/base"
	"github.com/lit-app/commander/pkg/fileops"
)

type ReadCommand struct {
	remoteCommand

	flagOffset int
	flagLength int
	flagURL    bool
}

func NewReadCommand(b *base.Command) *ReadCommand {
	return &ReadCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *ReadCommand) Synopsis() string {
	return "Print the content of a remote file"
}

func (c *ReadCommand) Help() string {
	return `Usage: commander read [options] <path>

  Reads a file below the configured base path and prints its content.
  Image files are printed as the server returns them (base64).` +
		c.Flags().Help()
}

func (c *ReadCommand) Flags() *base.FlagSet {
	f := c.newFlagSet("read")

	f.IntVar(
		&c.flagOffset, "offset", 0,
		"Line to start reading from.",
	)
	f.IntVar(
		&c.flagLength, "length", 0,
		"Maximum number of lines to read. 0 reads to the end.",
	)
	f.BoolVar(
		&c.flagURL, "url", false,
		"Treat the argument as a URL. Not supported by the server.",
	)

	return f
}

func (c *ReadCommand) Run(args []string) int {
	rest, ok := c.parse(c.Flags(), args, 1, 1)
	if !ok {
		return 1
	}
	svc, ok := c.service()
	if !ok {
		return 1
	}

	ctx, stop := c.Context()
	defer stop()

	file, err := svc.ReadFile(ctx, rest[0], fileops.ReadOptions{
		IsURL:  c.flagURL,
		Offset: c.flagOffset,
		Length: c.flagLength,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error reading file: %v", err))
		return 1
	}

	c.Log.Debug("read file", "path", rest[0], "mime_type", file.MimeType, "is_image", file.IsImage)
	c.UI.Output(file.Content)
	return 0
}

type ReadManyCommand struct {
	remoteCommand
}

func NewReadManyCommand(b *base.Command) *ReadManyCommand {
	return &ReadManyCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *ReadManyCommand) Synopsis() string {
	return "Print the content of several remote files"
}

func (c *ReadManyCommand) Help() string {
	return `Usage: commander read-many [options] <path> [<path>...]

  Reads each file in order and prints it under a header line. A file that
  cannot be read is reported and the remaining files are still read; the
  exit code is 1 if any read failed.` +
		c.Flags().Help()
}

func (c *ReadManyCommand) Flags() *base.FlagSet {
	return c.newFlagSet("read-many")
}

func (c *ReadManyCommand) Run(args []string) int {
	paths, ok := c.parse(c.Flags(), args, 1, -1)
	if !ok {
		return 1
	}
	svc, ok := c.service()
	if !ok {
		return 1
	}

	ctx, stop := c.Context()
	defer stop()

	results := svc.ReadMultipleFiles(ctx, paths)
	for _, r := range results {
		if r.Error != "" {
			c.UI.Error(fmt.Sprintf("==> %s: %s", r.Path, r.Error))
			continue
		}
		c.UI.Output(fmt.Sprintf("==> %s (%s)", r.Path, r.MimeType))
		c.UI.Output(r.Content)
	}

	if err := results.Err(); err != nil {
		c.Log.Warn("some files could not be read", "error", err)
		return 1
	}
	return 0
}
