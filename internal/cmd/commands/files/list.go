package files

import (
	"fmt"
	"time"

	"github.com/lit-app/commander/internal/cmd/base"
	"github.com/lit-app/commander/pkg/commander"
)

type ListCommand struct {
	remoteCommand
}

func NewListCommand(b *base.Command) *ListCommand {
	return &ListCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *ListCommand) Synopsis() string {
	return "List a remote directory"
}

func (c *ListCommand) Help() string {
	return `Usage: commander ls [options] [<path>]

  Lists a directory below the configured base path, one "[TYPE] name" entry
  per line. Without a path the base path itself is listed.` +
		c.Flags().Help()
}

func (c *ListCommand) Flags() *base.FlagSet {
	return c.newFlagSet("ls")
}

func (c *ListCommand) Run(args []string) int {
	rest, ok := c.parse(c.Flags(), args, 0, 1)
	if !ok {
		return 1
	}
	path := "/"
	if len(rest) == 1 {
		path = rest[0]
	}

	svc, ok := c.service()
	if !ok {
		return 1
	}

	ctx, stop := c.Context()
	defer stop()

	entries, err := svc.ListDirectory(ctx, path)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing directory: %v", err))
		return 1
	}

	for _, e := range entries {
		c.UI.Output(e)
	}
	return 0
}

type MkdirCommand struct {
	remoteCommand
}

func NewMkdirCommand(b *base.Command) *MkdirCommand {
	return &MkdirCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *MkdirCommand) Synopsis() string {
	return "Create a remote directory"
}

func (c *MkdirCommand) Help() string {
	return `Usage: commander mkdir [options] <path>

  Creates a directory, and any missing parents, below the configured base
  path.` +
		c.Flags().Help()
}

func (c *MkdirCommand) Flags() *base.FlagSet {
	return c.newFlagSet("mkdir")
}

func (c *MkdirCommand) Run(args []string) int {
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

	msg, err := svc.CreateDirectory(ctx, rest[0])
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating directory: %v", err))
		return 1
	}

	c.UI.Info(msg)
	return 0
}

type InfoCommand struct {
	remoteCommand
}

func NewInfoCommand(b *base.Command) *InfoCommand {
	return &InfoCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *InfoCommand) Synopsis() string {
	return "Show metadata of a remote file or directory"
}

func (c *InfoCommand) Help() string {
	return `Usage: commander info [options] <path>

  Prints size, timestamps, type and permissions of a remote path. Line
  counts are printed for text files.` +
		c.Flags().Help()
}

func (c *InfoCommand) Flags() *base.FlagSet {
	return c.newFlagSet("info")
}

func (c *InfoCommand) Run(args []string) int {
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

	info, err := svc.GetFileInfo(ctx, rest[0])
	if err != nil {
		c.UI.Error(fmt.Sprintf("error getting file info: %v", err))
		return 1
	}

	for _, line := range formatFileInfo(info) {
		c.UI.Output(line)
	}
	return 0
}

func formatFileInfo(info *commander.FileInfo) []string {
	kind := "file"
	if info.IsDirectory {
		kind = "directory"
	}

	lines := []string{
		fmt.Sprintf("type:        %s", kind),
		fmt.Sprintf("size:        %d", info.Size),
		fmt.Sprintf("created:     %s", formatTime(info.Created)),
		fmt.Sprintf("modified:    %s", formatTime(info.Modified)),
		fmt.Sprintf("accessed:    %s", formatTime(info.Accessed)),
		fmt.Sprintf("permissions: %s", info.Permissions),
	}
	if info.LineCount > 0 {
		lines = append(lines,
			fmt.Sprintf("lines:       %d", info.LineCount),
			fmt.Sprintf("last line:   %d", info.LastLine),
		)
	}
	return lines
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
