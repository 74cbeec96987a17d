package files

import (
	"fmt"

	"github.com/lit-app/commander/internal/cmd/base"
	"github.com/lit-app/commander/pkg/commander"
)

type SearchCommand struct {
	remoteCommand

	flagTimeoutMs int
}

func NewSearchCommand(b *base.Command) *SearchCommand {
	return &SearchCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *SearchCommand) Synopsis() string {
	return "Find remote files by name"
}

func (c *SearchCommand) Help() string {
	return `Usage: commander search [options] <path> <pattern>

  Prints the paths below <path> whose names match <pattern>.` +
		c.Flags().Help()
}

func (c *SearchCommand) Flags() *base.FlagSet {
	f := c.newFlagSet("search")

	f.IntVar(
		&c.flagTimeoutMs, "timeout-ms", 0,
		"Server-side search timeout in milliseconds. 0 uses the server default.",
	)

	return f
}

func (c *SearchCommand) Run(args []string) int {
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

	paths, err := svc.SearchFiles(ctx, rest[0], rest[1], c.flagTimeoutMs)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error searching files: %v", err))
		return 1
	}

	for _, p := range paths {
		c.UI.Output(p)
	}
	return 0
}

type SearchCodeCommand struct {
	remoteCommand

	flagFilePattern   string
	flagIgnoreCase    bool
	flagMaxResults    int
	flagIncludeHidden bool
	flagContextLines  int
	flagTimeoutMs     int
}

func NewSearchCodeCommand(b *base.Command) *SearchCodeCommand {
	return &SearchCodeCommand{remoteCommand: remoteCommand{Command: b}}
}

func (c *SearchCodeCommand) Synopsis() string {
	return "Search the content of remote files"
}

func (c *SearchCodeCommand) Help() string {
	return `Usage: commander search-code [options] <path> <pattern>

  Searches file contents below <path> and prints one "file:line: match"
  line per result.` +
		c.Flags().Help()
}

func (c *SearchCodeCommand) Flags() *base.FlagSet {
	f := c.newFlagSet("search-code")

	f.StringVar(
		&c.flagFilePattern, "file-pattern", "",
		"Only search files whose names match this glob.",
	)
	f.BoolVar(
		&c.flagIgnoreCase, "ignore-case", false,
		"Match case-insensitively.",
	)
	f.IntVar(
		&c.flagMaxResults, "max-results", 0,
		"Maximum number of matches. 0 uses the server default.",
	)
	f.BoolVar(
		&c.flagIncludeHidden, "include-hidden", false,
		"Also search hidden files and directories.",
	)
	f.IntVar(
		&c.flagContextLines, "context-lines", 0,
		"Lines of context around each match.",
	)
	f.IntVar(
		&c.flagTimeoutMs, "timeout-ms", 0,
		"Server-side search timeout in milliseconds. 0 uses the server default.",
	)

	return f
}

func (c *SearchCodeCommand) Run(args []string) int {
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

	matches, err := svc.SearchCode(ctx, commander.SearchCodeRequest{
		Path:          rest[0],
		Pattern:       rest[1],
		FilePattern:   c.flagFilePattern,
		IgnoreCase:    c.flagIgnoreCase,
		MaxResults:    c.flagMaxResults,
		IncludeHidden: c.flagIncludeHidden,
		ContextLines:  c.flagContextLines,
		TimeoutMs:     c.flagTimeoutMs,
	})
	if err != nil {
		c.UI.Error(fmt.Sprintf("error searching code: %v", err))
		return 1
	}

	for _, m := range matches {
		c.UI.Output(fmt.Sprintf("%s:%d: %s", m.File, m.Line, m.Match))
	}
	return 0
}
