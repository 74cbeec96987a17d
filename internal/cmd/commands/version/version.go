package version

import (
	"github.com/lit-app/commander/internal/cmd/base"
	"github.com/lit-app/commander/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the commander version"
}

func (c *Command) Help() string {
	return `Usage: commander version

  Prints the version of this binary.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("commander " + version.Version)
	return 0
}
