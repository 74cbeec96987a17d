// Package files implements the CLI commands that operate on the remote
// filesystem.
package files

import (
	"flag"
	"fmt"

	"github.com/lit-app/commander/internal/cmd/base"
	"github.com/lit-app/commander/pkg/fileops"
)

// remoteCommand is embedded by every command in this package.
type remoteCommand struct {
	*base.Command

	clientFlags base.ClientFlags
}

func (c *remoteCommand) newFlagSet(name string) *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet(name, flag.ContinueOnError))
	c.clientFlags.Register(f)
	return f
}

// parse parses args into f and checks the number of positional arguments.
func (c *remoteCommand) parse(f *base.FlagSet, args []string, minArgs, maxArgs int) ([]string, bool) {
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return nil, false
	}

	rest := f.Args()
	if len(rest) < minArgs || (maxArgs >= 0 && len(rest) > maxArgs) {
		switch {
		case minArgs == maxArgs:
			c.UI.Error(fmt.Sprintf("expected %d argument(s), got %d", minArgs, len(rest)))
		case maxArgs < 0:
			c.UI.Error(fmt.Sprintf("expected at least %d argument(s), got %d", minArgs, len(rest)))
		default:
			c.UI.Error(fmt.Sprintf("expected %d to %d argument(s), got %d", minArgs, maxArgs, len(rest)))
		}
		return nil, false
	}
	return rest, true
}

func (c *remoteCommand) service() (*fileops.Service, bool) {
	svc, err := c.NewService(&c.clientFlags)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error creating client: %v", err))
		return nil, false
	}
	return svc, true
}
