package login

import (
	"flag"
	"fmt"
	"time"

	"github.com/lit-app/commander/internal/cmd/base"
)

type Command struct {
	*base.Command

	clientFlags    base.ClientFlags
	flagPrintToken bool
}

func (c *Command) Synopsis() string {
	return "Authenticate against the identity provider"
}

func (c *Command) Help() string {
	return `Usage: commander login [options]

  Obtains an access token with the configured username and password. The
  password is read from COMMANDER_PASSWORD or the configuration file, or
  prompted for when missing.

  With -print-token the token is written to stdout so that it can be
  exported as COMMANDER_AUTH_TOKEN for later commands.` +
		c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("login", flag.ContinueOnError))
	c.clientFlags.Register(f)

	f.BoolVar(
		&c.flagPrintToken, "print-token", false,
		"Print the access token instead of a summary.",
	)

	return f
}

func (c *Command) Run(args []string) int {
	logger, ui := c.Log, c.UI

	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if flags.NArg() > 0 {
		ui.Error("login takes no arguments")
		return 1
	}

	ctx, stop := c.Context()
	defer stop()

	// Prompt for the password only when no other source supplies one.
	s, err := c.Settings(&c.clientFlags).Load(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}
	if s.Username == "" {
		ui.Error("a username is required: set -username, COMMANDER_USERNAME or the configuration file")
		return 1
	}
	if s.Password == "" {
		password, err := ui.AskSecret(fmt.Sprintf("Password for %s:", s.Username))
		if err != nil {
			ui.Error(fmt.Sprintf("error reading password: %v", err))
			return 1
		}
		c.clientFlags.Password = password
	}

	client, err := c.NewClient(&c.clientFlags)
	if err != nil {
		ui.Error(fmt.Sprintf("error creating client: %v", err))
		return 1
	}
	if err := client.Init(ctx); err != nil {
		ui.Error(fmt.Sprintf("error initializing client: %v", err))
		return 1
	}

	// Init skips authentication when a token is already configured.
	if client.TokenExpiry().IsZero() {
		if err := client.Authenticate(ctx); err != nil {
			ui.Error(fmt.Sprintf("error authenticating: %v", err))
			return 1
		}
	}

	cfg, err := client.Config()
	if err != nil {
		ui.Error(fmt.Sprintf("error reading client configuration: %v", err))
		return 1
	}

	if c.flagPrintToken {
		ui.Output(cfg.AuthToken)
		return 0
	}

	expiry := client.TokenExpiry()
	logger.Debug("login complete", "username", cfg.Username, "expires", expiry)
	ui.Info(fmt.Sprintf("Authenticated as %s", cfg.Username))
	if !expiry.IsZero() {
		ui.Info(fmt.Sprintf("Token expires at %s", expiry.UTC().Format(time.RFC3339)))
	}
	return 0
}
