package base

import (
	"github.com/lit-app/commander/pkg/commander"
	"github.com/lit-app/commander/pkg/fileops"
	"github.com/lit-app/commander/pkg/settings"
)

// ClientFlags are the connection options accepted by every command that
// talks to a commander server.
type ClientFlags struct {
	Config    string
	ServerURL string
	BasePath  string
	Username  string
	Password  string
}

// Register adds the connection options to f.
func (cf *ClientFlags) Register(f *FlagSet) {
	f.StringVar(
		&cf.Config, "config", "",
		"Path to a configuration file (.hcl, .json, .yaml or .yml).",
	)
	f.StringVar(
		&cf.ServerURL, "server-url", "",
		"Commander server URL. Overrides the configuration file and environment.",
	)
	f.StringVar(
		&cf.BasePath, "base-path", "",
		"Directory on the server that all paths are relative to.",
	)
	f.StringVar(
		&cf.Username, "username", "",
		"Username for the password grant.",
	)
}

// overrides returns the flag values that were set, keyed for
// settings.MapProvider.
func (cf *ClientFlags) overrides() settings.MapProvider {
	values := settings.MapProvider{}
	for key, v := range map[string]string{
		"serverUrl": cf.ServerURL,
		"basePath":  cf.BasePath,
		"username":  cf.Username,
		"password":  cf.Password,
	} {
		if v != "" {
			values[key] = v
		}
	}
	return values
}

// Settings returns the configuration sources for cf in increasing
// precedence: environment, configuration file, flags.
func (c *Command) Settings(cf *ClientFlags) settings.Provider {
	chain := settings.Chain{
		&settings.EnvProvider{LookupEnv: c.LookupEnv},
	}
	if cf.Config != "" {
		chain = append(chain, &settings.FileProvider{Path: cf.Config, Fs: c.Fs})
	}
	return append(chain, cf.overrides())
}

// NewClient returns an uninitialized client configured from cf.
func (c *Command) NewClient(cf *ClientFlags) (*commander.Client, error) {
	return commander.New(commander.Options{
		Settings: c.Settings(cf),
		Logger:   c.Log,
	})
}

// NewService returns a façade over a new client configured from cf.
func (c *Command) NewService(cf *ClientFlags) (*fileops.Service, error) {
	client, err := c.NewClient(cf)
	if err != nil {
		return nil, err
	}
	return fileops.New(fileops.Config{
		Remote: client,
		Logger: c.Log,
	})
}
