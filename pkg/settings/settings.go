package settings

import (
	"context"
	"time"
)

// Keys lists the configuration keys understood by every provider, in the
// camelCase form used by map and YAML sources.
var Keys = []string{
	"serverUrl",
	"authUrl",
	"authToken",
	"basePath",
	"username",
	"password",
	"timeout",
	"tlsVerify",
}

// Settings is the raw connection configuration for a commander client.
// Providers fill in whatever they know; defaults and validation are applied
// by the consumer.
type Settings struct {
	// ServerURL is the base URL of the remote commander server.
	ServerURL string `mapstructure:"serverUrl" yaml:"serverUrl"`

	// AuthURL is the base URL of the identity provider.
	AuthURL string `mapstructure:"authUrl" yaml:"authUrl"`

	// AuthToken is a pre-issued bearer token. When empty, Username and
	// Password are used to obtain one.
	AuthToken string `mapstructure:"authToken" yaml:"authToken"`

	// BasePath is the server-side root every request path is prefixed with.
	BasePath string `mapstructure:"basePath" yaml:"basePath"`

	Username string `mapstructure:"username" yaml:"username"`
	Password string `mapstructure:"password" yaml:"password"`

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// TLSVerify controls certificate verification. Nil means verify.
	TLSVerify *bool `mapstructure:"tlsVerify" yaml:"tlsVerify"`
}

// Merge overlays the non-empty fields of other onto s.
func (s *Settings) Merge(other *Settings) {
	if other == nil {
		return
	}
	if other.ServerURL != "" {
		s.ServerURL = other.ServerURL
	}
	if other.AuthURL != "" {
		s.AuthURL = other.AuthURL
	}
	if other.AuthToken != "" {
		s.AuthToken = other.AuthToken
	}
	if other.BasePath != "" {
		s.BasePath = other.BasePath
	}
	if other.Username != "" {
		s.Username = other.Username
	}
	if other.Password != "" {
		s.Password = other.Password
	}
	if other.Timeout != 0 {
		s.Timeout = other.Timeout
	}
	if other.TLSVerify != nil {
		v := *other.TLSVerify
		s.TLSVerify = &v
	}
}

// Provider supplies Settings to a commander client.
type Provider interface {
	Load(ctx context.Context) (*Settings, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) (*Settings, error)

// Load calls f(ctx).
func (f ProviderFunc) Load(ctx context.Context) (*Settings, error) {
	return f(ctx)
}

// Static returns a Provider that always yields a copy of s.
func Static(s Settings) Provider {
	return ProviderFunc(func(context.Context) (*Settings, error) {
		out := Settings{}
		out.Merge(&s)
		return &out, nil
	})
}

// Chain loads every provider in order and merges the results, so later
// providers override earlier ones field by field.
type Chain []Provider

// Load implements Provider.
func (c Chain) Load(ctx context.Context) (*Settings, error) {
	merged := &Settings{}
	for _, p := range c {
		if p == nil {
			continue
		}
		s, err := p.Load(ctx)
		if err != nil {
			return nil, err
		}
		merged.Merge(s)
	}
	return merged, nil
}
