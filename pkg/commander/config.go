package commander

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lit-app/commander/pkg/settings"
)

const (
	// DefaultAuthURL is used when no identity provider URL is configured.
	DefaultAuthURL = "http://localhost:8080"

	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 30 * time.Second
)

// Config is the resolved connection configuration of a Client. It is built
// once from the settings provider and only AuthToken changes afterwards.
type Config struct {
	// ServerURL is the base URL of the remote commander server
	// Example: "https://commander.example.com"
	ServerURL string `json:"serverUrl"`

	// AuthURL is the base URL of the identity provider
	// Default: http://localhost:8080
	AuthURL string `json:"authUrl"`

	// AuthToken is the bearer token sent with every request
	AuthToken string `json:"-"`

	// BasePath is prefixed to every outbound path
	BasePath string `json:"basePath"`

	Username string `json:"username,omitempty"`
	Password string `json:"-"`

	// Timeout for a single request
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// TLSVerify controls TLS certificate verification
	// Set to false only for development/testing with self-signed certs
	TLSVerify *bool `json:"tlsVerify,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		AuthURL:   DefaultAuthURL,
		Timeout:   DefaultTimeout,
		TLSVerify: &tlsVerify,
	}
}

// NewConfig applies defaults to the given settings.
func NewConfig(s *settings.Settings) *Config {
	cfg := DefaultConfig()
	if s == nil {
		return cfg
	}

	cfg.ServerURL = s.ServerURL
	cfg.AuthToken = s.AuthToken
	cfg.BasePath = s.BasePath
	cfg.Username = s.Username
	cfg.Password = s.Password
	if s.AuthURL != "" {
		cfg.AuthURL = s.AuthURL
	}
	if s.Timeout > 0 {
		cfg.Timeout = s.Timeout
	}
	if s.TLSVerify != nil {
		v := *s.TLSVerify
		cfg.TLSVerify = &v
	}
	return cfg
}

// Validate checks that the configuration is complete. Both ServerURL and
// BasePath are required; a partially configured client is unusable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.BasePath, validation.Required),
		validation.Field(&c.AuthURL, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Min(time.Duration(0))),
	)
}

// hasCredentials reports whether a password grant can be attempted.
func (c *Config) hasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// NewHTTPClient creates a configured HTTP client for this configuration
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	return &http.Client{
		Timeout:   c.Timeout,
		Transport: transport,
	}
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must use http or https scheme")
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}
