package commander

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

const (
	// Realm is the identity provider realm that issues commander tokens.
	Realm = "LIT"

	// ClientID identifies this client to the identity provider.
	ClientID = "lit-app"
)

// TokenURL returns the OpenID Connect token endpoint under authURL.
func TokenURL(authURL string) string {
	return strings.TrimRight(authURL, "/") + "/realms/" + Realm + "/protocol/openid-connect/token"
}

// Authenticate obtains a new bearer token with the configured username and
// password and uses it for subsequent requests. The client must be
// initialized.
func (c *Client) Authenticate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config == nil {
		return ErrNotInitialized
	}
	return c.authenticate(ctx, c.config)
}

// TokenExpiry returns the expiry of the token obtained by the last
// authentication, or the zero time when unknown.
func (c *Client) TokenExpiry() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tokenExpiry
}

// authenticate performs the password grant and stores the access token on
// cfg. c.mu must be held.
func (c *Client) authenticate(ctx context.Context, cfg *Config) error {
	if !cfg.hasCredentials() {
		return fmt.Errorf("%w: username and password are required", ErrAuthentication)
	}

	oauthConfig := &oauth2.Config{
		ClientID: ClientID,
		Endpoint: oauth2.Endpoint{
			TokenURL:  TokenURL(cfg.AuthURL),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	c.logger.Debug("requesting access token", "auth_url", cfg.AuthURL, "username", cfg.Username)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	token, err := oauthConfig.PasswordCredentialsToken(ctx, cfg.Username, cfg.Password)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			c.logger.Warn("identity provider rejected credentials",
				"status", retrieveErr.Response.StatusCode,
				"username", cfg.Username,
			)
			return fmt.Errorf("%w: %s: %s", ErrAuthentication,
				retrieveErr.Response.Status, strings.TrimSpace(string(retrieveErr.Body)))
		}
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}

	cfg.AuthToken = token.AccessToken

	subject, expiry := tokenClaims(token.AccessToken)
	if expiry.IsZero() {
		expiry = token.Expiry
	}
	c.tokenExpiry = expiry

	c.logger.Info("authenticated against identity provider",
		"username", cfg.Username,
		"subject", subject,
		"expires", expiry,
	)
	return nil
}

// tokenClaims reads the subject and expiry of a JWT access token without
// verifying it. Opaque tokens yield zero values.
func tokenClaims(accessToken string) (string, time.Time) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return "", time.Time{}
	}

	var expiry time.Time
	if claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	return claims.Subject, expiry
}
