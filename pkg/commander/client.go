package commander

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/lit-app/commander/pkg/settings"
)

// APIPrefix is the path under ServerURL that hosts every endpoint.
const APIPrefix = "/api/commander/"

// Client forwards filesystem operations to a remote commander server.
//
// A Client is constructed with a settings provider and stays unconfigured
// until Init succeeds. Init loads the settings, validates them and, when no
// token is configured but credentials are, authenticates once. After that
// every operation is a single POST to <ServerURL>/api/commander/<endpoint>.
type Client struct {
	provider   settings.Provider
	httpClient *http.Client
	logger     hclog.Logger

	mu          sync.Mutex
	config      *Config
	tokenExpiry time.Time
}

// Options holds construction parameters for a Client.
type Options struct {
	Settings   settings.Provider // Configuration source (required)
	HTTPClient *http.Client      // HTTP client (default: built from Config)
	Logger     hclog.Logger      // Logger (optional)
}

// New creates a Client. The client is not usable until Init is called.
func New(opts Options) (*Client, error) {
	if opts.Settings == nil {
		return nil, fmt.Errorf("settings provider is required")
	}

	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	return &Client{
		provider:   opts.Settings,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger.Named("commander-client"),
	}, nil
}

// Init loads and validates configuration and authenticates when required.
// It is safe to call repeatedly: once it has succeeded, later calls return
// immediately and never re-authenticate. Concurrent first calls are
// serialized.
func (c *Client) Init(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config != nil {
		return nil
	}

	s, err := c.provider.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: failed to load settings: %w", ErrConfiguration, err)
	}

	cfg := NewConfig(s)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	if c.httpClient == nil {
		c.httpClient = cfg.NewHTTPClient()
	}

	if cfg.AuthToken == "" && cfg.hasCredentials() {
		if err := c.authenticate(ctx, cfg); err != nil {
			return err
		}
	}

	c.config = cfg
	c.logger.Info("commander client initialized",
		"server_url", cfg.ServerURL,
		"base_path", cfg.BasePath,
		"authenticated", cfg.AuthToken != "",
	)
	return nil
}

// Initialized reports whether Init has completed successfully.
func (c *Client) Initialized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config != nil
}

// Config returns a copy of the active configuration.
func (c *Client) Config() (Config, error) {
	cfg, _, err := c.snapshot()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ValidatePath prefixes path with the configured base path.
func (c *Client) ValidatePath(path string) (string, error) {
	cfg, _, err := c.snapshot()
	if err != nil {
		return "", err
	}
	return ValidatePath(cfg.BasePath, path), nil
}

func (c *Client) snapshot() (Config, *http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.config == nil {
		return Config{}, nil, ErrNotInitialized
	}
	return *c.config, c.httpClient, nil
}

// EndpointURL returns the URL of an endpoint on the given server.
func EndpointURL(serverURL, endpoint string) string {
	return strings.TrimRight(serverURL, "/") + APIPrefix + endpoint
}

// makeRequest performs one POST round trip. Transport outcomes are reported
// through the returned envelope; the error is non-nil only when the client
// has not been initialized.
func (c *Client) makeRequest(ctx context.Context, endpoint string, body any) (*Response[json.RawMessage], error) {
	cfg, httpClient, err := c.snapshot()
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	logger := c.logger.With("endpoint", endpoint, "request_id", requestID)

	payload, err := json.Marshal(body)
	if err != nil {
		return failure[json.RawMessage](fmt.Sprintf("Invalid request: %s", err)), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, EndpointURL(cfg.ServerURL, endpoint), bytes.NewReader(payload))
	if err != nil {
		return failure[json.RawMessage](fmt.Sprintf("Network error: %s", err)), nil
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if cfg.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.AuthToken)
	}

	logger.Debug("sending request", "payload_bytes", len(payload))
	start := time.Now()

	resp, err := httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", "error", err)
		return failure[json.RawMessage](fmt.Sprintf("Network error: %s", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.Warn("server returned error status", "status", resp.StatusCode)
		return failure[json.RawMessage](fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp))), nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("failed to read response", "error", err)
		return failure[json.RawMessage](fmt.Sprintf("Network error: %s", err)), nil
	}

	data := json.RawMessage("null")
	if trimmed := bytes.TrimSpace(respBody); len(trimmed) > 0 {
		if !json.Valid(trimmed) {
			logger.Warn("response body is not valid JSON", "status", resp.StatusCode)
			return failure[json.RawMessage]("Network error: response body is not valid JSON"), nil
		}
		data = json.RawMessage(trimmed)
	}

	logger.Debug("request completed",
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &Response[json.RawMessage]{Success: true, Data: data}, nil
}

// statusText returns the reason phrase sent by the server, falling back to
// the standard text for the code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}
