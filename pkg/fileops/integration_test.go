package fileops

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lit-app/commander/pkg/commander"
	"github.com/lit-app/commander/pkg/settings"
)

// newCommanderServer serves read_file and list_directory for a tiny tree
// rooted at /base and counts authentication requests.
func newCommanderServer(t *testing.T, tokenCalls *int32) *httptest.Server {
	t.Helper()

	files := map[string]string{
		"/base/readme.md": "# hello",
		"/base/logo.png":  "iVBORw0KGgo=",
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/realms/LIT/protocol/openid-connect/token" {
			atomic.AddInt32(tokenCalls, 1)
			w.Header().Set("Content-Type", "application/json")
			io.WriteString(w, `{"access_token":"issued","token_type":"Bearer","expires_in":60}`)
			return
		}

		assert.Equal(t, "Bearer issued", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case commander.APIPrefix + commander.EndpointReadFile:
			content, ok := files[body["path"].(string)]
			if !ok {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]any{"content": content}})
		case commander.APIPrefix + commander.EndpointListDirectory:
			io.WriteString(w, `{"success":true,"data":[{"name":"readme.md","type":"file"},{"name":"img","type":"directory"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestService_LazyInitAgainstServer(t *testing.T) {
	var tokenCalls int32
	srv := newCommanderServer(t, &tokenCalls)

	client, err := commander.New(commander.Options{
		Settings: settings.Static(settings.Settings{
			ServerURL: srv.URL,
			AuthURL:   srv.URL,
			BasePath:  "/base",
			Username:  "alice",
			Password:  "secret",
		}),
		Logger: hclog.NewNullLogger(),
	})
	require.NoError(t, err)
	require.False(t, client.Initialized())

	svc, err := New(Config{Remote: client, Logger: hclog.NewNullLogger()})
	require.NoError(t, err)

	ctx := context.Background()

	file, err := svc.ReadFile(ctx, "/readme.md", ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "# hello", file.Content)
	assert.True(t, client.Initialized())

	entries, err := svc.ListDirectory(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, []string{"[FILE] readme.md", "[DIRECTORY] img"}, entries)

	results := svc.ReadMultipleFiles(ctx, []string{"/logo.png", "/missing.txt"})
	require.Len(t, results, 2)
	assert.Equal(t, "image/png", results[0].MimeType)
	assert.True(t, results[0].IsImage)
	assert.Equal(t, "HTTP 404: Not Found", results[1].Error)

	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestService_InvalidConfiguration(t *testing.T) {
	client, err := commander.New(commander.Options{
		Settings: settings.Static(settings.Settings{BasePath: "/base"}),
	})
	require.NoError(t, err)

	svc, err := New(Config{Remote: client})
	require.NoError(t, err)

	_, err = svc.ListDirectory(context.Background(), "/")
	require.Error(t, err)
	assert.ErrorIs(t, err, commander.ErrConfiguration)
	assert.False(t, client.Initialized())
}
