package commander

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lit-app/commander/pkg/settings"
)

// fakeServer answers every endpoint with the body registered for it and
// records the last request body per endpoint.
type fakeServer struct {
	*httptest.Server
	responses map[string]string
	requests  map[string]map[string]any
}

func newFakeServer(t *testing.T, responses map[string]string) *fakeServer {
	t.Helper()

	fs := &fakeServer{
		responses: responses,
		requests:  make(map[string]map[string]any),
	}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := r.URL.Path[len(APIPrefix):]

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fs.requests[endpoint] = body

		resp, ok := fs.responses[endpoint]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, resp)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func newInitializedClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	client := newTestClient(t, settings.Settings{ServerURL: serverURL, BasePath: "/base", AuthToken: "token"})
	require.NoError(t, client.Init(context.Background()))
	return client
}

func TestClient_ReadFile(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{name: "bare string", body: `"plain content"`, want: "plain content"},
		{name: "wrapped in data", body: `{"success":true,"data":"wrapped"}`, want: "wrapped"},
		{name: "nested data.data", body: `{"success":true,"data":{"data":"nested"}}`, want: "nested"},
		{name: "content object", body: `{"data":{"content":"from content"}}`, want: "from content"},
		{name: "server reported failure", body: `{"success":false,"error":"ENOENT: no such file"}`, wantErr: "ENOENT: no such file"},
		{name: "unexpected shape", body: `{"data":42}`, wantErr: "Invalid response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeServer(t, map[string]string{EndpointReadFile: tt.body})
			client := newInitializedClient(t, srv.URL)

			resp, err := client.ReadFile(context.Background(), ReadFileRequest{Path: "docs/a.txt", Offset: 10, Length: 5})
			require.NoError(t, err)

			req := srv.requests[EndpointReadFile]
			assert.Equal(t, "/base/docs/a.txt", req["path"])
			assert.EqualValues(t, 10, req["offset"])
			assert.EqualValues(t, 5, req["length"])

			if tt.wantErr != "" {
				assert.False(t, resp.Success)
				assert.Contains(t, resp.Error, tt.wantErr)
				return
			}
			assert.True(t, resp.Success)
			assert.Equal(t, tt.want, resp.Data)
		})
	}
}

func TestClient_ListDirectory(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		EndpointListDirectory: `[{"name":"a.txt","type":"file"},{"name":"sub","type":"dir"},"raw",{"name":"b.bin"}]`,
	})
	client := newInitializedClient(t, srv.URL)

	resp, err := client.ListDirectory(context.Background(), ListDirectoryRequest{Path: "/"})
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Error)

	assert.Equal(t, []string{"[FILE] a.txt", "[DIR] sub", "raw", "[FILE] b.bin"}, resp.Data)
	assert.Equal(t, "/base/", srv.requests[EndpointListDirectory]["path"])
}

func TestClient_ListDirectory_Wrapped(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		EndpointListDirectory: `{"success":true,"data":["[DIR] already formatted"]}`,
	})
	client := newInitializedClient(t, srv.URL)

	resp, err := client.ListDirectory(context.Background(), ListDirectoryRequest{Path: "/base"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[DIR] already formatted"}, resp.Data)
}

func TestClient_WriteFile(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		EndpointWriteFile: `{"success":true,"data":{"message":"Successfully wrote to /base/out.txt"}}`,
	})
	client := newInitializedClient(t, srv.URL)

	resp, err := client.WriteFile(context.Background(), WriteFileRequest{
		Path:    "out.txt",
		Content: "hello",
		Mode:    WriteModeAppend,
	})
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Error)
	assert.Equal(t, Message("Successfully wrote to /base/out.txt"), resp.Data)

	req := srv.requests[EndpointWriteFile]
	assert.Equal(t, "/base/out.txt", req["path"])
	assert.Equal(t, "hello", req["content"])
	assert.Equal(t, "append", req["mode"])
}

func TestClient_Search(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		EndpointSearchFiles: `["/base/src/main.go","/base/src/main_test.go"]`,
		EndpointSearchCode:  `{"data":[{"file":"/base/src/main.go","line":12,"match":"func main()"}]}`,
	})
	client := newInitializedClient(t, srv.URL)
	ctx := context.Background()

	files, err := client.SearchFiles(ctx, SearchFilesRequest{Path: "src", Pattern: "main", TimeoutMs: 500})
	require.NoError(t, err)
	require.True(t, files.Success, files.Error)
	assert.Equal(t, []string{"/base/src/main.go", "/base/src/main_test.go"}, files.Data)
	assert.Equal(t, "/base/src", srv.requests[EndpointSearchFiles]["path"])
	assert.EqualValues(t, 500, srv.requests[EndpointSearchFiles]["timeoutMs"])

	code, err := client.SearchCode(ctx, SearchCodeRequest{Path: "/src", Pattern: "func main", IgnoreCase: true})
	require.NoError(t, err)
	require.True(t, code.Success, code.Error)
	assert.Equal(t, []CodeMatch{{File: "/base/src/main.go", Line: 12, Match: "func main()"}}, code.Data)

	req := srv.requests[EndpointSearchCode]
	assert.Equal(t, "/base/src", req["path"])
	assert.Equal(t, true, req["ignoreCase"])
	assert.NotContains(t, req, "filePattern")
}

func TestClient_CreateDirectory(t *testing.T) {
	srv := newFakeServer(t, map[string]string{EndpointCreateDirectory: `"created"`})
	client := newInitializedClient(t, srv.URL)

	resp, err := client.CreateDirectory(context.Background(), CreateDirectoryRequest{Path: "/new/dir"})
	require.NoError(t, err)
	assert.Equal(t, Message("created"), resp.Data)
	assert.Equal(t, "/base/new/dir", srv.requests[EndpointCreateDirectory]["path"])
}

func TestClient_GetFileInfo(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		EndpointGetFileInfo: `{"success":true,"data":{
			"size":2048,
			"created":"2024-03-01T10:00:00.000Z",
			"modified":1709373600000,
			"accessed":"2024-03-03 09:30:00",
			"isDirectory":false,
			"isFile":true,
			"permissions":420,
			"lineCount":64
		}}`,
	})
	client := newInitializedClient(t, srv.URL)

	resp, err := client.GetFileInfo(context.Background(), GetFileInfoRequest{Path: "a.txt"})
	require.NoError(t, err)
	require.True(t, resp.Success, resp.Error)

	info := resp.Data
	assert.Equal(t, int64(2048), info.Size)
	assert.True(t, info.IsFile)
	assert.False(t, info.IsDirectory)
	assert.Equal(t, "644", info.Permissions)
	assert.Equal(t, 64, info.LineCount)
	assert.True(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC).Equal(info.Created))
	assert.True(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC).Equal(info.Modified))
	assert.True(t, time.Date(2024, 3, 3, 9, 30, 0, 0, time.UTC).Equal(info.Accessed))
}

func TestClient_EditBlock(t *testing.T) {
	srv := newFakeServer(t, map[string]string{
		EndpointEditBlock: `{"message":"Applied 1 edit"}`,
	})
	client := newInitializedClient(t, srv.URL)

	resp, err := client.EditBlock(context.Background(), EditBlockRequest{
		FilePath:             "main.go",
		OldString:            "foo",
		NewString:            "bar",
		ExpectedReplacements: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, Message("Applied 1 edit"), resp.Data)

	req := srv.requests[EndpointEditBlock]
	assert.Equal(t, "/base/main.go", req["file_path"])
	assert.NotContains(t, req, "path")
	assert.Equal(t, "foo", req["old_string"])
	assert.Equal(t, "bar", req["new_string"])
	assert.EqualValues(t, 1, req["expected_replacements"])
}

func TestClient_OperationHTTPError(t *testing.T) {
	srv := newFakeServer(t, map[string]string{})
	client := newInitializedClient(t, srv.URL)

	resp, err := client.GetFileInfo(context.Background(), GetFileInfoRequest{Path: "missing"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "HTTP 404: Not Found", resp.Error)
}

func TestClient_OperationsRequireInit(t *testing.T) {
	client := newTestClient(t, settings.Settings{ServerURL: "http://localhost:3000", BasePath: "/base"})
	ctx := context.Background()

	_, err := client.ReadFile(ctx, ReadFileRequest{Path: "a"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.WriteFile(ctx, WriteFileRequest{Path: "a"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.ListDirectory(ctx, ListDirectoryRequest{Path: "a"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.SearchFiles(ctx, SearchFilesRequest{Path: "a"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.SearchCode(ctx, SearchCodeRequest{Path: "a"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.CreateDirectory(ctx, CreateDirectoryRequest{Path: "a"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.GetFileInfo(ctx, GetFileInfoRequest{Path: "a"})
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = client.EditBlock(ctx, EditBlockRequest{FilePath: "a"})
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestDirEntry_String(t *testing.T) {
	var entries []DirEntry
	require.NoError(t, json.Unmarshal(
		[]byte(`[{"name":"a.txt","type":"file"},{"name":"sub","type":"dir"},"raw",{"name":"x","type":"Symlink"},{}]`),
		&entries,
	))

	got := make([]string, 0, len(entries))
	for _, e := range entries {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{"[FILE] a.txt", "[DIR] sub", "raw", "[SYMLINK] x", "[FILE] "}, got)
}

func TestDirEntry_Invalid(t *testing.T) {
	var entries []DirEntry
	err := json.Unmarshal([]byte(`[1]`), &entries)
	assert.Error(t, err)
}

func TestMessage_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Message
	}{
		{`"done"`, "done"},
		{`{"message":"ok"}`, "ok"},
		{`{"written":12}`, `{"written":12}`},
		{`true`, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var m Message
			require.NoError(t, json.Unmarshal([]byte(tt.in), &m))
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestUnwrapEnvelope(t *testing.T) {
	t.Run("plain payload", func(t *testing.T) {
		payload, _, ok := unwrapEnvelope(json.RawMessage(`[1,2]`))
		assert.True(t, ok)
		assert.JSONEq(t, `[1,2]`, string(payload))
	})

	t.Run("object without data", func(t *testing.T) {
		payload, _, ok := unwrapEnvelope(json.RawMessage(`{"size":1}`))
		assert.True(t, ok)
		assert.JSONEq(t, `{"size":1}`, string(payload))
	})

	t.Run("failure without message", func(t *testing.T) {
		_, msg, ok := unwrapEnvelope(json.RawMessage(`{"success":false}`))
		assert.False(t, ok)
		assert.Empty(t, msg)
	})

	t.Run("nested failure", func(t *testing.T) {
		_, msg, ok := unwrapEnvelope(json.RawMessage(`{"success":true,"data":{"success":false,"error":"denied"}}`))
		assert.False(t, ok)
		assert.Equal(t, "denied", msg)
	})
}
