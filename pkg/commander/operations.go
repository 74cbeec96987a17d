package commander

import "context"

// Each operation prefixes its path with the base path, performs one
// request and decodes the payload into the endpoint's schema. The returned
// error is only ErrNotInitialized; every remote failure is reported through
// the envelope.

// ReadFile returns the content of a file.
func (c *Client) ReadFile(ctx context.Context, req ReadFileRequest) (*Response[string], error) {
	if err := c.prefixPaths(&req.Path); err != nil {
		return nil, err
	}

	resp, err := c.makeRequest(ctx, EndpointReadFile, req)
	if err != nil {
		return nil, err
	}
	return convert(decode[fileContent](resp), func(content fileContent) string {
		return string(content)
	}), nil
}

// WriteFile writes or appends content to a file.
func (c *Client) WriteFile(ctx context.Context, req WriteFileRequest) (*Response[Message], error) {
	if err := c.prefixPaths(&req.Path); err != nil {
		return nil, err
	}
	return call[Message](ctx, c, EndpointWriteFile, req)
}

// ListDirectory lists a directory. Entries are rendered as "[TYPE] name";
// entries the server already sends as strings are kept as is.
func (c *Client) ListDirectory(ctx context.Context, req ListDirectoryRequest) (*Response[[]string], error) {
	if err := c.prefixPaths(&req.Path); err != nil {
		return nil, err
	}

	resp, err := call[[]DirEntry](ctx, c, EndpointListDirectory, req)
	if err != nil {
		return nil, err
	}
	return convert(resp, func(entries []DirEntry) []string {
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.String())
		}
		return out
	}), nil
}

// SearchFiles finds files whose names match a pattern.
func (c *Client) SearchFiles(ctx context.Context, req SearchFilesRequest) (*Response[[]string], error) {
	if err := c.prefixPaths(&req.Path); err != nil {
		return nil, err
	}
	return call[[]string](ctx, c, EndpointSearchFiles, req)
}

// SearchCode searches file contents.
func (c *Client) SearchCode(ctx context.Context, req SearchCodeRequest) (*Response[[]CodeMatch], error) {
	if err := c.prefixPaths(&req.Path); err != nil {
		return nil, err
	}
	return call[[]CodeMatch](ctx, c, EndpointSearchCode, req)
}

// CreateDirectory creates a directory and any missing parents.
func (c *Client) CreateDirectory(ctx context.Context, req CreateDirectoryRequest) (*Response[Message], error) {
	if err := c.prefixPaths(&req.Path); err != nil {
		return nil, err
	}
	return call[Message](ctx, c, EndpointCreateDirectory, req)
}

// GetFileInfo returns file metadata.
func (c *Client) GetFileInfo(ctx context.Context, req GetFileInfoRequest) (*Response[FileInfo], error) {
	if err := c.prefixPaths(&req.Path); err != nil {
		return nil, err
	}
	return call[FileInfo](ctx, c, EndpointGetFileInfo, req)
}

// EditBlock replaces text within a file.
func (c *Client) EditBlock(ctx context.Context, req EditBlockRequest) (*Response[Message], error) {
	if err := c.prefixPaths(&req.FilePath); err != nil {
		return nil, err
	}
	return call[Message](ctx, c, EndpointEditBlock, req)
}

func call[T any](ctx context.Context, c *Client, endpoint string, body any) (*Response[T], error) {
	resp, err := c.makeRequest(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}
	return decode[T](resp), nil
}

func (c *Client) prefixPaths(paths ...*string) error {
	cfg, _, err := c.snapshot()
	if err != nil {
		return err
	}
	for _, p := range paths {
		*p = ValidatePath(cfg.BasePath, *p)
	}
	return nil
}
