package fileops

import (
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/lit-app/commander/pkg/commander"
)

// defaultMimeType is reported for files whose extension is unknown.
const defaultMimeType = "text/plain"

// FileResult is the content of a single file.
type FileResult struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
	IsImage  bool   `json:"isImage"`
}

// MultiFileResult is one entry of a batch read. Error is set instead of the
// content fields when reading that path failed.
type MultiFileResult struct {
	Path     string `json:"path"`
	Content  string `json:"content,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	IsImage  bool   `json:"isImage,omitempty"`
	Error    string `json:"error,omitempty"`
}

// MultiFileResults is the outcome of ReadMultipleFiles, in request order.
type MultiFileResults []MultiFileResult

// Err combines the per-path errors, or returns nil when every read
// succeeded.
func (r MultiFileResults) Err() error {
	var result *multierror.Error
	for _, item := range r {
		if item.Error != "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s", item.Path, item.Error))
		}
	}
	return result.ErrorOrNil()
}

// ReadOptions modify ReadFile.
type ReadOptions struct {
	// IsURL requests reading from a URL instead of the remote filesystem.
	IsURL bool

	Offset int
	Length int
}

// ReadFile reads a file from the remote filesystem. URL reads are not
// supported and fail without contacting the server.
func (s *Service) ReadFile(ctx context.Context, path string, opts ReadOptions) (*FileResult, error) {
	if opts.IsURL {
		return s.readFromURL(ctx, path)
	}
	return s.readFromDisk(ctx, path, opts)
}

// ReadMultipleFiles reads paths one at a time, in order. A failed read is
// recorded on its entry and does not stop the batch.
func (s *Service) ReadMultipleFiles(ctx context.Context, paths []string) MultiFileResults {
	results := make(MultiFileResults, 0, len(paths))
	for _, path := range paths {
		file, err := s.readFromDisk(ctx, path, ReadOptions{})
		if err != nil {
			results = append(results, MultiFileResult{Path: path, Error: err.Error()})
			continue
		}
		results = append(results, MultiFileResult{
			Path:     path,
			Content:  file.Content,
			MimeType: file.MimeType,
			IsImage:  file.IsImage,
		})
	}

	s.logger.Debug("read multiple files", "count", len(paths), "failed", countFailed(results))
	return results
}

func (s *Service) readFromURL(_ context.Context, url string) (*FileResult, error) {
	s.logger.Warn("URL read requested but not supported", "url", url)
	return nil, notImplementedError("reading from URLs is not implemented")
}

func (s *Service) readFromDisk(ctx context.Context, path string, opts ReadOptions) (*FileResult, error) {
	if err := s.remote.Init(ctx); err != nil {
		return nil, err
	}

	resp, err := s.remote.ReadFile(ctx, commander.ReadFileRequest{
		Path:   path,
		Offset: opts.Offset,
		Length: opts.Length,
	})
	content, err := unwrap(s, commander.EndpointReadFile, "Failed to read file", resp, err)
	if err != nil {
		return nil, err
	}

	mimeType := MimeType(path)
	return &FileResult{
		Content:  content,
		MimeType: mimeType,
		IsImage:  strings.HasPrefix(mimeType, "image/"),
	}, nil
}

// MimeType guesses the media type of path from its extension, without
// parameters. Unknown extensions are reported as text/plain.
func MimeType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return defaultMimeType
	}

	typ := mime.TypeByExtension(ext)
	if typ == "" {
		return defaultMimeType
	}
	if mediaType, _, err := mime.ParseMediaType(typ); err == nil {
		return mediaType
	}
	return typ
}

func countFailed(results MultiFileResults) int {
	n := 0
	for _, r := range results {
		if r.Error != "" {
			n++
		}
	}
	return n
}
