package fileops

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/lit-app/commander/pkg/commander"
)

// Remote is the subset of *commander.Client used by Service.
type Remote interface {
	Init(ctx context.Context) error
	ReadFile(ctx context.Context, req commander.ReadFileRequest) (*commander.Response[string], error)
	WriteFile(ctx context.Context, req commander.WriteFileRequest) (*commander.Response[commander.Message], error)
	ListDirectory(ctx context.Context, req commander.ListDirectoryRequest) (*commander.Response[[]string], error)
	SearchFiles(ctx context.Context, req commander.SearchFilesRequest) (*commander.Response[[]string], error)
	SearchCode(ctx context.Context, req commander.SearchCodeRequest) (*commander.Response[[]commander.CodeMatch], error)
	CreateDirectory(ctx context.Context, req commander.CreateDirectoryRequest) (*commander.Response[commander.Message], error)
	GetFileInfo(ctx context.Context, req commander.GetFileInfoRequest) (*commander.Response[commander.FileInfo], error)
	EditBlock(ctx context.Context, req commander.EditBlockRequest) (*commander.Response[commander.Message], error)
}

var _ Remote = (*commander.Client)(nil)

// Service exposes one method per remote filesystem operation. Each method
// initializes the client if needed, performs the call and turns a failed
// envelope into an error.
type Service struct {
	remote Remote
	logger hclog.Logger
}

// Config holds construction parameters for a Service.
type Config struct {
	Remote Remote       // Remote client (required)
	Logger hclog.Logger // Logger (optional)
}

// New creates a Service.
func New(cfg Config) (*Service, error) {
	if cfg.Remote == nil {
		return nil, fmt.Errorf("remote client is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}

	return &Service{
		remote: cfg.Remote,
		logger: cfg.Logger.Named("fileops"),
	}, nil
}

// WriteFile writes content to path, replacing or appending per mode.
func (s *Service) WriteFile(ctx context.Context, path, content string, mode commander.WriteMode) (string, error) {
	if err := s.remote.Init(ctx); err != nil {
		return "", err
	}

	resp, err := s.remote.WriteFile(ctx, commander.WriteFileRequest{Path: path, Content: content, Mode: mode})
	msg, err := unwrap(s, commander.EndpointWriteFile, "Failed to write file", resp, err)
	return string(msg), err
}

// ListDirectory returns the entries of path formatted as "[TYPE] name".
func (s *Service) ListDirectory(ctx context.Context, path string) ([]string, error) {
	if err := s.remote.Init(ctx); err != nil {
		return nil, err
	}

	resp, err := s.remote.ListDirectory(ctx, commander.ListDirectoryRequest{Path: path})
	return unwrap(s, commander.EndpointListDirectory, "Failed to list directory", resp, err)
}

// SearchFiles returns paths under path whose names match pattern.
func (s *Service) SearchFiles(ctx context.Context, path, pattern string, timeoutMs int) ([]string, error) {
	if err := s.remote.Init(ctx); err != nil {
		return nil, err
	}

	resp, err := s.remote.SearchFiles(ctx, commander.SearchFilesRequest{Path: path, Pattern: pattern, TimeoutMs: timeoutMs})
	return unwrap(s, commander.EndpointSearchFiles, "Failed to search files", resp, err)
}

// SearchCode searches file contents under req.Path.
func (s *Service) SearchCode(ctx context.Context, req commander.SearchCodeRequest) ([]commander.CodeMatch, error) {
	if err := s.remote.Init(ctx); err != nil {
		return nil, err
	}

	resp, err := s.remote.SearchCode(ctx, req)
	return unwrap(s, commander.EndpointSearchCode, "Failed to search code", resp, err)
}

// CreateDirectory creates path on the server.
func (s *Service) CreateDirectory(ctx context.Context, path string) (string, error) {
	if err := s.remote.Init(ctx); err != nil {
		return "", err
	}

	resp, err := s.remote.CreateDirectory(ctx, commander.CreateDirectoryRequest{Path: path})
	msg, err := unwrap(s, commander.EndpointCreateDirectory, "Failed to create directory", resp, err)
	return string(msg), err
}

// GetFileInfo returns metadata for path.
func (s *Service) GetFileInfo(ctx context.Context, path string) (*commander.FileInfo, error) {
	if err := s.remote.Init(ctx); err != nil {
		return nil, err
	}

	resp, err := s.remote.GetFileInfo(ctx, commander.GetFileInfoRequest{Path: path})
	info, err := unwrap(s, commander.EndpointGetFileInfo, "Failed to get file info", resp, err)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// EditBlock replaces req.OldString with req.NewString in req.FilePath.
func (s *Service) EditBlock(ctx context.Context, req commander.EditBlockRequest) (string, error) {
	if err := s.remote.Init(ctx); err != nil {
		return "", err
	}

	resp, err := s.remote.EditBlock(ctx, req)
	msg, err := unwrap(s, commander.EndpointEditBlock, "Failed to edit block", resp, err)
	return string(msg), err
}

// MoveFile is not supported by the remote server and always fails.
func (s *Service) MoveFile(ctx context.Context, source, destination string) error {
	s.logger.Warn("move requested but not supported", "source", source, "destination", destination)
	return notImplementedError("move_file is not yet implemented")
}

// unwrap converts a client result into data or an error.
func unwrap[T any](s *Service, op, fallback string, resp *commander.Response[T], err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = fallback
		}
		s.logger.Warn("operation failed", "op", op, "error", msg)
		return zero, &OperationError{Op: op, Message: msg}
	}
	return resp.Data, nil
}
