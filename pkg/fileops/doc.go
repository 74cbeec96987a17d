// Package fileops is the caller-facing API over a commander client: one
// method per filesystem operation, returning plain data or an error.
//
// A Service wraps an explicitly constructed client. Every method calls the
// client's Init first, which loads configuration and authenticates on the
// first call only, so callers may skip initializing the client themselves.
//
// Failed envelopes surface as *OperationError. ReadMultipleFiles is the one
// operation that tolerates partial failure: each path's error is recorded
// on its result entry. Reading from URLs and moving files are not provided
// by the server and fail with ErrNotImplemented.
package fileops
