package fileops

import "errors"

// ErrNotImplemented is returned by operations the remote server does not
// provide.
var ErrNotImplemented = errors.New("not implemented")

// notImplementedError matches ErrNotImplemented with its own message.
type notImplementedError string

func (e notImplementedError) Error() string {
	return string(e)
}

func (e notImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// OperationError reports a failed remote operation. Message is the error
// sent by the server or transport, or a fixed fallback when none was given.
type OperationError struct {
	Op      string
	Message string
}

func (e *OperationError) Error() string {
	return e.Message
}
