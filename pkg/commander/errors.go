package commander

import "errors"

var (
	// ErrConfiguration is returned by Init when settings cannot be loaded or
	// are incomplete.
	ErrConfiguration = errors.New("invalid commander configuration")

	// ErrAuthentication is returned when a bearer token cannot be obtained.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotInitialized is returned by operations invoked before Init.
	ErrNotInitialized = errors.New("commander client is not initialized")
)
