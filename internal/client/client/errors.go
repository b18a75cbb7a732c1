package client

import "errors"

var (
	// ErrUnavailable means the server could not be reached. The CLI switches
	// to offline mode when it sees it.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized covers rejected credentials and tokens that could not
	// be refreshed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoLocalAccount is returned in local mode for an e-mail that was
	// never registered in the local database.
	ErrNoLocalAccount = errors.New("no local account")
)
