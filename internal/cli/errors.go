package cli

import "errors"

var (
	ErrUsage       = errors.New("cli.usage")
	ErrNotLoggedIn = errors.New("cli.not_logged_in")
	ErrNoServer    = errors.New("cli.serve_unavailable")
)
