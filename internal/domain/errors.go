package domain

import "errors"

var (
	ErrCommandDenied       = errors.New("command not allowed")
	ErrMalformedRepo       = errors.New("repo must be in owner/repo form")
	ErrConceptNotFound     = errors.New("concept document not found")
	ErrCheckoutNotFound    = errors.New("no local checkout for repo")
	ErrNoMultiplexerHere   = errors.New("not inside a tmux session")
	ErrRunCanceled         = errors.New("command canceled")
	ErrConfirmPending      = errors.New("a confirmation prompt is already pending; wait for it to resolve")
	ErrConfirmDeclined     = errors.New("confirmation declined; do not retry through an alternate path")
	ErrAccountUnconfigured = errors.New("account is not configured")
)
