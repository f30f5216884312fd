package priceclient

import "fmt"

// Kind is the error taxonomy §4.6 requires every upstream failure be
// classified into, so the market run (C8) can decide retry vs. give
// up vs. surface to the user without string-matching error messages.
type Kind string

const (
	KindConfig     Kind = "config"
	KindBadRequest Kind = "bad_request"
	KindRateLimited Kind = "rate_limited"
	KindUpstream5xx Kind = "upstream_5xx"
	KindTimeout    Kind = "timeout"
	KindNetwork    Kind = "network"
)

// Error wraps an upstream failure with its Kind so callers can branch
// without inspecting message text.
type Error struct {
	Kind    Kind
	Store   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("priceclient: %s (%s): %v", e.Message, e.Kind, e.Err)
	}
	return fmt.Sprintf("priceclient: %s (%s)", e.Message, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the retry policy should attempt this
// error again (timeouts, network blips, 5xx — never bad_request or
// config, which won't change on retry).
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindTimeout, KindNetwork, KindUpstream5xx:
		return true
	default:
		return false
	}
}

func newError(kind Kind, store, message string, err error) *Error {
	return &Error{Kind: kind, Store: store, Message: message, Err: err}
}
