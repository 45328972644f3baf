package domain

import "errors"

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrRateLimited   = errors.New("too many requests")
)

// InputError is a request validation failure carrying a stable
// machine-readable code that is surfaced to the caller verbatim.
// Extra holds optional response fields (e.g. the list of valid moods).
type InputError struct {
	Code  string
	Extra map[string]any
}

func (e *InputError) Error() string { return e.Code }

func (e *InputError) Unwrap() error { return ErrValidation }

// NewInputError creates an InputError with the given code.
func NewInputError(code string) *InputError {
	return &InputError{Code: code}
}

// WithExtra attaches an additional response field and returns the error.
func (e *InputError) WithExtra(key string, value any) *InputError {
	if e.Extra == nil {
		e.Extra = make(map[string]any, 1)
	}
	e.Extra[key] = value
	return e
}
