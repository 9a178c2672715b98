package common

import "errors"

// ErrorKind classifies a domain failure so the HTTP layer can pick a status
// code without inspecting error strings.
type ErrorKind string

const (
	// KindValidation covers missing or malformed request fields and unsafe
	// paths.
	KindValidation ErrorKind = "validation"
	// KindConfiguration covers missing credentials or required assets,
	// detected before any backend call is attempted.
	KindConfiguration ErrorKind = "configuration"
	// KindGeneration covers backend calls that failed or timed out; the
	// backend diagnostic text is carried verbatim.
	KindGeneration ErrorKind = "generation"
	// KindInternal covers everything else (storage failures and the like).
	KindInternal ErrorKind = "internal"
)

// Error is a domain error with a stable code identifying the failure site.
type Error struct {
	kind ErrorKind
	code string
	err  error
}

func NewError(err error, code string) *Error {
	return &Error{kind: KindInternal, code: code, err: err}
}

func NewErrorWithMessage(message string, code string) *Error {
	return &Error{kind: KindInternal, code: code, err: errors.New(message)}
}

func NewValidationError(message string, code string) *Error {
	return &Error{kind: KindValidation, code: code, err: errors.New(message)}
}

func NewConfigurationError(err error, code string) *Error {
	return &Error{kind: KindConfiguration, code: code, err: err}
}

func NewGenerationError(err error, code string) *Error {
	return &Error{kind: KindGeneration, code: code, err: err}
}

func (e *Error) Error() string {
	if e.err == nil {
		return string(e.kind)
	}
	return e.err.Error()
}

func (e *Error) Kind() ErrorKind {
	return e.kind
}

func (e *Error) GetCode() string {
	return e.code
}

func (e *Error) GetError() error {
	return e.err
}

func (e *Error) Unwrap() error {
	return e.err
}
