package load

import (
	"errors"
	"strings"
)

// Sentinel errors for source failures.
var (
	// ErrUnavailable indicates the source location could not be read
	// (I/O failure, network failure, or timeout).
	ErrUnavailable = errors.New("load: source unavailable")
	// ErrMalformed indicates the source content could not be parsed
	// into records.
	ErrMalformed = errors.New("load: source malformed")
)

// SourceError describes a failure reading or parsing one source.
type SourceError struct {
	Source  string // location: file path or URL
	Message string
	Cause   error
	kind    error // one of the sentinels above
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	var b strings.Builder
	if errors.Is(e.kind, ErrMalformed) {
		b.WriteString("load: malformed source")
	} else {
		b.WriteString("load: unavailable source")
	}
	if e.Source != "" {
		b.WriteString(" ")
		b.WriteString(e.Source)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches this error's sentinel.
func (e *SourceError) Is(target error) bool {
	return target == e.kind
}

// NewUnavailableError creates a SourceError matching ErrUnavailable.
func NewUnavailableError(source, message string, cause error) *SourceError {
	return &SourceError{Source: source, Message: message, Cause: cause, kind: ErrUnavailable}
}

// NewMalformedError creates a SourceError matching ErrMalformed.
func NewMalformedError(source, message string, cause error) *SourceError {
	return &SourceError{Source: source, Message: message, Cause: cause, kind: ErrMalformed}
}
