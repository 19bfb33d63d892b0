// Package gen synthesizes Go source code from flat records.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidConfig indicates a generator configuration error.
	ErrInvalidConfig = errors.New("modelgen: invalid configuration")
	// ErrClassName indicates no name hint produced a usable class name.
	ErrClassName = errors.New("modelgen: unresolvable class name")
	// ErrMissingKey indicates a resolver's declared source key was absent.
	ErrMissingKey = errors.New("modelgen: missing source key")
	// ErrUnmappedField indicates a descriptor field with no source and no
	// resolver, in strict mode.
	ErrUnmappedField = errors.New("modelgen: unmapped field")
	// ErrDuplicateResolver indicates two resolvers declare the same target.
	ErrDuplicateResolver = errors.New("modelgen: duplicate resolver target")
	// ErrDuplicateIdent indicates two records sanitize to the same identifier.
	ErrDuplicateIdent = errors.New("modelgen: duplicate identifier")
	// ErrInvalidSyntax indicates a validator rejected the emitted text.
	ErrInvalidSyntax = errors.New("modelgen: generated syntax invalid")
	// ErrGenerateFailed indicates an artifact failed to generate.
	ErrGenerateFailed = errors.New("modelgen: generation failed")
	// ErrContextDone indicates the context was already written or closed.
	ErrContextDone = errors.New("modelgen: context already written or closed")
)

// ConfigError represents a generator construction error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("modelgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("modelgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{Option: option, Value: value, Message: message}
}

// ClassNameError indicates no name hint yielded a non-empty value for a
// record.
type ClassNameError struct {
	Hints []string
}

// Error implements the error interface.
func (e *ClassNameError) Error() string {
	if len(e.Hints) == 0 {
		return "modelgen: no class name hints configured"
	}
	return fmt.Sprintf("modelgen: no class name found for hints [%s]", strings.Join(e.Hints, ", "))
}

// Is reports whether the target matches the sentinel error for ClassNameError.
func (e *ClassNameError) Is(target error) bool {
	return target == ErrClassName
}

// NewClassNameError creates a new ClassNameError.
func NewClassNameError(hints []string) *ClassNameError {
	return &ClassNameError{Hints: hints}
}

// MissingKeyError indicates a resolver source key absent from a record.
type MissingKeyError struct {
	Target string // resolver target field
	Key    string // missing source key
}

// Error implements the error interface.
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("modelgen: resolver for %q: source key %q not in record", e.Target, e.Key)
}

// Is reports whether the target matches the sentinel error for MissingKeyError.
func (e *MissingKeyError) Is(target error) bool {
	return target == ErrMissingKey
}

// NewMissingKeyError creates a new MissingKeyError.
func NewMissingKeyError(targetField, key string) *MissingKeyError {
	return &MissingKeyError{Target: targetField, Key: key}
}

// UnmappedFieldError indicates a descriptor field that no record key and no
// resolver can populate.
type UnmappedFieldError struct {
	Field string
}

// Error implements the error interface.
func (e *UnmappedFieldError) Error() string {
	return fmt.Sprintf("modelgen: field %q has no source value and no resolver", e.Field)
}

// Is reports whether the target matches the sentinel error for UnmappedFieldError.
func (e *UnmappedFieldError) Is(target error) bool {
	return target == ErrUnmappedField
}

// NewUnmappedFieldError creates a new UnmappedFieldError.
func NewUnmappedFieldError(field string) *UnmappedFieldError {
	return &UnmappedFieldError{Field: field}
}

// DuplicateResolverError indicates two resolvers with the same target field.
type DuplicateResolverError struct {
	Target string
}

// Error implements the error interface.
func (e *DuplicateResolverError) Error() string {
	return fmt.Sprintf("modelgen: more than one resolver targets field %q", e.Target)
}

// Is reports whether the target matches the sentinel error for DuplicateResolverError.
func (e *DuplicateResolverError) Is(target error) bool {
	return target == ErrDuplicateResolver
}

// NewDuplicateResolverError creates a new DuplicateResolverError.
func NewDuplicateResolverError(targetField string) *DuplicateResolverError {
	return &DuplicateResolverError{Target: targetField}
}

// DuplicateIdentError indicates two distinct source keys sanitizing to the
// same identifier, or a single record whose variant type name collides with
// its own constant name (FirstKey == OtherKey).
type DuplicateIdentError struct {
	Ident    string
	FirstKey string
	OtherKey string
}

// Error implements the error interface.
func (e *DuplicateIdentError) Error() string {
	if e.FirstKey == e.OtherKey {
		return fmt.Sprintf("modelgen: record %q: variant type name collides with its constant name %q", e.FirstKey, e.Ident)
	}
	return fmt.Sprintf("modelgen: records %q and %q both sanitize to identifier %q", e.FirstKey, e.OtherKey, e.Ident)
}

// Is reports whether the target matches the sentinel error for DuplicateIdentError.
func (e *DuplicateIdentError) Is(target error) bool {
	return target == ErrDuplicateIdent
}

// NewDuplicateIdentError creates a new DuplicateIdentError.
func NewDuplicateIdentError(ident, firstKey, otherKey string) *DuplicateIdentError {
	return &DuplicateIdentError{Ident: ident, FirstKey: firstKey, OtherKey: otherKey}
}

// SyntaxError reports a validator rejection with the offending location.
type SyntaxError struct {
	File    string
	Line    int
	Column  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: generated syntax invalid")
	if e.File != "" {
		fmt.Fprintf(&b, " in %s", e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at %d:%d", e.Line, e.Column)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SyntaxError.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrInvalidSyntax
}

// NewSyntaxError creates a new SyntaxError.
func NewSyntaxError(file string, line, column int, message string, cause error) *SyntaxError {
	return &SyntaxError{File: file, Line: line, Column: column, Message: message, Cause: cause}
}

// GenerateError wraps a per-artifact failure with the generator's name so
// the orchestrator surfaces both together.
type GenerateError struct {
	Generator string
	File      string
	Cause     error
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	var b strings.Builder
	b.WriteString("modelgen: generator ")
	b.WriteString(e.Generator)
	if e.File != "" {
		fmt.Fprintf(&b, " (file: %s)", e.File)
	}
	b.WriteString(" failed")
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerateError.
func (e *GenerateError) Is(target error) bool {
	return target == ErrGenerateFailed
}

// NewGenerateError creates a new GenerateError.
func NewGenerateError(generator, file string, cause error) *GenerateError {
	return &GenerateError{Generator: generator, File: file, Cause: cause}
}
