package gen

import (
	"fmt"
	"go/format"

	"golang.org/x/tools/imports"
)

// Formatter is a pluggable text transform applied after all validators
// pass. Formatters must be idempotent: format(format(x)) == format(x).
type Formatter interface {
	Format(name string, src []byte) ([]byte, error)
}

// StyleFormatter applies canonical gofmt style.
type StyleFormatter struct{}

// Format implements Formatter.
func (StyleFormatter) Format(name string, src []byte) ([]byte, error) {
	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return out, nil
}

// ImportsFormatter groups and orders the import block deterministically.
// It formats only; it never resolves packages against the filesystem, so
// forward references to not-yet-generated packages survive.
type ImportsFormatter struct{}

// Format implements Formatter.
func (ImportsFormatter) Format(name string, src []byte) ([]byte, error) {
	out, err := imports.Process(name, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, fmt.Errorf("order imports %s: %w", name, err)
	}
	return out, nil
}
