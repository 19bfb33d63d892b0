package gen

import (
	"go/parser"
	"go/scanner"
	"go/token"
)

// Validator checks emitted text before it is written. Validators compose:
// zero or more run per artifact, and any failure aborts that artifact's
// write. Partial output is never reported as successful.
type Validator interface {
	Validate(name string, src []byte) error
}

// SyntaxValidator parses the emitted text with the Go grammar and reports
// the first offending location.
type SyntaxValidator struct{}

// Validate implements Validator.
func (SyntaxValidator) Validate(name string, src []byte) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, name, src, parser.AllErrors|parser.SkipObjectResolution)
	if err == nil {
		return nil
	}
	if list, ok := err.(scanner.ErrorList); ok && len(list) > 0 {
		first := list[0]
		return NewSyntaxError(name, first.Pos.Line, first.Pos.Column, first.Msg, err)
	}
	return NewSyntaxError(name, 0, 0, err.Error(), err)
}
