package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyntaxValidator(t *testing.T) {
	t.Run("accepts well-formed source", func(t *testing.T) {
		src := []byte("package modality\n\ntype Behavior struct {\n\tName string\n}\n")
		assert.NoError(t, SyntaxValidator{}.Validate("modality.go", src))
	})

	t.Run("reports the first offending location", func(t *testing.T) {
		src := []byte("package modality\n\ntype Behavior struct {\n")
		err := SyntaxValidator{}.Validate("modality.go", src)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSyntax))

		var syntaxErr *SyntaxError
		require.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, "modality.go", syntaxErr.File)
		assert.Greater(t, syntaxErr.Line, 0)
	})

	t.Run("rejects text that is not go at all", func(t *testing.T) {
		err := SyntaxValidator{}.Validate("modality.go", []byte("name,abbreviation\nBehavior,behavior\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSyntax))
	})
}
