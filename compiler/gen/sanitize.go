package gen

import (
	"go/token"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// specialCharacters is the fixed punctuation set stripped from names before
// identifier conversion.
const specialCharacters = "!@#$%^&*()+=<>?,./;:'\"[]{}|\\`~"

var nonWordRuns = regexp.MustCompile(`[\W_]+`)

// SanitizeIdent converts a source name into a Go identifier: the punctuation
// set is stripped, a digit-leading name gains an underscore prefix, a single
// leading underscore is preserved, and the remainder is converted to
// concatenated capitalized words split on '_', '-', and space. Each word's
// first letter is uppercased with the tail preserved, which keeps acronyms
// intact and makes the conversion idempotent.
func SanitizeIdent(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if strings.ContainsRune(specialCharacters, r) {
			return -1
		}
		return r
	}, name)
	if stripped == "" {
		return ""
	}

	prefix := ""
	if stripped[0] == '_' || unicode.IsDigit(rune(stripped[0])) {
		prefix = "_"
	}

	words := strings.FieldsFunc(stripped, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	var b strings.Builder
	b.WriteString(prefix)
	for _, word := range words {
		b.WriteString(inflect.Capitalize(word))
	}
	return b.String()
}

// EnumKey derives the constant name for a source key: non-word runs collapse
// to a single underscore, the result is uppercased, and a leading underscore
// is prepended only when the key begins with a digit or underscore.
func EnumKey(name string) string {
	if name == "" {
		return ""
	}
	prefix := ""
	if name[0] == '_' || unicode.IsDigit(rune(name[0])) {
		prefix = "_"
	}
	return prefix + strings.ToUpper(nonWordRuns.ReplaceAllString(name, "_"))
}

// IsContainerName reports whether s is a valid container name: a Go
// identifier starting with an uppercase letter.
func IsContainerName(s string) bool {
	if !token.IsIdentifier(s) {
		return false
	}
	return unicode.IsUpper([]rune(s)[0])
}

// IsIdent reports whether s is a valid non-keyword Go identifier.
func IsIdent(s string) bool {
	return token.IsIdentifier(s)
}
