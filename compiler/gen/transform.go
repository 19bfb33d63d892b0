package gen

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical transforms for resolver source keys. All are pure.

// TitleCase capitalizes each word of s.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// UpperCase uppercases s.
func UpperCase(s string) string {
	return strings.ToUpper(s)
}

// LowerCase lowercases s.
func LowerCase(s string) string {
	return strings.ToLower(s)
}

// QuoteString renders s as a quoted Go string literal.
func QuoteString(s string) string {
	return strconv.Quote(s)
}

// ParseTransform resolves a manifest transform name.
func ParseTransform(name string) (Transform, error) {
	switch name {
	case "title":
		return TitleCase, nil
	case "upper":
		return UpperCase, nil
	case "lower":
		return LowerCase, nil
	case "quote":
		return QuoteString, nil
	default:
		return nil, NewConfigError("Transforms", name, "unknown transform; use title, upper, lower, or quote")
	}
}
