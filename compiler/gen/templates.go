package gen

import (
	"fmt"
	"path"
	"strings"
)

// The emission engine: pure formatting functions over already-resolved
// strings and identifiers. No sanitization or reference resolution happens
// here, and nothing here knows what a record is.

// Import is one import line of a generated file.
type Import struct {
	Path string
	Name string // optional explicit package name
}

// FileHeader renders the provenance header. The timestamp is the only part
// of a generated artifact that varies between identical runs.
func FileHeader(source, timestamp string) string {
	var b strings.Builder
	b.WriteString("// Code generated by modelgen; DO NOT EDIT.\n")
	b.WriteString("//\n")
	fmt.Fprintf(&b, "//\tsource:    %s\n", source)
	fmt.Fprintf(&b, "//\ttimestamp: %s\n", timestamp)
	return b.String()
}

// PackageClause renders the package declaration.
func PackageClause(pkg string) string {
	return fmt.Sprintf("package %s\n", pkg)
}

// ImportBlock renders an import declaration, or nothing when empty. Aliases
// are emitted only when they differ from the import path base.
func ImportBlock(imports []Import) string {
	if len(imports) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("import (\n")
	for _, imp := range imports {
		if imp.Name != "" && imp.Name != path.Base(imp.Path) {
			fmt.Fprintf(&b, "\t%s %q\n", imp.Name, imp.Path)
		} else {
			fmt.Fprintf(&b, "\t%q\n", imp.Path)
		}
	}
	b.WriteString(")\n")
	return b.String()
}

// VariantDecl renders one literal class: a struct type carrying the resolved
// field assignments' types, plus the marker method sealing it into the union.
func VariantDecl(union, ident, originalKey string, fields []FieldAssign) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s is the %s variant synthesized from %q.\n", ident, union, originalKey)
	fmt.Fprintf(&b, "type %s struct {\n", ident)
	for _, f := range fields {
		fmt.Fprintf(&b, "\t%s %s\n", f.GoName, f.Type)
	}
	b.WriteString("}\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "func (%s) %s() {}\n", ident, markerMethod(union))
	return b.String()
}

// UnionDecl renders the closed union over all variants, keyed by the
// discriminator field.
func UnionDecl(union, discriminator, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// %s is the closed union of every variant generated from %s,\n", union, source)
	fmt.Fprintf(&b, "// discriminated by the %q field. Only types in this package implement it.\n", discriminator)
	fmt.Fprintf(&b, "type %s interface {\n", union)
	fmt.Fprintf(&b, "\t%s()\n", markerMethod(union))
	b.WriteString("}\n")
	return b.String()
}

// ConstantEntry is one named constant of the container.
type ConstantEntry struct {
	Key    string // constant name, e.g. BEHAVIOR
	Ident  string // variant type name, e.g. Behavior
	Fields []FieldAssign
}

// ConstantsBlock renders the named constants, one per variant, in synthesis
// order.
func ConstantsBlock(entries []ConstantEntry) string {
	var b strings.Builder
	b.WriteString("// Named constants, one per source record.\n")
	b.WriteString("var (\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\t%s = %s{", e.Key, e.Ident)
		for i, f := range e.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", f.GoName, f.Value)
		}
		b.WriteString("}\n")
	}
	b.WriteString(")\n")
	return b.String()
}

// AllDecl renders the ordered enumeration of every variant.
func AllDecl(union string, keys []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "// All enumerates every %s variant in source order.\n", union)
	fmt.Fprintf(&b, "var All = []%s{\n", union)
	for _, key := range keys {
		fmt.Fprintf(&b, "\t%s,\n", key)
	}
	b.WriteString("}\n")
	return b.String()
}

// LookupEntry is one abbreviation index entry.
type LookupEntry struct {
	Code string // raw abbreviation value
	Key  string // constant name
}

// LookupDecl renders the abbreviation index and its accessor. Unknown codes
// yield an explicit false result, never a panic.
func LookupDecl(union string, entries []LookupEntry) string {
	var b strings.Builder
	b.WriteString("// abbreviations indexes every variant by its abbreviation.\n")
	fmt.Fprintf(&b, "var abbreviations = map[string]%s{\n", union)
	for _, e := range entries {
		fmt.Fprintf(&b, "\t%q: %s,\n", e.Code, e.Key)
	}
	b.WriteString("}\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "// FromAbbreviation returns the variant registered under code; the second\n")
	fmt.Fprintf(&b, "// result is false when code is unknown.\n")
	fmt.Fprintf(&b, "func FromAbbreviation(code string) (%s, bool) {\n", union)
	b.WriteString("\tv, ok := abbreviations[code]\n")
	b.WriteString("\treturn v, ok\n")
	b.WriteString("}\n")
	return b.String()
}

// markerMethod is the unexported method sealing a union.
func markerMethod(union string) string {
	return "is" + union
}
