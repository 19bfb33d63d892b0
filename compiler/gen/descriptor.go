package gen

import (
	"fmt"
	"path"
)

// Kind is the primitive kind of a descriptor field. It controls how a raw
// record value is rendered into the emitted literal.
type Kind uint8

const (
	// KindInvalid is the zero kind.
	KindInvalid Kind = iota
	// KindString renders the raw value as a quoted string literal.
	KindString
	// KindInt renders the raw value verbatim as an integer literal.
	KindInt
	// KindFloat renders the raw value verbatim as a float literal.
	KindFloat
	// KindBool renders the raw value verbatim as a bool literal.
	KindBool
	// KindRef renders a reference into another generated container,
	// typically via a resolver.
	KindRef
)

// String returns the kind name as used in manifests.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindRef:
		return "ref"
	default:
		return "invalid"
	}
}

// ParseKind parses a manifest kind name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "string":
		return KindString, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "bool":
		return KindBool, nil
	case "ref":
		return KindRef, nil
	default:
		return KindInvalid, NewConfigError("Kind", s, "unknown field kind; use string, int, float, bool, or ref")
	}
}

// GoType returns the emitted Go type for the kind. Ref kinds take their type
// from the field's forward reference.
func (k Kind) GoType() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float64"
	case KindBool:
		return "bool"
	default:
		return ""
	}
}

// ForwardRef names a container type in another generated package by symbolic
// name. The emission engine synthesizes an import for it without the package
// being loaded or even existing yet.
type ForwardRef struct {
	PkgPath string // import path of the generated package
	PkgName string // package name; defaults to the path base
	Type    string // union type name inside the package
}

// Name returns the package name used to qualify the type.
func (r ForwardRef) Name() string {
	if r.PkgName != "" {
		return r.PkgName
	}
	return path.Base(r.PkgPath)
}

// Qualified returns the package-qualified type name, e.g. "registries.Registry".
func (r ForwardRef) Qualified() string {
	return r.Name() + "." + r.Type
}

// DescriptorField is one field a literal class must populate.
type DescriptorField struct {
	Name string
	Kind Kind
	Ref  *ForwardRef // required when Kind is KindRef
}

// GoType returns the emitted Go type for the field.
func (f DescriptorField) GoType() string {
	if f.Kind == KindRef {
		return f.Ref.Qualified()
	}
	return f.Kind.GoType()
}

// Descriptor is the static description of which fields a generated literal
// class carries, replacing any reflection over a seed type. Field order is
// emission order.
type Descriptor struct {
	fields []DescriptorField
}

// NewDescriptor builds a descriptor from the given fields.
func NewDescriptor(fields ...DescriptorField) (*Descriptor, error) {
	if len(fields) == 0 {
		return nil, NewConfigError("Fields", nil, "descriptor needs at least one field")
	}
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if f.Name == "" {
			return nil, NewConfigError("Fields", nil, "descriptor field with empty name")
		}
		if seen[f.Name] {
			return nil, NewConfigError("Fields", f.Name, "duplicate descriptor field")
		}
		seen[f.Name] = true
		switch f.Kind {
		case KindString, KindInt, KindFloat, KindBool:
		case KindRef:
			if f.Ref == nil || f.Ref.PkgPath == "" || f.Ref.Type == "" {
				return nil, NewConfigError("Fields", f.Name, "ref field needs a forward reference with package path and type")
			}
		default:
			return nil, NewConfigError("Fields", f.Name, fmt.Sprintf("invalid kind %d", f.Kind))
		}
	}
	d := &Descriptor{fields: make([]DescriptorField, len(fields))}
	copy(d.fields, fields)
	return d, nil
}

// Fields returns the descriptor fields in emission order.
func (d *Descriptor) Fields() []DescriptorField {
	fields := make([]DescriptorField, len(d.fields))
	copy(fields, d.fields)
	return fields
}

// Has reports whether the descriptor declares the named field.
func (d *Descriptor) Has(name string) bool {
	for _, f := range d.fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Len returns the number of descriptor fields.
func (d *Descriptor) Len() int {
	return len(d.fields)
}
