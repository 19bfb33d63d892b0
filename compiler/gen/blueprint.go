package gen

import (
	"strconv"
	"strings"

	"github.com/syssam/modelgen/compiler/load"
)

// abbreviationField is the record key backing the optional lookup map.
const abbreviationField = "abbreviation"

// FieldAssign is one emitted field assignment, fully resolved to strings.
type FieldAssign struct {
	Name   string // source field name
	GoName string // sanitized struct field name
	Type   string // emitted Go type
	Value  string // emitted literal text
}

// Blueprint is the intermediate representation of one literal class: the
// original record key, its sanitized identifier, and the resolved field
// assignments. Blueprints are immutable once synthesized.
type Blueprint struct {
	OriginalKey string
	Ident       string
	EnumKey     string
	Abbrev      string // raw abbreviation value, empty when absent
	Fields      []FieldAssign
}

// Synthesize builds the blueprint for one record.
//
// The class name is taken from the first hint field yielding a non-empty
// value. Field values are resolved in descriptor order: a resolver targeting
// the field wins; otherwise the record's raw value is used, quoted for
// string kinds; otherwise strict mode fails with UnmappedFieldError and
// lenient mode omits the field.
func Synthesize(rec load.Record, desc *Descriptor, resolvers map[string]*ReferenceResolver, hints []string, strict bool) (*Blueprint, error) {
	var key string
	for _, hint := range hints {
		if v, ok := rec.Get(hint); ok && v != "" {
			key = v
			break
		}
	}
	if key == "" {
		return nil, NewClassNameError(hints)
	}
	ident := SanitizeIdent(key)
	if !IsIdent(ident) {
		return nil, NewClassNameError(hints)
	}
	enumKey := EnumKey(key)
	if ident == enumKey {
		// A fully uppercase name would collide with its own constant:
		// the type keeps only the leading capital.
		ident = ident[:1] + strings.ToLower(ident[1:])
	}

	bp := &Blueprint{
		OriginalKey: key,
		Ident:       ident,
		EnumKey:     enumKey,
		Fields:      make([]FieldAssign, 0, desc.Len()),
	}
	if v, ok := rec.Get(abbreviationField); ok {
		bp.Abbrev = v
	}

	for _, field := range desc.Fields() {
		assign := FieldAssign{
			Name:   field.Name,
			GoName: SanitizeIdent(field.Name),
			Type:   field.GoType(),
		}
		switch {
		case resolvers[field.Name] != nil:
			text, err := resolvers[field.Name].Resolve(rec)
			if err != nil {
				return nil, err
			}
			assign.Value = text
		case rec.Has(field.Name):
			raw, _ := rec.Get(field.Name)
			if field.Kind == KindString {
				raw = strconv.Quote(raw)
			}
			assign.Value = raw
		case strict:
			return nil, NewUnmappedFieldError(field.Name)
		default:
			continue
		}
		bp.Fields = append(bp.Fields, assign)
	}
	return bp, nil
}
