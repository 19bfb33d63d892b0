package gen

import "strings"

// Container aggregates every blueprint of one source into the enclosing
// construct: named constants, the ordered All enumeration, the closed union
// type, and the optional abbreviation lookup.
type Container struct {
	Name          string
	Discriminator string
	Source        string // provenance identifier, echoed in the union doc
	Blueprints    []*Blueprint

	renderLookup bool
}

// NewContainer validates and builds the container for a set of blueprints.
// Two records sanitizing to the same identifier or constant name are a hard
// error; silently dropping a variant would corrupt the closed set.
func NewContainer(name, discriminator, source string, blueprints []*Blueprint, renderLookup bool) (*Container, error) {
	idents := make(map[string]string, len(blueprints))
	keys := make(map[string]string, len(blueprints))
	for _, bp := range blueprints {
		if first, ok := idents[bp.Ident]; ok {
			return nil, NewDuplicateIdentError(bp.Ident, first, bp.OriginalKey)
		}
		idents[bp.Ident] = bp.OriginalKey
		if first, ok := keys[bp.EnumKey]; ok {
			return nil, NewDuplicateIdentError(bp.EnumKey, first, bp.OriginalKey)
		}
		keys[bp.EnumKey] = bp.OriginalKey
	}
	// Constants and variant types share the package namespace.
	for _, bp := range blueprints {
		if first, ok := idents[bp.EnumKey]; ok {
			return nil, NewDuplicateIdentError(bp.EnumKey, first, bp.OriginalKey)
		}
	}
	return &Container{
		Name:          name,
		Discriminator: discriminator,
		Source:        source,
		Blueprints:    blueprints,
		renderLookup:  renderLookup,
	}, nil
}

// LookupRendered reports whether the abbreviation lookup will be emitted:
// it must be requested and every blueprint must carry a non-empty
// abbreviation. An absent abbreviation skips the lookup, it never errors.
func (c *Container) LookupRendered() bool {
	if !c.renderLookup || len(c.Blueprints) == 0 {
		return false
	}
	for _, bp := range c.Blueprints {
		if bp.Abbrev == "" {
			return false
		}
	}
	return true
}

// Render emits the container's declarations in order: variant types, the
// union, the constants, All, and the lookup when rendered.
func (c *Container) Render() string {
	var b strings.Builder
	for _, bp := range c.Blueprints {
		b.WriteString("\n")
		b.WriteString(VariantDecl(c.Name, bp.Ident, bp.OriginalKey, bp.Fields))
	}

	b.WriteString("\n")
	b.WriteString(UnionDecl(c.Name, c.Discriminator, c.Source))

	entries := make([]ConstantEntry, len(c.Blueprints))
	allKeys := make([]string, len(c.Blueprints))
	for i, bp := range c.Blueprints {
		entries[i] = ConstantEntry{Key: bp.EnumKey, Ident: bp.Ident, Fields: bp.Fields}
		allKeys[i] = bp.EnumKey
	}
	b.WriteString("\n")
	b.WriteString(ConstantsBlock(entries))
	b.WriteString("\n")
	b.WriteString(AllDecl(c.Name, allKeys))

	if c.LookupRendered() {
		lookups := make([]LookupEntry, len(c.Blueprints))
		for i, bp := range c.Blueprints {
			lookups[i] = LookupEntry{Code: bp.Abbrev, Key: bp.EnumKey}
		}
		b.WriteString("\n")
		b.WriteString(LookupDecl(c.Name, lookups))
	}
	return b.String()
}
