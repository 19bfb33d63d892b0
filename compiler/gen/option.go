package gen

import "time"

// Option configures a Generator at construction time.
type Option func(*Generator) error

// WithDiscriminator sets the union tag field. The default is "name".
func WithDiscriminator(field string) Option {
	return func(g *Generator) error {
		if field == "" {
			return NewConfigError("Discriminator", nil, "discriminator cannot be empty")
		}
		g.discriminator = field
		return nil
	}
}

// WithNameHints sets the ordered candidate fields used to name each literal
// class. The default is abbreviation, then name.
func WithNameHints(hints ...string) Option {
	return func(g *Generator) error {
		if len(hints) == 0 {
			return NewConfigError("NameHints", nil, "at least one hint is required")
		}
		g.hints = hints
		return nil
	}
}

// WithResolvers attaches reference resolvers. Duplicate target fields are a
// construction-time error.
func WithResolvers(resolvers ...*ReferenceResolver) Option {
	return func(g *Generator) error {
		for _, r := range resolvers {
			if err := r.validate(); err != nil {
				return err
			}
			if _, ok := g.resolvers[r.Target]; ok {
				return NewDuplicateResolverError(r.Target)
			}
			g.resolvers[r.Target] = r
		}
		return nil
	}
}

// WithLookup controls rendering of the abbreviation lookup. Even when
// enabled, the lookup is skipped if any record lacks an abbreviation.
func WithLookup(render bool) Option {
	return func(g *Generator) error {
		g.renderLookup = render
		return nil
	}
}

// WithLenientFields omits descriptor fields that have neither a record
// value nor a resolver instead of failing the record.
func WithLenientFields() Option {
	return func(g *Generator) error {
		g.lenient = true
		return nil
	}
}

// WithPackage sets the generated package name. The default is the
// lowercased container name.
func WithPackage(pkg string) Option {
	return func(g *Generator) error {
		if !IsIdent(pkg) {
			return NewConfigError("Package", pkg, "package name must be a valid identifier")
		}
		g.pkg = pkg
		return nil
	}
}

// WithExtraImports adds imports beyond those synthesized from forward
// references.
func WithExtraImports(imports ...Import) Option {
	return func(g *Generator) error {
		g.extraImports = append(g.extraImports, imports...)
		return nil
	}
}

// WithPreamble inserts free text after the import block.
func WithPreamble(text string) Option {
	return func(g *Generator) error {
		g.preamble = text
		return nil
	}
}

// WithClock overrides the header timestamp source. Generation output is
// byte-identical across runs except for this timestamp, so tests pin it.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) error {
		if now == nil {
			return NewConfigError("Clock", nil, "clock cannot be nil")
		}
		g.now = now
		return nil
	}
}
