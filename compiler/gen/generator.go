package gen

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-openapi/inflect"

	"github.com/syssam/modelgen/compiler/load"
)

// defaultHints are the class-name hint fields tried in order.
var defaultHints = []string{"abbreviation", "name"}

// Generator compiles one source into one artifact: a generated package
// holding the literal classes and their container. Construction validates
// the configuration; per-record failures surface from Generate.
type Generator struct {
	name          string
	desc          *Descriptor
	source        load.Reader
	sourceID      string
	discriminator string
	hints         []string
	resolvers     map[string]*ReferenceResolver
	renderLookup  bool
	lenient       bool
	pkg           string
	extraImports  []Import
	preamble      string
	now           func() time.Time
}

// NewGenerator creates a generator for one container.
//
// name must be a capitalized Go identifier; sourceID is the provenance
// string embedded in the artifact header (a file name or URL). Duplicate
// resolver targets and malformed resolvers are rejected here, before any
// record is processed.
func NewGenerator(name string, desc *Descriptor, source load.Reader, sourceID string, opts ...Option) (*Generator, error) {
	if !IsContainerName(name) {
		return nil, NewConfigError("Name", name, "container name must be a capitalized identifier")
	}
	if desc == nil {
		return nil, NewConfigError("Descriptor", nil, "descriptor is required")
	}
	if source == nil {
		return nil, NewConfigError("Source", nil, "source reader is required")
	}
	g := &Generator{
		name:          name,
		desc:          desc,
		source:        source,
		sourceID:      sourceID,
		discriminator: "name",
		hints:         defaultHints,
		resolvers:     make(map[string]*ReferenceResolver),
		renderLookup:  true,
		pkg:           strings.ToLower(name),
		now:           time.Now,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Name returns the container name.
func (g *Generator) Name() string {
	return g.name
}

// Package returns the generated package name.
func (g *Generator) Package() string {
	return g.pkg
}

// DefaultOutput returns the artifact path used when none is configured:
// the snake_case container name as both directory and file, so each
// container lives in its own package and can be referenced by others.
func (g *Generator) DefaultOutput() string {
	base := inflect.Underscore(g.name)
	return base + "/" + base + ".go"
}

// Generate compiles the source into artifact text. It is pure aside from
// reading the source: records are synthesized in arrival order, the
// container is rendered, and the raw text is returned. Validation and
// formatting are the caller's concern (see Context).
func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	records, err := g.source.ReadRecords(ctx)
	if err != nil {
		return nil, err
	}

	blueprints := make([]*Blueprint, 0, len(records))
	for _, rec := range records {
		bp, err := Synthesize(rec, g.desc, g.resolvers, g.hints, !g.lenient)
		if err != nil {
			return nil, err
		}
		blueprints = append(blueprints, bp)
	}

	container, err := NewContainer(g.name, g.discriminator, g.sourceID, blueprints, g.renderLookup)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString(FileHeader(g.sourceID, g.now().UTC().Format(time.RFC3339)))
	b.WriteString("\n")
	b.WriteString(PackageClause(g.pkg))
	if imports := g.imports(); len(imports) > 0 {
		b.WriteString("\n")
		b.WriteString(ImportBlock(imports))
	}
	if g.preamble != "" {
		b.WriteString("\n")
		b.WriteString(g.preamble)
		if !strings.HasSuffix(g.preamble, "\n") {
			b.WriteString("\n")
		}
	}
	b.WriteString(container.Render())
	return []byte(b.String()), nil
}

// imports collects the import set: forward references from descriptor
// fields and resolvers, plus any configured extras, deduplicated and sorted
// by path.
func (g *Generator) imports() []Import {
	byPath := make(map[string]Import)
	add := func(ref *ForwardRef) {
		if ref == nil || ref.PkgPath == "" {
			return
		}
		byPath[ref.PkgPath] = Import{Path: ref.PkgPath, Name: ref.PkgName}
	}
	for _, f := range g.desc.Fields() {
		add(f.Ref)
	}
	for _, r := range g.resolvers {
		add(r.Ref)
	}
	for _, imp := range g.extraImports {
		byPath[imp.Path] = imp
	}
	imports := make([]Import, 0, len(byPath))
	for _, imp := range byPath {
		imports = append(imports, imp)
	}
	sort.Slice(imports, func(i, j int) bool { return imports[i].Path < imports[j].Path })
	return imports
}
