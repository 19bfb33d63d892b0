package load

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest describes one generation run: which sources to compile and the
// shape of each generated container. It is the declarative surface consumed
// by cmd/modelgen.
type Manifest struct {
	Generators []GeneratorSpec `yaml:"generators"`
}

// GeneratorSpec describes one generator in a manifest.
type GeneratorSpec struct {
	// Name is the container name; a capitalized Go identifier.
	Name string `yaml:"name"`
	// Source locates the records to compile.
	Source SourceSpec `yaml:"source"`
	// Discriminator is the union tag field. Defaults to "name".
	Discriminator string `yaml:"discriminator"`
	// Fields is the seed type descriptor, in emission order.
	Fields []FieldSpec `yaml:"fields"`
	// Hints are tried in order to name each literal class.
	// Defaults to [abbreviation, name].
	Hints []string `yaml:"hints"`
	// Lookup controls abbreviation-map rendering. Defaults to true.
	Lookup *bool `yaml:"abbreviation_lookup"`
	// Lenient omits unmapped descriptor fields instead of failing.
	Lenient bool `yaml:"lenient"`
	// Package is the generated package name. Defaults from Name.
	Package string `yaml:"package"`
	// Output is the artifact path relative to the target directory.
	// Defaults from Name.
	Output string `yaml:"output"`
	// Preamble is free text inserted after the imports.
	Preamble string `yaml:"preamble"`
	// Resolvers derive field values that are not literally present.
	Resolvers []ResolverSpec `yaml:"resolvers"`
}

// SourceSpec locates a record source. Exactly one of CSV or URL is set.
type SourceSpec struct {
	CSV        string   `yaml:"csv"`
	URL        string   `yaml:"url"`
	FieldNames []string `yaml:"field_names"`
	// Section and KeyField select the keyed-document shape for remote
	// sources; when empty the document must be a sequence of mappings.
	Section  string `yaml:"section"`
	KeyField string `yaml:"key_field"`
}

// FieldSpec is one descriptor field.
type FieldSpec struct {
	Name string   `yaml:"name"`
	Kind string   `yaml:"kind"`
	Ref  *RefSpec `yaml:"ref"`
}

// RefSpec names a container type in another generated package.
type RefSpec struct {
	Package string `yaml:"package"`
	Type    string `yaml:"type"`
}

// ResolverSpec is one reference resolver.
type ResolverSpec struct {
	Target  string   `yaml:"target"`
	Keys    []string `yaml:"keys"`
	Pattern string   `yaml:"pattern"`
	Ref     *RefSpec `yaml:"ref"`
	// Transforms maps a source key to a named transform:
	// title, upper, lower, or quote.
	Transforms map[string]string `yaml:"transforms"`
}

// ReadManifest loads and validates a manifest file.
func ReadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewUnavailableError(path, "read manifest", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, NewMalformedError(path, "decode manifest", err)
	}
	if len(m.Generators) == 0 {
		return nil, NewMalformedError(path, "manifest declares no generators", nil)
	}
	for i, g := range m.Generators {
		if g.Name == "" {
			return nil, NewMalformedError(path, fmt.Sprintf("generator %d: missing name", i), nil)
		}
		if (g.Source.CSV == "") == (g.Source.URL == "") {
			return nil, NewMalformedError(path, fmt.Sprintf("generator %q: exactly one of source.csv or source.url is required", g.Name), nil)
		}
		if len(g.Fields) == 0 {
			return nil, NewMalformedError(path, fmt.Sprintf("generator %q: missing fields", g.Name), nil)
		}
	}
	return &m, nil
}
