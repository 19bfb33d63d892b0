package gen

import (
	"fmt"
	"strings"

	"github.com/syssam/modelgen/compiler/load"
)

// Transform is a pure string transform applied to a source value before it
// is substituted into a resolver pattern.
type Transform func(string) string

// ReferenceResolver computes the literal text for a field whose value is not
// present verbatim in a record — typically a reference into another
// generated container. The pattern is positional: one %s verb per declared
// source key, filled in declaration order.
type ReferenceResolver struct {
	// Target is the descriptor field this resolver populates. Targets are
	// unique across a generator.
	Target string
	// Keys are the record keys whose values fill the pattern. Every
	// declared key is substituted; all must exist in the record.
	Keys []string
	// Pattern is the literal template, e.g. `registries.%s` or `%q`.
	Pattern string
	// Transforms optionally maps a source key to a pure transform applied
	// before substitution.
	Transforms map[string]Transform
	// Ref, when set, names the container the pattern refers to so the
	// emission engine can synthesize its import.
	Ref *ForwardRef
}

// validate checks the resolver's shape at generator construction time.
func (r *ReferenceResolver) validate() error {
	if r.Target == "" {
		return NewConfigError("Resolvers", nil, "resolver with empty target field")
	}
	if len(r.Keys) == 0 {
		return NewConfigError("Resolvers", r.Target, "resolver needs at least one source key")
	}
	verbs := strings.Count(r.Pattern, "%s") + strings.Count(r.Pattern, "%q")
	if verbs != len(r.Keys) {
		return NewConfigError("Resolvers", r.Target,
			fmt.Sprintf("pattern %q has %d verbs for %d source keys", r.Pattern, verbs, len(r.Keys)))
	}
	return nil
}

// Resolve computes the literal text for one record. Every declared source
// key must be present or a MissingKeyError is returned.
func (r *ReferenceResolver) Resolve(rec load.Record) (string, error) {
	args := make([]any, 0, len(r.Keys))
	for _, key := range r.Keys {
		v, ok := rec.Get(key)
		if !ok {
			return "", NewMissingKeyError(r.Target, key)
		}
		if t, ok := r.Transforms[key]; ok && t != nil {
			v = t(v)
		}
		args = append(args, v)
	}
	return fmt.Sprintf(r.Pattern, args...), nil
}
