// Package modelgen compiles closed taxonomies of named entities into Go
// source code.
//
// A taxonomy arrives as a tabular or record-shaped source: a local CSV file
// with a header row, or a remote YAML/JSON document fetched over HTTPS. Each
// record becomes one immutable literal value type, and each source becomes
// one generated package exposing:
//
//   - a named constant per record,
//   - an All slice preserving source order,
//   - a closed union type (sealed interface) keyed by a discriminator field,
//   - an optional abbreviation lookup with an explicit not-found result.
//
// The pipeline is split the way the packages are: compiler/load adapts
// sources into flat records, compiler/gen synthesizes an intermediate
// blueprint per record, renders it through pure string templates, validates
// the emitted text with the Go grammar, and formats it before writing.
//
// See compiler/gen.Context for the orchestration entry point and
// cmd/modelgen for the command-line front end.
package modelgen
