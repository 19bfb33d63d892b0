// Package load adapts external data sources into flat records.
//
// A source is either a local delimited file with a header row or a remote
// YAML/JSON document fetched over HTTPS. Both are normalized into the same
// ordered key->value Record shape consumed by compiler/gen.
package load

import "context"

// Record is one parsed row or entry from a source, as a flat string-keyed
// mapping. Key order follows the source and is preserved for iteration.
// A Record is immutable once constructed.
type Record struct {
	keys   []string
	values map[string]string
}

// NewRecord builds a record from the given keys and values. Keys missing
// from values map to the empty string. The inputs are copied.
func NewRecord(keys []string, values map[string]string) Record {
	r := Record{
		keys:   make([]string, len(keys)),
		values: make(map[string]string, len(keys)),
	}
	copy(r.keys, keys)
	for _, k := range keys {
		r.values[k] = values[k]
	}
	return r
}

// Get returns the value for key and whether the key exists in the record.
func (r Record) Get(key string) (string, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key exists in the record.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Keys returns the record's keys in source order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of keys in the record.
func (r Record) Len() int {
	return len(r.keys)
}

// Reader produces a finite, ordered sequence of records from a source.
// Implementations must not retain or mutate their input.
type Reader interface {
	ReadRecords(ctx context.Context) ([]Record, error)
}
