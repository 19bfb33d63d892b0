package load

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// CSVReader reads records from a local delimited file. The first row defines
// the field names unless an explicit override is configured.
type CSVReader struct {
	path       string
	fieldNames []string
	comma      rune
}

// CSVOption configures a CSVReader.
type CSVOption func(*CSVReader)

// WithFieldNames overrides the header row. When set, the first row of the
// file is treated as data.
func WithFieldNames(names ...string) CSVOption {
	return func(r *CSVReader) {
		r.fieldNames = names
	}
}

// WithComma sets the field delimiter. The default is ','.
func WithComma(comma rune) CSVOption {
	return func(r *CSVReader) {
		r.comma = comma
	}
}

// NewCSVReader creates a reader for the delimited file at path.
func NewCSVReader(path string, opts ...CSVOption) *CSVReader {
	r := &CSVReader{path: path, comma: ','}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadRecords parses the file into records in row order.
func (r *CSVReader) ReadRecords(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, NewUnavailableError(r.path, "context done", err)
	}
	f, err := os.Open(r.path)
	if err != nil {
		return nil, NewUnavailableError(r.path, "open file", err)
	}
	defer f.Close()
	return r.parse(f)
}

func (r *CSVReader) parse(src io.Reader) ([]Record, error) {
	cr := csv.NewReader(src)
	cr.Comma = r.comma

	header := r.fieldNames
	if header == nil {
		row, err := cr.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, NewMalformedError(r.path, "read header row", err)
		}
		header = row
	}
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		if seen[name] {
			return nil, NewMalformedError(r.path, fmt.Sprintf("duplicate field name %q in header", name), nil)
		}
		seen[name] = true
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewMalformedError(r.path, "read row", err)
		}
		values := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				values[name] = row[i]
			}
		}
		records = append(records, NewRecord(header, values))
	}
	return records, nil
}
