package load

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/syssam/modelgen"
)

// DefaultTimeout bounds a single remote document fetch.
const DefaultTimeout = 5 * time.Second

// Normalizer adapts a decoded document into flat records. The name keys the
// source cache, since one document can normalize in more than one shape.
type Normalizer struct {
	Name string
	Func func(source string, root *yaml.Node) ([]Record, error)
}

// RemoteReader fetches a structured document (YAML or JSON) over HTTP(S)
// with a bounded timeout and normalizes it into records. A fetch failure or
// timeout is terminal; no retry is attempted.
type RemoteReader struct {
	url       string
	client    *http.Client
	timeout   time.Duration
	normalize Normalizer
	cache     modelgen.Cache
	cacheTTL  time.Duration
}

// RemoteOption configures a RemoteReader.
type RemoteOption func(*RemoteReader)

// WithTimeout sets the fetch timeout. The default is DefaultTimeout.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *RemoteReader) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) RemoteOption {
	return func(r *RemoteReader) {
		if c != nil {
			r.client = c
		}
	}
}

// WithNormalizer sets the document normalizer. The default is ListNormalizer.
func WithNormalizer(n Normalizer) RemoteOption {
	return func(r *RemoteReader) {
		if n.Func != nil {
			r.normalize = n
		}
	}
}

// WithCache caches normalized records for ttl, keyed by URL and normalizer.
// Cache failures are ignored; the fetch path is the source of truth.
func WithCache(c modelgen.Cache, ttl time.Duration) RemoteOption {
	return func(r *RemoteReader) {
		r.cache = c
		r.cacheTTL = ttl
	}
}

// NewRemoteReader creates a reader for the document at url.
func NewRemoteReader(url string, opts ...RemoteOption) *RemoteReader {
	r := &RemoteReader{
		url:       url,
		client:    http.DefaultClient,
		timeout:   DefaultTimeout,
		normalize: ListNormalizer(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ReadRecords fetches, decodes, and normalizes the remote document.
func (r *RemoteReader) ReadRecords(ctx context.Context) ([]Record, error) {
	key := modelgen.CacheKey{Location: r.url, Shape: r.normalize.Name}.String()
	if r.cache != nil {
		if raw, err := r.cache.Get(ctx, key); err == nil && raw != nil {
			if records, err := decodeRecords(raw); err == nil {
				return records, nil
			}
			// A stale or corrupt entry falls through to a fresh fetch.
			_ = r.cache.Delete(ctx, key)
		}
	}

	body, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}
	var root yaml.Node
	if err := yaml.Unmarshal(body, &root); err != nil {
		return nil, NewMalformedError(r.url, "decode document", err)
	}
	records, err := r.normalize.Func(r.url, &root)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if raw, err := encodeRecords(records); err == nil {
			_ = r.cache.Set(ctx, key, raw, r.cacheTTL)
		}
	}
	return records, nil
}

func (r *RemoteReader) fetch(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, NewUnavailableError(r.url, "build request", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		// Timeouts surface here as context deadline errors.
		return nil, NewUnavailableError(r.url, "fetch document", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewUnavailableError(r.url, fmt.Sprintf("unexpected status %s", resp.Status), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewUnavailableError(r.url, "read body", err)
	}
	return body, nil
}

// ListNormalizer handles the canonical document shape: a top-level sequence
// of flat mappings, one record per entry. Scalar values keep their source
// text; nested values are rejected.
func ListNormalizer() Normalizer {
	return Normalizer{
		Name: "list",
		Func: func(source string, root *yaml.Node) ([]Record, error) {
			seq, err := documentNode(source, root)
			if err != nil {
				return nil, err
			}
			if seq.Kind != yaml.SequenceNode {
				return nil, NewMalformedError(source, "expected a top-level sequence of mappings", nil)
			}
			records := make([]Record, 0, len(seq.Content))
			for _, item := range seq.Content {
				rec, err := mappingRecord(source, item, nil)
				if err != nil {
					return nil, err
				}
				records = append(records, rec)
			}
			return records, nil
		},
	}
}

// KeyedNormalizer handles documents shaped as a top-level mapping holding a
// section whose entries are keyed by an identifier, e.g. a device registry
// mapping numeric codes to device descriptions. Each entry becomes a record
// with keyField bound to the entry key plus the entry's own scalar fields.
func KeyedNormalizer(section, keyField string) Normalizer {
	return Normalizer{
		Name: "keyed:" + section + ":" + keyField,
		Func: func(source string, root *yaml.Node) ([]Record, error) {
			top, err := documentNode(source, root)
			if err != nil {
				return nil, err
			}
			if top.Kind != yaml.MappingNode {
				return nil, NewMalformedError(source, "expected a top-level mapping", nil)
			}
			var sec *yaml.Node
			for i := 0; i+1 < len(top.Content); i += 2 {
				if top.Content[i].Value == section {
					sec = top.Content[i+1]
					break
				}
			}
			if sec == nil {
				return nil, NewMalformedError(source, fmt.Sprintf("missing section %q", section), nil)
			}
			if sec.Kind != yaml.MappingNode {
				return nil, NewMalformedError(source, fmt.Sprintf("section %q is not a mapping", section), nil)
			}
			var records []Record
			for i := 0; i+1 < len(sec.Content); i += 2 {
				key, entry := sec.Content[i], sec.Content[i+1]
				rec, err := mappingRecord(source, entry, map[string]string{keyField: key.Value})
				if err != nil {
					return nil, err
				}
				records = append(records, rec)
			}
			return records, nil
		},
	}
}

// documentNode unwraps the document wrapper around the decoded root.
func documentNode(source string, root *yaml.Node) (*yaml.Node, error) {
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, NewMalformedError(source, "empty document", nil)
		}
		return root.Content[0], nil
	}
	return root, nil
}

// mappingRecord converts a flat mapping node into a record. Extra seeds the
// record with synthetic leading fields (e.g. the entry key of a keyed
// section) and may be nil.
func mappingRecord(source string, node *yaml.Node, extra map[string]string) (Record, error) {
	if node.Kind != yaml.MappingNode {
		return Record{}, NewMalformedError(source, "expected a mapping entry", nil)
	}
	var keys []string
	values := make(map[string]string, len(node.Content)/2+len(extra))
	for k, v := range extra {
		keys = append(keys, k)
		values[k] = v
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return Record{}, NewMalformedError(source, fmt.Sprintf("field %q is not a scalar", key.Value), nil)
		}
		keys = append(keys, key.Value)
		values[key.Value] = val.Value
	}
	return NewRecord(keys, values), nil
}
