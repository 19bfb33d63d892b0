package load

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/modelgen"
)

// recordWire is the serialized form of a Record.
type recordWire struct {
	Keys   []string          `msgpack:"keys"`
	Values map[string]string `msgpack:"values"`
}

// encodeRecords serializes records for caching.
func encodeRecords(records []Record) ([]byte, error) {
	wire := make([]recordWire, len(records))
	for i, r := range records {
		w := recordWire{Keys: r.Keys(), Values: make(map[string]string, r.Len())}
		for _, k := range w.Keys {
			w.Values[k], _ = r.Get(k)
		}
		wire[i] = w
	}
	return msgpack.Marshal(wire)
}

// decodeRecords deserializes cached records.
func decodeRecords(raw []byte) ([]Record, error) {
	var wire []recordWire
	if err := msgpack.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	records := make([]Record, len(wire))
	for i, w := range wire {
		records[i] = NewRecord(w.Keys, w.Values)
	}
	return records, nil
}

// cacheEnvelope wraps a cached value with its expiry.
type cacheEnvelope struct {
	ExpiresAt int64  `msgpack:"expires_at"` // unix seconds, 0 means no expiry
	Value     []byte `msgpack:"value"`
}

// DiskCache is a modelgen.Cache backed by a directory of msgpack-encoded
// entries, keyed by the SHA-256 of the cache key.
type DiskCache struct {
	dir string
}

// NewDiskCache creates a cache rooted at dir. The directory is created on
// first write.
func NewDiskCache(dir string) *DiskCache {
	return &DiskCache{dir: dir}
}

func (c *DiskCache) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:])+".cache")
}

// Get retrieves a value, or nil when absent or expired.
func (c *DiskCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(c.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var env cacheEnvelope
	if err := msgpack.Unmarshal(raw, &env); err != nil {
		// Corrupt entries behave as misses.
		_ = os.Remove(c.path(key))
		return nil, nil
	}
	if env.ExpiresAt != 0 && time.Now().Unix() >= env.ExpiresAt {
		_ = os.Remove(c.path(key))
		return nil, nil
	}
	return env.Value, nil
}

// Set stores a value with an optional TTL.
func (c *DiskCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	env := cacheEnvelope{Value: value}
	if ttl > 0 {
		env.ExpiresAt = time.Now().Add(ttl).Unix()
	}
	raw, err := msgpack.Marshal(env)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path(key), raw, 0o644)
}

// Delete removes a value.
func (c *DiskCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every cache entry.
func (c *DiskCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	entries, err := filepath.Glob(filepath.Join(c.dir, "*.cache"))
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.Remove(entry); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

var _ modelgen.Cache = (*DiskCache)(nil)
