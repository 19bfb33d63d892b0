package modelgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/modelgen"
)

func TestCacheKey(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		key := modelgen.CacheKey{Location: "https://example.com/whoami.yml", Shape: "keyed:devices:whoami"}
		assert.Equal(t, "https://example.com/whoami.yml:keyed:devices:whoami", key.String())
	})

	t.Run("different shapes key differently", func(t *testing.T) {
		a := modelgen.CacheKey{Location: "https://example.com/doc.yml", Shape: "list"}
		b := modelgen.CacheKey{Location: "https://example.com/doc.yml", Shape: "keyed:devices:whoami"}
		assert.NotEqual(t, a.String(), b.String())
	})
}
