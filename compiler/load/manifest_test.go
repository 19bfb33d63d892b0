package load

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "modelgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadManifest(t *testing.T) {
	t.Run("parses a full generator spec", func(t *testing.T) {
		path := writeManifest(t, `
generators:
  - name: Modality
    source:
      csv: models/modalities.csv
    discriminator: name
    fields:
      - name: name
        kind: string
      - name: abbreviation
        kind: string
      - name: registry
        kind: ref
        ref:
          package: example.com/models/registries
          type: Registry
    hints: [abbreviation, name]
    abbreviation_lookup: false
    lenient: true
    package: modality
    output: modality/modality.go
    resolvers:
      - target: registry
        keys: [registry_abbreviation]
        pattern: registries.%s
        ref:
          package: example.com/models/registries
          type: Registry
        transforms:
          registry_abbreviation: upper
`)
		m, err := ReadManifest(path)
		require.NoError(t, err)
		require.Len(t, m.Generators, 1)

		g := m.Generators[0]
		assert.Equal(t, "Modality", g.Name)
		assert.Equal(t, "models/modalities.csv", g.Source.CSV)
		assert.Equal(t, "name", g.Discriminator)
		require.Len(t, g.Fields, 3)
		assert.Equal(t, "ref", g.Fields[2].Kind)
		require.NotNil(t, g.Fields[2].Ref)
		assert.Equal(t, "Registry", g.Fields[2].Ref.Type)
		require.NotNil(t, g.Lookup)
		assert.False(t, *g.Lookup)
		assert.True(t, g.Lenient)
		require.Len(t, g.Resolvers, 1)
		assert.Equal(t, "registries.%s", g.Resolvers[0].Pattern)
		assert.Equal(t, "upper", g.Resolvers[0].Transforms["registry_abbreviation"])
	})

	t.Run("lookup defaults to unset", func(t *testing.T) {
		path := writeManifest(t, `
generators:
  - name: Modality
    source:
      csv: modalities.csv
    fields:
      - name: name
        kind: string
`)
		m, err := ReadManifest(path)
		require.NoError(t, err)
		assert.Nil(t, m.Generators[0].Lookup)
	})

	t.Run("remote source with keyed shape", func(t *testing.T) {
		path := writeManifest(t, `
generators:
  - name: HarpDeviceType
    source:
      url: https://example.com/whoami.yml
      section: devices
      key_field: whoami
    fields:
      - name: name
        kind: string
      - name: whoami
        kind: int
`)
		m, err := ReadManifest(path)
		require.NoError(t, err)
		g := m.Generators[0]
		assert.Equal(t, "https://example.com/whoami.yml", g.Source.URL)
		assert.Equal(t, "devices", g.Source.Section)
		assert.Equal(t, "whoami", g.Source.KeyField)
	})

	t.Run("missing file is unavailable", func(t *testing.T) {
		_, err := ReadManifest(filepath.Join(t.TempDir(), "absent.yaml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnavailable))
	})

	t.Run("invalid yaml is malformed", func(t *testing.T) {
		path := writeManifest(t, "generators: [unterminated")
		_, err := ReadManifest(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("empty manifest is malformed", func(t *testing.T) {
		path := writeManifest(t, "generators: []\n")
		_, err := ReadManifest(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("generator without a name is malformed", func(t *testing.T) {
		path := writeManifest(t, `
generators:
  - source:
      csv: modalities.csv
    fields:
      - name: name
        kind: string
`)
		_, err := ReadManifest(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("both csv and url is malformed", func(t *testing.T) {
		path := writeManifest(t, `
generators:
  - name: Modality
    source:
      csv: modalities.csv
      url: https://example.com/modalities.yml
    fields:
      - name: name
        kind: string
`)
		_, err := ReadManifest(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("neither csv nor url is malformed", func(t *testing.T) {
		path := writeManifest(t, `
generators:
  - name: Modality
    source: {}
    fields:
      - name: name
        kind: string
`)
		_, err := ReadManifest(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))
	})

	t.Run("generator without fields is malformed", func(t *testing.T) {
		path := writeManifest(t, `
generators:
  - name: Modality
    source:
      csv: modalities.csv
`)
		_, err := ReadManifest(path)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMalformed))
	})
}
