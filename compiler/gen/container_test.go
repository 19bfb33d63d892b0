package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blueprint(key, abbrev string) *Blueprint {
	return &Blueprint{
		OriginalKey: key,
		Ident:       SanitizeIdent(key),
		EnumKey:     EnumKey(key),
		Abbrev:      abbrev,
		Fields: []FieldAssign{
			{Name: "name", GoName: "Name", Type: "string", Value: `"` + key + `"`},
		},
	}
}

func TestNewContainer(t *testing.T) {
	t.Run("accepts distinct identifiers", func(t *testing.T) {
		c, err := NewContainer("Modality", "name", "modalities.csv", []*Blueprint{
			blueprint("Behavior", "behavior"),
			blueprint("Confocal microscopy", "confocal"),
		}, true)
		require.NoError(t, err)
		assert.Len(t, c.Blueprints, 2)
	})

	t.Run("colliding identifiers are a hard error", func(t *testing.T) {
		_, err := NewContainer("Modality", "name", "modalities.csv", []*Blueprint{
			blueprint("smart-spim", ""),
			blueprint("smart spim", ""),
		}, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateIdent))

		var dup *DuplicateIdentError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "SmartSpim", dup.Ident)
		assert.Equal(t, "smart-spim", dup.FirstKey)
		assert.Equal(t, "smart spim", dup.OtherKey)
	})

	t.Run("type name colliding with its own constant is a hard error", func(t *testing.T) {
		// A single uppercase letter cannot be disambiguated: the variant
		// type and its constant would share the name.
		_, err := NewContainer("Modality", "name", "modalities.csv", []*Blueprint{
			blueprint("X", ""),
		}, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateIdent))

		var dup *DuplicateIdentError
		require.True(t, errors.As(err, &dup))
		assert.Equal(t, "X", dup.Ident)
		assert.Equal(t, dup.FirstKey, dup.OtherKey)
		assert.Contains(t, err.Error(), "collides with its constant name")
	})

	t.Run("colliding constant names are a hard error", func(t *testing.T) {
		// Distinct identifiers, same uppercased constant.
		_, err := NewContainer("Modality", "name", "modalities.csv", []*Blueprint{
			blueprint("ab c", ""),
			blueprint("aB c", ""),
		}, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateIdent))
	})
}

func TestLookupRendered(t *testing.T) {
	t.Run("requires every abbreviation", func(t *testing.T) {
		c, err := NewContainer("Modality", "name", "s", []*Blueprint{
			blueprint("Behavior", "behavior"),
			blueprint("Confocal", ""),
		}, true)
		require.NoError(t, err)
		assert.False(t, c.LookupRendered())
	})

	t.Run("rendered when requested and complete", func(t *testing.T) {
		c, err := NewContainer("Modality", "name", "s", []*Blueprint{
			blueprint("Behavior", "behavior"),
		}, true)
		require.NoError(t, err)
		assert.True(t, c.LookupRendered())
	})

	t.Run("suppressed when not requested", func(t *testing.T) {
		c, err := NewContainer("Modality", "name", "s", []*Blueprint{
			blueprint("Behavior", "behavior"),
		}, false)
		require.NoError(t, err)
		assert.False(t, c.LookupRendered())
	})

	t.Run("suppressed for an empty container", func(t *testing.T) {
		c, err := NewContainer("Modality", "name", "s", nil, true)
		require.NoError(t, err)
		assert.False(t, c.LookupRendered())
	})
}

func TestContainerRender(t *testing.T) {
	c, err := NewContainer("Modality", "name", "modalities.csv", []*Blueprint{
		blueprint("Behavior", "behavior"),
		blueprint("Confocal microscopy", "confocal"),
	}, true)
	require.NoError(t, err)
	out := c.Render()

	t.Run("emits declarations in order", func(t *testing.T) {
		variant := strings.Index(out, "type Behavior struct {")
		union := strings.Index(out, "type Modality interface {")
		constants := strings.Index(out, "BEHAVIOR = Behavior{")
		all := strings.Index(out, "var All = []Modality{")
		lookup := strings.Index(out, "func FromAbbreviation(code string) (Modality, bool) {")

		for name, idx := range map[string]int{"variant": variant, "union": union, "constants": constants, "all": all, "lookup": lookup} {
			require.GreaterOrEqual(t, idx, 0, "missing %s declaration", name)
		}
		assert.Less(t, variant, union)
		assert.Less(t, union, constants)
		assert.Less(t, constants, all)
		assert.Less(t, all, lookup)
	})

	t.Run("seals variants with the marker method", func(t *testing.T) {
		assert.Contains(t, out, "func (Behavior) isModality() {}")
		assert.Contains(t, out, "func (ConfocalMicroscopy) isModality() {}")
		assert.Contains(t, out, "\tisModality()\n")
	})

	t.Run("enumerates constants in source order", func(t *testing.T) {
		assert.Less(t, strings.Index(out, "\tBEHAVIOR,"), strings.Index(out, "\tCONFOCAL_MICROSCOPY,"))
	})

	t.Run("indexes abbreviations by raw code", func(t *testing.T) {
		assert.Contains(t, out, `"behavior": BEHAVIOR,`)
		assert.Contains(t, out, `"confocal": CONFOCAL_MICROSCOPY,`)
	})

	t.Run("omits the lookup when an abbreviation is missing", func(t *testing.T) {
		c, err := NewContainer("Modality", "name", "modalities.csv", []*Blueprint{
			blueprint("Behavior", ""),
		}, true)
		require.NoError(t, err)
		assert.NotContains(t, c.Render(), "FromAbbreviation")
	})
}
