package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileHeader(t *testing.T) {
	out := FileHeader("modalities.csv", "2024-01-02T03:04:05Z")
	assert.Contains(t, out, "// Code generated by modelgen; DO NOT EDIT.")
	assert.Contains(t, out, "source:    modalities.csv")
	assert.Contains(t, out, "timestamp: 2024-01-02T03:04:05Z")
}

func TestImportBlock(t *testing.T) {
	t.Run("empty set renders nothing", func(t *testing.T) {
		assert.Equal(t, "", ImportBlock(nil))
	})

	t.Run("alias only when it differs from the path base", func(t *testing.T) {
		out := ImportBlock([]Import{
			{Path: "example.com/models/registries"},
			{Path: "example.com/models/registries/v2", Name: "registries"},
			{Path: "example.com/models/organs", Name: "organs"},
		})
		assert.Contains(t, out, "\t\"example.com/models/registries\"\n")
		assert.Contains(t, out, "\tregistries \"example.com/models/registries/v2\"\n")
		assert.Contains(t, out, "\t\"example.com/models/organs\"\n")
		assert.NotContains(t, out, "organs \"example.com/models/organs\"")
	})
}

func TestVariantDecl(t *testing.T) {
	out := VariantDecl("Modality", "Behavior", "behavior", []FieldAssign{
		{GoName: "Name", Type: "string"},
		{GoName: "Abbreviation", Type: "string"},
	})
	assert.Contains(t, out, "type Behavior struct {")
	assert.Contains(t, out, "\tName string\n")
	assert.Contains(t, out, "func (Behavior) isModality() {}")
	assert.Contains(t, out, `synthesized from "behavior"`)
}

func TestConstantsBlock(t *testing.T) {
	out := ConstantsBlock([]ConstantEntry{
		{Key: "BEHAVIOR", Ident: "Behavior", Fields: []FieldAssign{
			{GoName: "Name", Value: `"Behavior"`},
			{GoName: "Abbreviation", Value: `"behavior"`},
		}},
	})
	assert.Contains(t, out, `BEHAVIOR = Behavior{Name: "Behavior", Abbreviation: "behavior"}`)
}

func TestLookupDecl(t *testing.T) {
	out := LookupDecl("Modality", []LookupEntry{{Code: "behavior", Key: "BEHAVIOR"}})
	assert.Contains(t, out, "var abbreviations = map[string]Modality{")
	assert.Contains(t, out, `"behavior": BEHAVIOR,`)
	assert.Contains(t, out, "func FromAbbreviation(code string) (Modality, bool) {")
	assert.Contains(t, out, "return v, ok")
}
