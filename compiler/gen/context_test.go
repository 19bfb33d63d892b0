package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelgen/compiler/load"
)

func modalityGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator("Modality", stringDescriptor(t, "name", "abbreviation"), modalityReader(), "modalities.csv", WithClock(fixedClock))
	require.NoError(t, err)
	return g
}

func failingGenerator(t *testing.T) *Generator {
	t.Helper()
	source := stubReader{err: load.NewUnavailableError("platforms.csv", "open file", nil)}
	g, err := NewGenerator("Platform", stringDescriptor(t, "name"), source, "platforms.csv", WithClock(fixedClock))
	require.NoError(t, err)
	return g
}

func TestContextGenerateAll(t *testing.T) {
	t.Run("produces artifacts in registration order", func(t *testing.T) {
		gc := NewContext()
		require.NoError(t, gc.Add(modalityGenerator(t), ""))

		deviceSource := stubReader{records: []load.Record{
			record("name", "Lickety Split", "whoami", "1152"),
		}}
		desc, err := NewDescriptor(
			DescriptorField{Name: "name", Kind: KindString},
			DescriptorField{Name: "whoami", Kind: KindInt},
		)
		require.NoError(t, err)
		device, err := NewGenerator("HarpDeviceType", desc, deviceSource, "whoami.yml",
			WithNameHints("name"), WithClock(fixedClock))
		require.NoError(t, err)
		require.NoError(t, gc.Add(device, ""))

		artifacts, err := gc.GenerateAll(context.Background())
		require.NoError(t, err)
		require.Len(t, artifacts, 2)

		assert.Equal(t, "Modality", artifacts[0].Name)
		assert.Equal(t, "modality/modality.go", artifacts[0].Path)
		assert.Equal(t, "modalities.csv", artifacts[0].Source)
		assert.Contains(t, string(artifacts[0].Code), "type Modality interface {")

		assert.Equal(t, "HarpDeviceType", artifacts[1].Name)
		assert.Equal(t, "harp_device_type/harp_device_type.go", artifacts[1].Path)
		assert.Contains(t, string(artifacts[1].Code), "Whoami int")
	})

	t.Run("artifacts come back formatted", func(t *testing.T) {
		gc := NewContext()
		require.NoError(t, gc.Add(modalityGenerator(t), ""))

		artifacts, err := gc.GenerateAll(context.Background())
		require.NoError(t, err)
		require.Len(t, artifacts, 1)

		styled, err := StyleFormatter{}.Format("modality.go", artifacts[0].Code)
		require.NoError(t, err)
		assert.Equal(t, styled, artifacts[0].Code)
	})

	t.Run("a failing generator does not stop the rest", func(t *testing.T) {
		gc := NewContext()
		require.NoError(t, gc.Add(failingGenerator(t), ""))
		require.NoError(t, gc.Add(modalityGenerator(t), ""))

		artifacts, err := gc.GenerateAll(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrGenerateFailed))
		assert.True(t, errors.Is(err, load.ErrUnavailable))

		var genErr *GenerateError
		require.True(t, errors.As(err, &genErr))
		assert.Equal(t, "Platform", genErr.Generator)

		require.Len(t, artifacts, 1)
		assert.Equal(t, "Modality", artifacts[0].Name)
	})

	t.Run("invalid emitted text aborts the artifact", func(t *testing.T) {
		g, err := NewGenerator("Modality", stringDescriptor(t, "name", "abbreviation"), modalityReader(), "modalities.csv",
			WithClock(fixedClock),
			WithPreamble("not valid go"),
		)
		require.NoError(t, err)

		gc := NewContext()
		require.NoError(t, gc.Add(g, ""))

		artifacts, err := gc.GenerateAll(context.Background())
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSyntax))
		assert.Empty(t, artifacts)
	})
}

func TestContextWriteAll(t *testing.T) {
	t.Run("writes every artifact under the target", func(t *testing.T) {
		target := t.TempDir()
		gc := NewContext()
		require.NoError(t, gc.Add(modalityGenerator(t), ""))

		require.NoError(t, gc.WriteAll(context.Background(), target))

		raw, err := os.ReadFile(filepath.Join(target, "modality", "modality.go"))
		require.NoError(t, err)
		assert.Contains(t, string(raw), "package modality")
	})

	t.Run("honors an explicit output path", func(t *testing.T) {
		target := t.TempDir()
		gc := NewContext()
		require.NoError(t, gc.Add(modalityGenerator(t), "models/modality.go"))

		require.NoError(t, gc.WriteAll(context.Background(), target))

		_, err := os.Stat(filepath.Join(target, "models", "modality.go"))
		assert.NoError(t, err)
	})

	t.Run("one failure still writes the others", func(t *testing.T) {
		target := t.TempDir()
		gc := NewContext()
		require.NoError(t, gc.Add(failingGenerator(t), ""))
		require.NoError(t, gc.Add(modalityGenerator(t), ""))

		err := gc.WriteAll(context.Background(), target)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrGenerateFailed))

		_, statErr := os.Stat(filepath.Join(target, "modality", "modality.go"))
		assert.NoError(t, statErr)
		_, statErr = os.Stat(filepath.Join(target, "platform", "platform.go"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("is one-shot", func(t *testing.T) {
		target := t.TempDir()
		gc := NewContext()
		require.NoError(t, gc.Add(modalityGenerator(t), ""))

		require.NoError(t, gc.WriteAll(context.Background(), target))
		assert.True(t, errors.Is(gc.WriteAll(context.Background(), target), ErrContextDone))
		assert.True(t, errors.Is(gc.Add(modalityGenerator(t), ""), ErrContextDone))
	})
}

func TestContextRegistration(t *testing.T) {
	t.Run("remove drops a generator", func(t *testing.T) {
		gc := NewContext()
		keep := modalityGenerator(t)
		drop := failingGenerator(t)
		require.NoError(t, gc.Add(keep, ""))
		require.NoError(t, gc.Add(drop, ""))

		gc.Remove(drop)
		gens := gc.Generators()
		require.Len(t, gens, 1)
		assert.Same(t, keep, gens[0])
	})

	t.Run("close ends the context", func(t *testing.T) {
		gc := NewContext()
		require.NoError(t, gc.Add(modalityGenerator(t), ""))

		gc.Close()
		assert.Empty(t, gc.Generators())
		assert.True(t, errors.Is(gc.Add(modalityGenerator(t), ""), ErrContextDone))
		assert.True(t, errors.Is(gc.WriteAll(context.Background(), t.TempDir()), ErrContextDone))
	})
}
