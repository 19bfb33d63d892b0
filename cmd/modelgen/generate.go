package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/load"
)

var (
	manifestPath string
	rootDir      string
	targetDir    string
	cacheDir     string
	cacheTTL     time.Duration
	workers      int
	watch        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate model packages from a manifest",
	Long: `Generate reads a YAML manifest describing record sources and the
shape of each model container, then writes one Go package per container
under the target directory.

Examples:
  modelgen generate                          # ./modelgen.yaml into .
  modelgen generate --target ./models
  modelgen generate --watch                  # regenerate on source changes`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "modelgen.yaml", "manifest file")
	generateCmd.Flags().StringVar(&rootDir, "root", ".", "directory CSV source paths are resolved against")
	generateCmd.Flags().StringVarP(&targetDir, "target", "t", ".", "directory generated packages are written under")
	generateCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "cache remote sources on disk under this directory")
	generateCmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 24*time.Hour, "remote cache entry lifetime")
	generateCmd.Flags().IntVar(&workers, "workers", 0, "artifact write parallelism (default GOMAXPROCS)")
	generateCmd.Flags().BoolVarP(&watch, "watch", "w", false, "watch the manifest and CSV sources and regenerate on change")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := generateOnce(cmd.Context(), log); err != nil {
		if !watch {
			return err
		}
		log.Error("generation failed", zap.Error(err))
	}
	if !watch {
		return nil
	}
	return watchAndRegenerate(cmd.Context(), log)
}

// generateOnce runs one full generation pass. Contexts are one-shot, so each
// pass builds a fresh one.
func generateOnce(ctx context.Context, log *zap.Logger) error {
	manifest, err := load.ReadManifest(manifestPath)
	if err != nil {
		return err
	}

	var cache modelgen.Cache
	if cacheDir != "" {
		cache = load.NewDiskCache(cacheDir)
	}

	opts := []gen.ContextOption{gen.WithLogger(log)}
	if workers > 0 {
		opts = append(opts, gen.WithWorkers(workers))
	}
	gc := gen.NewContext(opts...)
	defer gc.Close()

	for _, spec := range manifest.Generators {
		g, err := buildGenerator(spec, cache)
		if err != nil {
			return fmt.Errorf("generator %q: %w", spec.Name, err)
		}
		if err := gc.Add(g, spec.Output); err != nil {
			return err
		}
	}
	return gc.WriteAll(ctx, targetDir)
}

// buildGenerator wires one manifest entry into a configured generator.
func buildGenerator(spec load.GeneratorSpec, cache modelgen.Cache) (*gen.Generator, error) {
	fields := make([]gen.DescriptorField, 0, len(spec.Fields))
	for _, f := range spec.Fields {
		kind, err := gen.ParseKind(f.Kind)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		field := gen.DescriptorField{Name: f.Name, Kind: kind}
		if f.Ref != nil {
			field.Ref = &gen.ForwardRef{PkgPath: f.Ref.Package, Type: f.Ref.Type}
		}
		fields = append(fields, field)
	}
	desc, err := gen.NewDescriptor(fields...)
	if err != nil {
		return nil, err
	}

	source, sourceID := buildReader(spec.Source, cache)

	var opts []gen.Option
	if spec.Discriminator != "" {
		opts = append(opts, gen.WithDiscriminator(spec.Discriminator))
	}
	if len(spec.Hints) > 0 {
		opts = append(opts, gen.WithNameHints(spec.Hints...))
	}
	if spec.Lookup != nil {
		opts = append(opts, gen.WithLookup(*spec.Lookup))
	}
	if spec.Lenient {
		opts = append(opts, gen.WithLenientFields())
	}
	if spec.Package != "" {
		opts = append(opts, gen.WithPackage(spec.Package))
	}
	if spec.Preamble != "" {
		opts = append(opts, gen.WithPreamble(spec.Preamble))
	}
	if len(spec.Resolvers) > 0 {
		resolvers, err := buildResolvers(spec.Resolvers)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gen.WithResolvers(resolvers...))
	}
	return gen.NewGenerator(spec.Name, desc, source, sourceID, opts...)
}

// buildReader constructs the record reader for a source spec, returning it
// with the provenance identifier stamped into generated headers.
func buildReader(src load.SourceSpec, cache modelgen.Cache) (load.Reader, string) {
	if src.CSV != "" {
		var opts []load.CSVOption
		if len(src.FieldNames) > 0 {
			opts = append(opts, load.WithFieldNames(src.FieldNames...))
		}
		return load.NewCSVReader(filepath.Join(rootDir, src.CSV), opts...), src.CSV
	}
	normalizer := load.ListNormalizer()
	if src.Section != "" || src.KeyField != "" {
		normalizer = load.KeyedNormalizer(src.Section, src.KeyField)
	}
	opts := []load.RemoteOption{load.WithNormalizer(normalizer)}
	if cache != nil {
		opts = append(opts, load.WithCache(cache, cacheTTL))
	}
	return load.NewRemoteReader(src.URL, opts...), src.URL
}

func buildResolvers(specs []load.ResolverSpec) ([]*gen.ReferenceResolver, error) {
	resolvers := make([]*gen.ReferenceResolver, 0, len(specs))
	for _, s := range specs {
		r := &gen.ReferenceResolver{
			Target:  s.Target,
			Keys:    s.Keys,
			Pattern: s.Pattern,
		}
		if s.Ref != nil {
			r.Ref = &gen.ForwardRef{PkgPath: s.Ref.Package, Type: s.Ref.Type}
		}
		if len(s.Transforms) > 0 {
			r.Transforms = make(map[string]gen.Transform, len(s.Transforms))
			for key, name := range s.Transforms {
				t, err := gen.ParseTransform(name)
				if err != nil {
					return nil, fmt.Errorf("resolver %q: %w", s.Target, err)
				}
				r.Transforms[key] = t
			}
		}
		resolvers = append(resolvers, r)
	}
	return resolvers, nil
}

// watchAndRegenerate blocks watching the manifest and every CSV source,
// rerunning the full pipeline on each change. The watch set is rebuilt after
// every run so manifest edits that add sources are picked up.
func watchAndRegenerate(ctx context.Context, log *zap.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := resetWatchSet(watcher); err != nil {
		return err
	}
	log.Info("watching for changes", zap.String("manifest", manifestPath))

	// Editors fire bursts of events per save; coalesce them.
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("source changed", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			pending = time.After(250 * time.Millisecond)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-pending:
			pending = nil
			if err := generateOnce(ctx, log); err != nil {
				log.Error("generation failed", zap.Error(err))
			} else {
				log.Info("regenerated", zap.String("target", targetDir))
			}
			if err := resetWatchSet(watcher); err != nil {
				log.Warn("rebuilding watch set failed", zap.Error(err))
			}
		}
	}
}

// resetWatchSet points the watcher at the manifest's directory and the
// directory of every CSV source. Directories are watched rather than files so
// atomic-rename saves keep firing events.
func resetWatchSet(watcher *fsnotify.Watcher) error {
	for _, path := range watcher.WatchList() {
		_ = watcher.Remove(path)
	}
	dirs := map[string]bool{filepath.Dir(manifestPath): true}
	if manifest, err := load.ReadManifest(manifestPath); err == nil {
		for _, spec := range manifest.Generators {
			if spec.Source.CSV != "" {
				dirs[filepath.Dir(filepath.Join(rootDir, spec.Source.CSV))] = true
			}
		}
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}
	return nil
}
