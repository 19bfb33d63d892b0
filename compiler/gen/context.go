package gen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Artifact is one generated output: the emitted, validated, and formatted
// text together with its provenance.
type Artifact struct {
	Name   string // container name
	Path   string // output path relative to the target directory
	Source string // provenance identifier
	Code   []byte
}

// entry pairs a generator with its output path.
type entry struct {
	gen    *Generator
	output string
}

// Context orchestrates one generation run. It is an explicit object with an
// ordinary lifecycle — construct, register, generate or write once, then
// Close — so two independent runs never share registration state. A Context
// must not be reused after WriteAll or Close.
type Context struct {
	mu         sync.Mutex
	entries    []entry
	validators []Validator
	formatters []Formatter
	workers    int
	written    bool
	closed     bool
	runID      string
	log        *zap.Logger
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithValidators replaces the validator chain. The default chain holds a
// SyntaxValidator.
func WithValidators(validators ...Validator) ContextOption {
	return func(c *Context) {
		c.validators = validators
	}
}

// WithFormatters replaces the formatter chain. The default chain holds a
// StyleFormatter followed by an ImportsFormatter.
func WithFormatters(formatters ...Formatter) ContextOption {
	return func(c *Context) {
		c.formatters = formatters
	}
}

// WithWorkers bounds artifact parallelism in WriteAll.
func WithWorkers(n int) ContextOption {
	return func(c *Context) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the run logger. The default discards.
func WithLogger(log *zap.Logger) ContextOption {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// NewContext creates an empty generation context.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{
		validators: []Validator{SyntaxValidator{}},
		formatters: []Formatter{StyleFormatter{}, ImportsFormatter{}},
		workers:    runtime.GOMAXPROCS(0),
		runID:      uuid.NewString(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add registers a generator. output is the artifact path relative to the
// target directory; empty means the generator's default. Registration order
// is output enumeration order.
func (c *Context) Add(g *Generator, output string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.written || c.closed {
		return ErrContextDone
	}
	if output == "" {
		output = g.DefaultOutput()
	}
	c.entries = append(c.entries, entry{gen: g, output: output})
	return nil
}

// Remove unregisters a generator.
func (c *Context) Remove(g *Generator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.gen != g {
			kept = append(kept, e)
		}
	}
	c.entries = kept
}

// Generators returns the registered generators in registration order.
func (c *Context) Generators() []*Generator {
	c.mu.Lock()
	defer c.mu.Unlock()
	gens := make([]*Generator, len(c.entries))
	for i, e := range c.entries {
		gens[i] = e.gen
	}
	return gens
}

// GenerateAll runs the full pipeline for every generator without touching
// the filesystem and returns the artifacts in registration order. Every
// generator is attempted; failures are joined and each carries the
// generator's name.
func (c *Context) GenerateAll(ctx context.Context) ([]Artifact, error) {
	c.mu.Lock()
	entries := make([]entry, len(c.entries))
	copy(entries, c.entries)
	c.mu.Unlock()

	var artifacts []Artifact
	var errs []error
	for _, e := range entries {
		artifact, err := c.build(ctx, e)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, errors.Join(errs...)
}

// WriteAll generates every artifact and writes it under dir, creating
// directories as needed. Artifacts are independent and written in parallel;
// one failure never skips the rest, and all failures are reported joined.
// WriteAll is one-shot: a second call returns ErrContextDone.
func (c *Context) WriteAll(ctx context.Context, dir string) error {
	c.mu.Lock()
	if c.written || c.closed {
		c.mu.Unlock()
		return ErrContextDone
	}
	c.written = true
	entries := make([]entry, len(c.entries))
	copy(entries, c.entries)
	c.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	log := c.log.With(zap.String("run_id", c.runID), zap.String("target", dir))

	var emu sync.Mutex
	var errs []error
	record := func(err error) {
		emu.Lock()
		errs = append(errs, err)
		emu.Unlock()
	}

	eg := &errgroup.Group{}
	eg.SetLimit(c.workers)
	for _, e := range entries {
		e := e
		eg.Go(func() error {
			artifact, err := c.build(ctx, e)
			if err != nil {
				log.Error("artifact failed", zap.String("generator", e.gen.Name()), zap.Error(err))
				record(err)
				return nil
			}
			path := filepath.Join(dir, filepath.FromSlash(artifact.Path))
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				record(NewGenerateError(e.gen.Name(), artifact.Path, err))
				return nil
			}
			if err := os.WriteFile(path, artifact.Code, 0o644); err != nil {
				record(NewGenerateError(e.gen.Name(), artifact.Path, err))
				return nil
			}
			log.Info("artifact written",
				zap.String("generator", e.gen.Name()),
				zap.String("path", artifact.Path),
				zap.Int("bytes", len(artifact.Code)))
			return nil
		})
	}
	_ = eg.Wait()
	return errors.Join(errs...)
}

// Close discards the registration state. The context cannot be reused.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.closed = true
}

// build runs one generator through emission, validation, and formatting.
func (c *Context) build(ctx context.Context, e entry) (Artifact, error) {
	code, err := e.gen.Generate(ctx)
	if err != nil {
		return Artifact{}, NewGenerateError(e.gen.Name(), e.output, err)
	}
	for _, v := range c.validators {
		if err := v.Validate(e.output, code); err != nil {
			return Artifact{}, NewGenerateError(e.gen.Name(), e.output, err)
		}
	}
	for _, f := range c.formatters {
		code, err = f.Format(e.output, code)
		if err != nil {
			return Artifact{}, NewGenerateError(e.gen.Name(), e.output, err)
		}
	}
	return Artifact{
		Name:   e.gen.Name(),
		Path:   e.output,
		Source: e.gen.sourceID,
		Code:   code,
	}, nil
}
