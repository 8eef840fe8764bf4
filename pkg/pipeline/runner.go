package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/orgdot/pkg/dot"
	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/observability"
	"github.com/matzehuels/orgdot/pkg/org"
	"github.com/matzehuels/orgdot/pkg/render"
	"github.com/matzehuels/orgdot/pkg/storage"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner holds no per-request state, so multiple goroutines can share
// one Runner with different options.
type Runner struct {
	Store    storage.Store
	Renderer render.Renderer
	Keyer    storage.Keyer
	Logger   *log.Logger
}

// NewRunner creates a runner. Nil arguments fall back to an in-memory store,
// the Graphviz renderer, the default keyer and log.Default().
func NewRunner(st storage.Store, r render.Renderer, keyer storage.Keyer, logger *log.Logger) *Runner {
	if st == nil {
		st = storage.NewMemory()
	}
	if r == nil {
		r = render.NewGraphviz()
	}
	if keyer == nil {
		keyer = storage.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Store: st, Renderer: r, Keyer: keyer, Logger: logger}
}

// Execute runs compile, then render if formats were requested, then
// publish if a document name was given.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.Strict {
		if err := org.Validate(opts.Organization).Err(); err != nil {
			return nil, err
		}
	}

	compileStart := time.Now()
	c, err := r.Compile(ctx, opts.Organization, opts.config())
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	result := &Result{DOT: c.DOT, Hash: c.Hash, Summary: c.Summary}
	result.Stats.CompileTime = time.Since(compileStart)

	if len(opts.Formats) > 0 {
		renderStart := time.Now()
		var artifacts map[render.Format][]byte
		var hit bool
		if opts.Refresh {
			artifacts, err = r.renderFormats(ctx, c.DOT, c.Hash, opts.Formats)
		} else {
			artifacts, hit, err = r.Render(ctx, c.DOT, opts.Formats)
		}
		if err != nil {
			return nil, err
		}
		result.Artifacts = artifacts
		result.CacheHit = hit
		result.Stats.RenderTime = time.Since(renderStart)
	}

	if opts.Publish != "" {
		publishStart := time.Now()
		key, err := r.Publish(ctx, opts.Publish, c.DOT)
		if err != nil {
			return nil, err
		}
		result.DocumentKey = key
		result.Stats.PublishTime = time.Since(publishStart)
	}

	return result, nil
}

// Compile generates DOT for o. Only the configuration is validated; any
// organization produces output.
func (r *Runner) Compile(ctx context.Context, o *org.Organization, cfg dot.Config) (*Compiled, error) {
	if o == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "organization is required")
	}
	layout := cfg.Layout().String()
	observability.Compile().OnCompileStart(ctx, o.Name, layout)
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		observability.Compile().OnCompileComplete(ctx, o.Name, layout, 0, time.Since(start), err)
		return nil, err
	}

	var sb strings.Builder
	sum, err := dot.Emit(&sb, o, cfg)
	duration := time.Since(start)
	observability.Compile().OnCompileComplete(ctx, o.Name, layout, sum.Nodes, duration, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "emit DOT")
	}

	src := sb.String()
	r.Logger.Info("compiled organization",
		"name", o.Name,
		"layout", layout,
		"nodes", sum.Nodes,
		"edges", sum.Edges,
		"duration", duration)

	return &Compiled{DOT: src, Hash: storage.Hash([]byte(src)), Summary: sum}, nil
}

// Render returns an image of dot for each format. Artifacts are looked up
// in the store first; hit is true only when every format was cached.
// Freshly rendered artifacts are written back; a failed write is logged
// and does not fail the render.
func (r *Runner) Render(ctx context.Context, src string, formats []render.Format) (map[render.Format][]byte, bool, error) {
	hash := storage.Hash([]byte(src))
	artifacts := make(map[render.Format][]byte, len(formats))
	var missing []render.Format

	for _, f := range formats {
		key := r.Keyer.ArtifactKey(hash, string(f))
		data, err := r.Store.Load(ctx, key)
		hit := err == nil
		if err != nil && storage.IsNotFound(err) {
			err = nil
		}
		observability.Storage().OnLoad(ctx, "artifact", hit, err)
		if err != nil {
			r.Logger.Warn("artifact cache read failed", "key", key, "error", err)
		}
		if hit {
			artifacts[f] = data
			continue
		}
		missing = append(missing, f)
	}

	if len(missing) == 0 {
		r.Logger.Debug("artifacts from cache", "formats", formats)
		return artifacts, true, nil
	}

	rendered, err := r.renderFormats(ctx, src, hash, missing)
	if err != nil {
		return nil, false, err
	}
	for f, data := range rendered {
		artifacts[f] = data
	}
	return artifacts, false, nil
}

// renderFormats renders every format concurrently and caches the results.
func (r *Runner) renderFormats(ctx context.Context, src, hash string, formats []render.Format) (map[render.Format][]byte, error) {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	observability.Render().OnRenderStart(ctx, names)
	start := time.Now()

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	var (
		mu  sync.Mutex
		out = make(map[render.Format][]byte, len(formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, f := range formats {
		g.Go(func() error {
			data, err := r.Renderer.Render(gctx, src, f)
			if err != nil {
				return err
			}
			mu.Lock()
			out[f] = data
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	size := 0
	for _, data := range out {
		size += len(data)
	}
	duration := time.Since(start)
	observability.Render().OnRenderComplete(ctx, names, size, duration, err)
	if err != nil {
		return nil, err
	}

	for f, data := range out {
		key := r.Keyer.ArtifactKey(hash, string(f))
		err := r.Store.Save(ctx, key, data)
		observability.Storage().OnSave(ctx, "artifact", len(data), err)
		if err != nil {
			r.Logger.Warn("artifact cache write failed", "key", key, "error", err)
		}
	}

	r.Logger.Info("rendered",
		"formats", names,
		"bytes", size,
		"duration", duration)
	return out, nil
}

// Publish saves DOT source under name and returns the store key.
func (r *Runner) Publish(ctx context.Context, name, src string) (string, error) {
	key := r.Keyer.DocumentKey(name)
	err := r.Store.Save(ctx, key, []byte(src))
	observability.Storage().OnSave(ctx, "document", len(src), err)
	if err != nil {
		return "", storageErr(err, "publish %s", name)
	}
	r.Logger.Debug("published", "key", key, "bytes", len(src))
	return key, nil
}

// Fetch loads a published document. A missing name is DOCUMENT_NOT_FOUND.
func (r *Runner) Fetch(ctx context.Context, name string) (string, error) {
	key := r.Keyer.DocumentKey(name)
	data, err := r.Store.Load(ctx, key)
	hit := err == nil
	if storage.IsNotFound(err) {
		observability.Storage().OnLoad(ctx, "document", false, nil)
		return "", errors.Wrap(errors.ErrCodeDocumentNotFound, err, "document %q not found", name)
	}
	observability.Storage().OnLoad(ctx, "document", hit, err)
	if err != nil {
		return "", storageErr(err, "fetch %s", name)
	}
	return string(data), nil
}

// Remove deletes a published document. Removing a missing name succeeds.
func (r *Runner) Remove(ctx context.Context, name string) error {
	err := r.Store.Delete(ctx, r.Keyer.DocumentKey(name))
	observability.Storage().OnDelete(ctx, "document", err)
	if err != nil {
		return storageErr(err, "remove %s", name)
	}
	return nil
}

// Has reports whether a document is published under name.
func (r *Runner) Has(ctx context.Context, name string) (bool, error) {
	ok, err := r.Store.Exists(ctx, r.Keyer.DocumentKey(name))
	if err != nil {
		return false, storageErr(err, "exists %s", name)
	}
	return ok, nil
}

// Close releases resources held by the runner (primarily the store).
func (r *Runner) Close() error {
	if r.Store != nil {
		return r.Store.Close()
	}
	return nil
}

// storageErr keeps coded errors (such as INVALID_KEY) and marks the rest
// as STORAGE_ERROR.
func storageErr(err error, format string, args ...any) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeStorage, err, format, args...)
}

func withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, DefaultRenderTimeout)
}
