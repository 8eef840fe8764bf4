// Package pipeline provides the compile → render → publish pipeline for
// orgdot.
//
// The CLI and the HTTP server both drive organizations through a [Runner],
// so caching, logging and hooks behave the same at every entry point.
//
// # Stages
//
//  1. Compile: organization + config → DOT source and a [dot.Summary]
//  2. Render: DOT → images, cached in the store by DOT hash and format
//  3. Publish: DOT source saved under a document name
//
// The DOT emitter never fails on a well-formed organization, so Compile only
// reports configuration errors unless [Options.Strict] asks for validation.
//
// # Usage
//
//	runner := pipeline.NewRunner(store, nil, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Organization: o,
//	    Formats:      []render.Format{render.SVG},
//	    Publish:      "acme.dot",
//	})
//	if err != nil {
//	    return err
//	}
//	svg := res.Artifacts[render.SVG]
package pipeline

import (
	"time"

	"github.com/matzehuels/orgdot/pkg/dot"
	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/org"
	"github.com/matzehuels/orgdot/pkg/render"
)

// DefaultRenderTimeout bounds a single Render call when the caller's context
// has no deadline.
const DefaultRenderTimeout = 30 * time.Second

// Options configures one [Runner.Execute] call.
type Options struct {
	Organization *org.Organization

	// Config is the DOT configuration. Nil means dot.DefaultConfig().
	Config *dot.Config

	// Layout forces a layout strategy, overriding the config flags.
	Layout *dot.Layout

	// Strict rejects organizations that fail org.Validate.
	Strict bool

	// Formats to render. Empty skips rendering.
	Formats []render.Format

	// Refresh ignores cached artifacts and re-renders.
	Refresh bool

	// Publish stores the DOT source under this document name when set.
	Publish string
}

// config resolves the effective DOT configuration.
func (o Options) config() dot.Config {
	cfg := dot.DefaultConfig()
	if o.Config != nil {
		cfg = *o.Config
	}
	if o.Layout != nil {
		cfg = cfg.WithLayout(*o.Layout)
	}
	return cfg
}

// Validate checks options before any stage runs.
func (o Options) Validate() error {
	if o.Organization == nil {
		return errors.New(errors.ErrCodeInvalidInput, "organization is required")
	}
	if err := o.config().Validate(); err != nil {
		return err
	}
	for _, f := range o.Formats {
		if _, err := render.ParseFormat(string(f)); err != nil {
			return err
		}
	}
	if o.Publish != "" {
		if err := errors.ValidateKey(o.Publish); err != nil {
			return err
		}
	}
	return nil
}

// Compiled is the output of the compile stage.
type Compiled struct {
	DOT     string
	Hash    string // SHA-256 of DOT, used for artifact keys
	Summary dot.Summary
}

// Result contains all outputs from pipeline execution.
type Result struct {
	DOT       string
	Hash      string
	Summary   dot.Summary
	Artifacts map[render.Format][]byte

	// DocumentKey is the store key of the published source, if any.
	DocumentKey string

	Stats Stats

	// CacheHit is true when every requested artifact came from the store.
	CacheHit bool
}

// Stats contains timing information for each stage.
type Stats struct {
	CompileTime time.Duration
	RenderTime  time.Duration
	PublishTime time.Duration
}
