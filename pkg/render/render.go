package render

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/matzehuels/orgdot/pkg/errors"
)

// Format is an output image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
	JPG Format = "jpg"
)

// Formats lists the supported output formats.
var Formats = []Format{SVG, PNG, JPG}

// ParseFormat accepts a format name, case-insensitively. "jpeg" is an alias
// for jpg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "svg":
		return SVG, nil
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPG, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q (want svg, png or jpg)", s)
}

// ContentType is the MIME type of images in format f.
func (f Format) ContentType() string {
	switch f {
	case SVG:
		return "image/svg+xml"
	case PNG:
		return "image/png"
	case JPG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// Renderer turns DOT source into an image.
type Renderer interface {
	Render(ctx context.Context, dot string, format Format) ([]byte, error)
}

// Func adapts an ordinary function to [Renderer].
type Func func(ctx context.Context, dot string, format Format) ([]byte, error)

func (f Func) Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	return f(ctx, dot, format)
}

// Static is a [Renderer] that returns Output, or Err when set, and counts
// how often it was called. It is meant for tests.
type Static struct {
	Output []byte
	Err    error
	calls  atomic.Int64
}

func (s *Static) Render(ctx context.Context, _ string, _ Format) ([]byte, error) {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]byte(nil), s.Output...), nil
}

// Calls reports the number of Render calls so far.
func (s *Static) Calls() int { return int(s.calls.Load()) }
