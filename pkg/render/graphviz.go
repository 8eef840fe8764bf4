package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/orgdot/pkg/errors"
)

// Graphviz renders DOT with the embedded Graphviz engine.
type Graphviz struct {
	// Layout is the Graphviz layout engine, "dot" when empty.
	Layout graphviz.Layout
}

// NewGraphviz returns a renderer using the dot layout engine.
func NewGraphviz() *Graphviz {
	return &Graphviz{Layout: graphviz.DOT}
}

var gvFormats = map[Format]graphviz.Format{
	SVG: graphviz.SVG,
	PNG: graphviz.PNG,
	JPG: graphviz.JPG,
}

// Render parses dot and renders it in format. Syntax errors are returned as
// [*Error]; engine start-up failures as RENDER_FAILED errors.
func (r *Graphviz) Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	gvFormat, ok := gvFormats[format]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported image format %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()
	if r.Layout != "" {
		gv.SetLayout(r.Layout)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, &Error{Diagnostics: parseDiagnostics(fmt.Sprintf("parse DOT: %v", err))}
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctxErr, "render %s", format)
		}
		return nil, &Error{Diagnostics: parseDiagnostics(err.Error())}
	}
	if format == SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the root svg tag with one whose viewBox starts
// at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
