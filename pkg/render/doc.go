// Package render turns DOT source into images.
//
// # Overview
//
// Rendering is an external concern to orgdot: the DOT compiler produces
// text and a [Renderer] turns it into SVG, PNG or JPEG. Callers depend on
// the interface only, so tests and alternative engines can stand in for
// Graphviz:
//
//	var r render.Renderer = render.NewGraphviz()
//	svg, err := r.Render(ctx, src, render.SVG)
//
// # Graphviz
//
// [Graphviz] wraps github.com/goccy/go-graphviz, which runs the Graphviz
// engine in-process. A fresh engine instance is created per call, so a
// single Graphviz value is safe for concurrent use. SVG output has its
// viewBox normalized so the image scales to its container.
//
// # Errors
//
// An engine failure is returned as an [*Error] carrying one [Diagnostic]
// per reported problem, with the source line when the engine names one:
//
//	Render failed at line 3: syntax error near 'x'
//
// The error is meant for display. Callers should not retry it.
//
// # Test doubles
//
// [Func] adapts a function to the interface and [Static] returns fixed
// output while counting calls.
package render
