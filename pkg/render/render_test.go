package render

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/goccy/go-graphviz"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/orgdot/pkg/errors"
)

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"empty", &Error{}, "Render failed: unknown error"},
		{
			"single with line",
			&Error{Diagnostics: []Diagnostic{{Level: LevelError, Message: "syntax error", Line: 3}}},
			"Render failed at line 3: syntax error",
		},
		{
			"single without line",
			&Error{Diagnostics: []Diagnostic{{Level: LevelError, Message: "out of memory"}}},
			"Render failed: out of memory",
		},
		{
			"multiple",
			&Error{Diagnostics: []Diagnostic{
				{Level: LevelError, Message: "syntax error", Line: 7},
				{Level: LevelWarning, Message: "unknown shape"},
				{Level: LevelInfo, Message: "fallback font"},
			}},
			"Render failed with 3 error(s):\n" +
				"  1. [ERROR] Line 7: syntax error\n" +
				"  2. [WARNING] unknown shape\n" +
				"  3. [INFO] fallback font",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseDiagnostics(t *testing.T) {
	got := parseDiagnostics("Error: syntax error in line 12 near '->'\n\nWarning: node x, port y unrecognized\n")
	want := []Diagnostic{
		{Level: LevelError, Message: "syntax error in line 12 near '->'", Line: 12},
		{Level: LevelWarning, Message: "node x, port y unrecognized"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseDiagnostics() mismatch (-want +got):\n%s", diff)
	}
}

func TestAsError(t *testing.T) {
	wrapped := errors.Wrap(errors.ErrCodeRenderFailed, &Error{}, "render")
	if _, ok := AsError(wrapped); !ok {
		t.Error("AsError() did not find wrapped *Error")
	}
	if _, ok := AsError(stderrors.New("plain")); ok {
		t.Error("AsError() matched a plain error")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"svg", SVG},
		{"PNG", PNG},
		{"jpeg", JPG},
		{"jpg", JPG},
	}
	for _, tt := range tests {
		if got, err := ParseFormat(tt.in); err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseFormat("pdf"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(pdf) error = %v", err)
	}
	if SVG.ContentType() != "image/svg+xml" {
		t.Errorf("SVG.ContentType() = %q", SVG.ContentType())
	}
}

func TestStaticAndFunc(t *testing.T) {
	s := &Static{Output: []byte("<svg/>")}
	var r Renderer = s
	out, err := r.Render(context.Background(), "digraph {}", SVG)
	if err != nil || string(out) != "<svg/>" {
		t.Errorf("Static.Render() = %q, %v", out, err)
	}
	if s.Calls() != 1 {
		t.Errorf("Calls() = %d, want 1", s.Calls())
	}

	boom := stderrors.New("boom")
	r = Func(func(context.Context, string, Format) ([]byte, error) { return nil, boom })
	if _, err := r.Render(context.Background(), "", PNG); err != boom {
		t.Errorf("Func.Render() error = %v, want boom", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if plain := []byte("<svg></svg>"); !bytes.Equal(normalizeViewBox(plain), plain) {
		t.Error("normalizeViewBox() changed svg without viewBox")
	}
}

func requireGraphviz(t *testing.T) {
	t.Helper()
	gv, err := graphviz.New(context.Background())
	if err != nil {
		t.Skipf("graphviz unavailable: %v", err)
	}
	gv.Close()
}

func TestGraphvizRender(t *testing.T) {
	requireGraphviz(t)

	r := NewGraphviz()
	svg, err := r.Render(context.Background(), "digraph organization {\n  \"P1\" -> \"X1\";\n}\n", SVG)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "P1") {
		t.Errorf("Render() output is not the expected SVG:\n%s", svg)
	}

	_, err = r.Render(context.Background(), "digraph {\n  a -> ;\n}\n", SVG)
	re, ok := AsError(err)
	if !ok {
		t.Fatalf("Render(invalid) error = %v, want *Error", err)
	}
	if len(re.Diagnostics) == 0 {
		t.Error("Render(invalid) returned no diagnostics")
	}

	if _, err := r.Render(context.Background(), "digraph {}", Format("pdf")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Render(pdf) error = %v", err)
	}
}
