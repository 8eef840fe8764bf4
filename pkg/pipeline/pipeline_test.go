package pipeline

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/orgdot/pkg/dot"
	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/observability"
	"github.com/matzehuels/orgdot/pkg/org"
	"github.com/matzehuels/orgdot/pkg/render"
	"github.com/matzehuels/orgdot/pkg/storage"
)

func testOrg() *org.Organization {
	o := org.New("Acme")
	o.AddPerson(org.Person{ID: "P1", Name: "Alice"})
	o.AddProject(org.Project{ID: "X1", Name: "Project X", Status: org.ProjectActive})
	o.AddRelationship(org.Rel(org.EntityPerson, "P1", org.WorksOn, org.EntityProject, "X1"))
	return o
}

func testRunner(r render.Renderer) (*Runner, *storage.Memory) {
	st := storage.NewMemory()
	return NewRunner(st, r, nil, log.New(io.Discard)), st
}

func TestOptionsValidate(t *testing.T) {
	bad := dot.DefaultConfig()
	bad.Rankdir = "XY"

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"ok", Options{Organization: testOrg()}, ""},
		{"no organization", Options{}, errors.ErrCodeInvalidInput},
		{"bad rankdir", Options{Organization: testOrg(), Config: &bad}, errors.ErrCodeInvalidConfig},
		{"bad format", Options{Organization: testOrg(), Formats: []render.Format{"pdf"}}, errors.ErrCodeInvalidFormat},
		{"bad publish key", Options{Organization: testOrg(), Publish: "../x"}, errors.ErrCodeInvalidKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.code, err)
			}
		})
	}
}

func TestCompile(t *testing.T) {
	ctx := context.Background()
	r, _ := testRunner(&render.Static{})
	cfg := dot.DefaultConfig().WithLayout(dot.LayoutFlat)

	c, err := r.Compile(ctx, testOrg(), cfg)
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}
	if c.DOT != dot.Generate(testOrg(), cfg) {
		t.Error("Compile DOT should equal dot.Generate output")
	}
	if c.Hash != storage.Hash([]byte(c.DOT)) {
		t.Error("Compile hash should be the SHA-256 of the DOT source")
	}
	want := dot.Summary{Layout: dot.LayoutFlat, Nodes: 2, Edges: 1}
	if diff := cmp.Diff(want, c.Summary); diff != "" {
		t.Errorf("Summary mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileRejectsBadConfig(t *testing.T) {
	r, _ := testRunner(&render.Static{})
	cfg := dot.DefaultConfig()
	cfg.Rankdir = "sideways"
	if _, err := r.Compile(context.Background(), testOrg(), cfg); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Compile error = %v, want INVALID_CONFIG", err)
	}
}

func TestCompileDanglingEndpoint(t *testing.T) {
	o := testOrg()
	o.AddRelationship(org.Rel(org.EntityPerson, "P1", org.WorksOn, org.EntityProject, "X9"))

	r, _ := testRunner(&render.Static{})
	c, err := r.Compile(context.Background(), o, dot.DefaultConfig())
	if err != nil {
		t.Fatalf("non-strict compile should succeed: %v", err)
	}
	if !strings.Contains(c.DOT, `"P1" -> "X9"`) {
		t.Error("dangling relationship should still be emitted")
	}

	_, err = r.Execute(context.Background(), Options{Organization: o, Strict: true})
	if !errors.Is(err, errors.ErrCodeInvalidOrganization) {
		t.Errorf("strict execute error = %v, want INVALID_ORGANIZATION", err)
	}
}

func TestRenderCaches(t *testing.T) {
	ctx := context.Background()
	static := &render.Static{Output: []byte("<svg/>")}
	r, st := testRunner(static)
	src := dot.Generate(testOrg(), dot.DefaultConfig())

	out, hit, err := r.Render(ctx, src, []render.Format{render.SVG, render.PNG})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if hit {
		t.Error("first render should miss")
	}
	if string(out[render.SVG]) != "<svg/>" || len(out) != 2 {
		t.Errorf("artifacts = %v", out)
	}
	if static.Calls() != 2 {
		t.Errorf("renderer calls = %d, want 2", static.Calls())
	}
	if st.Len() != 2 {
		t.Errorf("store keys = %d, want 2", st.Len())
	}

	_, hit, err = r.Render(ctx, src, []render.Format{render.SVG, render.PNG})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !hit {
		t.Error("second render should hit the cache")
	}
	if static.Calls() != 2 {
		t.Errorf("cached render should not call the renderer, calls = %d", static.Calls())
	}

	// A new format renders only that format.
	_, hit, _ = r.Render(ctx, src, []render.Format{render.SVG, render.JPG})
	if hit {
		t.Error("partially cached render should not report a hit")
	}
	if static.Calls() != 3 {
		t.Errorf("renderer calls = %d, want 3", static.Calls())
	}
}

func TestRenderError(t *testing.T) {
	failure := &render.Error{Diagnostics: []render.Diagnostic{{Level: render.LevelError, Message: "syntax error", Line: 3}}}
	r, st := testRunner(&render.Static{Err: failure})

	_, _, err := r.Render(context.Background(), "digraph {", []render.Format{render.SVG})
	rerr, ok := render.AsError(err)
	if !ok {
		t.Fatalf("expected *render.Error, got %v", err)
	}
	if rerr.Error() != "Render failed at line 3: syntax error" {
		t.Errorf("Error() = %q", rerr.Error())
	}
	if st.Len() != 0 {
		t.Error("failed renders should not be cached")
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	r, _ := testRunner(&render.Static{Output: []byte("IMG")})
	layout := dot.LayoutClustered

	res, err := r.Execute(ctx, Options{
		Organization: testOrg(),
		Layout:       &layout,
		Formats:      []render.Format{render.PNG},
		Publish:      "acme.dot",
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.Summary.Layout != dot.LayoutClustered {
		t.Errorf("layout = %v, want clustered", res.Summary.Layout)
	}
	if string(res.Artifacts[render.PNG]) != "IMG" {
		t.Errorf("artifact = %q", res.Artifacts[render.PNG])
	}
	if res.DocumentKey != "documents/acme.dot" {
		t.Errorf("DocumentKey = %q", res.DocumentKey)
	}

	src, err := r.Fetch(ctx, "acme.dot")
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if src != res.DOT {
		t.Error("published source should equal the compiled DOT")
	}

	// Same DOT again: cache hit.
	res, err = r.Execute(ctx, Options{Organization: testOrg(), Layout: &layout, Formats: []render.Format{render.PNG}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !res.CacheHit {
		t.Error("second execute should hit the artifact cache")
	}

	// Refresh bypasses the cache.
	res, _ = r.Execute(ctx, Options{Organization: testOrg(), Layout: &layout, Formats: []render.Format{render.PNG}, Refresh: true})
	if res.CacheHit {
		t.Error("refresh should not report a cache hit")
	}
}

func TestExecuteWithoutFormats(t *testing.T) {
	static := &render.Static{}
	r, _ := testRunner(static)
	res, err := r.Execute(context.Background(), Options{Organization: testOrg()})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if res.Artifacts != nil || static.Calls() != 0 {
		t.Error("no formats should skip rendering")
	}
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	r, _ := testRunner(&render.Static{})

	if _, err := r.Fetch(ctx, "missing.dot"); !errors.Is(err, errors.ErrCodeDocumentNotFound) {
		t.Errorf("Fetch missing = %v, want DOCUMENT_NOT_FOUND", err)
	}
	if _, err := r.Publish(ctx, "a.dot", "digraph {}"); err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if ok, _ := r.Has(ctx, "a.dot"); !ok {
		t.Error("Has should report published document")
	}
	if err := r.Remove(ctx, "a.dot"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if ok, _ := r.Has(ctx, "a.dot"); ok {
		t.Error("document should be gone after Remove")
	}
	if err := r.Remove(ctx, "a.dot"); err != nil {
		t.Errorf("Remove of missing document: %v", err)
	}
	if _, err := r.Publish(ctx, "../escape", "x"); !errors.Is(err, errors.ErrCodeInvalidKey) {
		t.Errorf("Publish bad name = %v, want INVALID_KEY", err)
	}
}

type failingStore struct{ *storage.Memory }

func (failingStore) Save(context.Context, string, []byte) error {
	return stderrors.New("disk full")
}

func TestCacheWriteFailureDoesNotFailRender(t *testing.T) {
	st := &failingStore{Memory: storage.NewMemory()}
	r := NewRunner(st, &render.Static{Output: []byte("x")}, nil, log.New(io.Discard))

	out, _, err := r.Render(context.Background(), "digraph {}", []render.Format{render.SVG})
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if string(out[render.SVG]) != "x" {
		t.Errorf("artifact = %q", out[render.SVG])
	}

	_, err = r.Publish(context.Background(), "a.dot", "digraph {}")
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("Publish error = %v, want STORAGE_ERROR", err)
	}
}

func TestHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	h := &countingHooks{}
	observability.SetCompileHooks(h)
	observability.SetRenderHooks(h)

	r, _ := testRunner(&render.Static{Output: []byte("x")})
	_, err := r.Execute(context.Background(), Options{Organization: testOrg(), Formats: []render.Format{render.SVG}})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if h.compiles != 1 || h.renders != 1 {
		t.Errorf("compiles=%d renders=%d, want 1 and 1", h.compiles, h.renders)
	}
	if h.nodes != 2 {
		t.Errorf("OnCompileComplete nodes = %d, want 2", h.nodes)
	}
}

type countingHooks struct {
	observability.NoopCompileHooks
	observability.NoopRenderHooks
	compiles, renders, nodes int
}

func (h *countingHooks) OnCompileComplete(_ context.Context, _, _ string, nodes int, _ time.Duration, _ error) {
	h.compiles++
	h.nodes = nodes
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, int, time.Duration, error) {
	h.renders++
}
