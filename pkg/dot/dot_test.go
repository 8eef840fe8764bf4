package dot

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/orgdot/pkg/org"
)

func minimalOrg() *org.Organization {
	o := org.New("Acme")
	o.AddPerson(org.Person{ID: "P1", Name: "Alice", Title: "Founder"})
	o.AddProject(org.Project{ID: "X1", Name: "Project X", Status: org.ProjectActive})
	o.AddRelationship(org.Rel(org.EntityPerson, "P1", org.WorksOn, org.EntityProject, "X1"))
	return o
}

func tieredOrg() *org.Organization {
	o := minimalOrg()
	o.AddPurpose(org.Purpose{ID: "G1", Description: "Grow"})
	o.AddProject(org.Project{ID: "X2", Name: "Y", Status: org.ProjectPlanning})
	o.AddProductionSystem(org.ProductionSystem{ID: "S1", Name: "API", Status: org.SystemOperational})
	o.AddPropertyItem(org.PropertyItem{ID: "R1", Name: "Patent", PropertyType: org.PropertyIntellectual})
	return o
}

func flatConfig() Config {
	return DefaultConfig().WithLayout(LayoutFlat)
}

func TestGenerateMinimalFlat(t *testing.T) {
	got := Generate(minimalOrg(), flatConfig())
	want := `digraph organization {
  rankdir=TB;
  node [style=filled];
  label="Acme";
  labelloc=t;
  compound=true;
  newrank=true;

    "P1" [label="Alice\nFounder", shape=box, fillcolor="lightgreen"];
    "X1" [label="Project X\n[Active]", shape=component, fillcolor="lightcyan"];

  "P1" -> "X1" [label="WorksOn", style=solid, color="black"];
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}
	if n := strings.Count(got, `"P1" [`); n != 1 {
		t.Errorf("P1 node statements = %d, want 1", n)
	}
}

func TestGenerateHierarchical(t *testing.T) {
	got := Generate(tieredOrg(), DefaultConfig())
	want := `digraph organization {
  rankdir=TB;
  node [style=filled];
  label="Acme";
  labelloc=t;
  compound=true;
  newrank=true;

  graph [newrank=true, nodesep=0.3, ranksep=0.5, splines=false];
  edge [style=invis, weight=10];

  // Purpose cluster
  subgraph cluster_purpose {
    label="Purpose";
    style=filled;
    fillcolor=lightgray;
    "G1" [label="Grow", shape=ellipse, fillcolor="lightblue"];
  }

  // People cluster
  subgraph cluster_people {
    label="People";
    style=filled;
    fillcolor=lightyellow;
    "P1" [label="Alice\nFounder", shape=box, fillcolor="lightgreen"];
  }

  // Projects cluster
  subgraph cluster_projects {
    label="Projects";
    style=filled;
    fillcolor=lightgreen;
    "X1" [label="Project X\n[Active]", shape=component, fillcolor="lightcyan"];
    "X2" [label="Y\n[Planning]", shape=component, fillcolor="lightyellow"];
    "X1" -> "X2";
  }

  // Progress cluster
  subgraph cluster_progress {
    label="Progress";
    style=filled;
    fillcolor=lightpink;
  }

  // Production cluster
  subgraph cluster_production {
    label="Production";
    style=filled;
    fillcolor=lightcyan;
    "S1" [label="API\n[Operational]", shape=cylinder, fillcolor="green"];
  }

  // Property cluster
  subgraph cluster_property {
    label="Property";
    style=filled;
    fillcolor=lightgray;
    "R1" [label="Patent", shape=folder, fillcolor="wheat"];
  }

  // Horizontal alignment
  { rank=same; "G1"; }
  { rank=same; "P1"; "X1"; }
  { rank=same; "R1"; }

  // Vertical tier ordering
  "G1" -> "P1";
  "X2" -> "S1";
  "P1" -> "R1";

  "P1" -> "X1" [label="WorksOn", style=solid, color="black"];
}
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Generate() mismatch (-want +got):\n%s", diff)
	}

	sum := Stats(tieredOrg(), DefaultConfig())
	wantSum := Summary{Layout: LayoutHierarchical, Nodes: 6, Edges: 1, Clusters: 6, InvisibleEdges: 4}
	if diff := cmp.Diff(wantSum, sum); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}
}

func TestHierarchicalFallbackEdges(t *testing.T) {
	o := org.New("NoPeople")
	o.AddPurpose(org.Purpose{ID: "G1", Description: "Grow"})
	o.AddProject(org.Project{ID: "X1", Name: "X"})
	o.AddProductionSystem(org.ProductionSystem{ID: "S1", Name: "A"})
	o.AddProductionSystem(org.ProductionSystem{ID: "S2", Name: "B"})
	o.AddPropertyItem(org.PropertyItem{ID: "R1", Name: "Lab"})
	o.AddProgressMetric(org.ProgressMetric{ID: "K1", Name: "NPS", MetricType: "KPI"})

	got := Generate(o, DefaultConfig())
	for _, want := range []string{
		"  \"G1\" -> \"X1\";\n",
		"  \"X1\" -> \"S1\";\n",
		"  \"S2\" -> \"R1\";\n",
		"    \"S1\" -> \"S2\";\n",
		"  { rank=same; \"X1\"; \"K1\"; }\n",
		"    \"K1\" [label=\"NPS\", shape=box, fillcolor=\"lightblue\"];\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Generate() missing %q", want)
		}
	}
}

func TestEmptyOrganization(t *testing.T) {
	for _, l := range Layouts {
		t.Run(l.String(), func(t *testing.T) {
			cfg := DefaultConfig().WithLayout(l)
			got := Generate(org.New("Empty"), cfg)
			if !strings.HasPrefix(got, "digraph organization {\n") || !strings.HasSuffix(got, "}\n") {
				t.Errorf("Generate() not a complete digraph:\n%s", got)
			}
			if strings.Contains(got, "label=\"WorksOn\"") || strings.Contains(got, "\" -> \"") {
				t.Errorf("Generate() has edges for empty organization:\n%s", got)
			}
			sum := Stats(org.New("Empty"), cfg)
			if sum.Nodes != 0 || sum.Edges != 0 || sum.InvisibleEdges != 0 {
				t.Errorf("Stats() = %+v", sum)
			}
		})
	}
}

func TestClusteredOmitsEmptyTypes(t *testing.T) {
	cfg := DefaultConfig().WithLayout(LayoutClustered)
	got := Generate(minimalOrg(), cfg)

	for _, absent := range []string{"cluster_purpose", "cluster_production", "cluster_property", "cluster_progress"} {
		if strings.Contains(got, absent) {
			t.Errorf("clustered output contains %s", absent)
		}
	}
	want := "  subgraph cluster_people {\n    label=\"People\";\n    style=dashed;\n" +
		"    \"P1\" [label=\"Alice\\nFounder\", shape=box, fillcolor=\"lightgreen\"];\n  }\n\n"
	if !strings.Contains(got, want) {
		t.Errorf("clustered output missing people cluster:\n%s", got)
	}
	if sum := Stats(minimalOrg(), cfg); sum.Clusters != 2 {
		t.Errorf("Clusters = %d, want 2", sum.Clusters)
	}
}

func TestProgressOnlyHierarchical(t *testing.T) {
	o := minimalOrg()
	o.AddProgressMetric(org.ProgressMetric{ID: "K1", Name: "NPS"})
	for _, l := range []Layout{LayoutClustered, LayoutFlat} {
		if got := Generate(o, DefaultConfig().WithLayout(l)); strings.Contains(got, `"K1"`) {
			t.Errorf("%s layout emitted progress metric", l)
		}
	}
}

func TestEdgeOverlay(t *testing.T) {
	o := minimalOrg()
	o.Relationships[0].Display = org.EdgeDisplayAttributes{
		Style: org.Ptr("dashed"),
		Label: org.Ptr("deploys"),
	}
	got := Generate(o, flatConfig())
	want := `  "P1" -> "X1" [label="WorksOn", style=dashed, color="black", xlabel="deploys"];` + "\n"
	if !strings.Contains(got, want) {
		t.Errorf("Generate() missing %q in:\n%s", want, got)
	}
	if strings.Contains(got, "weight=") {
		t.Error("edge without weight emitted weight attribute")
	}

	o.Relationships[0].Display.Weight = org.Ptr(float32(2.5))
	o.Relationships[0].Display.Color = org.Ptr("red")
	got = Generate(o, flatConfig())
	want = `  "P1" -> "X1" [label="WorksOn", style=dashed, color="red", xlabel="deploys", weight=2.5];` + "\n"
	if !strings.Contains(got, want) {
		t.Errorf("Generate() missing %q in:\n%s", want, got)
	}
}

func TestIdempotent(t *testing.T) {
	o := tieredOrg()
	for _, l := range Layouts {
		cfg := DefaultConfig().WithLayout(l)
		if a, b := Generate(o, cfg), Generate(o, cfg); a != b {
			t.Errorf("%s layout output differs between calls", l)
		}
	}
}

func TestTemplateMode(t *testing.T) {
	cfg := flatConfig()
	cfg.UseTemplateMode = true
	cfg.Rankdir = "LR"
	got := Generate(minimalOrg(), cfg)

	if !strings.HasPrefix(got, templatePreamble) {
		t.Errorf("template output does not start with preamble:\n%s", got)
	}
	if strings.Contains(got, "rankdir") {
		t.Error("template mode emitted rankdir")
	}
	if strings.Contains(got, `label="Acme"`) {
		t.Error("template mode emitted graph label")
	}
}

func TestRankdir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rankdir = "LR"
	got := Generate(tieredOrg(), cfg)
	if !strings.Contains(got, "  rankdir=LR;\n") {
		t.Error("rankdir not honored in header")
	}
	if !strings.Contains(got, "  graph [newrank=true, nodesep=0.3, ranksep=0.5, splines=false];\n") {
		t.Error("hierarchical graph attributes missing")
	}
}
