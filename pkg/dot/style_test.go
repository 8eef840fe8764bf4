package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/orgdot/pkg/org"
)

func TestResolveNodePrecedence(t *testing.T) {
	cfg := DefaultConfig()
	o := org.New("Acme")
	o.AddPurpose(org.Purpose{ID: "G1", Description: strings.Repeat("a", 40)})
	o.AddPurpose(org.Purpose{ID: "G2", Description: "short", Display: org.DisplayAttributes{
		LabelOverride: org.Ptr("Mission"),
		Color:         org.Ptr("gold"),
		Shape:         org.Ptr("star"),
	}})
	o.AddProject(org.Project{ID: "X1", Name: "X", Status: org.ProjectOnHold, Display: org.DisplayAttributes{
		LabelOverride: org.Ptr("Override"),
	}})

	tests := []struct {
		name string
		typ  org.EntityType
		id   org.ID
		want NodeStyle
	}{
		{"truncated purpose", org.EntityPurpose, "G1", NodeStyle{strings.Repeat("a", 27) + "...", "ellipse", "lightblue"}},
		{"overrides, shape from config", org.EntityPurpose, "G2", NodeStyle{"Mission", "ellipse", "gold"}},
		{"label override drops status", org.EntityProject, "X1", NodeStyle{"Override", "component", "orange"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveNode(o, tt.typ, tt.id, cfg)
			if !ok {
				t.Fatal("ResolveNode() not found")
			}
			if got != tt.want {
				t.Errorf("ResolveNode() = %+v, want %+v", got, tt.want)
			}
		})
	}

	if _, ok := ResolveNode(o, org.EntityPerson, "G1", cfg); ok {
		t.Error("ResolveNode() found G1 in people")
	}
}

func TestPurposeLabelLength(t *testing.T) {
	cfg := DefaultConfig()
	for n := 25; n <= 35; n++ {
		desc := strings.Repeat("d", n)
		got := purposeStyle(org.Purpose{Description: desc}, cfg).Label
		switch {
		case n <= 30 && got != desc:
			t.Errorf("len %d: label = %q, want unchanged", n, got)
		case n > 30 && (len(got) != 30 || !strings.HasSuffix(got, "...")):
			t.Errorf("len %d: label = %q, want 30 chars ending in ...", n, got)
		}
	}
}

func TestStatusSuffixToggle(t *testing.T) {
	for _, show := range []bool{true, false} {
		cfg := DefaultConfig()
		cfg.ShowStatus = show
		for _, s := range org.AllProjectStatuses {
			label := projectStyle(org.Project{Name: "P", Status: s}, cfg).Label
			if has := strings.Contains(label, "["+s.String()+"]"); has != show {
				t.Errorf("project %v show=%v: label %q", s, show, label)
			}
		}
		for _, s := range org.AllSystemStatuses {
			label := productionStyle(org.ProductionSystem{Name: "S", Status: s}, cfg).Label
			if has := strings.Contains(label, "["+s.String()+"]"); has != show {
				t.Errorf("system %v show=%v: label %q", s, show, label)
			}
		}
	}
}

func TestStatusColors(t *testing.T) {
	cfg := DefaultConfig()
	projectColors := map[org.ProjectStatus]string{
		org.ProjectPlanning:  cfg.Colors.ProjectPlanning,
		org.ProjectActive:    cfg.Colors.ProjectActive,
		org.ProjectCompleted: cfg.Colors.ProjectCompleted,
		org.ProjectOnHold:    cfg.Colors.ProjectOnHold,
	}
	for _, s := range org.AllProjectStatuses {
		if got := projectStyle(org.Project{Status: s}, cfg).FillColor; got != projectColors[s] {
			t.Errorf("project %v color = %q, want %q", s, got, projectColors[s])
		}
	}
	systemColors := map[org.SystemStatus]string{
		org.SystemOperational: cfg.Colors.ProductionOperational,
		org.SystemMaintenance: cfg.Colors.ProductionMaintenance,
		org.SystemDegraded:    cfg.Colors.ProductionDegraded,
		org.SystemOffline:     cfg.Colors.ProductionOffline,
	}
	for _, s := range org.AllSystemStatuses {
		if got := productionStyle(org.ProductionSystem{Status: s}, cfg).FillColor; got != systemColors[s] {
			t.Errorf("system %v color = %q, want %q", s, got, systemColors[s])
		}
	}

	// distinct palette so a wrong branch cannot match by accident
	cfg.Colors.ProjectPlanning, cfg.Colors.ProjectActive = "c1", "c2"
	cfg.Colors.ProjectCompleted, cfg.Colors.ProjectOnHold = "c3", "c4"
	for i, s := range org.AllProjectStatuses {
		want := []string{"c1", "c2", "c3", "c4"}[i]
		if got := projectStyle(org.Project{Status: s}, cfg).FillColor; got != want {
			t.Errorf("project %v color = %q, want %q", s, got, want)
		}
	}

	if got := cfg.Colors.Project(org.ProjectStatus(42)); got != "c1" {
		t.Errorf("unknown project status color = %q, want planning color", got)
	}
}

func TestResolveEdgeDefaults(t *testing.T) {
	got := ResolveEdge(org.Rel(org.EntityProject, "X1", org.DependsOn, org.EntityProject, "X2"))
	if got.Label != "DependsOn" || got.Style != "solid" || got.Color != "black" {
		t.Errorf("ResolveEdge() = %+v", got)
	}
	if got.XLabel != nil || got.Weight != nil {
		t.Errorf("ResolveEdge() set optional attributes: %+v", got)
	}
}
