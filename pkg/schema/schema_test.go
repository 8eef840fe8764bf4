package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/org"
)

const validDoc = `{
  "name": "Acme",
  "purposes": {"G1": {"id": "G1", "description": "Grow", "display": {}}},
  "people": {"P1": {"id": "P1", "name": "Alice", "title": "Founder", "display": {"color": "pink"}}},
  "projects": {"X1": {"id": "X1", "name": "Project X", "status": "Active", "display": {}}},
  "production_systems": {},
  "property_items": {"R1": {"id": "R1", "name": "Patent", "property_type": "Intellectual", "display": {}}},
  "relationships": [
    {"subject_id": "P1", "subject_type": "Person", "predicate": "WorksOn",
     "object_id": "X1", "object_type": "Project", "display": {"style": "dashed", "weight": 2}}
  ]
}`

func TestGenerate(t *testing.T) {
	s, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if s.Schema != Draft {
		t.Errorf("$schema = %q, want %q", s.Schema, Draft)
	}

	status := s.Properties["projects"].AdditionalProperties.Properties["status"]
	want := []any{"Planning", "Active", "Completed", "OnHold"}
	if diff := cmp.Diff(want, status.Enum); diff != "" {
		t.Errorf("status enum mismatch (-want +got):\n%s", diff)
	}
	predicate := s.Properties["relationships"].Items.Properties["predicate"]
	if len(predicate.Enum) != len(org.AllRelationTypes) {
		t.Errorf("predicate enum has %d values, want %d", len(predicate.Enum), len(org.AllRelationTypes))
	}
}

func TestJSON(t *testing.T) {
	data, err := JSON()
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if !strings.Contains(string(data), `"TransitionsTo"`) {
		t.Error("schema does not list relation names")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]byte(validDoc)); err != nil {
		t.Fatalf("Validate(valid) error = %v", err)
	}

	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"malformed", `{"name": `, errors.ErrCodeInvalidInput},
		{"unknown predicate", strings.Replace(validDoc, `"WorksOn"`, `"Owns"`, 1), errors.ErrCodeInvalidOrganization},
		{"unknown status", strings.Replace(validDoc, `"Active"`, `"Paused"`, 1), errors.ErrCodeInvalidOrganization},
		{"missing people", strings.Replace(validDoc, `"people"`, `"staff"`, 1), errors.ErrCodeInvalidOrganization},
		{"name not a string", strings.Replace(validDoc, `"Acme"`, `42`, 1), errors.ErrCodeInvalidOrganization},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.doc))
			if !errors.Is(err, tt.code) {
				t.Errorf("Validate() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestValidateMarshaledOrganization(t *testing.T) {
	o := org.New("Acme")
	o.AddProductionSystem(org.ProductionSystem{ID: "S1", Name: "API", Status: org.SystemDegraded})
	o.AddProgressMetric(org.ProgressMetric{ID: "K1", Name: "NPS", MetricType: "KPI"})
	o.AddRelationship(org.Rel(org.EntityProductionSystem, "S1", org.Supports, org.EntityProgress, "K1"))

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatal(err)
	}
	if err := Validate(data); err != nil {
		t.Errorf("Validate(marshaled) error = %v", err)
	}
}
