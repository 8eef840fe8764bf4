// Package schema exports a JSON Schema for the organization model.
//
// The schema is reflected from [org.Organization] with
// github.com/google/jsonschema-go, then the integer enums are rewritten to the
// string variant names they serialize as. External tools use it to check or
// generate organization documents; [Validate] applies it to raw JSON.
//
// [org.Organization]: github.com/matzehuels/orgdot/pkg/org.Organization
package schema

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/matzehuels/orgdot/pkg/errors"
	"github.com/matzehuels/orgdot/pkg/org"
)

// Draft is the JSON Schema dialect of the exported schema.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// enumField locates a property holding one of the org enums.
type enumField struct {
	path []string // property names from the root; "*" steps into map values, "[]" into array items
	enum string   // key into org.Names()
	desc string
}

var enumFields = []enumField{
	{[]string{"projects", "*", "status"}, "ProjectStatus", "project lifecycle state"},
	{[]string{"production_systems", "*", "status"}, "SystemStatus", "operational state"},
	{[]string{"property_items", "*", "property_type"}, "PropertyType", "asset class"},
	{[]string{"relationships", "[]", "subject_type"}, "EntityType", "collection holding subject_id"},
	{[]string{"relationships", "[]", "object_type"}, "EntityType", "collection holding object_id"},
	{[]string{"relationships", "[]", "predicate"}, "RelationType", "relation kind, used as the edge label"},
}

// Generate reflects the organization model into a schema. It fails only if
// the model itself cannot be reflected, which is a programming error.
func Generate() (*jsonschema.Schema, error) {
	s, err := jsonschema.For[org.Organization](nil)
	if err != nil {
		return nil, fmt.Errorf("reflect organization: %w", err)
	}

	names := org.Names()
	for _, f := range enumFields {
		parent, err := walk(s, f.path[:len(f.path)-1])
		if err != nil {
			return nil, err
		}
		prop := f.path[len(f.path)-1]
		if _, ok := parent.Properties[prop]; !ok {
			return nil, fmt.Errorf("schema has no property %v", f.path)
		}
		values := make([]any, len(names[f.enum]))
		for i, n := range names[f.enum] {
			values[i] = n
		}
		parent.Properties[prop] = &jsonschema.Schema{
			Type:        "string",
			Enum:        values,
			Description: f.desc,
		}
	}

	s.Schema = Draft
	s.Title = "Organization"
	s.Description = "Entities and relationships compiled to a Graphviz DOT graph by orgdot."
	return s, nil
}

func walk(s *jsonschema.Schema, path []string) (*jsonschema.Schema, error) {
	cur := s
	for i, step := range path {
		var next *jsonschema.Schema
		switch step {
		case "*":
			next = cur.AdditionalProperties
		case "[]":
			next = cur.Items
		default:
			next = cur.Properties[step]
		}
		if next == nil {
			return nil, fmt.Errorf("schema has no node at %v", path[:i+1])
		}
		cur = next
	}
	return cur, nil
}

// MustGenerate is [Generate] for package initialization; it panics on error.
func MustGenerate() *jsonschema.Schema {
	s, err := Generate()
	if err != nil {
		panic(err)
	}
	return s
}

// JSON returns the indented schema document.
func JSON() ([]byte, error) {
	s, err := Generate()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(s, "", "  ")
}

var (
	resolveOnce sync.Once
	resolved    *jsonschema.Resolved
	resolveErr  error
)

func resolvedSchema() (*jsonschema.Resolved, error) {
	resolveOnce.Do(func() {
		s, err := Generate()
		if err != nil {
			resolveErr = err
			return
		}
		resolved, resolveErr = s.Resolve(nil)
	})
	return resolved, resolveErr
}

// Validate checks a JSON organization document against the schema.
// Malformed JSON reports INVALID_INPUT; a document that parses but does not
// conform reports INVALID_ORGANIZATION.
func Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse organization")
	}
	return ValidateValue(doc)
}

// ValidateValue checks an already decoded JSON value, as produced by
// encoding/json into an any.
func ValidateValue(doc any) error {
	rs, err := resolvedSchema()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "resolve schema")
	}
	if err := rs.Validate(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrganization, err, "organization does not match schema")
	}
	return nil
}
