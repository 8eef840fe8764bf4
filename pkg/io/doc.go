// Package io reads and writes organization documents as JSON, YAML or TOML.
//
// # Overview
//
// All three formats share one shape, the JSON field names of
// [org.Organization]. YAML and TOML documents are decoded into generic
// values and then run through the JSON decoder, so an unknown field or an
// unknown enum name is rejected the same way in every format.
//
//	{
//	  "name": "Acme Corp",
//	  "purposes": {"G1": {"id": "G1", "description": "Grow", "display": {}}},
//	  "people": {"P1": {"id": "P1", "name": "Alice", "title": "Founder", "display": {}}},
//	  "projects": {},
//	  "production_systems": {},
//	  "property_items": {},
//	  "relationships": []
//	}
//
// The same document in YAML:
//
//	name: Acme Corp
//	people:
//	  P1: {id: P1, name: Alice, title: Founder, display: {}}
//
// # Import
//
// [Import] picks the decoder from the file extension (.json, .yaml, .yml,
// .toml). [ReadJSON], [ReadYAML] and [ReadTOML] decode from any reader.
// Decoded organizations always have every collection allocated.
//
// # Export
//
// [Export] and the Write functions emit every collection, empty ones
// included, so exported JSON validates against the schema from package
// schema. JSON output is indented with two spaces; YAML and TOML keys are
// sorted.
//
// [org.Organization]: github.com/matzehuels/orgdot/pkg/org.Organization
package io
