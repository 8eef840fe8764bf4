// Package org defines the organization data model rendered by orgdot.
//
// # Overview
//
// An [Organization] is a typed graph. Nodes live in one map per entity type,
// keyed by [ID]; edges are an ordered slice of [Relationship] values that
// follow a subject-predicate-object pattern:
//
//	Purpose          what the organization exists for
//	Person           who does the work (name, title)
//	Project          time-boxed work with a [ProjectStatus]
//	ProductionSystem running systems with a [SystemStatus]
//	PropertyItem     physical, intellectual or financial assets
//	ProgressMetric   KPIs, shown only by the hierarchical DOT layout
//
// Every entity carries [DisplayAttributes] and every relationship carries
// [EdgeDisplayAttributes]. All overlay fields are optional pointers; nil
// means "use the type or status default" and is never serialized.
//
// # Identity
//
// IDs are treated as one global namespace across all collections so that a
// DOT node name identifies exactly one entity. Nothing enforces this at
// construction time; [Validate] reports collisions.
//
// # Lifecycle
//
// Organizations are plain values, built wholesale before rendering:
//
//	o := org.New("Acme Corp")
//	o.AddPerson(org.Person{ID: "P1", Name: "Alice", Title: "Founder"})
//	o.AddProject(org.Project{ID: "X1", Name: "Project X", Status: org.ProjectActive})
//	o.AddRelationship(org.Rel(org.EntityPerson, "P1", org.WorksOn, org.EntityProject, "X1"))
//
// Renderers never mutate an Organization, so a single value can be shared
// between goroutines as long as nobody writes to it.
//
// # Enums
//
// [ProjectStatus], [SystemStatus], [PropertyType], [EntityType] and
// [RelationType] are integer kinds whose text form is the variant name
// ("Active", "WorksOn", ...). They implement encoding.TextMarshaler so JSON,
// YAML and TOML documents use the names, and decoding rejects unknown names.
package org
