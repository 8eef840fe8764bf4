// Package pkg provides the libraries behind orgdot, a compiler from
// organization models to Graphviz DOT.
//
// # Overview
//
// An organization is a graph of six entity kinds (purposes, people,
// projects, production systems, property items and progress metrics) joined
// by typed relationships. orgdot turns that graph into DOT text, renders it
// with Graphviz and keeps documents and images in a pluggable store. The
// directory is organized into three areas:
//
//  1. Model and compiler: [org], [dot], [schema], [io]
//  2. Adapters: [render], [storage]
//  3. Orchestration and surfaces: [pipeline], [server], [observability]
//
// # Architecture
//
//	JSON / YAML / TOML file
//	         ↓
//	    [io] package (decode, normalize)
//	         ↓
//	    [org] package (entities, relationships, optional validation)
//	         ↓
//	    [dot] package (layout selection, styling, escaping, emission)
//	         ↓
//	    [render] package (Graphviz → SVG/PNG/JPG)
//	         ↓
//	    [storage] package (documents and cached images)
//
// [pipeline] chains these steps with caching and is shared by the CLI and
// the HTTP [server].
//
// # Quick Start
//
//	o := org.New("Acme")
//	o.AddPerson(org.Person{ID: "P1", Name: "Alice", Title: "CEO"})
//	o.AddProject(org.Project{ID: "X1", Name: "Launch", Status: org.ProjectActive})
//	o.Relate("P1", org.Leads, "X1")
//
//	fmt.Print(dot.Generate(o, dot.DefaultConfig()))
//
// # Layouts
//
// [dot] picks one of three layouts from its config: hierarchical (entity
// types on fixed ranks, purposes first), clustered (one subgraph per entity
// type) or flat (nodes then edges). Output is deterministic: collections are
// emitted in ID order and relationships in input order.
//
// # Storage
//
// [storage] offers memory, file, SQLite, Redis and MongoDB backends behind
// one key/value interface. Rendered images are keyed by the SHA-256 of their
// DOT source, so identical graphs render once.
//
// [org]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/org
// [dot]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/dot
// [schema]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/schema
// [io]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/render
// [storage]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/storage
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/orgdot/pkg/observability
package pkg
