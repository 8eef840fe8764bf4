// Package dot compiles an [org.Organization] into Graphviz DOT text.
//
// # Overview
//
// [Generate] is a pure function from an organization and a [Config] to a
// complete digraph document. It performs no I/O, keeps no state between
// calls and never fails, so it is safe to call concurrently on shared
// input. The result is handed to a renderer (see package render) or stored
// as-is.
//
//	o, _ := io.Import("acme.json")
//	src := dot.Generate(o, dot.DefaultConfig())
//
// # Layouts
//
// One of three strategies is picked per call by [Config.Layout]:
//
//   - [LayoutHierarchical] (UseHierarchicalLayout): one filled cluster per
//     tier (Purpose, People, Projects, Progress, Production, Property).
//     Members of a tier are chained with invisible weight-10 edges, the
//     first rows of the tiers are aligned with rank=same groups, and a few
//     invisible cross-tier edges keep Purpose on top and Property at the
//     bottom. Graph attributes are fixed; rankdir from the header still
//     applies but the tier ordering assumes TB.
//   - [LayoutClustered] (UseSubgraphs): a dashed cluster per non-empty
//     entity type.
//   - [LayoutFlat]: node statements only.
//
// Progress metrics appear only in the hierarchical layout.
//
// # Styling
//
// [ResolveNode] and [ResolveEdge] apply the overlay rules. A node label is
// display.label_override, else the computed label (a purpose description
// truncated to 30 characters, "name\ntitle" for people, "name\n[Status]"
// for projects and production systems when ShowStatus is set). The fill
// color is display.color, else the status color, else the type color.
// Shapes always come from [Config.NodeShapes]. Edges default to a solid
// black line labelled with the predicate; xlabel and weight are written
// only when the relationship sets them.
//
// # Escaping
//
// Every node ID, label, cluster label and color is written as a quoted
// DOT string through [Escape], which escapes backslashes, double quotes and
// newlines. Shapes and edge styles are written bare when they are plain
// identifiers and quoted otherwise, so entity data cannot add attributes.
//
// # Determinism
//
// Entities are emitted sorted by ID within each collection; relationships
// keep their order. Two calls with equal input produce identical bytes.
//
// # Configuration files
//
// [DecodeConfig] and [LoadConfig] read TOML over [DefaultConfig]:
//
//	rankdir = "LR"
//	show_status = false
//
//	[node_shapes]
//	person = "oval"
//
// [org.Organization]: github.com/matzehuels/orgdot/pkg/org.Organization
package dot
