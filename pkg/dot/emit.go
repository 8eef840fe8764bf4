package dot

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/orgdot/pkg/org"
)

// Summary counts what one generation call emitted.
type Summary struct {
	Layout         Layout `json:"layout"`
	Nodes          int    `json:"nodes"`
	Edges          int    `json:"edges"`
	Clusters       int    `json:"clusters"`
	InvisibleEdges int    `json:"invisible_edges"`
}

// tier is one cluster of the hierarchical and clustered layouts.
type tier struct {
	typ   org.EntityType
	name  string // cluster_<name>
	label string
	fill  string // hierarchical fill color
}

// tiers is in emission order. The clustered and flat layouts skip Progress.
var tiers = []tier{
	{org.EntityPurpose, "purpose", "Purpose", "lightgray"},
	{org.EntityPerson, "people", "People", "lightyellow"},
	{org.EntityProject, "projects", "Projects", "lightgreen"},
	{org.EntityProgress, "progress", "Progress", "lightpink"},
	{org.EntityProductionSystem, "production", "Production", "lightcyan"},
	{org.EntityProperty, "property", "Property", "lightgray"},
}

// Generate renders o as a DOT digraph. It never fails: dangling endpoints,
// type mismatches and self-loops are written out as they are. Node
// statements are ordered by ID within each collection and relationships
// keep their input order, so equal inputs give byte-identical output.
func Generate(o *org.Organization, cfg Config) string {
	e := newEmitter(o, cfg)
	e.run()
	return e.buf.String()
}

// Emit writes the DOT document for o to w and reports what it contains.
func Emit(w io.Writer, o *org.Organization, cfg Config) (Summary, error) {
	e := newEmitter(o, cfg)
	e.run()
	if _, err := e.buf.WriteTo(w); err != nil {
		return e.sum, fmt.Errorf("write dot: %w", err)
	}
	return e.sum, nil
}

// Write is [Emit] without the summary.
func Write(w io.Writer, o *org.Organization, cfg Config) error {
	_, err := Emit(w, o, cfg)
	return err
}

// Stats reports what [Generate] would emit for o and cfg.
func Stats(o *org.Organization, cfg Config) Summary {
	e := newEmitter(o, cfg)
	e.run()
	return e.sum
}

type emitter struct {
	buf bytes.Buffer
	o   *org.Organization
	cfg Config
	sum Summary
}

func newEmitter(o *org.Organization, cfg Config) *emitter {
	e := &emitter{o: o, cfg: cfg}
	e.buf.Grow(4096)
	return e
}

func (e *emitter) run() {
	if e.cfg.UseTemplateMode {
		e.templateHeader()
	} else {
		e.header()
	}

	e.sum.Layout = e.cfg.Layout()
	switch e.sum.Layout {
	case LayoutHierarchical:
		e.hierarchical()
	case LayoutClustered:
		e.clustered()
	default:
		e.flat()
	}

	e.buf.WriteString("\n")
	e.edges()
	e.buf.WriteString("}\n")
}

func (e *emitter) header() {
	e.buf.WriteString("digraph organization {\n")
	fmt.Fprintf(&e.buf, "  rankdir=%s;\n", attr(e.cfg.Rankdir))
	e.buf.WriteString("  node [style=filled];\n")
	fmt.Fprintf(&e.buf, "  label=%s;\n", quote(e.o.Name))
	e.buf.WriteString("  labelloc=t;\n")
	e.buf.WriteString("  compound=true;\n")
	e.buf.WriteString("  newrank=true;\n")
	e.buf.WriteString("\n")
}

const templatePreamble = `digraph Organization {
    graph [
        newrank = true,
        nodesep = 0.3,
        ranksep = 0.5,
        splines = false
    ]

    node [
        shape = box,
        style = filled,
        fillcolor = lightblue
    ]

    edge [
        weight = 10
    ]

`

func (e *emitter) templateHeader() {
	e.buf.WriteString(templatePreamble)
}

func (e *emitter) hierarchical() {
	e.buf.WriteString("  graph [newrank=true, nodesep=0.3, ranksep=0.5, splines=false];\n")
	e.buf.WriteString("  edge [style=invis, weight=10];\n")
	e.buf.WriteString("\n")

	members := make(map[org.EntityType][]org.ID, len(tiers))
	for _, t := range tiers {
		fmt.Fprintf(&e.buf, "  // %s cluster\n", t.label)
		fmt.Fprintf(&e.buf, "  subgraph cluster_%s {\n", t.name)
		fmt.Fprintf(&e.buf, "    label=%s;\n", quote(t.label))
		e.buf.WriteString("    style=filled;\n")
		fmt.Fprintf(&e.buf, "    fillcolor=%s;\n", t.fill)

		ids := e.nodes(t.typ)
		for i := 1; i < len(ids); i++ {
			e.invisible("    ", ids[i-1], ids[i])
		}
		e.buf.WriteString("  }\n\n")
		e.sum.Clusters++
		members[t.typ] = ids
	}

	var (
		purposes = members[org.EntityPurpose]
		people   = members[org.EntityPerson]
		projects = members[org.EntityProject]
		progress = members[org.EntityProgress]
		systems  = members[org.EntityProductionSystem]
		property = members[org.EntityProperty]
	)

	e.buf.WriteString("  // Horizontal alignment\n")
	e.rankSame(purposes)
	e.rankSame(firsts(people, projects, progress))
	e.rankSame(property)
	e.buf.WriteString("\n")

	e.buf.WriteString("  // Vertical tier ordering\n")
	if len(purposes) > 0 {
		if len(people) > 0 {
			e.invisible("  ", purposes[0], people[0])
		} else if len(projects) > 0 {
			e.invisible("  ", purposes[0], projects[0])
		}
	}
	if len(projects) > 0 && len(systems) > 0 {
		e.invisible("  ", projects[len(projects)-1], systems[0])
	}
	if len(property) > 0 {
		if len(people) > 0 {
			e.invisible("  ", people[len(people)-1], property[0])
		} else if len(systems) > 0 {
			e.invisible("  ", systems[len(systems)-1], property[0])
		}
	}
}

func (e *emitter) clustered() {
	for _, t := range tiers {
		if t.typ == org.EntityProgress || len(e.o.IDs(t.typ)) == 0 {
			continue
		}
		fmt.Fprintf(&e.buf, "  subgraph cluster_%s {\n", t.name)
		fmt.Fprintf(&e.buf, "    label=%s;\n", quote(t.label))
		e.buf.WriteString("    style=dashed;\n")
		e.nodes(t.typ)
		e.buf.WriteString("  }\n\n")
		e.sum.Clusters++
	}
}

func (e *emitter) flat() {
	for _, t := range tiers {
		if t.typ == org.EntityProgress {
			continue
		}
		e.nodes(t.typ)
	}
}

// nodes writes one statement per entity of type t and returns the IDs in
// the order written.
func (e *emitter) nodes(t org.EntityType) []org.ID {
	ids := e.o.IDs(t)
	for _, id := range ids {
		s, _ := ResolveNode(e.o, t, id, e.cfg)
		fmt.Fprintf(&e.buf, "    %s [label=%s, shape=%s, fillcolor=%s];\n",
			quote(string(id)), quote(s.Label), attr(s.Shape), quote(s.FillColor))
		e.sum.Nodes++
	}
	return ids
}

func (e *emitter) invisible(indent string, from, to org.ID) {
	fmt.Fprintf(&e.buf, "%s%s -> %s;\n", indent, quote(string(from)), quote(string(to)))
	e.sum.InvisibleEdges++
}

func (e *emitter) rankSame(ids []org.ID) {
	if len(ids) == 0 {
		return
	}
	e.buf.WriteString("  { rank=same; ")
	for _, id := range ids {
		e.buf.WriteString(quote(string(id)))
		e.buf.WriteString("; ")
	}
	e.buf.WriteString("}\n")
}

func (e *emitter) edges() {
	for _, r := range e.o.Relationships {
		s := ResolveEdge(r)
		fmt.Fprintf(&e.buf, "  %s -> %s [label=%s, style=%s, color=%s",
			quote(string(r.SubjectID)), quote(string(r.ObjectID)),
			quote(s.Label), attr(s.Style), quote(s.Color))
		if s.XLabel != nil {
			fmt.Fprintf(&e.buf, ", xlabel=%s", quote(*s.XLabel))
		}
		if s.Weight != nil {
			fmt.Fprintf(&e.buf, ", weight=%s", strconv.FormatFloat(float64(*s.Weight), 'f', -1, 32))
		}
		e.buf.WriteString("];\n")
		e.sum.Edges++
	}
}

// firsts returns the first ID of each non-empty group.
func firsts(groups ...[]org.ID) []org.ID {
	var out []org.ID
	for _, g := range groups {
		if len(g) > 0 {
			out = append(out, g[0])
		}
	}
	return out
}
