package dot

import (
	"github.com/matzehuels/orgdot/pkg/org"
)

// NodeStyle is the resolved presentation of one node statement.
type NodeStyle struct {
	Label     string
	Shape     string
	FillColor string
}

// EdgeStyle is the resolved presentation of one relationship edge.
// XLabel and Weight are nil when the edge does not set them.
type EdgeStyle struct {
	Label  string
	Style  string
	Color  string
	XLabel *string
	Weight *float32
}

const (
	defaultEdgeStyle = "solid"
	defaultEdgeColor = "black"
)

// ResolveNode computes the label, shape and fill color for the entity id
// in the collection for t. It reports false when no such entity exists.
//
// Labels come from display.label_override, else the type's computed label.
// Fill colors come from display.color, else the status color for projects
// and production systems, else the type color. Shapes always come from cfg.
func ResolveNode(o *org.Organization, t org.EntityType, id org.ID, cfg Config) (NodeStyle, bool) {
	switch t {
	case org.EntityPurpose:
		p, ok := o.Purposes[id]
		if !ok {
			return NodeStyle{}, false
		}
		return purposeStyle(p, cfg), true
	case org.EntityPerson:
		p, ok := o.People[id]
		if !ok {
			return NodeStyle{}, false
		}
		return personStyle(p, cfg), true
	case org.EntityProject:
		p, ok := o.Projects[id]
		if !ok {
			return NodeStyle{}, false
		}
		return projectStyle(p, cfg), true
	case org.EntityProductionSystem:
		s, ok := o.ProductionSystems[id]
		if !ok {
			return NodeStyle{}, false
		}
		return productionStyle(s, cfg), true
	case org.EntityProperty:
		p, ok := o.PropertyItems[id]
		if !ok {
			return NodeStyle{}, false
		}
		return propertyStyle(p, cfg), true
	case org.EntityProgress:
		m, ok := o.ProgressMetrics[id]
		if !ok {
			return NodeStyle{}, false
		}
		return progressStyle(m, cfg), true
	}
	return NodeStyle{}, false
}

func purposeStyle(p org.Purpose, cfg Config) NodeStyle {
	return resolve(p.Display, p.Label(), cfg.NodeShapes.Purpose, cfg.Colors.Purpose)
}

func personStyle(p org.Person, cfg Config) NodeStyle {
	return resolve(p.Display, p.Label(), cfg.NodeShapes.Person, cfg.Colors.Person)
}

func projectStyle(p org.Project, cfg Config) NodeStyle {
	return resolve(p.Display, p.Label(cfg.ShowStatus), cfg.NodeShapes.Project, cfg.Colors.Project(p.Status))
}

func productionStyle(s org.ProductionSystem, cfg Config) NodeStyle {
	return resolve(s.Display, s.Label(cfg.ShowStatus), cfg.NodeShapes.Production, cfg.Colors.Production(s.Status))
}

func propertyStyle(p org.PropertyItem, cfg Config) NodeStyle {
	return resolve(p.Display, p.Label(), cfg.NodeShapes.Property, cfg.Colors.Property)
}

func progressStyle(m org.ProgressMetric, cfg Config) NodeStyle {
	return resolve(m.Display, m.Label(), cfg.NodeShapes.Progress, cfg.Colors.Progress)
}

func resolve(d org.DisplayAttributes, label, shape, color string) NodeStyle {
	if d.LabelOverride != nil {
		label = *d.LabelOverride
	}
	if d.Color != nil {
		color = *d.Color
	}
	return NodeStyle{Label: label, Shape: shape, FillColor: color}
}

// ResolveEdge computes the attributes of a relationship edge. The label is
// the predicate name; style and color default to solid and black.
func ResolveEdge(r org.Relationship) EdgeStyle {
	s := EdgeStyle{
		Label:  r.Predicate.String(),
		Style:  defaultEdgeStyle,
		Color:  defaultEdgeColor,
		XLabel: r.Display.Label,
		Weight: r.Display.Weight,
	}
	if r.Display.Style != nil {
		s.Style = *r.Display.Style
	}
	if r.Display.Color != nil {
		s.Color = *r.Display.Color
	}
	return s
}
